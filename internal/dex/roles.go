package dex

import (
	"bytes"
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"swapScope/internal/chain"
	"swapScope/internal/model"
)

// ResolveTokenRole determines which pool slot holds the configured alt
// token by reading token0() and token1() from the pool contract. The
// comparison is case-insensitive. An alt token matching neither slot is a
// RoleMismatchError, never a guessed default.
func ResolveTokenRole(ctx context.Context, client *chain.Client, pool model.PoolIdentity) (model.TokenRole, error) {
	if client == nil {
		return model.TokenRole{}, fmt.Errorf("chain client is nil")
	}

	poolABI, err := V3PoolABI()
	if err != nil {
		return model.TokenRole{}, fmt.Errorf("parse pool abi: %w", err)
	}

	poolAddr := common.HexToAddress(pool.PoolAddress)

	values, err := callPoolMethod(ctx, client, poolAddr, poolABI, "token0")
	if err != nil {
		return model.TokenRole{}, err
	}
	token0, err := asAddress(values[0])
	if err != nil {
		return model.TokenRole{}, fmt.Errorf("token0: %w", err)
	}

	values, err = callPoolMethod(ctx, client, poolAddr, poolABI, "token1")
	if err != nil {
		return model.TokenRole{}, err
	}
	token1, err := asAddress(values[0])
	if err != nil {
		return model.TokenRole{}, fmt.Errorf("token1: %w", err)
	}

	return classifyRole(pool, token0, token1)
}

// classifyRole compares the alt token address against the pool slots.
func classifyRole(pool model.PoolIdentity, token0, token1 common.Address) (model.TokenRole, error) {
	alt := strings.ToLower(pool.AltTokenAddress)
	role := model.TokenRole{
		Token0: strings.ToLower(token0.Hex()),
		Token1: strings.ToLower(token1.Hex()),
	}

	switch alt {
	case role.Token0:
		role.AltIsToken0 = true
		return role, nil
	case role.Token1:
		role.AltIsToken0 = false
		return role, nil
	default:
		return model.TokenRole{}, &model.RoleMismatchError{
			Pool:     pool.PoolAddress,
			AltToken: pool.AltTokenAddress,
			Token0:   role.Token0,
			Token1:   role.Token1,
		}
	}
}

func callPoolMethod(ctx context.Context, client *chain.Client, pool common.Address, poolABI abi.ABI, method string) ([]interface{}, error) {
	data, err := poolABI.Pack(method)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	msg := ethereum.CallMsg{To: &pool, Data: data}
	resp, err := client.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	values, err := poolABI.Unpack(method, resp)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	return values, nil
}

func asAddress(value interface{}) (common.Address, error) {
	switch v := value.(type) {
	case common.Address:
		return v, nil
	case *common.Address:
		return *v, nil
	default:
		return common.Address{}, fmt.Errorf("unsupported address type %T", value)
	}
}

func asBigInt(value interface{}) (*big.Int, error) {
	switch v := value.(type) {
	case *big.Int:
		return new(big.Int).Set(v), nil
	case big.Int:
		return new(big.Int).Set(&v), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	case int8:
		return big.NewInt(int64(v)), nil
	case int16:
		return big.NewInt(int64(v)), nil
	case int32:
		return big.NewInt(int64(v)), nil
	case int64:
		return big.NewInt(v), nil
	default:
		return nil, fmt.Errorf("unsupported int type %T", value)
	}
}

func asUint8(value interface{}) (uint8, error) {
	switch v := value.(type) {
	case uint8:
		return v, nil
	case uint16:
		return uint8(v), nil
	case uint32:
		return uint8(v), nil
	case uint64:
		return uint8(v), nil
	case *big.Int:
		return uint8(v.Uint64()), nil
	default:
		return 0, fmt.Errorf("unsupported uint8 type %T", value)
	}
}

func bytes32ToString(value interface{}) (string, bool) {
	switch v := value.(type) {
	case [32]byte:
		return string(bytes.TrimRight(v[:], "\x00")), true
	case []byte:
		return string(bytes.TrimRight(v, "\x00")), true
	default:
		return "", false
	}
}
