package dex

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"swapScope/internal/chain"
	"swapScope/internal/model"
)

// FetchTokenDisplay reads symbol and decimals from an ERC20 contract.
// Tokens that return bytes32 symbols (MKR-style) are retried with the
// bytes32 variant of the ABI before giving up.
func FetchTokenDisplay(ctx context.Context, client *chain.Client, token string) (model.TokenDisplay, error) {
	display := model.TokenDisplay{Address: strings.ToLower(token)}
	addr := common.HexToAddress(token)

	symbol, err := fetchSymbol(ctx, client, addr)
	if err != nil {
		return display, fmt.Errorf("symbol: %w", err)
	}
	display.Symbol = symbol

	stringABI, err := erc20ABIStringInstance()
	if err != nil {
		return display, fmt.Errorf("parse erc20 abi: %w", err)
	}
	values, err := callERC20Method(ctx, client, addr, stringABI, "decimals")
	if err != nil {
		return display, fmt.Errorf("decimals: %w", err)
	}
	decimals, err := asUint8(values[0])
	if err != nil {
		return display, fmt.Errorf("decimals: %w", err)
	}
	display.Decimals = decimals

	return display, nil
}

func fetchSymbol(ctx context.Context, client *chain.Client, token common.Address) (string, error) {
	stringABI, err := erc20ABIStringInstance()
	if err != nil {
		return "", fmt.Errorf("parse erc20 abi: %w", err)
	}
	values, err := callERC20Method(ctx, client, token, stringABI, "symbol")
	if err == nil {
		if s, ok := values[0].(string); ok {
			return s, nil
		}
	}

	bytesABI, err := erc20ABIBytes32Instance()
	if err != nil {
		return "", fmt.Errorf("parse erc20 bytes32 abi: %w", err)
	}
	values, err = callERC20Method(ctx, client, token, bytesABI, "symbol")
	if err != nil {
		return "", err
	}
	if s, ok := bytes32ToString(values[0]); ok {
		return s, nil
	}
	return "", fmt.Errorf("unsupported symbol type %T", values[0])
}

func callERC20Method(ctx context.Context, client *chain.Client, token common.Address, erc20ABI abi.ABI, method string) ([]interface{}, error) {
	data, err := erc20ABI.Pack(method)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	msg := ethereum.CallMsg{To: &token, Data: data}
	resp, err := client.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	values, err := erc20ABI.Unpack(method, resp)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("call %s: empty result", method)
	}
	return values, nil
}
