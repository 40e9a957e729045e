package dex

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"swapScope/internal/model"
)

func TestClassifyRole(t *testing.T) {
	token0 := common.HexToAddress("0xAAaAaAaaAaAaAaaAaAAAAAAAAaaaAaAaAaaAaaAA")
	token1 := common.HexToAddress("0xBbbBBBbbBBBbbbBbbBbbbbBBbBbbbbBbBbBbbbBB")

	pool := model.PoolIdentity{
		Label:           "ALT/QUOTE",
		PoolAddress:     "0x1111111111111111111111111111111111111111",
		AltTokenAddress: "0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA",
	}

	role, err := classifyRole(pool, token0, token1)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if !role.AltIsToken0 {
		t.Fatalf("expected alt in slot zero")
	}
	if role.Token0 != "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa" {
		t.Fatalf("token0 not normalized: %s", role.Token0)
	}

	again, err := classifyRole(pool, token0, token1)
	if err != nil {
		t.Fatalf("classify again: %v", err)
	}
	if again != role {
		t.Fatalf("classification not stable: %+v != %+v", again, role)
	}

	pool.AltTokenAddress = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	role, err = classifyRole(pool, token0, token1)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if role.AltIsToken0 {
		t.Fatalf("expected alt in slot one")
	}

	pool.AltTokenAddress = "0xcccccccccccccccccccccccccccccccccccccccc"
	_, err = classifyRole(pool, token0, token1)
	var mismatch *model.RoleMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected role mismatch, got %v", err)
	}
	if mismatch.Pool != pool.PoolAddress {
		t.Fatalf("mismatch pool: %s", mismatch.Pool)
	}
}
