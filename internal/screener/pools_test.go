package screener

import (
	"testing"

	"swapScope/internal/model"
)

func TestValidatePools(t *testing.T) {
	valid := []model.PoolIdentity{
		{
			Label:           "WETH/USDC",
			PoolAddress:     "0xd0b53D9277642d899DF5C87A3966A349A798F224",
			AltTokenAddress: "0x4200000000000000000000000000000000000006",
		},
		{
			Label:             "BNKR/WETH",
			PoolAddress:       "0xAEC085E5A5CE8d96A7bDd3eB3A62445d4f6CE703",
			AltTokenAddress:   "0x22aF33FE49fD1Fa80c7149773dDe5890D3c76F3b",
			QuoteTokenAddress: "0x4200000000000000000000000000000000000006",
		},
	}
	if err := ValidatePools(valid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := ValidatePools(nil); err == nil {
		t.Fatalf("expected error for empty pool list")
	}

	missingLabel := []model.PoolIdentity{{
		PoolAddress:     "0xd0b53D9277642d899DF5C87A3966A349A798F224",
		AltTokenAddress: "0x4200000000000000000000000000000000000006",
	}}
	if err := ValidatePools(missingLabel); err == nil {
		t.Fatalf("expected error for missing label")
	}

	duplicate := append([]model.PoolIdentity{}, valid...)
	duplicate[1].Label = "weth/usdc"
	if err := ValidatePools(duplicate); err == nil {
		t.Fatalf("expected error for duplicate label")
	}

	badPool := append([]model.PoolIdentity{}, valid[0])
	badPool[0].PoolAddress = "not-an-address"
	if err := ValidatePools(badPool); err == nil {
		t.Fatalf("expected error for invalid pool address")
	}

	badQuote := append([]model.PoolIdentity{}, valid[0])
	badQuote[0].QuoteTokenAddress = "0x123"
	if err := ValidatePools(badQuote); err == nil {
		t.Fatalf("expected error for invalid quote address")
	}
}
