package dex

import (
	"fmt"
	"math/big"
)

var twoPow192 = new(big.Int).Lsh(big.NewInt(1), 192)

// rawRatio converts the pool's sqrtPriceX96 into the token1-per-token0
// price ratio: sqrtPriceX96^2 / 2^192. The squaring runs in math/big, so
// the full 320-bit intermediate is preserved.
func rawRatio(sqrtPriceX96 *big.Int) *big.Rat {
	sq := new(big.Int).Mul(sqrtPriceX96, sqrtPriceX96)
	return new(big.Rat).SetFrac(sq, twoPow192)
}

// quotePrice converts sqrtPriceX96 into quote token units per alt token
// unit, in raw integer-unit terms without decimal normalization. When the
// alt token is token1 the raw ratio is inverted, which fails on a zero
// ratio.
func quotePrice(sqrtPriceX96 *big.Int, altIsToken0 bool) (*big.Rat, error) {
	ratio := rawRatio(sqrtPriceX96)
	if altIsToken0 {
		return ratio, nil
	}
	if ratio.Sign() == 0 {
		return nil, fmt.Errorf("zero price ratio cannot be inverted")
	}
	return new(big.Rat).Inv(ratio), nil
}
