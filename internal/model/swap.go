package model

import "math/big"

// TradeType labels the direction of a swap relative to the alt token.
type TradeType string

const (
	TradeBuy  TradeType = "buy"
	TradeSell TradeType = "sell"
)

// SwapRecord is a decoded Swap event enriched with price and direction.
// Price is the exact quote-per-alt ratio in raw token units. AltAmount is
// the net change on the alt token side, used for volume accounting.
type SwapRecord struct {
	TxHash       string
	BlockNumber  uint64
	LogIndex     uint64
	Sender       string
	Recipient    string
	Amount0      *big.Int
	Amount1      *big.Int
	SqrtPriceX96 *big.Int
	Price        *big.Rat
	TradeType    TradeType
	AltAmount    *big.Int
	HourIndex    int
}
