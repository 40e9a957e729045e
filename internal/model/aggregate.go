package model

import "math/big"

// AggregateKey groups swap records by hour bucket and trade direction.
type AggregateKey struct {
	HourIndex int
	TradeType TradeType
}

// HourlyAggregate summarizes one (hour, direction) group. AvgPrice is the
// exact arithmetic mean of the group's prices; TotalVolume is the sum of
// absolute alt-side amounts.
type HourlyAggregate struct {
	Count       uint64
	AvgPrice    *big.Rat
	TotalVolume *big.Int
}

// SummaryRow is one rendered row of a per-pool hourly summary table.
type SummaryRow struct {
	HourIndex   int
	TradeType   TradeType
	Count       uint64
	AvgPrice    *big.Rat
	TotalVolume *big.Int
}
