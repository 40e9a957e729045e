package aggregate

import (
	"math/big"
	"sort"

	"swapScope/internal/model"
)

// Accumulator folds swap records of one (hour, direction) group. Prices are
// summed as exact rationals so the mean does not depend on insertion order.
type Accumulator struct {
	Count    uint64
	PriceSum *big.Rat
	Volume   *big.Int
}

func NewAccumulator() *Accumulator {
	return &Accumulator{
		PriceSum: new(big.Rat),
		Volume:   big.NewInt(0),
	}
}

func (a *Accumulator) Add(record model.SwapRecord) {
	a.Count++
	a.PriceSum.Add(a.PriceSum, record.Price)
	absAdd(a.Volume, record.AltAmount)
}

// Finalize converts the running sums into the group aggregate.
func (a *Accumulator) Finalize() model.HourlyAggregate {
	avg := new(big.Rat)
	if a.Count > 0 {
		avg.Quo(a.PriceSum, new(big.Rat).SetUint64(a.Count))
	}
	return model.HourlyAggregate{
		Count:       a.Count,
		AvgPrice:    avg,
		TotalVolume: new(big.Int).Set(a.Volume),
	}
}

// Collect buckets swap records by hour index and trade direction.
func Collect(records []model.SwapRecord) map[model.AggregateKey]model.HourlyAggregate {
	buckets := make(map[model.AggregateKey]*Accumulator)
	for _, record := range records {
		key := model.AggregateKey{HourIndex: record.HourIndex, TradeType: record.TradeType}
		acc, ok := buckets[key]
		if !ok {
			acc = NewAccumulator()
			buckets[key] = acc
		}
		acc.Add(record)
	}

	out := make(map[model.AggregateKey]model.HourlyAggregate, len(buckets))
	for key, acc := range buckets {
		out[key] = acc.Finalize()
	}
	return out
}

// SortedRows flattens bucket aggregates into rows ordered by hour index,
// with buys before sells inside an hour.
func SortedRows(buckets map[model.AggregateKey]model.HourlyAggregate) []model.SummaryRow {
	rows := make([]model.SummaryRow, 0, len(buckets))
	for key, agg := range buckets {
		rows = append(rows, model.SummaryRow{
			HourIndex:   key.HourIndex,
			TradeType:   key.TradeType,
			Count:       agg.Count,
			AvgPrice:    agg.AvgPrice,
			TotalVolume: agg.TotalVolume,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].HourIndex != rows[j].HourIndex {
			return rows[i].HourIndex < rows[j].HourIndex
		}
		return rows[i].TradeType < rows[j].TradeType
	})
	return rows
}

func absAdd(target *big.Int, value *big.Int) {
	if value == nil || target == nil {
		return
	}
	abs := new(big.Int).Abs(value)
	target.Add(target, abs)
}
