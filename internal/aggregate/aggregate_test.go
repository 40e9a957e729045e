package aggregate

import (
	"math/big"
	"testing"

	"swapScope/internal/model"
)

func TestCollectBucketsByHourAndDirection(t *testing.T) {
	records := []model.SwapRecord{
		swapRecord(0, model.TradeBuy, big.NewRat(1, 3), 1000),
		swapRecord(0, model.TradeBuy, big.NewRat(1, 6), -400),
		swapRecord(0, model.TradeSell, big.NewRat(2, 1), -50),
		swapRecord(2, model.TradeBuy, big.NewRat(5, 1), 7),
	}

	buckets := Collect(records)
	if len(buckets) != 3 {
		t.Fatalf("bucket count mismatch: %d", len(buckets))
	}

	buys := buckets[model.AggregateKey{HourIndex: 0, TradeType: model.TradeBuy}]
	if buys.Count != 2 {
		t.Fatalf("buy count mismatch: %d", buys.Count)
	}
	if buys.AvgPrice.Cmp(big.NewRat(1, 4)) != 0 {
		t.Fatalf("buy avg mismatch: %s", buys.AvgPrice.RatString())
	}
	if buys.TotalVolume.Cmp(big.NewInt(1400)) != 0 {
		t.Fatalf("buy volume mismatch: %s", buys.TotalVolume)
	}

	sells := buckets[model.AggregateKey{HourIndex: 0, TradeType: model.TradeSell}]
	if sells.Count != 1 || sells.TotalVolume.Cmp(big.NewInt(50)) != 0 {
		t.Fatalf("sell bucket mismatch: %+v", sells)
	}

	late := buckets[model.AggregateKey{HourIndex: 2, TradeType: model.TradeBuy}]
	if late.AvgPrice.Cmp(big.NewRat(5, 1)) != 0 {
		t.Fatalf("late avg mismatch: %s", late.AvgPrice.RatString())
	}
}

func TestCollectMeanIsOrderIndependent(t *testing.T) {
	records := []model.SwapRecord{
		swapRecord(1, model.TradeBuy, big.NewRat(1, 3), 10),
		swapRecord(1, model.TradeBuy, big.NewRat(1, 7), 20),
		swapRecord(1, model.TradeBuy, big.NewRat(22, 7), 30),
		swapRecord(1, model.TradeBuy, big.NewRat(355, 113), 40),
	}

	reversed := make([]model.SwapRecord, len(records))
	for i, record := range records {
		reversed[len(records)-1-i] = record
	}

	forward := Collect(records)
	backward := Collect(reversed)

	key := model.AggregateKey{HourIndex: 1, TradeType: model.TradeBuy}
	if forward[key].AvgPrice.Cmp(backward[key].AvgPrice) != 0 {
		t.Fatalf("mean depends on order: %s vs %s",
			forward[key].AvgPrice.RatString(), backward[key].AvgPrice.RatString())
	}
	if forward[key].TotalVolume.Cmp(backward[key].TotalVolume) != 0 {
		t.Fatalf("volume depends on order")
	}
}

func TestSortedRows(t *testing.T) {
	buckets := map[model.AggregateKey]model.HourlyAggregate{
		{HourIndex: 3, TradeType: model.TradeSell}: {Count: 1, AvgPrice: big.NewRat(1, 1), TotalVolume: big.NewInt(1)},
		{HourIndex: 0, TradeType: model.TradeSell}: {Count: 2, AvgPrice: big.NewRat(2, 1), TotalVolume: big.NewInt(2)},
		{HourIndex: 0, TradeType: model.TradeBuy}:  {Count: 3, AvgPrice: big.NewRat(3, 1), TotalVolume: big.NewInt(3)},
		{HourIndex: 1, TradeType: model.TradeBuy}:  {Count: 4, AvgPrice: big.NewRat(4, 1), TotalVolume: big.NewInt(4)},
	}

	rows := SortedRows(buckets)
	if len(rows) != 4 {
		t.Fatalf("row count mismatch: %d", len(rows))
	}

	want := []model.AggregateKey{
		{HourIndex: 0, TradeType: model.TradeBuy},
		{HourIndex: 0, TradeType: model.TradeSell},
		{HourIndex: 1, TradeType: model.TradeBuy},
		{HourIndex: 3, TradeType: model.TradeSell},
	}
	for i, row := range rows {
		if row.HourIndex != want[i].HourIndex || row.TradeType != want[i].TradeType {
			t.Fatalf("row %d out of order: %d/%s", i, row.HourIndex, row.TradeType)
		}
	}
}

func TestCollectEmpty(t *testing.T) {
	if buckets := Collect(nil); len(buckets) != 0 {
		t.Fatalf("expected no buckets, got %d", len(buckets))
	}
}

func swapRecord(hour int, tradeType model.TradeType, price *big.Rat, altAmount int64) model.SwapRecord {
	return model.SwapRecord{
		HourIndex: hour,
		TradeType: tradeType,
		Price:     price,
		AltAmount: big.NewInt(altAmount),
	}
}
