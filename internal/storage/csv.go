package storage

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"swapScope/internal/model"
)

// CSVSink writes one trades file and one summary file per pool into a
// directory. Files are replaced on every run.
type CSVSink struct {
	dir string
}

func NewCSVSink(dir string) *CSVSink {
	return &CSVSink{dir: dir}
}

// WriteTrades renders the per-swap table. A pool without swaps still gets
// a header-only file.
func (s *CSVSink) WriteTrades(ctx context.Context, pair string, records []model.SwapRecord) error {
	var b strings.Builder
	b.WriteString("tx_hash,amount0,amount1,price,trade_type,hour_index\n")
	for _, record := range records {
		b.WriteString(record.TxHash)
		b.WriteByte(',')
		b.WriteString(record.Amount0.String())
		b.WriteByte(',')
		b.WriteString(record.Amount1.String())
		b.WriteByte(',')
		b.WriteString(FormatPrice(record.Price))
		b.WriteByte(',')
		b.WriteString(string(record.TradeType))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(record.HourIndex))
		b.WriteByte('\n')
	}

	return s.writeFile(pairFileName(pair)+"_trades.csv", b.String())
}

// WriteSummary renders the hourly aggregate table.
func (s *CSVSink) WriteSummary(ctx context.Context, pair string, rows []model.SummaryRow) error {
	var b strings.Builder
	b.WriteString("hour_index,trade_type,count,avg_price,total_volume\n")
	for _, row := range rows {
		b.WriteString(strconv.Itoa(row.HourIndex))
		b.WriteByte(',')
		b.WriteString(string(row.TradeType))
		b.WriteByte(',')
		b.WriteString(strconv.FormatUint(row.Count, 10))
		b.WriteByte(',')
		b.WriteString(FormatPrice(row.AvgPrice))
		b.WriteByte(',')
		b.WriteString(row.TotalVolume.String())
		b.WriteByte('\n')
	}

	return s.writeFile(pairFileName(pair)+"_summary.csv", b.String())
}

func (s *CSVSink) Close() error {
	return nil
}

func (s *CSVSink) writeFile(name, content string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// FormatPrice renders an exact rational price as the shortest float64
// string that round-trips.
func FormatPrice(price *big.Rat) string {
	if price == nil {
		return "0"
	}
	f, _ := price.Float64()
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func pairFileName(pair string) string {
	return strings.ReplaceAll(pair, "/", "-")
}
