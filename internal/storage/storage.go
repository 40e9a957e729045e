package storage

import (
	"context"

	"swapScope/internal/model"
)

// Sink receives the per-pool trade list and hourly summary table.
type Sink interface {
	WriteTrades(ctx context.Context, pair string, records []model.SwapRecord) error
	WriteSummary(ctx context.Context, pair string, rows []model.SummaryRow) error
	Close() error
}
