package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"swapScope/internal/model"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS swap_trades (
	pair TEXT NOT NULL,
	block_number BIGINT NOT NULL,
	tx_hash TEXT NOT NULL,
	log_index BIGINT NOT NULL,
	sender TEXT NOT NULL,
	recipient TEXT NOT NULL,
	amount0 NUMERIC NOT NULL,
	amount1 NUMERIC NOT NULL,
	sqrt_price_x96 NUMERIC NOT NULL,
	price DOUBLE PRECISION NOT NULL,
	trade_type TEXT NOT NULL,
	alt_amount NUMERIC NOT NULL,
	hour_index INT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (pair, tx_hash, log_index)
);

CREATE TABLE IF NOT EXISTS hourly_stats (
	pair TEXT NOT NULL,
	hour_index INT NOT NULL,
	trade_type TEXT NOT NULL,
	swap_count BIGINT NOT NULL,
	avg_price DOUBLE PRECISION NOT NULL,
	total_volume NUMERIC NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (pair, hour_index, trade_type)
);
`

// Store mirrors the file sinks into Postgres.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

// InitSchema creates the trade and stats tables if they do not exist.
func (s *Store) InitSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, schemaSQL)
	return err
}

// WriteTrades upserts decoded swaps keyed by (pair, tx_hash, log_index).
func (s *Store) WriteTrades(ctx context.Context, pair string, records []model.SwapRecord) error {
	if len(records) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, record := range records {
		price, _ := record.Price.Float64()
		batch.Queue(`
			INSERT INTO swap_trades (
				pair, block_number, tx_hash, log_index, sender, recipient,
				amount0, amount1, sqrt_price_x96, price, trade_type, alt_amount, hour_index,
				created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,now(),now())
			ON CONFLICT (pair, tx_hash, log_index)
			DO UPDATE SET
				block_number = EXCLUDED.block_number,
				sender = EXCLUDED.sender,
				recipient = EXCLUDED.recipient,
				amount0 = EXCLUDED.amount0,
				amount1 = EXCLUDED.amount1,
				sqrt_price_x96 = EXCLUDED.sqrt_price_x96,
				price = EXCLUDED.price,
				trade_type = EXCLUDED.trade_type,
				alt_amount = EXCLUDED.alt_amount,
				hour_index = EXCLUDED.hour_index,
				updated_at = now()
		`,
			pair,
			int64(record.BlockNumber),
			record.TxHash,
			int64(record.LogIndex),
			record.Sender,
			record.Recipient,
			record.Amount0.String(),
			record.Amount1.String(),
			record.SqrtPriceX96.String(),
			price,
			string(record.TradeType),
			record.AltAmount.String(),
			record.HourIndex,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range records {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// WriteSummary upserts hourly aggregates keyed by (pair, hour_index, trade_type).
func (s *Store) WriteSummary(ctx context.Context, pair string, rows []model.SummaryRow) error {
	if len(rows) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, row := range rows {
		avgPrice, _ := row.AvgPrice.Float64()
		batch.Queue(`
			INSERT INTO hourly_stats (
				pair, hour_index, trade_type, swap_count, avg_price, total_volume, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,now())
			ON CONFLICT (pair, hour_index, trade_type)
			DO UPDATE SET
				swap_count = EXCLUDED.swap_count,
				avg_price = EXCLUDED.avg_price,
				total_volume = EXCLUDED.total_volume,
				updated_at = now()
		`,
			pair,
			row.HourIndex,
			string(row.TradeType),
			int64(row.Count),
			avgPrice,
			row.TotalVolume.String(),
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range rows {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}
