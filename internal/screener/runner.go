package screener

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"swapScope/internal/aggregate"
	"swapScope/internal/chain"
	"swapScope/internal/dex"
	"swapScope/internal/model"
	"swapScope/internal/storage"
)

// RunConfig holds runtime settings for one screener run.
type RunConfig struct {
	Pools         []model.PoolIdentity
	Hours         int
	BlocksPerHour uint64
	ChunkDelay    time.Duration
	MaxRetries    int
	RetryBackoff  time.Duration
}

// Runner fetches the lookback window for each configured pool, decodes its
// swaps and writes per-pool trade and summary tables.
type Runner struct {
	cfg     RunConfig
	chain   *chain.Client
	decoder *dex.SwapDecoder
	sinks   []storage.Sink
	dump    *storage.JSONLDump
	logger  *zap.Logger
	seen    map[string]struct{}
}

// NewRunner builds a Runner with its dependencies. The dump sink is
// optional.
func NewRunner(cfg RunConfig, chainClient *chain.Client, decoder *dex.SwapDecoder, sinks []storage.Sink, dump *storage.JSONLDump, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		cfg:     cfg,
		chain:   chainClient,
		decoder: decoder,
		sinks:   sinks,
		dump:    dump,
		logger:  logger,
		seen:    make(map[string]struct{}),
	}
}

// Run screens every configured pool. A pool that fails is logged and
// skipped so the remaining pools still produce output; the run only errors
// when no pool succeeds.
func (r *Runner) Run(ctx context.Context) error {
	if r.chain == nil {
		return fmt.Errorf("chain client is nil")
	}
	if r.decoder == nil {
		return fmt.Errorf("decoder is nil")
	}
	if len(r.sinks) == 0 {
		return fmt.Errorf("at least one sink is required")
	}
	if r.cfg.BlocksPerHour == 0 {
		return fmt.Errorf("blocks per hour must be greater than zero")
	}
	if r.cfg.Hours <= 0 {
		return fmt.Errorf("hour count must be greater than zero")
	}
	if err := ValidatePools(r.cfg.Pools); err != nil {
		return err
	}

	chainID, err := r.chain.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("get chain id: %w", err)
	}
	r.logger.Info("connected", zap.String("chain_id", chainID.String()), zap.Int("pools", len(r.cfg.Pools)))

	failed := 0
	for _, pool := range r.cfg.Pools {
		if err := r.runPool(ctx, pool); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			r.logger.Error("pool failed", zap.String("pair", pool.Label), zap.Error(err))
			failed++
		}
	}

	if failed == len(r.cfg.Pools) {
		return fmt.Errorf("all %d pools failed", failed)
	}
	return nil
}

func (r *Runner) runPool(ctx context.Context, pool model.PoolIdentity) error {
	logger := r.logger.With(zap.String("pair", pool.Label))

	role, err := dex.ResolveTokenRole(ctx, r.chain, pool)
	if err != nil {
		return fmt.Errorf("resolve token role: %w", err)
	}
	logger.Info("token role resolved",
		zap.Bool("alt_is_token0", role.AltIsToken0),
		zap.String("quote_slot", role.QuoteSlotAddress()))

	latest, err := r.chain.LatestBlockNumber(ctx)
	if err != nil {
		return fmt.Errorf("get latest block: %w", err)
	}

	chunks, err := HourChunks(latest, r.cfg.BlocksPerHour, r.cfg.Hours)
	if err != nil {
		return err
	}
	logger.Info("window planned", zap.Uint64("latest", latest), zap.Int("chunks", len(chunks)))

	addresses := []common.Address{common.HexToAddress(pool.PoolAddress)}
	topics := []common.Hash{r.decoder.Topic()}

	var (
		swaps        []model.SwapRecord
		decodeErrors []model.DecodeErrorRecord
		fetched      int
		duplicates   int
		ignored      int
		skipped      int
		failedChunks int
	)

	for i, chunk := range chunks {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if i > 0 {
			if err := chunkPause(ctx, r.cfg.ChunkDelay); err != nil {
				return err
			}
		}

		logs, err := r.filterLogsWithRetry(ctx, chunk.From, chunk.To, addresses, topics)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Warn("chunk failed",
				zap.Int("hour_index", chunk.HourIndex),
				zap.Uint64("from", chunk.From),
				zap.Uint64("to", chunk.To),
				zap.Error(err))
			failedChunks++
			continue
		}
		fetched += len(logs)

		rawRecords := make([]model.RawLogRecord, 0, len(logs))
		for _, log := range logs {
			if r.isDuplicate(log.BlockNumber, log.TxHash.Hex(), uint64(log.Index)) {
				duplicates++
				continue
			}

			record := rawRecordFromLog(log)
			rawRecords = append(rawRecords, record)

			swap, err := r.decoder.Decode(record, role, chunk.HourIndex)
			if err != nil {
				skipped++
				decodeErrors = append(decodeErrors, decodeErrorRecord(pool.Label, record, chunk.HourIndex, err))
				logger.Warn("decode failed",
					zap.Uint64("block_number", record.BlockNumber),
					zap.String("tx_hash", record.TxHash),
					zap.Error(err))
				continue
			}
			if swap == nil {
				ignored++
				continue
			}
			swaps = append(swaps, *swap)
		}

		if r.dump != nil && len(rawRecords) > 0 {
			if err := r.dump.AppendRawLogs(pool.Label, rawRecords); err != nil {
				return fmt.Errorf("dump raw logs: %w", err)
			}
		}

		logger.Info("chunk complete",
			zap.Int("hour_index", chunk.HourIndex),
			zap.Uint64("from", chunk.From),
			zap.Uint64("to", chunk.To),
			zap.Int("logs", len(logs)))
	}

	if len(chunks) > 0 && failedChunks == len(chunks) {
		return fmt.Errorf("all %d chunks failed", failedChunks)
	}

	if r.dump != nil && len(decodeErrors) > 0 {
		if err := r.dump.AppendDecodeErrors(pool.Label, decodeErrors); err != nil {
			return fmt.Errorf("dump decode errors: %w", err)
		}
	}

	rows := aggregate.SortedRows(aggregate.Collect(swaps))
	for _, sink := range r.sinks {
		if err := sink.WriteTrades(ctx, pool.Label, swaps); err != nil {
			return fmt.Errorf("write trades: %w", err)
		}
		if err := sink.WriteSummary(ctx, pool.Label, rows); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}

	logger.Info("pool complete",
		zap.Int("chunks", len(chunks)),
		zap.Int("failed_chunks", failedChunks),
		zap.Int("logs", fetched),
		zap.Int("swaps", len(swaps)),
		zap.Int("decode_errors", skipped),
		zap.Int("foreign_logs", ignored),
		zap.Int("duplicates", duplicates),
		zap.Int("summary_rows", len(rows)))
	return nil
}

func (r *Runner) filterLogsWithRetry(ctx context.Context, fromBlock, toBlock uint64, addresses []common.Address, topics []common.Hash) ([]types.Log, error) {
	var logs []types.Log
	err := withRetry(ctx, r.cfg.MaxRetries, r.cfg.RetryBackoff, func(ctx context.Context) error {
		var err error
		logs, err = r.chain.FilterLogs(ctx, fromBlock, toBlock, addresses, topics)
		if err != nil {
			r.logger.Warn("filter logs failed", zap.Error(err), zap.Uint64("from", fromBlock), zap.Uint64("to", toBlock))
		}
		return err
	})
	return logs, err
}

func (r *Runner) isDuplicate(blockNumber uint64, txHash string, logIndex uint64) bool {
	id := fmt.Sprintf("%d:%s:%d", blockNumber, txHash, logIndex)
	if _, ok := r.seen[id]; ok {
		return true
	}
	r.seen[id] = struct{}{}
	return false
}

func chunkPause(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
