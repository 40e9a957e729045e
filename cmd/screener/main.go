package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"swapScope/internal/chain"
	"swapScope/internal/config"
	"swapScope/internal/dex"
	"swapScope/internal/screener"
	"swapScope/internal/storage"
	"swapScope/internal/storage/postgres"
)

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:          "screener",
		Short:        "DEX swap screener",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Screen the recent swap history of the configured pools",
		RunE:  runScreener,
	}

	runCmd.Flags().String("rpc", "", "Ethereum JSON-RPC URL")
	runCmd.Flags().String("rpc-headers", "", "extra HTTP headers (comma-separated key=value)")
	runCmd.Flags().String("pool-address", "", "pool address for an ad-hoc single pair")
	runCmd.Flags().String("alt-token", "", "alt token address for the ad-hoc pair")
	runCmd.Flags().String("quote-token", "", "quote token address for the ad-hoc pair")
	runCmd.Flags().String("pair-label", "", "label for the ad-hoc pair")
	runCmd.Flags().Int("hours", 5, "lookback window in hours")
	runCmd.Flags().Uint64("blocks-per-hour", 1800, "blocks per hour bucket")
	runCmd.Flags().Duration("chunk-delay", 500*time.Millisecond, "pause between chunk fetches")
	runCmd.Flags().Int("max-retries", 5, "maximum retry attempts")
	runCmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	runCmd.Flags().String("out-dir", "./data", "output directory for CSV tables")
	runCmd.Flags().Bool("dump-raw", false, "dump raw logs and decode errors as JSONL")
	runCmd.Flags().String("pg-dsn", "", "optional Postgres DSN to mirror the tables")
	runCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(runCmd)

	rolesCmd := &cobra.Command{
		Use:   "roles",
		Short: "Resolve and print the token roles of the configured pools",
		RunE:  runRoles,
	}

	rolesCmd.Flags().String("rpc", "", "Ethereum JSON-RPC URL")
	rolesCmd.Flags().String("rpc-headers", "", "extra HTTP headers (comma-separated key=value)")
	rolesCmd.Flags().String("pool-address", "", "pool address for an ad-hoc single pair")
	rolesCmd.Flags().String("alt-token", "", "alt token address for the ad-hoc pair")
	rolesCmd.Flags().String("quote-token", "", "quote token address for the ad-hoc pair")
	rolesCmd.Flags().String("pair-label", "", "label for the ad-hoc pair")
	rolesCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(rolesCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runScreener(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	chainClient, err := chain.NewClient(ctx, cfg.RPCURL, cfg.RPCHeaders)
	if err != nil {
		return err
	}
	defer chainClient.Close()

	decoder, err := dex.NewSwapDecoder()
	if err != nil {
		return err
	}

	sinks := []storage.Sink{storage.NewCSVSink(cfg.OutDir)}
	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return err
		}
		if err := store.InitSchema(ctx); err != nil {
			store.Close()
			return err
		}
		sinks = append(sinks, store)
	}
	defer func() {
		for _, sink := range sinks {
			if err := sink.Close(); err != nil {
				logger.Warn("sink close failed", zap.Error(err))
			}
		}
	}()

	var dump *storage.JSONLDump
	if cfg.DumpRaw {
		dump = storage.NewJSONLDump(cfg.OutDir)
	}

	runner := screener.NewRunner(screener.RunConfig{
		Pools:         cfg.Pools(),
		Hours:         cfg.Hours,
		BlocksPerHour: cfg.BlocksPerHour,
		ChunkDelay:    cfg.ChunkDelay,
		MaxRetries:    cfg.MaxRetries,
		RetryBackoff:  cfg.RetryBackoff,
	}, chainClient, decoder, sinks, dump, logger)

	logger.Info("screener start",
		zap.String("rpc", cfg.RPCURL),
		zap.Int("pairs", len(cfg.Pairs)),
		zap.Int("hours", cfg.Hours),
		zap.Uint64("blocks_per_hour", cfg.BlocksPerHour),
		zap.String("out_dir", cfg.OutDir),
		zap.Bool("dump_raw", cfg.DumpRaw),
		zap.Bool("postgres", cfg.PGDSN != ""),
	)

	return runner.Run(ctx)
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
