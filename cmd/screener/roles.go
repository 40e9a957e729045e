package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"swapScope/internal/chain"
	"swapScope/internal/config"
	"swapScope/internal/dex"
	"swapScope/internal/screener"
)

func runRoles(cmd *cobra.Command, _ []string) error {
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

	if cfg.RPCURL == "" {
		return fmt.Errorf("rpc url is required")
	}

	pools := cfg.Pools()
	if err := screener.ValidatePools(pools); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	chainClient, err := chain.NewClient(ctx, cfg.RPCURL, cfg.RPCHeaders)
	if err != nil {
		return err
	}
	defer chainClient.Close()

	failed := 0
	for _, pool := range pools {
		role, err := dex.ResolveTokenRole(ctx, chainClient, pool)
		if err != nil {
			logger.Error("role resolution failed", zap.String("pair", pool.Label), zap.Error(err))
			failed++
			continue
		}

		fields := []zap.Field{
			zap.String("pair", pool.Label),
			zap.String("pool", pool.PoolAddress),
			zap.Bool("alt_is_token0", role.AltIsToken0),
			zap.String("token0", role.Token0),
			zap.String("token1", role.Token1),
		}

		if alt, err := dex.FetchTokenDisplay(ctx, chainClient, pool.AltTokenAddress); err == nil {
			fields = append(fields,
				zap.String("alt_symbol", alt.Symbol),
				zap.Uint8("alt_decimals", alt.Decimals))
		} else {
			logger.Warn("alt token metadata unavailable", zap.String("pair", pool.Label), zap.Error(err))
		}

		if quote, err := dex.FetchTokenDisplay(ctx, chainClient, role.QuoteSlotAddress()); err == nil {
			fields = append(fields,
				zap.String("quote_symbol", quote.Symbol),
				zap.Uint8("quote_decimals", quote.Decimals))
		} else {
			logger.Warn("quote token metadata unavailable", zap.String("pair", pool.Label), zap.Error(err))
		}

		logger.Info("pair resolved", fields...)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d pairs failed", failed, len(pools))
	}
	return nil
}
