package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"joeRoute/internal/chain"
	"joeRoute/internal/config"
	"joeRoute/internal/dex"
	"joeRoute/internal/model"
	"joeRoute/internal/route"
	"joeRoute/internal/storage"
	"joeRoute/internal/storage/postgres"
)

func runQuote(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.RPCURL == "" {
		return fmt.Errorf("rpc url is required")
	}
	if len(cfg.Path) < 2 {
		return fmt.Errorf("path needs at least two token addresses")
	}
	addresses, err := config.ParseAddresses(cfg.Path)
	if err != nil {
		return err
	}
	deployment, err := cfg.Deployment()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	chainClient, err := chain.NewClient(ctx, cfg.RPCURL)
	if err != nil {
		return fmt.Errorf("connect rpc: %w", err)
	}
	defer chainClient.Close()

	metrics, err := dex.NewResolverMetrics(prometheus.NewRegistry())
	if err != nil {
		return err
	}
	resolver, err := dex.NewResolver(deployment, dex.NewAddressCache(), metrics, logger)
	if err != nil {
		return err
	}
	fetcher := dex.NewFetcher(dex.FetcherConfig{
		MaxRetries:   cfg.MaxRetries,
		RetryBackoff: cfg.RetryBackoff,
		ReserveTTL:   cfg.ReserveTTL,
		Concurrency:  cfg.Concurrency,
	}, chainClient, resolver, logger)

	logger.Info("quote start",
		zap.String("rpc", cfg.RPCURL),
		zap.Uint64("chain_id", deployment.ChainID),
		zap.String("factory", deployment.Factory.Hex()),
		zap.Strings("path", cfg.Path),
		zap.String("out", cfg.Out),
		zap.String("pg_dsn", redactDSN(cfg.PGDSN)),
	)

	blockNumber, err := chainClient.LatestBlockNumber(ctx)
	if err != nil {
		return fmt.Errorf("latest block: %w", err)
	}
	tokens, err := fetcher.FetchTokens(ctx, addresses)
	if err != nil {
		return err
	}
	pairs, err := fetcher.FetchPairsAt(ctx, tokens, blockNumber)
	if err != nil {
		return err
	}
	for _, pair := range pairs {
		logger.Info("pair",
			zap.String("address", pair.Address.Hex()),
			zap.String("token0", pair.Token0.Symbol),
			zap.String("token1", pair.Token1.Symbol),
			zap.String("reserve0", pair.Token0.FormatAmount(pair.Reserve0)),
			zap.String("reserve1", pair.Token1.FormatAmount(pair.Reserve1)),
		)
	}

	r, err := route.New(deployment.ChainID, pairs, tokens[0], tokens[len(tokens)-1])
	if err != nil {
		return err
	}
	mid := r.MidPrice()
	fmt.Fprintf(cmd.OutOrStdout(), "1 %s = %s %s\n", symbolOf(mid.Base), mid.ToFixed(cfg.Decimals), symbolOf(mid.Quote))

	quote := r.Quote(blockNumber, cfg.Decimals, time.Now())
	if cfg.Out != "" {
		var sink storage.Storage = storage.NewJsonlStorage(cfg.Out)
		if err := sink.PutQuoteBatch([]model.Quote{quote}); err != nil {
			return err
		}
	}
	if cfg.PGDSN != "" {
		if err := storeQuote(ctx, cfg.PGDSN, pairs, quote); err != nil {
			return err
		}
	}

	hits, misses, err := metrics.Totals()
	if err != nil {
		return err
	}
	logger.Info("quote done",
		zap.Uint64("block", blockNumber),
		zap.Float64("address_cache_hits", hits),
		zap.Float64("address_cache_misses", misses),
		zap.String("numerator", quote.Numerator),
		zap.String("denominator", quote.Denominator),
		zap.String("mid_price", quote.MidPrice),
	)
	return nil
}

func storeQuote(ctx context.Context, dsn string, pairs []model.Pair, quote model.Quote) error {
	store, err := postgres.NewStore(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	if err := store.UpsertPairs(ctx, pairs); err != nil {
		return fmt.Errorf("upsert pairs: %w", err)
	}
	if err := store.InsertQuotes(ctx, []model.Quote{quote}); err != nil {
		return fmt.Errorf("insert quote: %w", err)
	}
	return nil
}

func symbolOf(token model.Token) string {
	if token.Symbol != "" {
		return token.Symbol
	}
	return token.Address.Hex()
}

func redactDSN(dsn string) string {
	if dsn == "" {
		return dsn
	}
	return "***"
}
