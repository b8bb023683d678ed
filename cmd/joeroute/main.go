package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"joeRoute/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "joeroute",
		Short:        "Trader Joe pair addresses and route mid prices",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	addressCmd := &cobra.Command{
		Use:   "address <tokenA> <tokenB>",
		Short: "Derive the pair address of two tokens without touching the network",
		Args:  cobra.ExactArgs(2),
		RunE:  runAddress,
	}
	addDeploymentFlags(addressCmd)
	addressCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(addressCmd)

	quoteCmd := &cobra.Command{
		Use:   "quote",
		Short: "Fetch reserves along a token path and print the route mid price",
		RunE:  runQuote,
	}
	addDeploymentFlags(quoteCmd)
	quoteCmd.Flags().String("rpc", "", "Avalanche C-Chain RPC URL")
	quoteCmd.Flags().StringSlice("path", nil, "token addresses from input to output (comma-separated)")
	quoteCmd.Flags().String("out", "", "optional JSONL file to append the quote to")
	quoteCmd.Flags().String("pg-dsn", "", "optional Postgres DSN to store pairs and the quote")
	quoteCmd.Flags().Duration("reserve-ttl", 15*time.Second, "reuse fetched reserves for this long, 0 disables")
	quoteCmd.Flags().Int("max-retries", 3, "maximum retry attempts per RPC call")
	quoteCmd.Flags().Duration("retry-backoff", 250*time.Millisecond, "initial retry backoff")
	quoteCmd.Flags().Int("concurrency", 4, "parallel RPC calls")
	quoteCmd.Flags().Int("decimals", 6, "digits after the decimal point in the printed price")
	quoteCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(quoteCmd)

	return root
}

func addDeploymentFlags(cmd *cobra.Command) {
	cmd.Flags().Uint64("chain-id", config.DefaultChainID, "chain id of the factory deployment")
	cmd.Flags().String("factory", config.DefaultFactory, "pair factory address")
	cmd.Flags().String("init-code-hash", config.DefaultInitCodeHash, "pair init code hash")
}

func loadConfig(cmd *cobra.Command) (config.Config, *zap.Logger, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return config.Config{}, nil, err
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger, nil
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
