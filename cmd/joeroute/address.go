package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"joeRoute/internal/config"
	"joeRoute/internal/dex"
	"joeRoute/internal/model"
)

func runAddress(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	addresses, err := config.ParseAddresses(args)
	if err != nil {
		return err
	}
	if len(addresses) != 2 {
		return fmt.Errorf("%w: expected two token addresses, got %d", model.ErrInvalidInput, len(addresses))
	}
	deployment, err := cfg.Deployment()
	if err != nil {
		return err
	}

	resolver, err := dex.NewResolver(deployment, dex.NewAddressCache(), nil, logger)
	if err != nil {
		return err
	}

	tokenA := model.Token{Address: addresses[0], ChainID: deployment.ChainID}
	tokenB := model.Token{Address: addresses[1], ChainID: deployment.ChainID}
	pair, err := resolver.Resolve(cmd.Context(), tokenA, tokenB)
	if err != nil {
		return err
	}

	logger.Debug("pair address derived",
		zap.Uint64("chain_id", deployment.ChainID),
		zap.String("token_a", tokenA.Address.Hex()),
		zap.String("token_b", tokenB.Address.Hex()),
		zap.String("pair", pair.Hex()),
	)
	fmt.Fprintln(cmd.OutOrStdout(), pair.Hex())
	return nil
}
