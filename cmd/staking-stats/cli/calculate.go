package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/nillion-oss/staking-stats/internal/clients/chainclient"
	"github.com/nillion-oss/staking-stats/internal/config"
	"github.com/nillion-oss/staking-stats/internal/observability/metrics"
	"github.com/nillion-oss/staking-stats/internal/observability/tracing"
	"github.com/nillion-oss/staking-stats/internal/services"
	"github.com/nillion-oss/staking-stats/internal/storage"
)

func CalculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Runs a single fetch, calculate and persist pass",
		Args:  cobra.ExactArgs(0),
		RunE:  calculate,
	}

	return cmd
}

func calculate(cmd *cobra.Command, args []string) error {
	ctx := tracing.InjectTraceID(cmd.Context())
	log := log.Ctx(ctx)

	cfgPath := GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg(fmt.Sprintf("error while loading config file: %s", cfgPath))
	}

	metrics.RegisterCollectors()

	chainClient := chainclient.NewChainClientWithMetrics(chainclient.NewChainClient(&cfg.Chain))
	store := storage.NewFileStore(&cfg.Output)
	service := services.NewService(cfg, chainClient, store)

	// Degraded output is an accepted outcome: the run always exits zero,
	// surfacing failures through the log only.
	if err := service.CalculateAndPersistStats(ctx); err != nil {
		log.Error().Err(err).Msg("Staking stats run completed with errors")
	}

	return nil
}
