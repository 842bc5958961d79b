package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/nillion-oss/staking-stats/internal/clients/chainclient"
	"github.com/nillion-oss/staking-stats/internal/config"
	"github.com/nillion-oss/staking-stats/internal/observability/metrics"
	"github.com/nillion-oss/staking-stats/internal/observability/tracing"
	"github.com/nillion-oss/staking-stats/internal/services"
	"github.com/nillion-oss/staking-stats/internal/storage"
)

func StartDaemonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start-daemon",
		Short: "Recalculates staking stats periodically and serves Prometheus metrics",
		Args:  cobra.ExactArgs(0),
		RunE:  startDaemon,
	}

	return cmd
}

func startDaemon(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx = tracing.InjectTraceID(ctx)
	log := log.Ctx(ctx)

	cfgPath := GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg(fmt.Sprintf("error while loading config file: %s", cfgPath))
	}

	metrics.Init(cfg.Metrics.Address())

	chainClient := chainclient.NewChainClientWithMetrics(chainclient.NewChainClient(&cfg.Chain))
	store := storage.NewFileStore(&cfg.Output)
	service := services.NewService(cfg, chainClient, store)

	// Blocks until SIGINT/SIGTERM.
	service.StartStatsPoller(ctx)
	return nil
}
