package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/nillion-oss/staking-stats/internal/observability/metrics"
	"github.com/nillion-oss/staking-stats/internal/utils/poller"
)

// StartStatsPoller recalculates the staking stats on the configured interval
// until the context is cancelled. An initial pass runs immediately so the
// daemon publishes data without waiting a full interval.
func (s *Service) StartStatsPoller(ctx context.Context) {
	if err := s.CalculateAndPersistStats(ctx); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Initial staking stats run failed")
	}

	statsPoller := poller.NewPoller(
		s.cfg.Poller.StatsPollingInterval,
		metrics.RecordPollerDuration("stats", s.CalculateAndPersistStats),
	)
	statsPoller.Start(ctx)
}
