package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/nillion-oss/staking-stats/internal/observability/metrics"
	"github.com/nillion-oss/staking-stats/internal/stats"
)

// CalculateAndPersistStats runs one full fetch -> compute -> persist pass.
// Fetch failures are never fatal: each missing reading degrades its own
// metric and the run continues with whatever was obtained. Only a
// persistence failure is reported to the caller.
func (s *Service) CalculateAndPersistStats(ctx context.Context) error {
	logger := log.Ctx(ctx)

	readings := s.fetchReadings(ctx)
	calculated := stats.Compute(ctx, readings, s.cfg.Chain.DisplayExponent)

	metrics.RecordCalculatedStats(
		calculated.CalculatedAprPercentage,
		calculated.TotalStakedNil,
		calculated.ActiveValidatorCount,
	)

	outcome, err := s.store.Persist(ctx, calculated)
	if err != nil {
		metrics.RecordPersistOutcome("failed")
		return fmt.Errorf("failed to persist staking stats: %w", err)
	}
	metrics.RecordPersistOutcome(string(outcome))

	logger.Info().
		Str("outcome", string(outcome)).
		Interface("stats", calculated).
		Msg("Staking stats run completed")

	return nil
}

// fetchReadings queries the four REST endpoints sequentially. Each failure
// is logged and isolated: it leaves that single reading absent and never
// blocks the remaining fetches.
func (s *Service) fetchReadings(ctx context.Context) stats.RawReadings {
	logger := log.Ctx(ctx)

	var readings stats.RawReadings

	if inflation, err := s.chain.GetInflation(ctx); err != nil {
		logger.Error().Err(err).Msg("Failed to fetch inflation rate")
	} else {
		readings.InflationRate = &inflation
	}

	if bonded, err := s.chain.GetBondedTokens(ctx); err != nil {
		logger.Error().Err(err).Msg("Failed to fetch staking pool")
	} else {
		readings.BondedTokens = &bonded
	}

	if supply, err := s.chain.GetTotalSupply(ctx); err != nil {
		logger.Error().Err(err).Msg("Failed to fetch total supply")
	} else {
		readings.TotalSupply = &supply
	}

	if count, err := s.chain.GetBondedValidatorCount(ctx); err != nil {
		logger.Error().Err(err).Msg("Failed to fetch bonded validator count")
	} else {
		readings.ValidatorCount = &count
	}

	return readings
}
