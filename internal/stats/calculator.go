// Package stats derives the staking economics metrics from raw chain
// readings. All arithmetic runs on cosmossdk.io/math decimals: on-chain
// integer amounts routinely exceed the float64 safe-integer range, so values
// are only converted to float64 at the output boundary.
package stats

import (
	"context"

	sdkmath "cosmossdk.io/math"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nillion-oss/staking-stats/internal/types"
)

const aprDecimalPlaces = 4

// RawReadings are the chain values a run managed to fetch. A nil field means
// the corresponding fetch failed; the derived metrics depending on it stay
// unset.
type RawReadings struct {
	InflationRate  *string
	BondedTokens   *string
	TotalSupply    *string
	ValidatorCount *int64
}

// Compute derives staking stats from whatever readings are present. It never
// fails outright: a malformed value degrades its own metric (and the APR, if
// the value is one of its prerequisites) without touching sibling metrics.
// The returned document carries no timestamp; the store stamps it on write.
func Compute(ctx context.Context, readings RawReadings, displayExponent int) *types.StakingStats {
	logger := log.Ctx(ctx)
	result := &types.StakingStats{
		ActiveValidatorCount: readings.ValidatorCount,
	}

	var (
		inflation   sdkmath.LegacyDec
		bonded      sdkmath.Int
		supply      sdkmath.Int
		inflationOK bool
		bondedOK    bool
		supplyOK    bool
	)

	if readings.InflationRate != nil {
		dec, err := sdkmath.LegacyNewDecFromStr(*readings.InflationRate)
		if err != nil {
			logger.Warn().Err(err).
				Str("inflation_rate", *readings.InflationRate).
				Msg("Failed to parse inflation rate")
		} else {
			inflation, inflationOK = dec, true
			result.RawInflationRate = readings.InflationRate
		}
	}

	if readings.BondedTokens != nil {
		v, ok := sdkmath.NewIntFromString(*readings.BondedTokens)
		if !ok {
			logger.Warn().
				Str("bonded_tokens", *readings.BondedTokens).
				Msg("Failed to parse bonded tokens")
		} else {
			bonded, bondedOK = v, true
			result.RawBondedTokensUnil = readings.BondedTokens
			result.TotalStakedNil = totalStaked(logger, bonded, displayExponent)
		}
	}

	if readings.TotalSupply != nil {
		v, ok := sdkmath.NewIntFromString(*readings.TotalSupply)
		if !ok {
			logger.Warn().
				Str("total_supply", *readings.TotalSupply).
				Msg("Failed to parse total supply")
		} else {
			supply, supplyOK = v, true
			result.RawTotalSupplyUnil = readings.TotalSupply
		}
	}

	if inflationOK && bondedOK && supplyOK {
		result.CalculatedAprPercentage = aprPercentage(logger, inflation, supply, bonded)
	} else {
		logger.Info().Msg("Skipping APR calculation due to missing prerequisite data")
	}

	return result
}

// totalStaked converts the bonded amount from the base denomination to the
// display unit (bonded / 10^displayExponent).
func totalStaked(logger *zerolog.Logger, bonded sdkmath.Int, displayExponent int) (staked *float64) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn().Interface("panic", r).Msg("Failed to compute total staked")
			staked = nil
		}
	}()

	scale := sdkmath.NewIntWithDecimal(1, displayExponent)
	v, err := sdkmath.LegacyNewDecFromInt(bonded).QuoInt(scale).Float64()
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to compute total staked")
		return nil
	}

	return &v
}

// aprPercentage computes (inflation * supply / bonded) * 100 rounded to four
// decimal places. The community tax is intentionally not subtracted; the
// published figure is the gross inflation yield.
func aprPercentage(logger *zerolog.Logger, inflation sdkmath.LegacyDec, supply, bonded sdkmath.Int) (apr *float64) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn().Interface("panic", r).Msg("Failed to compute APR")
			apr = nil
		}
	}()

	if bonded.IsZero() {
		logger.Warn().Msg("Bonded tokens is zero, reporting APR as zero")
		zero := 0.0
		return &zero
	}

	pct := inflation.MulInt(supply).MulInt64(100).QuoInt(bonded)
	rounded := pct.MulInt64(10_000).RoundInt()
	v, err := sdkmath.LegacyNewDecFromIntWithPrec(rounded, aprDecimalPlaces).Float64()
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to compute APR")
		return nil
	}

	return &v
}
