package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nillion-oss/staking-stats/internal/config"
	"github.com/nillion-oss/staking-stats/internal/types"
	"github.com/nillion-oss/staking-stats/testutil"
)

func ptr[T any](v T) *T {
	return &v
}

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(&config.OutputConfig{
		Path: filepath.Join(t.TempDir(), "public", "data", "staking_stats.json"),
	})
}

func sampleStats(t *testing.T) *types.StakingStats {
	t.Helper()

	bonded, err := testutil.RandomIntString(20)
	require.NoError(t, err)
	supply, err := testutil.RandomIntString(21)
	require.NoError(t, err)

	return &types.StakingStats{
		CalculatedAprPercentage: ptr(26.0),
		TotalStakedNil:          ptr(500000.0),
		ActiveValidatorCount:    ptr(int64(42)),
		RawInflationRate:        ptr("0.130000000000000000"),
		RawTotalSupplyUnil:      &supply,
		RawBondedTokensUnil:     &bonded,
	}
}

func readStatsFile(t *testing.T, path string) types.StakingStats {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc types.StakingStats
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc
}

func TestFileStore_FirstRunAlwaysWrites(t *testing.T) {
	ctx := context.Background()

	t.Run("with computed values", func(t *testing.T) {
		store := newTestStore(t)

		outcome, err := store.Persist(ctx, sampleStats(t))
		require.NoError(t, err)
		assert.Equal(t, OutcomeWritten, outcome)

		doc := readStatsFile(t, store.path)
		assert.NotEmpty(t, doc.LastUpdatedUTC)
	})

	t.Run("with an all-null document", func(t *testing.T) {
		store := newTestStore(t)

		outcome, err := store.Persist(ctx, &types.StakingStats{})
		require.NoError(t, err)
		assert.Equal(t, OutcomeWritten, outcome)
	})

	t.Run("creates parent directories", func(t *testing.T) {
		store := newTestStore(t)

		_, err := store.Persist(ctx, sampleStats(t))
		require.NoError(t, err)

		_, err = os.Stat(filepath.Dir(store.path))
		require.NoError(t, err)
	})
}

func TestFileStore_SkipsWhenUnchanged(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	first := sampleStats(t)
	outcome, err := store.Persist(ctx, first)
	require.NoError(t, err)
	require.Equal(t, OutcomeWritten, outcome)

	written := readStatsFile(t, store.path)

	// Same metric values on a later run with a drifted clock must not
	// rewrite the file.
	store.now = func() time.Time {
		return time.Now().Add(48 * time.Hour)
	}
	second := sampleStats(t)
	second.RawTotalSupplyUnil = first.RawTotalSupplyUnil
	second.RawBondedTokensUnil = first.RawBondedTokensUnil

	outcome, err = store.Persist(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, outcome)

	after := readStatsFile(t, store.path)
	assert.Equal(t, written.LastUpdatedUTC, after.LastUpdatedUTC)
	assert.Empty(t, second.LastUpdatedUTC, "skipped documents must not be stamped")
}

func TestFileStore_WritesOnAnyFieldChange(t *testing.T) {
	ctx := context.Background()

	mutations := map[string]func(*types.StakingStats){
		"apr changed":             func(s *types.StakingStats) { s.CalculatedAprPercentage = ptr(27.5) },
		"validator count changed": func(s *types.StakingStats) { s.ActiveValidatorCount = ptr(int64(43)) },
		"metric became absent":    func(s *types.StakingStats) { s.CalculatedAprPercentage = nil },
		"raw inflation changed":   func(s *types.StakingStats) { s.RawInflationRate = ptr("0.131000000000000000") },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			store := newTestStore(t)

			first := sampleStats(t)
			_, err := store.Persist(ctx, first)
			require.NoError(t, err)

			second := *first
			second.LastUpdatedUTC = ""
			mutate(&second)

			outcome, err := store.Persist(ctx, &second)
			require.NoError(t, err)
			assert.Equal(t, OutcomeWritten, outcome)

			doc := readStatsFile(t, store.path)
			assert.True(t, second.Equal(&doc))
		})
	}
}

func TestFileStore_CorruptPriorFileTriggersWrite(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, os.MkdirAll(filepath.Dir(store.path), 0o755))
	require.NoError(t, os.WriteFile(store.path, []byte("{not json"), 0o644))

	outcome, err := store.Persist(ctx, sampleStats(t))
	require.NoError(t, err)
	assert.Equal(t, OutcomeWritten, outcome)
}

func TestFileStore_PersistedShape(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	store.now = func() time.Time {
		return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	}

	stats := sampleStats(t)
	stats.ActiveValidatorCount = nil

	_, err := store.Persist(ctx, stats)
	require.NoError(t, err)

	data, err := os.ReadFile(store.path)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	// fixed top-level key set, including explicit nulls for absent metrics
	for _, key := range []string{
		"calculated_apr_percentage",
		"total_staked_nil",
		"active_validator_count",
		"raw_inflation_rate",
		"raw_total_supply_unil",
		"raw_bonded_tokens_unil",
		"last_updated_utc",
	} {
		assert.Contains(t, raw, key)
	}
	assert.Nil(t, raw["active_validator_count"])
	assert.Equal(t, "2024-06-01T12:00:00Z", raw["last_updated_utc"])
	assert.Contains(t, string(data), "\n  \"", "document is written with two-space indentation")
}

func TestFileStore_RandomizedRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	var doc types.StakingStats
	require.NoError(t, gofakeit.Struct(&doc))

	outcome, err := store.Persist(ctx, &doc)
	require.NoError(t, err)
	require.Equal(t, OutcomeWritten, outcome)

	outcome, err = store.Persist(ctx, &doc)
	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, outcome)
}
