// Package storage persists the staking stats document as a single JSON file,
// rewriting it only when the calculated values actually changed. The file is
// best-effort telemetry consumed by the website build, not a system of
// record: there is no locking and no crash-consistency guarantee, reflecting
// the assumption of single-writer, non-overlapping runs.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nillion-oss/staking-stats/internal/config"
	"github.com/nillion-oss/staking-stats/internal/types"
)

// Outcome reports what Persist did with the document.
type Outcome string

const (
	OutcomeWritten Outcome = "written"
	OutcomeSkipped Outcome = "skipped"
)

type StatsStore interface {
	Persist(ctx context.Context, stats *types.StakingStats) (Outcome, error)
}

type FileStore struct {
	path string
	now  func() time.Time
}

func NewFileStore(cfg *config.OutputConfig) *FileStore {
	return &FileStore{
		path: cfg.Path,
		now:  time.Now,
	}
}

// Persist writes the document to the store path unless the previously
// persisted document carries the same metric values. A missing or
// undecodable prior file counts as "no prior data" and always triggers a
// write. The timestamp is stamped here, after the comparison, so that clock
// drift alone never forces a write.
func (s *FileStore) Persist(ctx context.Context, stats *types.StakingStats) (Outcome, error) {
	logger := log.Ctx(ctx)

	prior, err := s.loadPrior(ctx)
	if err != nil {
		return "", err
	}

	if prior != nil && stats.Equal(prior) {
		logger.Info().Str("path", s.path).Msg("Staking stats unchanged, skipping write")
		return OutcomeSkipped, nil
	}

	stats.LastUpdatedUTC = s.now().UTC().Format(time.RFC3339)

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}

	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal staking stats: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write staking stats to %s: %w", s.path, err)
	}

	logger.Info().Str("path", s.path).Msg("Staking stats written")
	return OutcomeWritten, nil
}

// loadPrior returns the previously persisted document, or nil when there is
// none. A missing file and a corrupt file both mean "no prior data"; only a
// real read failure is an error.
func (s *FileStore) loadPrior(ctx context.Context) (*types.StakingStats, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Ctx(ctx).Info().Str("path", s.path).Msg("No existing stats file found")
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read prior stats from %s: %w", s.path, err)
	}

	var prior types.StakingStats
	if err := json.Unmarshal(data, &prior); err != nil {
		log.Ctx(ctx).Warn().Err(err).
			Str("path", s.path).
			Msg("Existing stats file is invalid, treating as no prior data")
		return nil, nil
	}

	return &prior, nil
}
