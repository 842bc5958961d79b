package chainclient

import (
	"context"
	"time"

	"github.com/nillion-oss/staking-stats/internal/observability/metrics"
)

type chainClientWithMetrics struct {
	chain ChainInterface
}

// NewChainClientWithMetrics decorates a chain client with per-method latency
// metrics.
func NewChainClientWithMetrics(chain ChainInterface) ChainInterface {
	return &chainClientWithMetrics{chain: chain}
}

func (c *chainClientWithMetrics) GetInflation(ctx context.Context) (string, error) {
	return runChainClientMethodWithMetrics("GetInflation", func() (string, error) {
		return c.chain.GetInflation(ctx)
	})
}

func (c *chainClientWithMetrics) GetBondedTokens(ctx context.Context) (string, error) {
	return runChainClientMethodWithMetrics("GetBondedTokens", func() (string, error) {
		return c.chain.GetBondedTokens(ctx)
	})
}

func (c *chainClientWithMetrics) GetTotalSupply(ctx context.Context) (string, error) {
	return runChainClientMethodWithMetrics("GetTotalSupply", func() (string, error) {
		return c.chain.GetTotalSupply(ctx)
	})
}

func (c *chainClientWithMetrics) GetBondedValidatorCount(ctx context.Context) (int64, error) {
	return runChainClientMethodWithMetrics("GetBondedValidatorCount", func() (int64, error) {
		return c.chain.GetBondedValidatorCount(ctx)
	})
}

func runChainClientMethodWithMetrics[T any](method string, fn func() (T, error)) (T, error) {
	start := time.Now()
	result, err := fn()
	metrics.RecordChainClientLatency(time.Since(start), method, err != nil)

	return result, err
}
