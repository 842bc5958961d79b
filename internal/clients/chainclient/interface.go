package chainclient

import "context"

// ChainInterface exposes the four REST gateway reads that feed the staking
// stats calculation. Every method performs a single GET with no retries; a
// failed call degrades the corresponding metric to absent downstream.
type ChainInterface interface {
	GetInflation(ctx context.Context) (string, error)
	GetBondedTokens(ctx context.Context) (string, error)
	GetTotalSupply(ctx context.Context) (string, error)
	GetBondedValidatorCount(ctx context.Context) (int64, error)
}
