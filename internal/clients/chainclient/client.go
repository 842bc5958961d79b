package chainclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/nillion-oss/staking-stats/internal/config"
)

const (
	inflationPath   = "/cosmos/mint/v1beta1/inflation"
	stakingPoolPath = "/cosmos/staking/v1beta1/pool"
	supplyPath      = "/cosmos/bank/v1beta1/supply/by_denom"
	validatorsPath  = "/cosmos/staking/v1beta1/validators"

	// limit the page to a single validator but request the total count;
	// the count is all we need and full pages can be large
	bondedValidatorsQuery = "?status=BOND_STATUS_BONDED&pagination.limit=1&pagination.count_total=true"
)

type ChainClient struct {
	httpClient *http.Client
	cfg        *config.ChainConfig
}

func NewChainClient(cfg *config.ChainConfig) *ChainClient {
	return &ChainClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
	}
}

func (c *ChainClient) GetInflation(ctx context.Context) (string, error) {
	resp, err := get[inflationResponse](ctx, c, inflationPath)
	if err != nil {
		return "", err
	}
	if resp.Inflation == "" {
		return "", fmt.Errorf("inflation field missing in response from %s", inflationPath)
	}

	return resp.Inflation, nil
}

func (c *ChainClient) GetBondedTokens(ctx context.Context) (string, error) {
	resp, err := get[stakingPoolResponse](ctx, c, stakingPoolPath)
	if err != nil {
		return "", err
	}
	if resp.Pool.BondedTokens == "" {
		return "", fmt.Errorf("pool.bonded_tokens field missing in response from %s", stakingPoolPath)
	}

	return resp.Pool.BondedTokens, nil
}

func (c *ChainClient) GetTotalSupply(ctx context.Context) (string, error) {
	path := supplyPath + "?denom=" + url.QueryEscape(c.cfg.Denom)
	resp, err := get[supplyByDenomResponse](ctx, c, path)
	if err != nil {
		return "", err
	}
	if resp.Amount.Amount == "" {
		return "", fmt.Errorf("amount.amount field missing in response from %s", supplyPath)
	}

	return resp.Amount.Amount, nil
}

func (c *ChainClient) GetBondedValidatorCount(ctx context.Context) (int64, error) {
	resp, err := get[validatorsResponse](ctx, c, validatorsPath+bondedValidatorsQuery)
	if err != nil {
		return 0, err
	}
	if resp.Pagination.Total == "" {
		return 0, fmt.Errorf("pagination.total field missing in response from %s", validatorsPath)
	}

	count, err := strconv.ParseInt(resp.Pagination.Total, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse pagination.total %q: %w", resp.Pagination.Total, err)
	}

	return count, nil
}

// get performs a single GET against the REST gateway and decodes the JSON
// body into T. No retries: the caller treats any failure as a degraded
// reading, not a fatal condition.
func get[T any](ctx context.Context, c *ChainClient, path string) (*T, error) {
	reqURL := c.cfg.RESTBaseURL + path
	logger := log.Ctx(ctx)
	logger.Info().Str("url", reqURL).Msg("Fetching chain data")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", reqURL, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", reqURL, err)
	}
	defer resp.Body.Close()

	logger.Info().Str("url", reqURL).Int("status", resp.StatusCode).Msg("Chain data fetched")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("unexpected status %d from %s: %s",
			resp.StatusCode, reqURL, strings.TrimSpace(string(body)))
	}

	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response from %s: %w", reqURL, err)
	}

	return &out, nil
}
