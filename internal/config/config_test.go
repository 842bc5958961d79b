package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNew(t *testing.T) {
	t.Run("full config", func(t *testing.T) {
		path := writeConfigFile(t, `
chain:
  rest-base-url: https://nilchain-api.nillion.network
  denom: unil
  display-exponent: 6
  timeout: 30s
output:
  path: public/data/staking_stats.json
poller:
  stats-polling-interval: 1m
metrics:
  host: 127.0.0.1
  port: 2112
`)

		cfg, err := New(path)
		require.NoError(t, err)

		assert.Equal(t, "https://nilchain-api.nillion.network", cfg.Chain.RESTBaseURL)
		assert.Equal(t, "unil", cfg.Chain.Denom)
		assert.Equal(t, 6, cfg.Chain.DisplayExponent)
		assert.Equal(t, 30*time.Second, cfg.Chain.Timeout)
		assert.Equal(t, "public/data/staking_stats.json", cfg.Output.Path)
		assert.Equal(t, time.Minute, cfg.Poller.StatsPollingInterval)
		assert.Equal(t, "127.0.0.1:2112", cfg.Metrics.Address())
	})

	t.Run("defaults applied", func(t *testing.T) {
		path := writeConfigFile(t, `
chain:
  rest-base-url: https://nilchain-api.nillion.network/
  denom: unil
output:
  path: out/staking_stats.json
`)

		cfg, err := New(path)
		require.NoError(t, err)

		assert.Equal(t, "https://nilchain-api.nillion.network", cfg.Chain.RESTBaseURL,
			"trailing slash is stripped")
		assert.Equal(t, defaultDisplayExponent, cfg.Chain.DisplayExponent)
		assert.Equal(t, defaultRequestTimeout, cfg.Chain.Timeout)
		assert.Equal(t, defaultStatsPollingInterval, cfg.Poller.StatsPollingInterval)
		assert.Equal(t, defaultMetricsPort, cfg.Metrics.Port)
		assert.Equal(t, defaultMetricsHost, cfg.Metrics.Host)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := New(filepath.Join(t.TempDir(), "nope.yml"))
		require.Error(t, err)
	})
}

func TestChainConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ChainConfig
		wantErr string
	}{
		{
			name:    "missing base url",
			cfg:     ChainConfig{Denom: "unil"},
			wantErr: "rest-base-url must be set",
		},
		{
			name:    "invalid base url",
			cfg:     ChainConfig{RESTBaseURL: "nilchain-api.nillion.network", Denom: "unil"},
			wantErr: "not a valid URL",
		},
		{
			name:    "missing denom",
			cfg:     ChainConfig{RESTBaseURL: "https://nilchain-api.nillion.network"},
			wantErr: "denom must be set",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestOutputConfig_Validate(t *testing.T) {
	cfg := OutputConfig{}
	require.Error(t, cfg.Validate())

	cfg.Path = "public/data/staking_stats.json"
	require.NoError(t, cfg.Validate())
}

func TestMetricsConfig_Validate(t *testing.T) {
	t.Run("port out of range", func(t *testing.T) {
		cfg := MetricsConfig{Host: "0.0.0.0", Port: 70000}
		require.Error(t, cfg.Validate())
	})

	t.Run("invalid host", func(t *testing.T) {
		cfg := MetricsConfig{Host: "not-an-ip", Port: 2112}
		require.Error(t, cfg.Validate())
	})
}
