package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	// default matches the REST gateway's own server-side limit
	defaultRequestTimeout  = 30 * time.Second
	defaultDisplayExponent = 6
)

// ChainConfig defines how to reach the chain's REST (LCD) gateway and how to
// interpret its base denomination.
type ChainConfig struct {
	// RESTBaseURL is the REST gateway URL including the protocol prefix,
	// without a trailing slash (e.g. https://nilchain-api.nillion.network).
	RESTBaseURL string `mapstructure:"rest-base-url"`
	// Denom is the base denomination used for supply queries (e.g. unil).
	Denom string `mapstructure:"denom"`
	// DisplayExponent converts the base denomination to the display unit,
	// i.e. 1 display unit == 10^DisplayExponent base units.
	DisplayExponent int           `mapstructure:"display-exponent"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

func (cfg *ChainConfig) Validate() error {
	if cfg.RESTBaseURL == "" {
		return fmt.Errorf("chain rest-base-url must be set")
	}

	parsed, err := url.Parse(cfg.RESTBaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("chain rest-base-url %q is not a valid URL", cfg.RESTBaseURL)
	}
	cfg.RESTBaseURL = strings.TrimSuffix(cfg.RESTBaseURL, "/")

	if cfg.Denom == "" {
		return fmt.Errorf("chain denom must be set")
	}

	if cfg.DisplayExponent <= 0 {
		cfg.DisplayExponent = defaultDisplayExponent
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultRequestTimeout
	}

	return nil
}
