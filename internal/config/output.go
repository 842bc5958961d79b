package config

import (
	"fmt"
)

// OutputConfig defines where the calculated stats document is persisted.
type OutputConfig struct {
	Path string `mapstructure:"path"`
}

func (cfg *OutputConfig) Validate() error {
	if cfg.Path == "" {
		return fmt.Errorf("output path must be set")
	}

	return nil
}
