package config

import (
	"fmt"
	"net"
	"strconv"
)

const (
	defaultMetricsHost = "0.0.0.0"
	defaultMetricsPort = 2112
	minPort            = 1024
	maxPort            = 65535
)

// MetricsConfig defines the Prometheus endpoint exposed in daemon mode.
type MetricsConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

func (cfg *MetricsConfig) Validate() error {
	if cfg.Host == "" {
		cfg.Host = defaultMetricsHost
	}
	if ip := net.ParseIP(cfg.Host); ip == nil {
		return fmt.Errorf("invalid metrics host: %s", cfg.Host)
	}

	if cfg.Port == 0 {
		cfg.Port = defaultMetricsPort
	}
	if cfg.Port < minPort || cfg.Port > maxPort {
		return fmt.Errorf("metrics port must be between %d and %d", minPort, maxPort)
	}

	return nil
}

// Address returns the host:port the metrics server binds to.
func (cfg *MetricsConfig) Address() string {
	return net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
}
