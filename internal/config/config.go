// Package config holds the gate's target parameters and tuning
// thresholds. Targets come from environment variables with the same
// defaults the old shell scripts used; command-line flags override
// them.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config identifies the service under validation.
type Config struct {
	Namespace       string `env:"GATE_NAMESPACE" envDefault:"default"`
	Service         string `env:"GATE_SERVICE" envDefault:"demo-api"`
	Port            int    `env:"GATE_PORT" envDefault:"8000"`
	LocalPort       int    `env:"GATE_LOCAL_PORT" envDefault:"0"`
	Color           string `env:"GATE_COLOR" envDefault:"blue"`
	HealthPath      string `env:"GATE_HEALTH_PATH" envDefault:"/health"`
	ReadyPath       string `env:"GATE_READY_PATH" envDefault:"/ready"`
	MetricsPath     string `env:"GATE_METRICS_PATH" envDefault:"/metrics"`
	ExpectedMessage string `env:"GATE_EXPECTED_MESSAGE" envDefault:"DevOps Demo API"`
	MetricsCounter  string `env:"GATE_METRICS_COUNTER" envDefault:"api_counter_total"`
}

// Load reads the target configuration from the environment.
func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return c, nil
}
