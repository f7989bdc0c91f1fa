package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"k8s-readiness-gate/internal/probe"
)

// Thresholds are the tunable limits for probes and cluster checks.
// Durations are plain milliseconds/seconds so a thresholds file reads
// the way the old script constants did.
type Thresholds struct {
	ProbeTimeoutSeconds int   `yaml:"probeTimeoutSeconds"`
	LatencyLimitMS      int   `yaml:"latencyLimitMs"`
	LatencyExcellentMS  int   `yaml:"latencyExcellentMs"`
	LatencyAcceptableMS int   `yaml:"latencyAcceptableMs"`
	LatencySamples      int   `yaml:"latencySamples"`
	LoadWorkers         int   `yaml:"loadWorkers"`
	LoadWorkersStrict   int   `yaml:"loadWorkersStrict"`
	SuccessFloor        int   `yaml:"successFloor"`
	MinReplicas         int32 `yaml:"minReplicas"`
	RestartThreshold    int32 `yaml:"restartThreshold"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		ProbeTimeoutSeconds: 10,
		LatencyLimitMS:      1000,
		LatencyExcellentMS:  200,
		LatencyAcceptableMS: 500,
		LatencySamples:      10,
		LoadWorkers:         20,
		LoadWorkersStrict:   50,
		SuccessFloor:        95,
		MinReplicas:         3,
		RestartThreshold:    5,
	}
}

// LoadThresholds reads a YAML thresholds file over the defaults. An
// empty path returns the defaults unchanged.
func LoadThresholds(path string) (Thresholds, error) {
	t := DefaultThresholds()
	if path == "" {
		return t, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read thresholds file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("parse thresholds file %s: %w", path, err)
	}
	return t, nil
}

func (t Thresholds) ProbeTimeout() time.Duration {
	return time.Duration(t.ProbeTimeoutSeconds) * time.Second
}

func (t Thresholds) LatencyLimit() time.Duration {
	return time.Duration(t.LatencyLimitMS) * time.Millisecond
}

func (t Thresholds) LatencyTiers() probe.LatencyTiers {
	return probe.LatencyTiers{
		Excellent:  time.Duration(t.LatencyExcellentMS) * time.Millisecond,
		Acceptable: time.Duration(t.LatencyAcceptableMS) * time.Millisecond,
	}
}
