package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"k8s-readiness-gate/internal/config"
	"k8s-readiness-gate/internal/evaluate"
	"k8s-readiness-gate/internal/model"
	"k8s-readiness-gate/internal/probe"
)

var readinessCmd = &cobra.Command{
	Use:   "readiness",
	Short: "Strict production readiness validation",
	Long: "Readiness runs the full probe set plus orchestration-state checks\n" +
		"(replica counts, blue-green scale-down, endpoints, PDB, HPA, backup\n" +
		"job) under the strict decision policy.",
	RunE: runReadiness,
}

var readinessFlags struct {
	color string
}

func init() {
	readinessCmd.Flags().StringVar(&readinessFlags.color, "color", "", "Active deployment color, blue or green (default from GATE_COLOR, else \"blue\")")
}

func runReadiness(cmd *cobra.Command, _ []string) error {
	return runGate(cmd, "readiness", model.PolicyStrict, readinessChecks, true)
}

func readinessChecks(ctx context.Context, ev *evaluate.Evaluator, c *probe.Client, cfg config.Config, th config.Thresholds) {
	ev.Run(ctx, "health endpoint", c.Liveness(cfg.HealthPath))
	ev.Run(ctx, "readiness endpoint", c.Readiness(cfg.ReadyPath))
	ev.Run(ctx, "root message", c.RootMessage(cfg.ExpectedMessage))
	ev.Run(ctx, "metrics counter", c.MetricsCounter(cfg.MetricsPath, cfg.MetricsCounter))
	ev.Run(ctx, "counter round trip", c.CounterRoundTrip())
	ev.Run(ctx, "user creation", c.CreateUser())
	ev.RunWarn(ctx, "user listing", c.ListUsers())
	ev.Run(ctx, fmt.Sprintf("mean latency (%d samples)", th.LatencySamples),
		c.MeanLatency(cfg.HealthPath, th.LatencySamples, th.LatencyTiers()))
	ev.Run(ctx, fmt.Sprintf("concurrent load (%d requests)", th.LoadWorkersStrict),
		c.Load(cfg.HealthPath, th.LoadWorkersStrict, th.SuccessFloor))
	ev.Run(ctx, "server banner", c.ServerBanner(cfg.HealthPath))
	ev.Run(ctx, "response body markers", c.BodyMarkers("/", cfg.HealthPath))
}
