package main

import (
	"context"

	"github.com/spf13/cobra"

	"k8s-readiness-gate/internal/config"
	"k8s-readiness-gate/internal/evaluate"
	"k8s-readiness-gate/internal/model"
	"k8s-readiness-gate/internal/probe"
)

var smokeCmd = &cobra.Command{
	Use:   "smoke",
	Short: "Quick post-deploy smoke validation",
	RunE:  runSmoke,
}

func runSmoke(cmd *cobra.Command, _ []string) error {
	return runGate(cmd, "smoke", model.PolicyLenient, smokeChecks, false)
}

func smokeChecks(ctx context.Context, ev *evaluate.Evaluator, c *probe.Client, cfg config.Config, th config.Thresholds) {
	ev.Run(ctx, "health endpoint", c.Liveness(cfg.HealthPath))
	ev.Run(ctx, "readiness endpoint", c.Readiness(cfg.ReadyPath))
	ev.Run(ctx, "root message", c.RootMessage(cfg.ExpectedMessage))
	ev.Run(ctx, "metrics counter", c.MetricsCounter(cfg.MetricsPath, cfg.MetricsCounter))
	ev.Run(ctx, "response latency", c.Latency(cfg.HealthPath, th.LatencyLimit()))
}
