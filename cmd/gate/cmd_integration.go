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

var integrationCmd = &cobra.Command{
	Use:   "integration",
	Short: "Functional integration tests against the deployed service",
	RunE:  runIntegration,
}

func runIntegration(cmd *cobra.Command, _ []string) error {
	return runGate(cmd, "integration", model.PolicyLenient, integrationChecks, false)
}

func integrationChecks(ctx context.Context, ev *evaluate.Evaluator, c *probe.Client, cfg config.Config, th config.Thresholds) {
	ev.Run(ctx, "health endpoint", c.Liveness(cfg.HealthPath))
	ev.Run(ctx, "readiness endpoint", c.Readiness(cfg.ReadyPath))
	ev.Run(ctx, "root message", c.RootMessage(cfg.ExpectedMessage))
	ev.Run(ctx, "metrics counter", c.MetricsCounter(cfg.MetricsPath, cfg.MetricsCounter))
	ev.Run(ctx, "counter round trip", c.CounterRoundTrip())
	ev.Run(ctx, "user creation", c.CreateUser())
	ev.RunWarn(ctx, "user listing", c.ListUsers())
	ev.Run(ctx, "response latency", c.Latency(cfg.HealthPath, th.LatencyLimit()))
	ev.Run(ctx, fmt.Sprintf("concurrent load (%d requests)", th.LoadWorkers),
		c.Load(cfg.HealthPath, th.LoadWorkers, th.SuccessFloor))
}
