package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"

	"k8s-readiness-gate/internal/analyze"
	"k8s-readiness-gate/internal/collect"
	"k8s-readiness-gate/internal/compare"
	"k8s-readiness-gate/internal/config"
	"k8s-readiness-gate/internal/evaluate"
	"k8s-readiness-gate/internal/history"
	"k8s-readiness-gate/internal/kube"
	"k8s-readiness-gate/internal/model"
	"k8s-readiness-gate/internal/output"
	"k8s-readiness-gate/internal/probe"
)

// checkSet runs one gate mode's probes against the service.
type checkSet func(ctx context.Context, ev *evaluate.Evaluator, c *probe.Client, cfg config.Config, th config.Thresholds)

// runGate is the shared driver behind the three subcommands: resolve
// configuration, bridge to the service, verify connectivity, run the
// checks, score, report, exit.
func runGate(cmd *cobra.Command, mode string, policy model.Policy, checks checkSet, clusterChecks bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, &cfg)

	th, err := config.LoadThresholds(rootFlags.thresholds)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	var (
		cs      *kubernetes.Clientset
		restCfg *rest.Config
	)
	needKube := rootFlags.baseURL == "" || clusterChecks
	if needKube {
		cs, restCfg, err = kube.NewClient(rootFlags.kubeconfig)
		if err != nil {
			return fmt.Errorf("kube client: %w", err)
		}
	}

	baseURL := rootFlags.baseURL
	if baseURL == "" {
		fw, err := kube.ForwardToService(ctx, cs, restCfg, cfg.Namespace, cfg.Service, cfg.LocalPort, cfg.Port)
		if err != nil {
			return fmt.Errorf("port forward: %w", err)
		}
		defer fw.Stop()
		baseURL = fmt.Sprintf("http://127.0.0.1:%d", fw.LocalPort)
		if !rootFlags.ci {
			fmt.Fprintf(cmd.OutOrStdout(), "Forwarding %s -> %s/%s:%d (pod %s)\n",
				baseURL, cfg.Namespace, cfg.Service, cfg.Port, fw.Pod)
		}
	}

	var progress io.Writer = cmd.OutOrStdout()
	if rootFlags.ci {
		progress = io.Discard
	}

	client := probe.NewClient(baseURL, th.ProbeTimeout())
	ev := evaluate.New(progress, th.ProbeTimeout())

	rep := model.NewReport(mode, policy, model.Target{
		Namespace: cfg.Namespace,
		Service:   cfg.Service,
		Port:      cfg.Port,
		Color:     cfg.Color,
	})

	// Connectivity is the one non-recoverable failure: if the service
	// cannot be reached at all, no check result is recorded and the
	// process exits 1.
	if err := ev.CheckConnectivity(ctx, client.Reachable(cfg.HealthPath)); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "FATAL: %v\n", err)
		os.Exit(1)
	}

	checks(ctx, ev, client, cfg, th)
	if clusterChecks {
		runClusterChecks(ctx, ev, cs, cfg, th)
	}

	rep.Finish(ev.Suite)
	applyComparison(cmd, &rep)

	if !rootFlags.ci {
		output.WriteSummary(cmd.OutOrStdout(), &rep)
	}

	var trendLabel string
	var trendDelta int
	if rootFlags.outDir != "" {
		if err := os.MkdirAll(rootFlags.outDir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", rootFlags.outDir, err)
		}
		reportPath := filepath.Join(rootFlags.outDir, "gate-report.json")
		if err := output.WriteJSON(reportPath, &rep); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		if tr, err := history.Record(rootFlags.outDir, &rep); err != nil {
			if !rootFlags.ci {
				fmt.Fprintln(cmd.OutOrStdout(), "History: (skipped)", err)
			}
		} else {
			trendLabel = tr.Label
			trendDelta = tr.Delta
			if !rootFlags.ci && tr.Label != "FIRST_RUN" {
				fmt.Fprintf(cmd.OutOrStdout(), "Trend: %s (previous %d%%, current %d%%)\n",
					tr.Label, tr.Previous, tr.Current)
			}
		}
		if !rootFlags.ci {
			fmt.Fprintln(cmd.OutOrStdout(), "Report:", reportPath)
		}
	}

	if rootFlags.ci {
		output.PrintCISummary(cmd.OutOrStdout(), &rep, trendLabel, trendDelta)
	}

	os.Exit(model.ExitCode(rep.Decision))
	return nil
}

// applyComparison loads a previous report and attaches the diff.
func applyComparison(cmd *cobra.Command, rep *model.RunReport) {
	if rootFlags.compareTo == "" {
		return
	}
	raw, err := os.ReadFile(rootFlags.compareTo)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "compare: %v (skipping)\n", err)
		return
	}
	var prev model.RunReport
	if err := json.Unmarshal(raw, &prev); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "compare: decode %s: %v (skipping)\n", rootFlags.compareTo, err)
		return
	}
	diff := compare.Diff(&prev, rep)
	rep.Comparison = &diff
}

// applyFlagOverrides lets explicit flags win over environment values.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("namespace") {
		cfg.Namespace = rootFlags.namespace
	}
	if f.Changed("service") {
		cfg.Service = rootFlags.service
	}
	if f.Changed("port") {
		cfg.Port = rootFlags.port
	}
	if f.Changed("local-port") {
		cfg.LocalPort = rootFlags.localPort
	}
	if f.Changed("color") {
		cfg.Color = readinessFlags.color
	}
}

// runClusterChecks queries orchestration state and records the rollout
// checks. Lookup failures on core resources fail the run; advisory
// resources only warn.
func runClusterChecks(ctx context.Context, ev *evaluate.Evaluator, cs kubernetes.Interface, cfg config.Config, th config.Thresholds) {
	st := &model.ClusterState{}

	if err := collect.Deployments(ctx, cs, cfg.Namespace, cfg.Service, st); err != nil {
		ev.Record(analyze.LookupFailed("active deployment replicas", err, false))
	} else {
		ev.Record(analyze.ActiveReplicas(st, cfg.Color, th.MinReplicas))
		ev.Record(analyze.InactiveScaledDown(st, cfg.Color))
	}

	if err := collect.Endpoints(ctx, cs, cfg.Namespace, cfg.Service, st); err != nil {
		ev.Record(analyze.LookupFailed("service endpoints", err, false))
	} else {
		ev.Record(analyze.ServiceEndpoints(st))
	}

	if err := collect.PodDisruptionBudgets(ctx, cs, cfg.Namespace, st); err != nil {
		ev.Record(analyze.LookupFailed("pod disruption budget", err, true))
	} else {
		ev.Record(analyze.DisruptionBudget(st))
	}

	if err := collect.HPAs(ctx, cs, cfg.Namespace, cfg.Service, st); err != nil {
		ev.Record(analyze.LookupFailed("horizontal pod autoscaler", err, true))
	} else {
		ev.Record(analyze.Autoscaler(st))
	}

	if err := collect.CronJobs(ctx, cs, cfg.Namespace, st); err != nil {
		ev.Record(analyze.LookupFailed("backup cronjob", err, true))
	} else {
		ev.Record(analyze.BackupJob(st))
	}

	if err := collect.Pods(ctx, cs, cfg.Namespace, cfg.Service, st); err != nil {
		ev.Record(analyze.LookupFailed("pod restart count", err, true))
	} else {
		ev.Record(analyze.PodRestarts(st, th.RestartThreshold))
	}
}
