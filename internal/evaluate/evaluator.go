// Package evaluate runs named checks against a deployed service and
// accumulates their outcomes into a suite, ready for scoring and the
// final gate decision.
package evaluate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"k8s-readiness-gate/internal/model"
	"k8s-readiness-gate/internal/probe"
)

// DefaultProbeTimeout bounds a single probe when the caller does not
// configure one.
const DefaultProbeTimeout = 10 * time.Second

// Evaluator executes probes, classifies their outcomes and appends
// them to the suite in execution order.
type Evaluator struct {
	Suite   *model.Suite
	Timeout time.Duration

	out io.Writer
}

func New(out io.Writer, timeout time.Duration) *Evaluator {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	return &Evaluator{
		Suite:   &model.Suite{},
		Timeout: timeout,
		out:     out,
	}
}

// Run executes a probe and records Pass, Skip or Fail.
func (e *Evaluator) Run(ctx context.Context, name string, p probe.Probe) model.CheckResult {
	return e.run(ctx, name, p, model.StatusFail)
}

// RunWarn executes a probe whose failure is advisory: a failed probe
// records Warn instead of Fail. Used for soft limits and optional
// components.
func (e *Evaluator) RunWarn(ctx context.Context, name string, p probe.Probe) model.CheckResult {
	return e.run(ctx, name, p, model.StatusWarn)
}

func (e *Evaluator) run(ctx context.Context, name string, p probe.Probe, failStatus model.Status) model.CheckResult {
	ctx, cancel := context.WithTimeout(ctx, e.Timeout)
	defer cancel()

	start := time.Now()
	detail, err := p(ctx)
	elapsed := time.Since(start)

	r := model.CheckResult{
		Name:       name,
		Status:     model.StatusPass,
		Detail:     detail,
		DurationMS: elapsed.Milliseconds(),
	}

	var skip *probe.SkipError
	switch {
	case err == nil:
	case errors.As(err, &skip):
		r.Status = model.StatusSkip
		r.Detail = skip.Reason
	case errors.Is(err, context.DeadlineExceeded):
		r.Status = failStatus
		r.Detail = fmt.Sprintf("timed out after %s", e.Timeout)
	default:
		r.Status = failStatus
		r.Detail = err.Error()
	}

	e.record(r)
	return r
}

// Record appends a result produced outside the probe path, such as the
// cluster rollout checks.
func (e *Evaluator) Record(r model.CheckResult) {
	e.record(r)
}

func (e *Evaluator) record(r model.CheckResult) {
	e.Suite.Append(r)
	if e.out == nil {
		return
	}
	if r.Detail != "" {
		fmt.Fprintf(e.out, "  [%s] %s: %s\n", r.Status, r.Name, r.Detail)
	} else {
		fmt.Fprintf(e.out, "  [%s] %s\n", r.Status, r.Name)
	}
}

// CheckConnectivity runs the initial reachability probe. A failure is
// fatal: nothing is recorded, and the caller must abort the run with a
// non-zero exit. Distinct from per-check failures, which are recorded
// and evaluation continues.
func (e *Evaluator) CheckConnectivity(ctx context.Context, p probe.Probe) error {
	ctx, cancel := context.WithTimeout(ctx, e.Timeout)
	defer cancel()

	detail, err := p(ctx)
	if err != nil {
		var fatal *probe.FatalError
		if errors.As(err, &fatal) {
			return fatal
		}
		return &probe.FatalError{Err: err}
	}
	if e.out != nil && detail != "" {
		fmt.Fprintf(e.out, "  connectivity: %s\n", detail)
	}
	return nil
}
