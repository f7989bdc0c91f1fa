package evaluate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"k8s-readiness-gate/internal/model"
	"k8s-readiness-gate/internal/probe"
)

func passing(detail string) probe.Probe {
	return func(ctx context.Context) (string, error) { return detail, nil }
}

func failing(msg string) probe.Probe {
	return func(ctx context.Context) (string, error) { return "", errors.New(msg) }
}

func TestRunClassification(t *testing.T) {
	ev := New(nil, time.Second)
	ctx := context.Background()

	r := ev.Run(ctx, "ok", passing("fine"))
	if r.Status != model.StatusPass || r.Detail != "fine" {
		t.Errorf("pass probe recorded %s %q", r.Status, r.Detail)
	}

	r = ev.Run(ctx, "bad", failing("assertion failed"))
	if r.Status != model.StatusFail || r.Detail != "assertion failed" {
		t.Errorf("fail probe recorded %s %q", r.Status, r.Detail)
	}

	r = ev.Run(ctx, "skipped", func(ctx context.Context) (string, error) {
		return "", probe.Skipf("dependency unavailable (503)")
	})
	if r.Status != model.StatusSkip {
		t.Errorf("skip probe recorded %s, want SKIP", r.Status)
	}
	if r.Detail != "dependency unavailable (503)" {
		t.Errorf("skip detail = %q", r.Detail)
	}

	if len(ev.Suite.Results) != 3 {
		t.Fatalf("suite has %d results, want 3", len(ev.Suite.Results))
	}
	// Insertion order is execution order.
	if ev.Suite.Results[0].Name != "ok" || ev.Suite.Results[2].Name != "skipped" {
		t.Errorf("suite order wrong: %v", ev.Suite.Results)
	}
}

func TestRunWarnDowngradesFailure(t *testing.T) {
	ev := New(nil, time.Second)
	r := ev.RunWarn(context.Background(), "soft", failing("over the soft limit"))
	if r.Status != model.StatusWarn {
		t.Errorf("warn probe recorded %s, want WARN", r.Status)
	}

	// A skip stays a skip even on the warn path.
	r = ev.RunWarn(context.Background(), "soft-skip", func(ctx context.Context) (string, error) {
		return "", probe.Skipf("backing store down")
	})
	if r.Status != model.StatusSkip {
		t.Errorf("warn-path skip recorded %s, want SKIP", r.Status)
	}
}

func TestRunTimeout(t *testing.T) {
	ev := New(nil, 30*time.Millisecond)
	r := ev.Run(context.Background(), "slow", func(ctx context.Context) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	if r.Status != model.StatusFail {
		t.Errorf("timed-out probe recorded %s, want FAIL", r.Status)
	}
	if !strings.Contains(r.Detail, "timed out") {
		t.Errorf("timeout detail = %q", r.Detail)
	}
}

func TestSkipNeverIncrementsFailed(t *testing.T) {
	ev := New(nil, time.Second)
	for i := 0; i < 4; i++ {
		ev.Run(context.Background(), fmt.Sprintf("dep-%d", i), func(ctx context.Context) (string, error) {
			return "", probe.Skipf("503")
		})
	}
	sum := ev.Suite.Summarize()
	if sum.Failed != 0 {
		t.Errorf("Failed = %d, want 0", sum.Failed)
	}
	if sum.Skipped != 4 {
		t.Errorf("Skipped = %d, want 4", sum.Skipped)
	}
}

func TestCheckConnectivityFatal(t *testing.T) {
	ev := New(nil, time.Second)
	err := ev.CheckConnectivity(context.Background(), func(ctx context.Context) (string, error) {
		return "", &probe.FatalError{Err: errors.New("connection refused")}
	})
	if err == nil {
		t.Fatal("expected fatal error")
	}
	var fatal *probe.FatalError
	if !errors.As(err, &fatal) {
		t.Errorf("error is %T, want *probe.FatalError", err)
	}
	// Fatal connectivity short-circuits: nothing recorded.
	if len(ev.Suite.Results) != 0 {
		t.Errorf("suite has %d results after fatal connectivity, want 0", len(ev.Suite.Results))
	}
}

func TestCheckConnectivityWrapsPlainErrors(t *testing.T) {
	ev := New(nil, time.Second)
	err := ev.CheckConnectivity(context.Background(), failing("no route to host"))
	var fatal *probe.FatalError
	if !errors.As(err, &fatal) {
		t.Errorf("plain connectivity error not wrapped: %T", err)
	}
}

func TestProgressOutput(t *testing.T) {
	var buf bytes.Buffer
	ev := New(&buf, time.Second)
	ev.Run(context.Background(), "health endpoint", passing("healthy"))
	ev.Run(context.Background(), "root message", failing("wrong message"))

	out := buf.String()
	if !strings.Contains(out, "[PASS] health endpoint: healthy") {
		t.Errorf("missing pass line in output:\n%s", out)
	}
	if !strings.Contains(out, "[FAIL] root message: wrong message") {
		t.Errorf("missing fail line in output:\n%s", out)
	}
}
