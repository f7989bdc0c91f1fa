package probe

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// LatencyTiers holds the strict-mode latency classification bounds.
type LatencyTiers struct {
	Excellent  time.Duration
	Acceptable time.Duration
}

// Latency measures the wall-clock round trip of a single request and
// passes when it stays under limit.
func (c *Client) Latency(path string, limit time.Duration) Probe {
	return func(ctx context.Context) (string, error) {
		elapsed, err := c.timedGet(ctx, path)
		if err != nil {
			return "", err
		}
		if elapsed > limit {
			return "", fmt.Errorf("response took %s, limit %s", elapsed.Round(time.Millisecond), limit)
		}
		return fmt.Sprintf("%s (limit %s)", elapsed.Round(time.Millisecond), limit), nil
	}
}

// MeanLatency issues samples sequential requests and classifies their
// arithmetic mean against the tiers: under Excellent and under
// Acceptable both pass, anything slower fails.
func (c *Client) MeanLatency(path string, samples int, tiers LatencyTiers) Probe {
	return func(ctx context.Context) (string, error) {
		if samples < 1 {
			samples = 1
		}
		var total time.Duration
		for i := 0; i < samples; i++ {
			elapsed, err := c.timedGet(ctx, path)
			if err != nil {
				return "", fmt.Errorf("sample %d/%d: %w", i+1, samples, err)
			}
			total += elapsed
		}
		mean := total / time.Duration(samples)
		rounded := mean.Round(time.Millisecond)
		switch {
		case mean < tiers.Excellent:
			return fmt.Sprintf("mean %s over %d samples (excellent)", rounded, samples), nil
		case mean < tiers.Acceptable:
			return fmt.Sprintf("mean %s over %d samples (acceptable)", rounded, samples), nil
		default:
			return "", fmt.Errorf("mean latency %s over %d samples exceeds %s", rounded, samples, tiers.Acceptable)
		}
	}
}

func (c *Client) timedGet(ctx context.Context, path string) (time.Duration, error) {
	start := time.Now()
	resp, err := c.get(ctx, path)
	if err != nil {
		return 0, err
	}
	if resp.status != http.StatusOK {
		return 0, fmt.Errorf("GET %s returned %d, want 200", path, resp.status)
	}
	return time.Since(start), nil
}
