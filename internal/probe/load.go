package probe

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/sync/errgroup"
)

// Load fans out workers concurrent requests against a cheap endpoint
// and classifies the aggregate: zero failures passes outright, a
// success rate at or above successFloor (percent) passes with a note,
// anything below fails.
//
// Each task writes only its own outcome slot; aggregation happens
// strictly after every task has been joined.
func (c *Client) Load(path string, workers, successFloor int) Probe {
	return func(ctx context.Context) (string, error) {
		if workers < 1 {
			workers = 1
		}

		outcomes := make([]error, workers)
		g, gctx := errgroup.WithContext(ctx)
		for i := 0; i < workers; i++ {
			i := i // per-iteration copy: required under the go 1.21 directive
			g.Go(func() error {
				resp, err := c.get(gctx, path)
				if err != nil {
					outcomes[i] = err
				} else if resp.status != http.StatusOK {
					outcomes[i] = fmt.Errorf("status %d", resp.status)
				}
				// Individual request failures are tallied, never
				// propagated: one bad request must not cancel the rest.
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return "", err
		}

		failed := 0
		for _, err := range outcomes {
			if err != nil {
				failed++
			}
		}
		rate := 100 * (workers - failed) / workers
		if failed == 0 {
			return fmt.Sprintf("%d/%d requests succeeded (100%%)", workers, workers), nil
		}
		if rate >= successFloor {
			return fmt.Sprintf("%d/%d requests succeeded (%d%%, floor %d%%)", workers-failed, workers, rate, successFloor), nil
		}
		return "", fmt.Errorf("success rate %d%% below %d%% floor (%d/%d requests failed)", rate, successFloor, failed, workers)
	}
}
