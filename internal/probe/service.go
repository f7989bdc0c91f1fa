package probe

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Liveness asserts the health endpoint reports a healthy service and
// carries the version and timestamp fields the deployment pipeline
// stamps into it.
func (c *Client) Liveness(path string) Probe {
	return func(ctx context.Context) (string, error) {
		resp, err := c.get(ctx, path)
		if err != nil {
			return "", err
		}
		if resp.status != http.StatusOK {
			return "", fmt.Errorf("GET %s returned %d, want 200", path, resp.status)
		}
		doc, err := decodeJSON(resp, path)
		if err != nil {
			return "", err
		}
		if doc["status"] != "healthy" {
			return "", fmt.Errorf("health status is %q, want \"healthy\"", doc["status"])
		}
		for _, field := range []string{"version", "timestamp"} {
			if _, ok := doc[field]; !ok {
				return "", fmt.Errorf("health response is missing %q", field)
			}
		}
		return fmt.Sprintf("healthy, version %v", doc["version"]), nil
	}
}

// Readiness asserts the readiness endpoint. A 503 means a backing
// dependency is down, which the gate tolerates as a skip.
func (c *Client) Readiness(path string) Probe {
	return func(ctx context.Context) (string, error) {
		resp, err := c.get(ctx, path)
		if err != nil {
			return "", err
		}
		if resp.status == http.StatusServiceUnavailable {
			return "", Skipf("dependency unavailable (GET %s returned 503)", path)
		}
		if resp.status != http.StatusOK {
			return "", fmt.Errorf("GET %s returned %d, want 200", path, resp.status)
		}
		doc, err := decodeJSON(resp, path)
		if err != nil {
			return "", err
		}
		if doc["status"] != "ready" {
			return "", fmt.Errorf("readiness status is %q, want \"ready\"", doc["status"])
		}
		return "ready", nil
	}
}

// RootMessage asserts the root endpoint identifies the expected
// application.
func (c *Client) RootMessage(expected string) Probe {
	return func(ctx context.Context) (string, error) {
		resp, err := c.get(ctx, "/")
		if err != nil {
			return "", err
		}
		if resp.status != http.StatusOK {
			return "", fmt.Errorf("GET / returned %d, want 200", resp.status)
		}
		doc, err := decodeJSON(resp, "/")
		if err != nil {
			return "", err
		}
		if doc["message"] != expected {
			return "", fmt.Errorf("root message is %q, want %q", doc["message"], expected)
		}
		return expected, nil
	}
}

// MetricsCounter asserts the metrics endpoint exposes the named
// counter.
func (c *Client) MetricsCounter(path, counter string) Probe {
	return func(ctx context.Context) (string, error) {
		resp, err := c.get(ctx, path)
		if err != nil {
			return "", err
		}
		if resp.status != http.StatusOK {
			return "", fmt.Errorf("GET %s returned %d, want 200", path, resp.status)
		}
		if !strings.Contains(string(resp.body), counter) {
			return "", fmt.Errorf("metrics output does not contain %q", counter)
		}
		return fmt.Sprintf("%s exposed", counter), nil
	}
}

// counterValue reads the current counter. A 503 propagates as a skip.
func (c *Client) counterValue(ctx context.Context) (int64, error) {
	resp, err := c.get(ctx, "/counter")
	if err != nil {
		return 0, err
	}
	if resp.status == http.StatusServiceUnavailable {
		return 0, Skipf("counter store unavailable (503)")
	}
	if resp.status != http.StatusOK {
		return 0, fmt.Errorf("GET /counter returned %d, want 200", resp.status)
	}
	doc, err := decodeJSON(resp, "/counter")
	if err != nil {
		return 0, err
	}
	v, ok := doc["counter"].(float64)
	if !ok {
		return 0, fmt.Errorf("counter field is %T, want number", doc["counter"])
	}
	return int64(v), nil
}

// CounterRoundTrip reads the counter, increments it, and asserts the
// value grew. Holds for any non-negative starting value, including
// concurrent increments from other clients.
func (c *Client) CounterRoundTrip() Probe {
	return func(ctx context.Context) (string, error) {
		before, err := c.counterValue(ctx)
		if err != nil {
			return "", err
		}
		resp, err := c.postJSON(ctx, "/counter", nil)
		if err != nil {
			return "", err
		}
		if resp.status == http.StatusServiceUnavailable {
			return "", Skipf("counter store unavailable (503)")
		}
		if resp.status != http.StatusOK {
			return "", fmt.Errorf("POST /counter returned %d, want 200", resp.status)
		}
		after, err := c.counterValue(ctx)
		if err != nil {
			return "", err
		}
		if after <= before {
			return "", fmt.Errorf("counter did not increase: %d -> %d", before, after)
		}
		return fmt.Sprintf("counter %d -> %d", before, after), nil
	}
}

// CreateUser posts a record with a unique, timestamp-suffixed email and
// asserts the store assigned it an identifier. A 503 means the backing
// database is down and the check is skipped.
func (c *Client) CreateUser() Probe {
	return func(ctx context.Context) (string, error) {
		email := fmt.Sprintf("gate-%d@example.com", time.Now().UnixNano())
		resp, err := c.postJSON(ctx, "/users", map[string]string{
			"name":  "Readiness Gate",
			"email": email,
		})
		if err != nil {
			return "", err
		}
		switch resp.status {
		case http.StatusOK, http.StatusCreated:
		case http.StatusServiceUnavailable:
			return "", Skipf("user store unavailable (503)")
		default:
			return "", fmt.Errorf("POST /users returned %d, want 200 or 201", resp.status)
		}
		doc, err := decodeJSON(resp, "/users")
		if err != nil {
			return "", err
		}
		if doc["id"] == nil {
			return "", fmt.Errorf("created user has no id: %s", resp.body)
		}
		return fmt.Sprintf("created user id %v", doc["id"]), nil
	}
}

// ListUsers asserts the collection endpoint answers with a users array.
func (c *Client) ListUsers() Probe {
	return func(ctx context.Context) (string, error) {
		resp, err := c.get(ctx, "/users")
		if err != nil {
			return "", err
		}
		if resp.status == http.StatusServiceUnavailable {
			return "", Skipf("user store unavailable (503)")
		}
		if resp.status != http.StatusOK {
			return "", fmt.Errorf("GET /users returned %d, want 200", resp.status)
		}
		doc, err := decodeJSON(resp, "/users")
		if err != nil {
			return "", err
		}
		users, ok := doc["users"].([]any)
		if !ok {
			return "", fmt.Errorf("users field is %T, want array", doc["users"])
		}
		return fmt.Sprintf("%d user(s) listed", len(users)), nil
	}
}
