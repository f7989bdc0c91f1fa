package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client issues probes against the service under test, usually via a
// port-forwarded local address.
type Client struct {
	base string
	http *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the address probes are issued against.
func (c *Client) BaseURL() string { return c.base }

type response struct {
	status int
	body   []byte
	header http.Header
}

func (c *Client) do(ctx context.Context, method, path string, payload any) (*response, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s payload: %w", method, path, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read %s %s body: %w", method, path, err)
	}
	return &response{status: resp.StatusCode, body: raw, header: resp.Header}, nil
}

func (c *Client) get(ctx context.Context, path string) (*response, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) postJSON(ctx context.Context, path string, payload any) (*response, error) {
	return c.do(ctx, http.MethodPost, path, payload)
}

// decodeJSON unmarshals a response body into a generic map.
func decodeJSON(r *response, path string) (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal(r.body, &doc); err != nil {
		return nil, fmt.Errorf("%s returned invalid JSON: %w", path, err)
	}
	return doc, nil
}

// Reachable verifies the service answers at all. Any transport-level
// failure is fatal: without connectivity no other check can run.
func (c *Client) Reachable(path string) Probe {
	return func(ctx context.Context) (string, error) {
		resp, err := c.get(ctx, path)
		if err != nil {
			return "", &FatalError{Err: fmt.Errorf("service unreachable at %s: %w", c.base, err)}
		}
		return fmt.Sprintf("HTTP %d from %s", resp.status, c.base+path), nil
	}
}
