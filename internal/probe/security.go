package probe

import (
	"context"
	"fmt"
	"strings"
)

// Markers the production gate refuses to see in response bodies. The
// body is lowercased before matching.
var (
	sensitiveMarkers = []string{"password", "secret", "api_key", "apikey", "token", "private_key"}
	debugMarkers     = []string{"traceback", "stack trace", "debug mode", "stacktrace"}
)

// ServerBanner asserts responses do not disclose the server identity
// or version through the Server header.
func (c *Client) ServerBanner(path string) Probe {
	return func(ctx context.Context) (string, error) {
		resp, err := c.get(ctx, path)
		if err != nil {
			return "", err
		}
		banner := resp.header.Get("Server")
		if banner != "" {
			return "", fmt.Errorf("Server header discloses %q", banner)
		}
		return "no server banner", nil
	}
}

// BodyMarkers asserts none of the given paths leak sensitive-data or
// debug markers in their response bodies.
func (c *Client) BodyMarkers(paths ...string) Probe {
	return func(ctx context.Context) (string, error) {
		for _, path := range paths {
			resp, err := c.get(ctx, path)
			if err != nil {
				return "", err
			}
			body := strings.ToLower(string(resp.body))
			for _, m := range sensitiveMarkers {
				if strings.Contains(body, m) {
					return "", fmt.Errorf("%s body contains sensitive marker %q", path, m)
				}
			}
			for _, m := range debugMarkers {
				if strings.Contains(body, m) {
					return "", fmt.Errorf("%s body contains debug marker %q", path, m)
				}
			}
		}
		return fmt.Sprintf("%d path(s) clean", len(paths)), nil
	}
}
