package linear

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Download streams an authenticated GET of a Linear-hosted upload URL into w.
// Only uploads.linear.app URLs receive the API credential.
func (c *Client) Download(ctx context.Context, rawURL string, w io.Writer) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse url: %w", err)
	}
	if parsed.Scheme != "https" {
		return fmt.Errorf("refusing non-https url %q", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if isUploadsHost(parsed.Host) {
		if token := normalizeToken(c.token); token != "" {
			req.Header.Set("Authorization", token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return &RateLimitError{RetryAfter: retryAfterSeconds(resp)}
	default:
		return fmt.Errorf("download failed: %s", resp.Status)
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	return nil
}

func isUploadsHost(host string) bool {
	return host == "uploads.linear.app" || strings.HasSuffix(host, ".linear.app")
}
