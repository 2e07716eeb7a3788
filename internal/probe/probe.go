// Package probe determines a remote resource's content type via a HEAD
// request, without downloading the payload.
package probe

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"magpie/internal/httputil"
)

// DefaultTimeout bounds a single probe.
const DefaultTimeout = 30 * time.Second

// HTTPProber probes candidate locations over HTTP.
type HTTPProber struct {
	client  *http.Client
	timeout time.Duration
}

// New creates an HTTPProber. A timeout of zero uses DefaultTimeout.
func New(client *http.Client, timeout time.Duration) *HTTPProber {
	if client == nil {
		client = httputil.NewClient()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPProber{client: client, timeout: timeout}
}

// Probe issues a HEAD request and returns the reported Content-Type.
// An empty Content-Type is reported as application/octet-stream.
func (p *HTTPProber) Probe(ctx context.Context, location string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := httputil.Head(ctx, p.client, location)
	if err != nil {
		return "", fmt.Errorf("probing %s: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("probing %s: unexpected status %d", location, resp.StatusCode)
	}

	mime := resp.Header.Get("Content-Type")
	if mime == "" {
		mime = "application/octet-stream"
	}
	return mime, nil
}
