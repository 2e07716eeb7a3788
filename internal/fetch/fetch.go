// Package fetch downloads candidate payloads with a bounded time budget
// and a hard size cap.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"magpie/internal/httputil"
)

const (
	// DefaultTimeout bounds a single download.
	DefaultTimeout = 120 * time.Second

	// DefaultMaxBytes caps a payload at 64 MiB. The upstream sources never
	// enforce a limit themselves, so the cap guards our own memory.
	DefaultMaxBytes = 64 << 20
)

// ErrTooLarge is returned when a payload exceeds the configured cap.
var ErrTooLarge = errors.New("payload too large")

// HTTPFetcher downloads payloads over HTTP.
type HTTPFetcher struct {
	client   *http.Client
	timeout  time.Duration
	maxBytes int64
}

// New creates an HTTPFetcher. Zero timeout or maxBytes fall back to the
// package defaults.
func New(client *http.Client, timeout time.Duration, maxBytes int64) *HTTPFetcher {
	if client == nil {
		client = httputil.NewClient()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &HTTPFetcher{client: client, timeout: timeout, maxBytes: maxBytes}
}

// Fetch downloads the full payload at location.
func (f *HTTPFetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	resp, err := httputil.Get(ctx, f.client, location, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetching %s: unexpected status %d", location, resp.StatusCode)
	}

	if resp.ContentLength > f.maxBytes {
		return nil, fmt.Errorf("fetching %s: declared %d bytes: %w", location, resp.ContentLength, ErrTooLarge)
	}

	payload, err := httputil.ReadLimited(resp.Body, f.maxBytes)
	if err != nil {
		if errors.Is(err, httputil.ErrTooLarge) {
			return nil, fmt.Errorf("fetching %s: %w", location, ErrTooLarge)
		}
		return nil, fmt.Errorf("fetching %s: %w", location, err)
	}

	return payload, nil
}
