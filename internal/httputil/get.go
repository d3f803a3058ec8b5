// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/wikidata-graph/pkg/types"
)

// StatusError reports a response outside the 2xx range.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d from %s", e.StatusCode, e.URL)
}

// Get issues a GET request for url with the configured User-Agent and an
// Accept header of application/json. A non-2xx response is drained, closed,
// and returned as a *StatusError. On success the caller owns resp.Body.
func Get(ctx context.Context, client *http.Client, url string, cfg types.HTTPConfig) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}
	return resp, nil
}

// ErrBodyTooLarge is returned by a Body reader once the response exceeds
// the configured cap.
var ErrBodyTooLarge = errors.New("response body exceeds size limit")

// Body returns resp.Body capped at maxBytes. Reading past the cap fails with
// ErrBodyTooLarge instead of ending early, so a capped body is never
// mistaken for a complete one. A cap of zero or less returns the body
// unchanged.
func Body(resp *http.Response, maxBytes int64) io.Reader {
	if maxBytes <= 0 {
		return resp.Body
	}
	return &cappedReader{r: io.LimitReader(resp.Body, maxBytes+1), left: maxBytes}
}

type cappedReader struct {
	r    io.Reader
	left int64
}

func (c *cappedReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if int64(n) > c.left {
		n = int(c.left)
		c.left = 0
		return n, ErrBodyTooLarge
	}
	c.left -= int64(n)
	return n, err
}
