package source

import (
	"io"
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"
)

var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type ClientOption func(c *Client)

// WithLogger specifies the logger for the client
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// WithConcurrencyLimit specifies the maximum number of simultaneous
// in-flight requests. Defaults to 20
func WithConcurrencyLimit(n int) ClientOption {
	return func(c *Client) {
		c.concurrencyLimit = int64(n)
	}
}

// WithRequestsPerSecond paces outbound requests. Zero (default) means unlimited
func WithRequestsPerSecond(rps float64) ClientOption {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)

			return
		}

		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithHTTPClient overrides the underlying HTTP client
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) {
		c.client = h
	}
}

type SourcesOption func(s *Sources)

// WithSourcesLogger specifies the logger for the sources
func WithSourcesLogger(l *slog.Logger) SourcesOption {
	return func(s *Sources) {
		s.logger = l
	}
}

// WithEndpoints overrides the upstream endpoints
func WithEndpoints(e Endpoints) SourcesOption {
	return func(s *Sources) {
		s.endpoints = e
	}
}
