package source

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

const (
	// DefaultConcurrencyLimit is the default number of simultaneous in-flight requests
	DefaultConcurrencyLimit = 20

	// DefaultTimeout is the bounded wait used when a request doesn't specify one
	DefaultTimeout = 10 * time.Second

	defaultUserAgent = "Mozilla/5.0 (iPhone; U; CPU iPhone OS 4_3_3 like Mac OS X; en-us) " +
		"AppleWebKit/533.17.9 (KHTML, like Gecko)" +
		"Version/5.0.2 Mobile/8J2 Safari/6533.18.5"

	maxBodySize = 16 << 20
)

// Request is a single upstream fetch
type Request struct {
	Params  url.Values
	Source  string
	URL     string
	Timeout time.Duration
}

// Client performs upstream fetches. All fetches share one
// counting semaphore, bounding the number of in-flight requests
type Client struct {
	client  *http.Client
	logger  *slog.Logger
	sem     *semaphore.Weighted
	limiter *rate.Limiter

	userAgent        string
	concurrencyLimit int64
}

// NewClient creates a new upstream fetch client
func NewClient(opts ...ClientOption) *Client {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.TLSClientConfig = &tls.Config{
		InsecureSkipVerify: true, //nolint:gosec // the quotes panel doesn't serve a valid chain
	}

	c := &Client{
		client: &http.Client{
			Transport: tr,
		},
		logger:           noopLogger,
		limiter:          rate.NewLimiter(rate.Inf, 0),
		userAgent:        defaultUserAgent,
		concurrencyLimit: DefaultConcurrencyLimit,
	}

	// Apply the options
	for _, opt := range opts {
		opt(c)
	}

	if c.concurrencyLimit <= 0 {
		c.concurrencyLimit = DefaultConcurrencyLimit
	}

	c.sem = semaphore.NewWeighted(c.concurrencyLimit)

	return c
}

// Fetch executes the request and returns the raw response body.
// Fails with *TransportError or *TimeoutError
func (c *Client) Fetch(ctx context.Context, r Request) ([]byte, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	target := r.URL
	if len(r.Params) > 0 {
		target += "?" + r.Params.Encode()
	}

	// Wait for a free slot
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return nil, c.wrapErr(r.Source, target, timeout, err)
	}
	defer c.sem.Release(1)

	fetchCtx, cancelFn := context.WithTimeout(ctx, timeout)
	defer cancelFn()

	if err := c.limiter.Wait(fetchCtx); err != nil {
		return nil, c.wrapErr(r.Source, target, timeout, err)
	}

	req, err := http.NewRequestWithContext(fetchCtx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, &TransportError{
			Source: r.Source,
			URL:    target,
			Err:    fmt.Errorf("unable to create GET request: %w", err),
		}
	}

	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, c.wrapErr(r.Source, target, timeout, err)
	}
	defer resp.Body.Close()

	c.logger.Info(
		"fetched url",
		"source", r.Source,
		"url", target,
		"status", resp.StatusCode,
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{
			Source:     r.Source,
			URL:        target,
			StatusCode: resp.StatusCode,
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, c.wrapErr(r.Source, target, timeout, err)
	}

	return body, nil
}

// wrapErr classifies the fetch error into a timeout or transport error
func (c *Client) wrapErr(source, target string, timeout time.Duration, err error) error {
	var netErr net.Error

	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &TimeoutError{
			Source:  source,
			URL:     target,
			Timeout: timeout.String(),
			Err:     err,
		}
	}

	return &TransportError{
		Source: source,
		URL:    target,
		Err:    err,
	}
}
