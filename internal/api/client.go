// Package api is the client for the job backend's mixed-jobs and
// external-jobs endpoints.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"jobboard-engine/internal/config"
	"jobboard-engine/internal/logging"
	"jobboard-engine/internal/netutil"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

const userAgent = "JobBoard/1.0 (+local)"

// ErrUnsuccessful is returned when the backend answers 2xx with success=false.
var ErrUnsuccessful = errors.New("backend reported success=false")

// StatusError is a non-2xx backend response.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend status %d for %s", e.Code, e.URL)
}

type Client struct {
	base string
	hc   *http.Client
	lim  *netutil.HostLimiter
	log  *zap.SugaredLogger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.hc = hc } }
func WithLimiter(l *netutil.HostLimiter) Option {
	return func(c *Client) { c.lim = l }
}
func WithLogger(l *zap.SugaredLogger) Option { return func(c *Client) { c.log = l } }

// WithTimeout bounds every request. Zero keeps the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.hc.Timeout = d
		}
	}
}

// New returns a client for the already resolved base url.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		base: baseURL,
		hc:   &http.Client{},
	}
	for _, o := range opts {
		o(c)
	}
	c.log = logging.OrNop(c.log)
	return c
}

// BaseURL returns the base url the client was built with.
func (c *Client) BaseURL() string { return c.base }

func (c *Client) do(ctx context.Context, method, endpoint string, q url.Values, out any) error {
	u := config.JoinURL(c.base, endpoint)
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	if err := c.lim.WaitURL(ctx, u); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return errors.Wrapf(err, "build request %s", endpoint)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	res, err := c.hc.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, endpoint)
	}
	defer res.Body.Close()

	c.log.Debugw("[api] response", "method", method, "endpoint", endpoint, "status", res.StatusCode, "ms", time.Since(start).Milliseconds())

	if res.StatusCode < 200 || res.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 64<<10))
		return &StatusError{Code: res.StatusCode, URL: endpoint}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 64<<10))
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decode %s", endpoint)
	}
	return nil
}
