// Package requester implements the transports modules fetch content with.
package requester

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/vulnverified/subsweep/internal/engine"
)

const (
	maxBody           = 50 * 1024 * 1024 // 50MB
	defaultRetryDelay = 3 * time.Second
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.URL, e.Code)
}

// HTTPClient is a plain net/http requester. It embeds a mutex that
// callers hold while running or reconfiguring it.
type HTTPClient struct {
	sync.Mutex

	config  engine.RequesterConfig
	client  *http.Client
	limiter *rate.Limiter

	// Retries is how many times a transport error or 5xx is retried.
	// 4xx responses are never retried.
	Retries    int
	RetryDelay time.Duration
}

// NewHTTPClient returns a client with the default configuration.
func NewHTTPClient() *HTTPClient {
	c := &HTTPClient{
		Retries:    1,
		RetryDelay: defaultRetryDelay,
	}
	c.Configure(engine.DefaultRequesterConfig())
	return c
}

// Config returns a copy of the current configuration.
func (c *HTTPClient) Config() engine.RequesterConfig {
	return c.config.Clone()
}

// Configure replaces the configuration and rebuilds the underlying client.
// An unparsable proxy is ignored; validate configs before broadcasting.
func (c *HTTPClient) Configure(cfg engine.RequesterConfig) {
	c.config = cfg.Clone()

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if proxy, err := cfg.ProxyURL(); err == nil && proxy != nil {
		transport.Proxy = http.ProxyURL(proxy)
	}

	c.client = &http.Client{
		Timeout:   cfg.Timeout,
		Transport: transport,
	}

	c.limiter = nil
	if cfg.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}
}

// Get fetches rawURL, retrying once on transient failures.
func (c *HTTPClient) Get(ctx context.Context, rawURL string) (engine.Content, error) {
	body, err := c.doRequest(ctx, rawURL)
	for attempt := 0; err != nil && attempt < c.Retries; attempt++ {
		var se *StatusError
		if errors.As(err, &se) && se.Code < 500 {
			break
		}
		if ctx.Err() != nil {
			break
		}

		select {
		case <-ctx.Done():
			return engine.Content{}, ctx.Err()
		case <-time.After(c.RetryDelay):
		}
		body, err = c.doRequest(ctx, rawURL)
	}
	if err != nil {
		return engine.Content{}, err
	}
	return engine.Content{Body: body}, nil
}

func (c *HTTPClient) doRequest(ctx context.Context, rawURL string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	for name, values := range c.config.Headers {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		var ue *url.Error
		if errors.As(err, &ue) {
			ue.URL = redact(ue.URL)
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))
		return nil, &StatusError{URL: redact(rawURL), Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// redact drops the query string, which may carry an API key.
func redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "<invalid url>"
	}
	u.RawQuery = ""
	u.User = nil
	return u.String()
}
