package engine

import (
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	// DefaultTimeout is the per-request HTTP timeout.
	DefaultTimeout = 15 * time.Second
	// DefaultUserAgent mimics a desktop Chrome so search engines serve full pages.
	DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/129.0.0.0 Safari/537.36"
	// DefaultConcurrency is the number of module workers.
	DefaultConcurrency = 4
	// DefaultResolverConcurrency is the number of DNS resolution workers.
	DefaultResolverConcurrency = 16
)

// RequesterConfig is the mutable network configuration owned by a requester.
type RequesterConfig struct {
	Timeout   time.Duration
	UserAgent string
	Proxy     string
	Headers   http.Header
	// RateLimit caps requests per second; zero disables limiting.
	RateLimit float64
}

// DefaultRequesterConfig returns the configuration requesters start with.
func DefaultRequesterConfig() RequesterConfig {
	return RequesterConfig{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
		Headers:   http.Header{},
	}
}

// Clone returns a copy whose header map can be mutated independently.
func (c RequesterConfig) Clone() RequesterConfig {
	c.Headers = c.Headers.Clone()
	if c.Headers == nil {
		c.Headers = http.Header{}
	}
	return c
}

// AddHeader sets a header, replacing any value under the same canonical key.
func (c *RequesterConfig) AddHeader(name, value string) {
	if c.Headers == nil {
		c.Headers = http.Header{}
	}
	c.Headers.Set(name, value)
}

// ProxyURL parses the proxy setting. A nil URL means no proxy.
func (c RequesterConfig) ProxyURL() (*url.URL, error) {
	if c.Proxy == "" {
		return nil, nil
	}
	u, err := url.Parse(c.Proxy)
	if err != nil {
		return nil, fmt.Errorf("parse proxy: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("proxy %q must include scheme and host", c.Proxy)
	}
	return u, nil
}

// Validate checks the configuration before it is broadcast to requesters.
func (c RequesterConfig) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate limit must not be negative")
	}
	_, err := c.ProxyURL()
	return err
}
