// Package recon implements the subsweep discovery modules.
package recon

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/vulnverified/subsweep/internal/engine"
	"github.com/vulnverified/subsweep/internal/extract"
	"github.com/vulnverified/subsweep/internal/subdomain"
)

// QueryURLFunc builds the first request URL for a domain.
type QueryURLFunc func(domain string) string

// NextURLFunc returns the next page URL, or nil when there is none.
type NextURLFunc func(current *url.URL, content engine.Content) *url.URL

// noNextURL is the NextURLFunc of single-page sources.
func noNextURL(*url.URL, engine.Content) *url.URL { return nil }

// Integration is the generic paginated API module. Its URL and pagination
// functions are pure, so one Integration is safe to share across scans.
type Integration struct {
	name      string
	queryURL  QueryURLFunc
	nextURL   NextURLFunc
	auth      AuthMethod
	requester engine.Requester
	extractor engine.Extractor
	headers   http.Header
	validate  func(engine.Content) error
}

// IntegrationConfig holds the parts an Integration is built from.
type IntegrationConfig struct {
	Name      string
	QueryURL  QueryURLFunc
	NextURL   NextURLFunc // nil means single page
	Auth      AuthMethod
	Requester engine.Requester
	Extractor engine.Extractor
	// Headers are sent on every request of the run.
	Headers http.Header
	// Validate, if set, rejects responses that carry an error in a 2xx body.
	Validate func(engine.Content) error
}

// NewIntegration builds a generic API module.
func NewIntegration(cfg IntegrationConfig) *Integration {
	if cfg.NextURL == nil {
		cfg.NextURL = noNextURL
	}
	return &Integration{
		name:      cfg.Name,
		queryURL:  cfg.QueryURL,
		nextURL:   cfg.NextURL,
		auth:      cfg.Auth,
		requester: cfg.Requester,
		extractor: cfg.Extractor,
		headers:   cfg.Headers,
		validate:  cfg.Validate,
	}
}

func (m *Integration) Name() string                { return m.name }
func (m *Integration) Requester() engine.Requester { return m.requester }
func (m *Integration) Extractor() engine.Extractor { return m.extractor }

// Auth returns the module's authentication method.
func (m *Integration) Auth() AuthMethod { return m.auth }

// Run walks the source's pages until one yields no subdomains or
// the source stops pointing at a next page.
func (m *Integration) Run(ctx context.Context, domain string) engine.Outcome {
	results := subdomain.NewSet()

	u, err := parseURL(m.queryURL(domain))
	if err != nil {
		return engine.Outcome{Subdomains: results, Status: engine.Failed(err)}
	}

	m.requester.Lock()
	defer m.requester.Unlock()

	m.applyHeaders()

	if m.auth.IsSet() {
		key, ok := lookupAPIKey(m.name)
		if !ok {
			return engine.Outcome{Subdomains: results, Status: engine.Skipped(engine.AuthenticationNotProvided)}
		}
		u = m.authenticate(u, key)
	}

	_, structured := m.extractor.(*extract.JSONExtractor)

	for {
		content, err := m.requester.Get(ctx, u.String())
		if err != nil {
			return failure(results, engine.NewModuleError(engine.ErrHTTP, err))
		}
		if structured {
			if content, err = content.AsJSON(); err != nil {
				return failure(results, err)
			}
		}
		if m.validate != nil {
			if err := m.validate(content); err != nil {
				return failure(results, err)
			}
		}

		found := m.extractor.Extract(content, domain)
		if found.Len() == 0 {
			break
		}
		results.Union(found)

		next := m.nextURL(u, content)
		if next == nil {
			break
		}
		u = next
	}

	return engine.Outcome{Subdomains: results, Status: engine.Finished()}
}

// applyHeaders sets the module's fixed headers on its requester. A registry
// broadcast replaces requester headers, so this runs at the start of every run.
func (m *Integration) applyHeaders() {
	if len(m.headers) == 0 {
		return
	}
	cfg := m.requester.Config()
	for name := range m.headers {
		cfg.AddHeader(name, m.headers.Get(name))
	}
	m.requester.Configure(cfg)
}

// authenticate attaches key per the module's AuthMethod. Header keys are
// stored on the requester, so the caller must hold its lock.
func (m *Integration) authenticate(u *url.URL, key string) *url.URL {
	switch m.auth.Kind {
	case AuthHeader:
		cfg := m.requester.Config()
		cfg.AddHeader(m.auth.Name, m.auth.headerValue(key))
		m.requester.Configure(cfg)
	case AuthQueryParam:
		setQueryWithoutOverride(u, m.auth.Name, key)
	case AuthURLSlug:
		return u.JoinPath(key)
	}
	return u
}

// failure ends a run, keeping whatever was gathered before the error.
func failure(results subdomain.Set, err error) engine.Outcome {
	if results.Len() > 0 {
		return engine.Outcome{Subdomains: results, Status: engine.FailedWithResult()}
	}
	return engine.Outcome{Subdomains: results, Status: engine.Failed(err)}
}

// parseURL accepts only absolute URLs.
func parseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, engine.NewModuleError(engine.ErrURLParse, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, engine.NewModuleError(engine.ErrURLParse, fmt.Errorf("%q is not an absolute url", raw))
	}
	return u, nil
}
