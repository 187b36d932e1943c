package recon

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/vulnverified/subsweep/internal/engine"
	"github.com/vulnverified/subsweep/internal/extract"
	"github.com/vulnverified/subsweep/internal/requester"
	"github.com/vulnverified/subsweep/internal/subdomain"
)

const (
	githubModuleName = "github"
	githubSearchURL  = "https://api.github.com/search/code"
	githubRawBaseURL = "https://raw.githubusercontent.com"
)

type githubSearchResponse struct {
	Items []struct {
		HTMLURL string `json:"html_url"`
	} `json:"items"`
}

// GitHub searches public code for the domain, then fetches every matching
// file raw and scrapes hostnames out of it.
type GitHub struct {
	searchURL string
	rawBase   string
	requester engine.Requester
	extractor extract.RegexExtractor
}

// NewGitHub returns the GitHub code search module.
func NewGitHub() *GitHub {
	return newGitHub(githubSearchURL, githubRawBaseURL)
}

func newGitHub(searchURL, rawBase string) *GitHub {
	return &GitHub{
		searchURL: searchURL,
		rawBase:   rawBase,
		requester: requester.NewHTTPClient(),
	}
}

func (m *GitHub) Name() string                { return githubModuleName }
func (m *GitHub) Requester() engine.Requester { return m.requester }
func (m *GitHub) Extractor() engine.Extractor { return m.extractor }
func (m *GitHub) Auth() AuthMethod            { return APIKeyAsHeader("Authorization") }

func (m *GitHub) Run(ctx context.Context, domain string) engine.Outcome {
	results := subdomain.NewSet()

	key, ok := lookupAPIKey(githubModuleName)
	if !ok {
		return engine.Outcome{Subdomains: results, Status: engine.Skipped(engine.AuthenticationNotProvided)}
	}

	u, err := parseURL(fmt.Sprintf("%s?per_page=100&q=%s&sort=created&order=asc", m.searchURL, url.QueryEscape(domain)))
	if err != nil {
		return engine.Outcome{Subdomains: results, Status: engine.Failed(err)}
	}

	m.requester.Lock()
	defer m.requester.Unlock()

	cfg := m.requester.Config()
	cfg.AddHeader("Authorization", "token "+key)
	cfg.AddHeader("Accept", "application/vnd.github.v3+json")
	m.requester.Configure(cfg)

	content, err := m.requester.Get(ctx, u.String())
	if err != nil {
		return engine.Outcome{Subdomains: results, Status: engine.Failed(engine.NewModuleError(engine.ErrHTTP, err))}
	}
	if content, err = content.AsJSON(); err != nil {
		return engine.Outcome{Subdomains: results, Status: engine.Failed(err)}
	}

	// Unreachable files are skipped; the search itself succeeded.
	for _, raw := range m.rawURLs(content) {
		file, err := m.requester.Get(ctx, raw)
		if err != nil {
			continue
		}
		results.Union(m.extractor.Extract(file, domain))
	}

	return engine.Outcome{Subdomains: results, Status: engine.Finished()}
}

// rawURLs maps every search hit to its raw file URL.
func (m *GitHub) rawURLs(c engine.Content) []string {
	var resp githubSearchResponse
	if err := c.Decode(&resp); err != nil {
		return nil
	}
	var urls []string
	for _, item := range resp.Items {
		if raw, ok := m.rawURL(item.HTMLURL); ok {
			urls = append(urls, raw)
		}
	}
	return urls
}

// rawURL rewrites https://github.com/<owner>/<repo>/blob/<ref>/<path> to
// the matching raw.githubusercontent.com URL.
func (m *GitHub) rawURL(htmlURL string) (string, bool) {
	if htmlURL == "" {
		return "", false
	}
	src, err := url.Parse(htmlURL)
	if err != nil {
		return "", false
	}
	raw, err := url.Parse(m.rawBase)
	if err != nil {
		return "", false
	}
	raw.Path = strings.TrimSuffix(raw.Path, "/") + strings.Replace(src.Path, "/blob/", "/", 1)
	return raw.String(), true
}
