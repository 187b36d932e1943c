package recon

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/vulnverified/subsweep/internal/engine"
	"github.com/vulnverified/subsweep/internal/extract"
	"github.com/vulnverified/subsweep/internal/requester"
)

// withDomain expands bare labels ("bar") into hostnames under domain.
func withDomain(prefixes []string, domain string) []string {
	names := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		p = strings.Trim(strings.TrimSpace(p), ".")
		if p == "" {
			names = append(names, domain)
			continue
		}
		names = append(names, p+"."+domain)
	}
	return names
}

// nextPage increments the integer query parameter param, treating a
// missing value as page 1.
func nextPage(u *url.URL, param string) *url.URL {
	page, err := strconv.Atoi(u.Query().Get(param))
	if err != nil || page < 1 {
		page = 1
	}
	return setQuery(u, param, strconv.Itoa(page+1))
}

// jsonSource is the common shape of single-endpoint JSON integrations.
func jsonSource(name string, query QueryURLFunc, auth AuthMethod, fn extract.JSONFunc) IntegrationConfig {
	return IntegrationConfig{
		Name:      name,
		QueryURL:  query,
		Auth:      auth,
		Requester: requester.NewHTTPClient(),
		Extractor: extract.NewJSONExtractor(fn),
		Headers:   http.Header{"Accept": []string{"application/json"}},
	}
}

// textSource is the common shape of integrations that return plain text or
// HTML scraped with the regex extractor.
func textSource(name string, query QueryURLFunc) IntegrationConfig {
	return IntegrationConfig{
		Name:      name,
		QueryURL:  query,
		Requester: requester.NewHTTPClient(),
		Extractor: extract.RegexExtractor{},
	}
}

// decodeStrings decodes a bare JSON array of strings.
func decodeStrings(c engine.Content, _ string) []string {
	var names []string
	if err := c.Decode(&names); err != nil {
		return nil
	}
	return names
}
