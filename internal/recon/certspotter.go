package recon

import (
	"fmt"
	"net/url"

	"github.com/vulnverified/subsweep/internal/engine"
)

const certspotterBaseURL = "https://api.certspotter.com/v1/issuances"

type certspotterIssuance struct {
	ID       string   `json:"id"`
	DNSNames []string `json:"dns_names"`
}

// CertSpotter queries SSLMate CertSpotter issuances. Pages are chained by
// the id of the last issuance seen.
func CertSpotter() *Integration { return newCertSpotter(certspotterBaseURL) }

func newCertSpotter(base string) *Integration {
	cfg := jsonSource("certspotter",
		func(domain string) string {
			return fmt.Sprintf("%s?domain=%s&include_subdomains=true&expand=dns_names", base, domain)
		},
		APIKeyAsHeader("Authorization").Encoded(bearer),
		extractCertSpotter,
	)
	cfg.NextURL = nextCertSpotter
	return NewIntegration(cfg)
}

func extractCertSpotter(c engine.Content, _ string) []string {
	var issuances []certspotterIssuance
	if err := c.Decode(&issuances); err != nil {
		return nil
	}
	var names []string
	for _, is := range issuances {
		names = append(names, is.DNSNames...)
	}
	return names
}

func nextCertSpotter(current *url.URL, c engine.Content) *url.URL {
	var issuances []certspotterIssuance
	if err := c.Decode(&issuances); err != nil || len(issuances) == 0 {
		return nil
	}
	last := issuances[len(issuances)-1].ID
	if last == "" || current.Query().Get("after") == last {
		return nil
	}
	return setQuery(current, "after", last)
}
