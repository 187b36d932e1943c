package recon

import (
	"fmt"

	"github.com/vulnverified/subsweep/internal/engine"
)

const bevigilBaseURL = "https://osint.bevigil.com/api"

type subdomainsResponse struct {
	Subdomains []string `json:"subdomains"`
}

// Bevigil queries the BeVigil OSINT API.
func Bevigil() *Integration { return newBevigil(bevigilBaseURL) }

func newBevigil(base string) *Integration {
	return NewIntegration(jsonSource("bevigil",
		func(domain string) string { return fmt.Sprintf("%s/%s/subdomains", base, domain) },
		APIKeyAsHeader("X-Access-Token"),
		extractSubdomainsField,
	))
}

// extractSubdomainsField reads {"subdomains": [...]} holding full hostnames.
func extractSubdomainsField(c engine.Content, _ string) []string {
	var resp subdomainsResponse
	if err := c.Decode(&resp); err != nil {
		return nil
	}
	return resp.Subdomains
}

// extractSubdomainPrefixes reads {"subdomains": [...]} holding bare labels.
func extractSubdomainPrefixes(c engine.Content, domain string) []string {
	var resp subdomainsResponse
	if err := c.Decode(&resp); err != nil {
		return nil
	}
	return withDomain(resp.Subdomains, domain)
}
