package recon

import (
	"fmt"

	"github.com/vulnverified/subsweep/internal/engine"
)

const dnsrepoBaseURL = "https://dnsarchive.net/api/"

// DNSRepo queries the DNSRepo archive API.
func DNSRepo() *Integration { return newDNSRepo(dnsrepoBaseURL) }

func newDNSRepo(base string) *Integration {
	return NewIntegration(jsonSource("dnsrepo",
		func(domain string) string { return fmt.Sprintf("%s?search=%s", base, domain) },
		APIKeyAsQueryParam("apikey"),
		extractDNSRepo,
	))
}

func extractDNSRepo(c engine.Content, _ string) []string {
	var records []struct {
		Domain string `json:"domain"`
	}
	if err := c.Decode(&records); err != nil {
		return nil
	}
	names := make([]string, 0, len(records))
	for _, r := range records {
		names = append(names, r.Domain)
	}
	return names
}
