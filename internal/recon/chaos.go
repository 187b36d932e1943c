package recon

import "fmt"

const chaosBaseURL = "https://dns.projectdiscovery.io/dns"

// Chaos queries the ProjectDiscovery Chaos dataset, which lists bare
// labels under the queried domain.
func Chaos() *Integration { return newChaos(chaosBaseURL) }

func newChaos(base string) *Integration {
	return NewIntegration(jsonSource("chaos",
		func(domain string) string { return fmt.Sprintf("%s/%s/subdomains", base, domain) },
		APIKeyAsHeader("Authorization"),
		extractSubdomainPrefixes,
	))
}
