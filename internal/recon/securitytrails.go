package recon

import "fmt"

const securitytrailsBaseURL = "https://api.securitytrails.com/v1/domain"

// SecurityTrails queries the SecurityTrails subdomain listing, which
// returns bare labels.
func SecurityTrails() *Integration { return newSecurityTrails(securitytrailsBaseURL) }

func newSecurityTrails(base string) *Integration {
	return NewIntegration(jsonSource("securitytrails",
		func(domain string) string { return fmt.Sprintf("%s/%s/subdomains", base, domain) },
		APIKeyAsHeader("APIKEY"),
		extractSubdomainPrefixes,
	))
}
