package recon

import "fmt"

const subdomaincenterBaseURL = "https://api.subdomain.center"

func SubdomainCenter() *Integration { return newSubdomainCenter(subdomaincenterBaseURL) }

func newSubdomainCenter(base string) *Integration {
	return NewIntegration(jsonSource("subdomaincenter",
		func(domain string) string { return fmt.Sprintf("%s/?domain=%s", base, domain) },
		NoAuth(),
		decodeStrings,
	))
}
