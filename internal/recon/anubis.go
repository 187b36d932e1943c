package recon

import "fmt"

const anubisBaseURL = "https://jonlu.ca/anubis/subdomains"

// Anubis queries the Anubis subdomain database, which returns a bare JSON
// array of hostnames.
func Anubis() *Integration { return newAnubis(anubisBaseURL) }

func newAnubis(base string) *Integration {
	return NewIntegration(jsonSource("anubis",
		func(domain string) string { return fmt.Sprintf("%s/%s", base, domain) },
		NoAuth(),
		decodeStrings,
	))
}
