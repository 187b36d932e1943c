package recon

import (
	"fmt"

	"github.com/vulnverified/subsweep/internal/engine"
)

const dnsdumpsterBaseURL = "https://api.dnsdumpster.com/domain"

type dnsdumpsterRecord struct {
	Host string `json:"host"`
}

type dnsdumpsterResponse struct {
	A  []dnsdumpsterRecord `json:"a"`
	NS []dnsdumpsterRecord `json:"ns"`
	MX []dnsdumpsterRecord `json:"mx"`
}

// DNSDumpster queries the DNSDumpster API.
func DNSDumpster() *Integration { return newDNSDumpster(dnsdumpsterBaseURL) }

func newDNSDumpster(base string) *Integration {
	return NewIntegration(jsonSource("dnsdumpster",
		func(domain string) string { return fmt.Sprintf("%s/%s", base, domain) },
		APIKeyAsHeader("X-API-Key"),
		extractDNSDumpster,
	))
}

func extractDNSDumpster(c engine.Content, _ string) []string {
	var resp dnsdumpsterResponse
	if err := c.Decode(&resp); err != nil {
		return nil
	}
	var names []string
	for _, group := range [][]dnsdumpsterRecord{resp.A, resp.NS, resp.MX} {
		for _, r := range group {
			names = append(names, r.Host)
		}
	}
	return names
}
