package recon

import (
	"fmt"

	"github.com/vulnverified/subsweep/internal/engine"
)

const alienvaultBaseURL = "https://otx.alienvault.com"

type alienvaultResponse struct {
	PassiveDNS []struct {
		Hostname string `json:"hostname"`
	} `json:"passive_dns"`
}

// AlienVault queries AlienVault OTX passive DNS.
func AlienVault() *Integration { return newAlienVault(alienvaultBaseURL) }

func newAlienVault(base string) *Integration {
	return NewIntegration(jsonSource("alienvault",
		func(domain string) string {
			return fmt.Sprintf("%s/api/v1/indicators/domain/%s/passive_dns", base, domain)
		},
		NoAuth(),
		extractAlienVault,
	))
}

func extractAlienVault(c engine.Content, _ string) []string {
	var resp alienvaultResponse
	if err := c.Decode(&resp); err != nil {
		return nil
	}
	names := make([]string, 0, len(resp.PassiveDNS))
	for _, entry := range resp.PassiveDNS {
		names = append(names, entry.Hostname)
	}
	return names
}
