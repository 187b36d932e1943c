package recon

import (
	"fmt"
	"net/url"

	"github.com/vulnverified/subsweep/internal/engine"
)

const shodanBaseURL = "https://api.shodan.io"

type shodanResponse struct {
	Subdomains []string `json:"subdomains"`
	More       bool     `json:"more"`
}

// Shodan queries the Shodan DNS API. Labels come back bare and further
// pages are flagged with "more".
func Shodan() *Integration { return newShodan(shodanBaseURL) }

func newShodan(base string) *Integration {
	cfg := jsonSource("shodan",
		func(domain string) string { return fmt.Sprintf("%s/dns/domain/%s", base, domain) },
		APIKeyAsQueryParam("key"),
		extractSubdomainPrefixes,
	)
	cfg.NextURL = nextShodan
	return NewIntegration(cfg)
}

func nextShodan(current *url.URL, c engine.Content) *url.URL {
	var resp shodanResponse
	if err := c.Decode(&resp); err != nil || !resp.More {
		return nil
	}
	return nextPage(current, "page")
}
