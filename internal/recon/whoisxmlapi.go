package recon

import (
	"fmt"

	"github.com/vulnverified/subsweep/internal/engine"
)

const whoisxmlapiBaseURL = "https://subdomains.whoisxmlapi.com/api/v1"

type whoisxmlapiResponse struct {
	Result struct {
		Records []struct {
			Domain string `json:"domain"`
		} `json:"records"`
	} `json:"result"`
}

// WhoisXMLAPI queries the WhoisXML API subdomain lookup.
func WhoisXMLAPI() *Integration { return newWhoisXMLAPI(whoisxmlapiBaseURL) }

func newWhoisXMLAPI(base string) *Integration {
	return NewIntegration(jsonSource("whoisxmlapi",
		func(domain string) string { return fmt.Sprintf("%s/?domainName=%s", base, domain) },
		APIKeyAsQueryParam("apiKey"),
		extractWhoisXMLAPI,
	))
}

func extractWhoisXMLAPI(c engine.Content, _ string) []string {
	var resp whoisxmlapiResponse
	if err := c.Decode(&resp); err != nil {
		return nil
	}
	names := make([]string, 0, len(resp.Result.Records))
	for _, r := range resp.Result.Records {
		names = append(names, r.Domain)
	}
	return names
}
