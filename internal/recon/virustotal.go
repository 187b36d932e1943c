package recon

import (
	"fmt"
	"net/url"

	"github.com/vulnverified/subsweep/internal/engine"
)

const virustotalBaseURL = "https://www.virustotal.com/api/v3/domains"

type virustotalResponse struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
	Links struct {
		Next string `json:"next"`
	} `json:"links"`
}

// VirusTotal queries the VirusTotal v3 subdomain relationship.
func VirusTotal() *Integration { return newVirusTotal(virustotalBaseURL) }

func newVirusTotal(base string) *Integration {
	cfg := jsonSource("virustotal",
		func(domain string) string { return fmt.Sprintf("%s/%s/subdomains?limit=40", base, domain) },
		APIKeyAsHeader("x-apikey"),
		extractVirusTotal,
	)
	cfg.NextURL = nextVirusTotal
	return NewIntegration(cfg)
}

func extractVirusTotal(c engine.Content, _ string) []string {
	var resp virustotalResponse
	if err := c.Decode(&resp); err != nil {
		return nil
	}
	names := make([]string, 0, len(resp.Data))
	for _, d := range resp.Data {
		names = append(names, d.ID)
	}
	return names
}

func nextVirusTotal(_ *url.URL, c engine.Content) *url.URL {
	var resp virustotalResponse
	if err := c.Decode(&resp); err != nil || resp.Links.Next == "" {
		return nil
	}
	next, err := url.Parse(resp.Links.Next)
	if err != nil {
		return nil
	}
	return next
}
