package recon

import (
	"fmt"

	"github.com/vulnverified/subsweep/internal/engine"
)

const builtwithBaseURL = "https://api.builtwith.com/v21/api.json"

type builtwithResponse struct {
	Results []struct {
		Result struct {
			Paths []struct {
				SubDomain string `json:"SubDomain"`
			} `json:"Paths"`
		} `json:"Result"`
	} `json:"Results"`
}

// BuiltWith queries the BuiltWith domain API.
func BuiltWith() *Integration { return newBuiltWith(builtwithBaseURL) }

func newBuiltWith(base string) *Integration {
	return NewIntegration(jsonSource("builtwith",
		func(domain string) string {
			return fmt.Sprintf("%s?LOOKUP=%s&HIDETEXT=yes&HIDEDL=yes&NOLIVE=yes&NOMETA=yes&NOPII=yes&NOATTR=yes", base, domain)
		},
		APIKeyAsQueryParam("KEY"),
		extractBuiltWith,
	))
}

func extractBuiltWith(c engine.Content, domain string) []string {
	var resp builtwithResponse
	if err := c.Decode(&resp); err != nil {
		return nil
	}
	var prefixes []string
	for _, r := range resp.Results {
		for _, p := range r.Result.Paths {
			prefixes = append(prefixes, p.SubDomain)
		}
	}
	return withDomain(prefixes, domain)
}
