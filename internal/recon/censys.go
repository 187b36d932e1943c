package recon

import (
	"fmt"
	"net/url"

	"github.com/vulnverified/subsweep/internal/engine"
)

const censysBaseURL = "https://search.censys.io/api/v2/certificates/search"

type censysResponse struct {
	Result struct {
		Hits []struct {
			Names []string `json:"names"`
		} `json:"hits"`
		Links struct {
			Next string `json:"next"`
		} `json:"links"`
	} `json:"result"`
}

// Censys searches Censys certificates. The API key is "<id>:<secret>".
func Censys() *Integration { return newCensys(censysBaseURL) }

func newCensys(base string) *Integration {
	cfg := jsonSource("censys",
		func(domain string) string { return fmt.Sprintf("%s?q=%s", base, domain) },
		APIKeyAsHeader("Authorization").Encoded(basicAuth),
		extractCensys,
	)
	cfg.NextURL = nextCensys
	return NewIntegration(cfg)
}

func extractCensys(c engine.Content, _ string) []string {
	var resp censysResponse
	if err := c.Decode(&resp); err != nil {
		return nil
	}
	var names []string
	for _, hit := range resp.Result.Hits {
		names = append(names, hit.Names...)
	}
	return names
}

func nextCensys(current *url.URL, c engine.Content) *url.URL {
	var resp censysResponse
	if err := c.Decode(&resp); err != nil || resp.Result.Links.Next == "" {
		return nil
	}
	return setQuery(current, "cursor", resp.Result.Links.Next)
}
