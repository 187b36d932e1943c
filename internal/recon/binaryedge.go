package recon

import (
	"fmt"
	"net/url"

	"github.com/vulnverified/subsweep/internal/engine"
)

const binaryedgeBaseURL = "https://api.binaryedge.io/v2/query/domains/subdomain"

type binaryedgeResponse struct {
	Page     int      `json:"page"`
	PageSize int      `json:"pagesize"`
	Total    int      `json:"total"`
	Events   []string `json:"events"`
}

// BinaryEdge queries the BinaryEdge subdomain API.
func BinaryEdge() *Integration { return newBinaryEdge(binaryedgeBaseURL) }

func newBinaryEdge(base string) *Integration {
	cfg := jsonSource("binaryedge",
		func(domain string) string { return fmt.Sprintf("%s/%s", base, domain) },
		APIKeyAsHeader("X-Key"),
		extractBinaryEdge,
	)
	cfg.NextURL = nextBinaryEdge
	return NewIntegration(cfg)
}

func extractBinaryEdge(c engine.Content, _ string) []string {
	var resp binaryedgeResponse
	if err := c.Decode(&resp); err != nil {
		return nil
	}
	return resp.Events
}

func nextBinaryEdge(current *url.URL, c engine.Content) *url.URL {
	var resp binaryedgeResponse
	if err := c.Decode(&resp); err != nil {
		return nil
	}
	if resp.Page < 1 || resp.PageSize < 1 || resp.Page*resp.PageSize >= resp.Total {
		return nil
	}
	return setQuery(current, "page", fmt.Sprint(resp.Page+1))
}
