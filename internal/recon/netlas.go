package recon

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/vulnverified/subsweep/internal/engine"
)

const (
	netlasBaseURL  = "https://app.netlas.io/api/domains/"
	netlasPageSize = 20
)

type netlasResponse struct {
	Items []struct {
		Data struct {
			Domain string `json:"domain"`
		} `json:"data"`
	} `json:"items"`
}

// Netlas queries the Netlas domains search, paging by result offset.
func Netlas() *Integration { return newNetlas(netlasBaseURL) }

func newNetlas(base string) *Integration {
	cfg := jsonSource("netlas",
		func(domain string) string {
			return fmt.Sprintf("%s?q=*.%s&source_type=include&start=0", base, domain)
		},
		APIKeyAsHeader("X-API-Key"),
		extractNetlas,
	)
	cfg.NextURL = nextNetlas
	return NewIntegration(cfg)
}

func extractNetlas(c engine.Content, _ string) []string {
	var resp netlasResponse
	if err := c.Decode(&resp); err != nil {
		return nil
	}
	names := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		names = append(names, item.Data.Domain)
	}
	return names
}

func nextNetlas(current *url.URL, c engine.Content) *url.URL {
	var resp netlasResponse
	if err := c.Decode(&resp); err != nil || len(resp.Items) < netlasPageSize {
		return nil
	}
	start, _ := strconv.Atoi(current.Query().Get("start"))
	return setQuery(current, "start", strconv.Itoa(start+netlasPageSize))
}
