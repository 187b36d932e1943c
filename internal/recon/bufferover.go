package recon

import (
	"fmt"

	"github.com/vulnverified/subsweep/internal/engine"
	"github.com/vulnverified/subsweep/internal/extract"
)

const bufferoverBaseURL = "https://tls.bufferover.run"

type bufferoverResponse struct {
	Results []string `json:"Results"`
}

// BufferOver queries the BufferOver TLS dataset. Each result is a CSV row
// that carries the hostname among other fields.
func BufferOver() *Integration { return newBufferOver(bufferoverBaseURL) }

func newBufferOver(base string) *Integration {
	return NewIntegration(jsonSource("bufferover",
		func(domain string) string { return fmt.Sprintf("%s/dns?q=.%s", base, domain) },
		APIKeyAsHeader("X-API-Key"),
		extractBufferOver,
	))
}

func extractBufferOver(c engine.Content, domain string) []string {
	var resp bufferoverResponse
	if err := c.Decode(&resp); err != nil {
		return nil
	}
	var re extract.RegexExtractor
	var names []string
	for _, row := range resp.Results {
		if name, ok := re.ExtractOne(row, domain); ok {
			names = append(names, name)
		}
	}
	return names
}
