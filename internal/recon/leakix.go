package recon

import (
	"fmt"

	"github.com/vulnverified/subsweep/internal/engine"
)

const leakixBaseURL = "https://leakix.net/api/subdomains"

// Leakix queries the LeakIX subdomain API.
func Leakix() *Integration { return newLeakix(leakixBaseURL) }

func newLeakix(base string) *Integration {
	return NewIntegration(jsonSource("leakix",
		func(domain string) string { return fmt.Sprintf("%s/%s", base, domain) },
		APIKeyAsHeader("api-key"),
		extractLeakix,
	))
}

func extractLeakix(c engine.Content, _ string) []string {
	var entries []struct {
		Subdomain string `json:"subdomain"`
	}
	if err := c.Decode(&entries); err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Subdomain)
	}
	return names
}
