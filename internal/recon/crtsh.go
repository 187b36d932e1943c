package recon

import (
	"fmt"
	"strings"

	"github.com/vulnverified/subsweep/internal/engine"
)

const crtshBaseURL = "https://crt.sh"

type crtshEntry struct {
	NameValue string `json:"name_value"`
}

// Crtsh queries crt.sh Certificate Transparency logs.
func Crtsh() *Integration { return newCrtsh(crtshBaseURL) }

func newCrtsh(base string) *Integration {
	return NewIntegration(jsonSource("crtsh",
		func(domain string) string { return fmt.Sprintf("%s/?q=%%25.%s&output=json", base, domain) },
		NoAuth(),
		extractCrtsh,
	))
}

// extractCrtsh splits name_value, which can hold several names separated
// by newlines.
func extractCrtsh(c engine.Content, _ string) []string {
	var entries []crtshEntry
	if err := c.Decode(&entries); err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		names = append(names, strings.Split(entry.NameValue, "\n")...)
	}
	return names
}
