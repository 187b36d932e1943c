package extract

import (
	"github.com/vulnverified/subsweep/internal/engine"
	"github.com/vulnverified/subsweep/internal/subdomain"
)

// JSONFunc maps a structured response to candidate hostnames. It must be
// pure: the same content always yields the same names.
type JSONFunc func(content engine.Content, domain string) []string

// JSONExtractor applies a source-specific mapping to a JSON response and
// keeps only valid subdomains of the target.
type JSONExtractor struct {
	fn JSONFunc
}

// NewJSONExtractor wraps fn.
func NewJSONExtractor(fn JSONFunc) *JSONExtractor {
	return &JSONExtractor{fn: fn}
}

// Extract implements engine.Extractor.
func (e *JSONExtractor) Extract(content engine.Content, domain string) subdomain.Set {
	found := subdomain.NewSet()
	if content.IsEmpty() {
		return found
	}
	for _, name := range e.fn(content, domain) {
		if subdomain.IsSubdomain(name, domain) {
			found.Add(subdomain.Normalize(name))
		}
	}
	return found
}
