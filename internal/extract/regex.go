// Package extract turns fetched content into sets of subdomains.
package extract

import (
	"regexp"

	"github.com/vulnverified/subsweep/internal/engine"
	"github.com/vulnverified/subsweep/internal/subdomain"
)

// hostnameRegex matches dotted hostname candidates. Candidates are then
// filtered against the target domain, so "bar.foo.com.evil.org" is never
// mistaken for a child of foo.com.
var hostnameRegex = regexp.MustCompile(`(?i)[a-z0-9_](?:[a-z0-9_-]*[a-z0-9])?(?:\.[a-z0-9_](?:[a-z0-9_-]*[a-z0-9])?)+\.?`)

// RegexExtractor finds hostnames ending in the target domain in free text.
type RegexExtractor struct{}

// ExtractOne returns the first subdomain of domain found in s.
func (RegexExtractor) ExtractOne(s, domain string) (string, bool) {
	for _, candidate := range hostnameRegex.FindAllString(s, -1) {
		if subdomain.IsSubdomain(candidate, domain) {
			return subdomain.Normalize(candidate), true
		}
	}
	return "", false
}

// Extract collects every subdomain of domain found in the content.
func (RegexExtractor) Extract(content engine.Content, domain string) subdomain.Set {
	found := subdomain.NewSet()
	for _, candidate := range hostnameRegex.FindAllString(content.String(), -1) {
		if subdomain.IsSubdomain(candidate, domain) {
			found.Add(subdomain.Normalize(candidate))
		}
	}
	return found
}
