// Package subdomain holds hostname validation and the ordered set type
// shared by extractors, modules and the scan pool.
package subdomain

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/net/publicsuffix"
)

const maxHostnameLen = 253

// Normalize lower-cases a hostname and strips surrounding whitespace,
// wildcard prefixes and a trailing root dot.
func Normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.TrimPrefix(name, "*.")
	return strings.TrimSuffix(name, ".")
}

// IsSubdomain reports whether name equals domain or is a labelled child of it.
// Both arguments are normalised before comparison.
func IsSubdomain(name, domain string) bool {
	name, domain = Normalize(name), Normalize(domain)
	if name == "" || domain == "" || len(name) > maxHostnameLen {
		return false
	}
	if name != domain && !strings.HasSuffix(name, "."+domain) {
		return false
	}
	for _, label := range strings.Split(name, ".") {
		if !validLabel(label) {
			return false
		}
	}
	return true
}

func validLabel(label string) bool {
	if label == "" || len(label) > 63 {
		return false
	}
	if label[0] == '-' || label[len(label)-1] == '-' {
		return false
	}
	for i := 0; i < len(label); i++ {
		c := label[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}

// ValidateDomain normalises a scan target and rejects values that are not
// registrable hostnames, including bare public suffixes such as "co.uk".
func ValidateDomain(domain string) (string, error) {
	domain = Normalize(domain)
	if domain == "" {
		return "", fmt.Errorf("domain is required")
	}
	if strings.Contains(domain, "://") || strings.ContainsAny(domain, "/:@ ") {
		return "", fmt.Errorf("invalid domain %q: expected a bare hostname", domain)
	}
	if !IsSubdomain(domain, domain) || !strings.Contains(domain, ".") {
		return "", fmt.Errorf("invalid domain %q", domain)
	}
	if _, err := publicsuffix.EffectiveTLDPlusOne(domain); err != nil {
		return "", fmt.Errorf("invalid domain %q: %w", domain, err)
	}
	return domain, nil
}

// Set is an unordered collection of unique hostnames. Sorted gives a
// deterministic view regardless of insertion order.
type Set map[string]struct{}

// NewSet returns a set holding the given names.
func NewSet(names ...string) Set {
	s := make(Set, len(names))
	for _, n := range names {
		s.Add(n)
	}
	return s
}

// Add inserts name, reporting whether it was new.
func (s Set) Add(name string) bool {
	if _, ok := s[name]; ok {
		return false
	}
	s[name] = struct{}{}
	return true
}

// Has reports whether name is in the set.
func (s Set) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Len returns the number of names.
func (s Set) Len() int { return len(s) }

// Union adds every name of other to s.
func (s Set) Union(other Set) {
	for n := range other {
		s[n] = struct{}{}
	}
}

// Sorted returns the names in lexical order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Equal reports whether both sets hold the same names.
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for n := range s {
		if !other.Has(n) {
			return false
		}
	}
	return true
}
