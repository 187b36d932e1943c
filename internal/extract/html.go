package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/vulnverified/subsweep/internal/engine"
	"github.com/vulnverified/subsweep/internal/subdomain"
)

// HTMLExtractor selects nodes with a CSS selector, scrubs configured
// literals from each node's inner HTML and keeps the first subdomain found
// in what remains.
type HTMLExtractor struct {
	matcher cascadia.Selector
	removes []string
	regex   RegexExtractor
}

// NewHTMLExtractor compiles selector up front so a malformed one fails at
// construction rather than silently matching nothing.
func NewHTMLExtractor(selector string, removes []string) (*HTMLExtractor, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("compile selector %q: %w", selector, err)
	}
	return &HTMLExtractor{
		matcher: sel,
		removes: removes,
	}, nil
}

// MustHTML is NewHTMLExtractor for selectors fixed at compile time.
func MustHTML(selector string, removes ...string) *HTMLExtractor {
	e, err := NewHTMLExtractor(selector, removes)
	if err != nil {
		panic(err)
	}
	return e
}

// Extract implements engine.Extractor.
func (e *HTMLExtractor) Extract(content engine.Content, domain string) subdomain.Set {
	found := subdomain.NewSet()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content.String()))
	if err != nil {
		return found
	}

	doc.FindMatcher(e.matcher).Each(func(_ int, s *goquery.Selection) {
		inner, err := s.Html()
		if err != nil {
			return
		}
		for _, r := range e.removes {
			inner = strings.ReplaceAll(inner, r, "")
		}
		if name, ok := e.regex.ExtractOne(inner, domain); ok {
			found.Add(name)
		}
	})

	return found
}
