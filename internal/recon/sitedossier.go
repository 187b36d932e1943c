package recon

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/vulnverified/subsweep/internal/engine"
	"github.com/vulnverified/subsweep/internal/extract"
	"github.com/vulnverified/subsweep/internal/requester"
)

const sitedossierBaseURL = "http://www.sitedossier.com/parentdomain"

// Sitedossier scrapes the sitedossier.com parent domain listing, following
// its "Show next" links.
func Sitedossier() *Integration { return newSitedossier(sitedossierBaseURL) }

func newSitedossier(base string) *Integration {
	return NewIntegration(IntegrationConfig{
		Name:      "sitedossier",
		QueryURL:  func(domain string) string { return fmt.Sprintf("%s/%s", base, domain) },
		NextURL:   nextSitedossier,
		Requester: requester.NewHTTPClient(),
		Extractor: extract.MustHTML("ol > li > a"),
	})
}

func nextSitedossier(current *url.URL, c engine.Content) *url.URL {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(c.String()))
	if err != nil {
		return nil
	}

	var next *url.URL
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !strings.Contains(s.Text(), "Show next") {
			return true
		}
		href, _ := s.Attr("href")
		if ref, err := url.Parse(href); err == nil {
			next = current.ResolveReference(ref)
		}
		return false
	})

	if next == nil || next.String() == current.String() {
		return nil
	}
	return next
}
