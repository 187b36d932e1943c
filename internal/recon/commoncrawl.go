package recon

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/vulnverified/subsweep/internal/engine"
	"github.com/vulnverified/subsweep/internal/extract"
	"github.com/vulnverified/subsweep/internal/requester"
	"github.com/vulnverified/subsweep/internal/subdomain"
)

const (
	commoncrawlModuleName = "commoncrawl"
	commoncrawlIndexURL   = "https://index.commoncrawl.org/collinfo.json"
	commoncrawlMaxIndexes = 3
)

type commoncrawlIndex struct {
	ID     string `json:"id"`
	CDXAPI string `json:"cdx-api"`
}

// CommonCrawl lists the crawl indexes, then queries the most recent ones
// for URLs under the domain.
type CommonCrawl struct {
	indexURL  string
	requester engine.Requester
	extractor extract.RegexExtractor
}

func NewCommonCrawl() *CommonCrawl { return newCommonCrawl(commoncrawlIndexURL) }

func newCommonCrawl(indexURL string) *CommonCrawl {
	return &CommonCrawl{indexURL: indexURL, requester: requester.NewHTTPClient()}
}

func (m *CommonCrawl) Name() string                { return commoncrawlModuleName }
func (m *CommonCrawl) Requester() engine.Requester { return m.requester }
func (m *CommonCrawl) Extractor() engine.Extractor { return m.extractor }

func (m *CommonCrawl) Run(ctx context.Context, domain string) engine.Outcome {
	results := subdomain.NewSet()

	m.requester.Lock()
	defer m.requester.Unlock()

	content, err := m.requester.Get(ctx, m.indexURL)
	if err != nil {
		return engine.Outcome{Subdomains: results, Status: engine.Failed(engine.NewModuleError(engine.ErrHTTP, err))}
	}
	if content, err = content.AsJSON(); err != nil {
		return engine.Outcome{Subdomains: results, Status: engine.Failed(err)}
	}

	var indexes []commoncrawlIndex
	if err := content.Decode(&indexes); err != nil || len(indexes) == 0 {
		return engine.Outcome{Subdomains: results, Status: engine.Failed(engine.CustomError("no crawl index available"))}
	}
	if len(indexes) > commoncrawlMaxIndexes {
		indexes = indexes[:commoncrawlMaxIndexes]
	}

	var lastErr error
	for _, idx := range indexes {
		u, err := parseURL(idx.CDXAPI)
		if err != nil {
			lastErr = err
			continue
		}
		u = setQuery(u, "url", fmt.Sprintf("*.%s", domain))
		u = setQuery(u, "fl", "url")
		u = setQuery(u, "output", "text")

		page, err := m.requester.Get(ctx, u.String())
		var se *requester.StatusError
		if errors.As(err, &se) && se.Code == http.StatusNotFound {
			// The index has no captures for the domain.
			continue
		}
		if err != nil {
			lastErr = engine.NewModuleError(engine.ErrHTTP, err)
			continue
		}
		results.Union(m.extractor.Extract(page, domain))
	}

	if lastErr != nil {
		return failure(results, lastErr)
	}
	return engine.Outcome{Subdomains: results, Status: engine.Finished()}
}
