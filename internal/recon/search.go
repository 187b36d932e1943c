package recon

import (
	"context"

	"github.com/vulnverified/subsweep/internal/engine"
	"github.com/vulnverified/subsweep/internal/extract"
	"github.com/vulnverified/subsweep/internal/requester"
	"github.com/vulnverified/subsweep/internal/subdomain"
)

const (
	bingSearchURL       = "https://www.bing.com/search"
	googleSearchURL     = "https://www.google.com/search"
	yahooSearchURL      = "https://search.yahoo.com/search"
	duckduckgoSearchURL = "https://duckduckgo.com/"
)

// SearchEngine queries a web search engine once with the target domain and
// scrapes hostnames from the result page.
type SearchEngine struct {
	name      string
	base      string
	param     string
	requester engine.Requester
	extractor *extract.HTMLExtractor
}

// NewSearchEngine builds a search engine module. base is the search
// endpoint, param the query parameter that receives the domain.
func NewSearchEngine(name, base, param string, req engine.Requester, ex *extract.HTMLExtractor) *SearchEngine {
	return &SearchEngine{
		name:      name,
		base:      base,
		param:     param,
		requester: req,
		extractor: ex,
	}
}

func (m *SearchEngine) Name() string                { return m.name }
func (m *SearchEngine) Requester() engine.Requester { return m.requester }
func (m *SearchEngine) Extractor() engine.Extractor { return m.extractor }

// Run issues a single search request.
func (m *SearchEngine) Run(ctx context.Context, domain string) engine.Outcome {
	u, err := parseURL(m.base)
	if err != nil {
		return engine.Outcome{Subdomains: subdomain.NewSet(), Status: engine.Failed(err)}
	}
	u = setQuery(u, m.param, domain)

	m.requester.Lock()
	defer m.requester.Unlock()

	content, err := m.requester.Get(ctx, u.String())
	if err != nil {
		return engine.Outcome{
			Subdomains: subdomain.NewSet(),
			Status:     engine.Failed(engine.NewModuleError(engine.ErrHTTP, err)),
		}
	}

	return engine.Outcome{
		Subdomains: m.extractor.Extract(content, domain),
		Status:     engine.Finished(),
	}
}

func Bing() *SearchEngine {
	return NewSearchEngine("bing", bingSearchURL, "q", requester.NewHTTPClient(), extract.MustHTML("cite"))
}

func Google() *SearchEngine {
	return NewSearchEngine("google", googleSearchURL, "q", requester.NewHTTPClient(), extract.MustHTML("cite"))
}

func Yahoo() *SearchEngine {
	return NewSearchEngine("yahoo", yahooSearchURL, "p", requester.NewHTTPClient(),
		extract.MustHTML("ol > li > div > div > h3 > a > span", "<b>", "</b>"))
}

// DuckDuckGo renders its results client-side, so it needs the browser.
func DuckDuckGo() *SearchEngine {
	return NewSearchEngine("duckduckgo", duckduckgoSearchURL, "q", requester.NewBrowser(),
		extract.MustHTML(`article a[data-testid="result-extras-url-link"] span`))
}
