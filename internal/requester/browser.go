package requester

import (
	"context"
	"sync"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/vulnverified/subsweep/internal/engine"
)

// Browser renders pages in headless Chrome for sources that build their
// results with JavaScript. Each Get runs in a fresh browser context.
type Browser struct {
	sync.Mutex

	config engine.RequesterConfig
	// ExecPath overrides Chrome discovery when set.
	ExecPath string
}

// NewBrowser returns a browser requester with the default configuration.
func NewBrowser() *Browser {
	return &Browser{config: engine.DefaultRequesterConfig()}
}

// Config returns a copy of the current configuration.
func (b *Browser) Config() engine.RequesterConfig {
	return b.config.Clone()
}

// Configure replaces the configuration.
func (b *Browser) Configure(cfg engine.RequesterConfig) {
	b.config = cfg.Clone()
}

// allocatorOptions builds the Chrome launch flags for the current config.
func (b *Browser) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts, chromedp.NoSandbox)
	if b.config.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(b.config.UserAgent))
	}
	if proxy, err := b.config.ProxyURL(); err == nil && proxy != nil {
		opts = append(opts, chromedp.ProxyServer(proxy.String()))
	}
	if b.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(b.ExecPath))
	}
	return opts
}

func (b *Browser) extraHeaders() network.Headers {
	headers := network.Headers{}
	for name := range b.config.Headers {
		headers[name] = b.config.Headers.Get(name)
	}
	return headers
}

// Get navigates to url and returns the rendered document.
func (b *Browser) Get(ctx context.Context, url string) (engine.Content, error) {
	if b.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.config.Timeout)
		defer cancel()
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, b.allocatorOptions()...)
	defer cancelAlloc()

	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	var html string
	actions := []chromedp.Action{network.Enable()}
	if headers := b.extraHeaders(); len(headers) > 0 {
		actions = append(actions, network.SetExtraHTTPHeaders(headers))
	}
	actions = append(actions,
		chromedp.Navigate(url),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)

	if err := chromedp.Run(tabCtx, actions...); err != nil {
		return engine.Content{}, err
	}
	return engine.TextContent(html), nil
}
