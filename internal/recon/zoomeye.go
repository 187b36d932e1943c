package recon

import (
	"fmt"
	"net/url"

	"github.com/vulnverified/subsweep/internal/engine"
)

const zoomeyeBaseURL = "https://api.zoomeye.hk/domain/search"

type zoomeyeResponse struct {
	List []struct {
		Name string `json:"name"`
	} `json:"list"`
}

// ZoomEye queries the ZoomEye associated domain search.
func ZoomEye() *Integration { return newZoomEye(zoomeyeBaseURL) }

func newZoomEye(base string) *Integration {
	cfg := jsonSource("zoomeye",
		func(domain string) string { return fmt.Sprintf("%s?q=%s&type=1&s=250&page=1", base, domain) },
		APIKeyAsHeader("API-KEY"),
		extractZoomEye,
	)
	cfg.NextURL = func(current *url.URL, _ engine.Content) *url.URL { return nextPage(current, "page") }
	return NewIntegration(cfg)
}

func extractZoomEye(c engine.Content, _ string) []string {
	var resp zoomeyeResponse
	if err := c.Decode(&resp); err != nil {
		return nil
	}
	names := make([]string, 0, len(resp.List))
	for _, item := range resp.List {
		names = append(names, item.Name)
	}
	return names
}
