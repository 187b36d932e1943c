package recon

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vulnverified/subsweep/internal/engine"
)

const (
	hackertargetBaseURL = "https://api.hackertarget.com"
	hackertargetRateMsg = "API count exceeded"
)

// HackerTarget queries the HackerTarget host search, which answers with
// plain-text "host,ip" lines.
func HackerTarget() *Integration { return newHackerTarget(hackertargetBaseURL) }

func newHackerTarget(base string) *Integration {
	cfg := textSource("hackertarget", func(domain string) string {
		return fmt.Sprintf("%s/hostsearch/?q=%s", base, domain)
	})
	cfg.Validate = checkHackerTarget
	return NewIntegration(cfg)
}

// checkHackerTarget catches the plain-text errors HackerTarget returns
// with a 200 status.
func checkHackerTarget(c engine.Content) error {
	body := c.String()
	if strings.Contains(body, hackertargetRateMsg) {
		return errors.New("hackertarget: " + strings.ToLower(hackertargetRateMsg))
	}
	if strings.HasPrefix(strings.TrimSpace(body), "error") {
		return errors.New("hackertarget: " + strings.TrimSpace(body))
	}
	return nil
}
