package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/vulnverified/subsweep/internal/engine"
	"github.com/vulnverified/subsweep/internal/recon"
)

// Version is set via ldflags at build time.
var Version = "dev"

var (
	boldStyle  = lipgloss.NewStyle().Bold(true)
	alertStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// WriteHeader prints the subsweep banner.
func WriteHeader(w io.Writer, noColor bool) {
	banner := fmt.Sprintf("subsweep %s", Version)
	if !noColor {
		banner = boldStyle.Render(banner)
	}
	fmt.Fprintf(w, "%s\n\n", banner)
}

// WriteSummary prints the post-scan summary. Zone transfers that succeeded
// are called out since they expose the whole zone.
func WriteSummary(w io.Writer, result *engine.ScanResult, transfers []recon.AXFRAttempt, noColor bool) {
	label := func(s string) string {
		if noColor {
			return s
		}
		return boldStyle.Render(s)
	}

	var finished, skipped, failed int
	for _, s := range result.Statistics {
		switch s.Status.Kind {
		case engine.StatusFinished:
			finished++
		case engine.StatusSkipped:
			skipped++
		case engine.StatusFailed, engine.StatusFailedWithResult:
			failed++
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %s\n", label("Target:"), result.Target)
	fmt.Fprintf(w, "%s %d discovered, %d resolved\n", label("Subdomains:"), len(result.Subdomains()), result.Resolved())
	fmt.Fprintf(w, "%s %d finished, %d skipped, %d failed\n", label("Modules:"), finished, skipped, failed)
	fmt.Fprintf(w, "%s %.1fs\n", label("Duration:"), result.DurationSecs)

	var open []recon.AXFRAttempt
	for _, zt := range transfers {
		if zt.Success {
			open = append(open, zt)
		}
	}
	if len(open) == 0 {
		return
	}

	mark := "!"
	if !noColor {
		mark = alertStyle.Render(mark)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s Zone transfer enabled (%d of %d nameserver addresses)\n", mark, len(open), len(transfers))
	for _, zt := range open {
		fmt.Fprintf(w, "  %s [%s] (%d records)\n", zt.Nameserver, zt.Address, zt.Records)
	}
}
