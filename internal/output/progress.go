package output

import (
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/vulnverified/subsweep/internal/engine"
)

const (
	moduleColumn = 25
	statusColumn = 35
)

var (
	finishedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	failedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Progress reports scan progress and module status lines through the
// logger. It implements engine.ProgressReporter.
type Progress struct {
	log     *logrus.Logger
	noColor bool
	mu      sync.Mutex
	start   time.Time
}

// NewProgress creates a progress reporter writing to w.
func NewProgress(w io.Writer, verbose, silent, noColor bool) *Progress {
	return &Progress{
		log:     NewLogger(w, verbose, silent),
		noColor: noColor,
		start:   time.Now(),
	}
}

// Stage prints a stage header.
func (p *Progress) Stage(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.log.Info(msg)
}

// Detail prints verbose detail (only in verbose mode).
func (p *Progress) Detail(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.log.Debug(msg)
}

func (p *Progress) Warn(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.log.Warn(msg)
}

// ModuleStatus prints a dotted "module.....[reason STATUS]" line. Skips
// and partial failures are warnings, failures are errors.
func (p *Progress) ModuleStatus(module string, status engine.ModuleStatus) {
	line := StatusLine(module, status)

	p.mu.Lock()
	defer p.mu.Unlock()

	switch status.Kind {
	case engine.StatusSkipped, engine.StatusFailedWithResult:
		p.log.Warn(p.paint(warnStyle, line))
	case engine.StatusFailed:
		p.log.Error(p.paint(failedStyle, line))
		if status.Err != nil && p.log.IsLevelEnabled(logrus.DebugLevel) {
			p.log.Debug(module + ": " + status.Err.Detail())
		}
	default:
		p.log.Info(p.paint(finishedStyle, line))
	}
}

// Complete prints the final duration.
func (p *Progress) Complete() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.log.Infof("Completed in %.1fs", time.Since(p.start).Seconds())
}

func (p *Progress) paint(style lipgloss.Style, s string) string {
	if p.noColor {
		return s
	}
	return style.Render(s)
}

// StatusLine pads the module name and status reason with dots into fixed
// columns.
func StatusLine(module string, status engine.ModuleStatus) string {
	reason := status.WithReason()
	return padRight(module, moduleColumn) + padLeft(reason, statusColumn)
}

func padRight(s string, width int) string {
	if n := width - len(s); n > 0 {
		return s + strings.Repeat(".", n)
	}
	return s
}

func padLeft(s string, width int) string {
	if n := width - len(s); n > 0 {
		return strings.Repeat(".", n) + s
	}
	return s
}
