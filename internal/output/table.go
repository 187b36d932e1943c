package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/vulnverified/subsweep/internal/engine"
	"github.com/vulnverified/subsweep/internal/registry"
)

// WriteTable renders the discovered subdomains as a styled terminal table.
func WriteTable(w io.Writer, result *engine.ScanResult, noColor bool) {
	if len(result.Items) == 0 {
		fmt.Fprintln(w, "\nNo subdomains discovered.")
		return
	}

	rows := make([][]string, 0, len(result.Items))
	for _, item := range result.Items {
		ip := item.IP
		if ip == "" {
			ip = "-"
		}
		rows = append(rows, []string{item.Subdomain, ip})
	}

	fmt.Fprintln(w)
	renderTable(w, []string{"Subdomain", "IP"}, rows, noColor)
}

// WriteStats renders the per-module execution statistics.
func WriteStats(w io.Writer, result *engine.ScanResult, noColor bool) {
	if len(result.Statistics) == 0 {
		return
	}

	rows := make([][]string, 0, len(result.Statistics))
	for _, s := range result.Statistics {
		rows = append(rows, []string{
			s.Module,
			s.Status.WithReason(),
			fmt.Sprintf("%d", s.Count),
			fmt.Sprintf("%.1fs", s.ElapsedSecs),
		})
	}

	fmt.Fprintln(w)
	renderTable(w, []string{"Module", "Status", "Count", "Elapsed"}, rows, noColor)
}

// WriteModules renders the module listing of the modules command.
func WriteModules(w io.Writer, infos []registry.Info, noColor bool) {
	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		env := info.EnvVar
		if env == "" {
			env = "-"
		}
		rows = append(rows, []string{info.Name, info.Transport, info.Auth, env})
	}
	renderTable(w, []string{"Module", "Transport", "Auth", "Env"}, rows, noColor)
}

func renderTable(w io.Writer, headers []string, rows [][]string, noColor bool) {
	if noColor {
		writeSimpleTable(w, headers, rows)
		return
	}

	t := table.New().
		Headers(headers...).
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
			}
			return lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
		})

	for _, row := range rows {
		t.Row(row...)
	}

	fmt.Fprintln(w, t.Render())
}

func writeSimpleTable(w io.Writer, headers []string, rows [][]string) {
	// Calculate column widths.
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	writeRow(w, headers, widths)

	// Separator.
	for i, width := range widths {
		if i > 0 {
			fmt.Fprint(w, "-+-")
		}
		fmt.Fprint(w, strings.Repeat("-", width))
	}
	fmt.Fprintln(w)

	for _, row := range rows {
		writeRow(w, row, widths)
	}
}

func writeRow(w io.Writer, cells []string, widths []int) {
	for i, cell := range cells {
		if i > 0 {
			fmt.Fprint(w, " | ")
		}
		if i == len(cells)-1 {
			fmt.Fprint(w, cell)
			continue
		}
		fmt.Fprintf(w, "%-*s", widths[i], cell)
	}
	fmt.Fprintln(w)
}
