// Package engine orchestrates the subsweep module pipeline.
package engine

import (
	"time"
)

// ScanResult is the top-level output of a subsweep run.
type ScanResult struct {
	Target       string       `json:"target"`
	StartedAt    time.Time    `json:"started_at"`
	CompletedAt  time.Time    `json:"completed_at"`
	DurationSecs float64      `json:"duration_secs"`
	Items        []ResultItem `json:"items"`
	Statistics   []ModuleStat `json:"statistics"`
}

// ResultItem is a discovered subdomain and the address it resolved to.
// IP is empty when resolution failed.
type ResultItem struct {
	Subdomain string `json:"subdomain"`
	IP        string `json:"ip,omitempty"`
}

// Less orders items by subdomain, then IP.
func (r ResultItem) Less(o ResultItem) bool {
	if r.Subdomain != o.Subdomain {
		return r.Subdomain < o.Subdomain
	}
	return r.IP < o.IP
}

// ModuleStat is the execution record of one submitted module.
type ModuleStat struct {
	Module      string       `json:"module"`
	Status      ModuleStatus `json:"status"`
	Count       int          `json:"count"`
	ElapsedSecs float64      `json:"elapsed_secs"`
}

// Subdomains returns the distinct subdomains in result order.
func (r *ScanResult) Subdomains() []string {
	var out []string
	for i, item := range r.Items {
		if i > 0 && r.Items[i-1].Subdomain == item.Subdomain {
			continue
		}
		out = append(out, item.Subdomain)
	}
	return out
}

// Resolved returns the number of items that carry an IP.
func (r *ScanResult) Resolved() int {
	n := 0
	for _, item := range r.Items {
		if item.IP != "" {
			n++
		}
	}
	return n
}

// Stat returns the record for the named module.
func (r *ScanResult) Stat(module string) (ModuleStat, bool) {
	for _, s := range r.Statistics {
		if s.Module == module {
			return s, true
		}
	}
	return ModuleStat{}, false
}
