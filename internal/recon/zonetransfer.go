package recon

import (
	"context"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/miekg/dns"

	"github.com/vulnverified/subsweep/internal/engine"
	"github.com/vulnverified/subsweep/internal/subdomain"
)

const (
	zonetransferModuleName = "zonetransfer"
	axfrDialTimeout        = 10 * time.Second
	axfrReadTimeout        = 30 * time.Second
)

// nsLookup is the subset of *net.Resolver the zone transfer module uses.
type nsLookup interface {
	LookupNS(ctx context.Context, name string) ([]*net.NS, error)
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// AXFRAttempt records one zone transfer attempt against a nameserver address.
type AXFRAttempt struct {
	Nameserver string `json:"nameserver"`
	Address    string `json:"address"`
	Success    bool   `json:"success"`
	Records    int    `json:"records,omitempty"`
}

// ZoneTransfer asks each authoritative nameserver of the domain for a full
// zone transfer. Refusals are expected and never fail the module.
type ZoneTransfer struct {
	resolver nsLookup
	port     string

	mu       sync.Mutex
	attempts []AXFRAttempt
}

// NewZoneTransfer returns the module using the system resolver.
func NewZoneTransfer() *ZoneTransfer {
	return &ZoneTransfer{resolver: net.DefaultResolver, port: "53"}
}

func (m *ZoneTransfer) Name() string                { return zonetransferModuleName }
func (m *ZoneTransfer) Requester() engine.Requester { return nil }
func (m *ZoneTransfer) Extractor() engine.Extractor { return nil }

// Attempts returns the attempts made by the most recent run.
func (m *ZoneTransfer) Attempts() []AXFRAttempt {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]AXFRAttempt(nil), m.attempts...)
}

func (m *ZoneTransfer) Run(ctx context.Context, domain string) engine.Outcome {
	results := subdomain.NewSet()
	var attempts []AXFRAttempt

	defer func() {
		m.mu.Lock()
		m.attempts = attempts
		m.mu.Unlock()
	}()

	nameservers, err := m.resolver.LookupNS(ctx, domain)
	if err != nil {
		return engine.Outcome{Subdomains: results, Status: engine.Finished()}
	}

	for _, ns := range nameservers {
		host := strings.TrimSuffix(ns.Host, ".")

		ips, err := m.resolver.LookupHost(ctx, host)
		if err != nil {
			continue
		}

		for _, ip := range ips {
			if ctx.Err() != nil {
				return engine.Outcome{Subdomains: results, Status: engine.Finished()}
			}

			attempt := AXFRAttempt{Nameserver: host, Address: ip}
			names, err := attemptAXFR(domain, net.JoinHostPort(ip, m.port))
			if err == nil {
				attempt.Success = true
				attempt.Records = names.Len()
				results.Union(names)
			}
			attempts = append(attempts, attempt)
		}
	}

	return engine.Outcome{Subdomains: results, Status: engine.Finished()}
}

// attemptAXFR performs a DNS zone transfer against a single nameserver
// address and keeps the owner names that fall under domain.
func attemptAXFR(domain, addr string) (subdomain.Set, error) {
	transfer := &dns.Transfer{
		DialTimeout: axfrDialTimeout,
		ReadTimeout: axfrReadTimeout,
	}

	msg := new(dns.Msg)
	msg.SetAxfr(dns.Fqdn(domain))

	channel, err := transfer.In(msg, addr)
	if err != nil {
		return nil, fmt.Errorf("AXFR to %s: %w", addr, err)
	}

	names := subdomain.NewSet()
	for envelope := range channel {
		if envelope.Error != nil {
			return nil, fmt.Errorf("AXFR envelope from %s: %w", addr, envelope.Error)
		}
		for _, rr := range envelope.RR {
			name := subdomain.Normalize(rr.Header().Name)
			if subdomain.IsSubdomain(name, domain) {
				names.Add(name)
			}
		}
	}

	return names, nil
}
