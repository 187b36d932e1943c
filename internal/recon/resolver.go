package recon

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/miekg/dns"
)

// DefaultResolverTimeout bounds a single hostname resolution.
const DefaultResolverTimeout = 5 * time.Second

// DNSResolver resolves discovered hostnames to one IP address, preferring
// IPv4. With no nameserver it uses the system resolver; otherwise it queries
// the nameserver directly.
type DNSResolver struct {
	timeout    time.Duration
	nameserver string
	client     *dns.Client
	system     *net.Resolver
}

// NewDNSResolver returns a resolver. nameserver may be empty, a bare IP or
// an ip:port pair.
func NewDNSResolver(nameserver string, timeout time.Duration) *DNSResolver {
	if timeout <= 0 {
		timeout = DefaultResolverTimeout
	}
	r := &DNSResolver{timeout: timeout, system: net.DefaultResolver}
	if nameserver != "" {
		if _, _, err := net.SplitHostPort(nameserver); err != nil {
			nameserver = net.JoinHostPort(nameserver, "53")
		}
		r.nameserver = nameserver
		r.client = &dns.Client{Timeout: timeout}
	}
	return r
}

// Nameserver returns the configured nameserver address, or "" for the system
// resolver.
func (r *DNSResolver) Nameserver() string { return r.nameserver }

func (r *DNSResolver) Resolve(ctx context.Context, host string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if r.client != nil {
		return r.exchange(ctx, host)
	}

	ips, err := r.system.LookupHost(ctx, host)
	if err != nil {
		return "", err
	}
	return pickIP(ips)
}

// exchange asks the nameserver for A records, falling back to AAAA.
func (r *DNSResolver) exchange(ctx context.Context, host string) (string, error) {
	for _, qtype := range []uint16{dns.TypeA, dns.TypeAAAA} {
		msg := new(dns.Msg)
		msg.SetQuestion(dns.Fqdn(host), qtype)
		msg.RecursionDesired = true

		in, _, err := r.client.ExchangeContext(ctx, msg, r.nameserver)
		if err != nil {
			return "", fmt.Errorf("query %s: %w", host, err)
		}
		if in.Rcode == dns.RcodeNameError {
			return "", &net.DNSError{Err: "no such host", Name: host, Server: r.nameserver, IsNotFound: true}
		}

		for _, rr := range in.Answer {
			switch rec := rr.(type) {
			case *dns.A:
				return rec.A.String(), nil
			case *dns.AAAA:
				return rec.AAAA.String(), nil
			}
		}
	}
	return "", &net.DNSError{Err: "no addresses", Name: host, Server: r.nameserver, IsNotFound: true}
}

// pickIP returns the first IPv4 address, or the first address of any family.
func pickIP(ips []string) (string, error) {
	if len(ips) == 0 {
		return "", fmt.Errorf("no addresses")
	}
	for _, ip := range ips {
		if parsed := net.ParseIP(ip); parsed != nil && parsed.To4() != nil {
			return ip, nil
		}
	}
	return ips[0], nil
}
