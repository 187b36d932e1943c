package recon

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/miekg/dns"
)

// startUDPResolver answers A and AAAA queries from records; unknown names get
// NXDOMAIN.
func startUDPResolver(t *testing.T, records map[string][]dns.RR) string {
	t.Helper()

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	handler := dns.HandlerFunc(func(w dns.ResponseWriter, r *dns.Msg) {
		m := new(dns.Msg)
		m.SetReply(r)
		q := r.Question[0]
		rrs, ok := records[q.Name]
		if !ok {
			m.Rcode = dns.RcodeNameError
			w.WriteMsg(m)
			return
		}
		for _, rr := range rrs {
			if rr.Header().Rrtype == q.Qtype {
				m.Answer = append(m.Answer, rr)
			}
		}
		w.WriteMsg(m)
	})

	started := make(chan struct{})
	srv := &dns.Server{
		PacketConn:        pc,
		Handler:           handler,
		NotifyStartedFunc: func() { close(started) },
	}
	go srv.ActivateAndServe()
	<-started
	t.Cleanup(func() { srv.Shutdown() })

	return pc.LocalAddr().String()
}

func TestDNSResolver_Nameserver(t *testing.T) {
	addr := startUDPResolver(t, map[string][]dns.RR{
		"www.example.com.": {
			mustRR(t, "www.example.com. 60 IN AAAA 2001:db8::1"),
			mustRR(t, "www.example.com. 60 IN A 192.0.2.1"),
		},
		"v6.example.com.": {
			mustRR(t, "v6.example.com. 60 IN AAAA 2001:db8::2"),
		},
	})

	r := NewDNSResolver(addr, time.Second)
	ctx := context.Background()

	ip, err := r.Resolve(ctx, "www.example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ip != "192.0.2.1" {
		t.Errorf("got %q, want %q", ip, "192.0.2.1")
	}

	ip, err = r.Resolve(ctx, "v6.example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ip != "2001:db8::2" {
		t.Errorf("got %q, want %q", ip, "2001:db8::2")
	}

	if _, err := r.Resolve(ctx, "missing.example.com"); err == nil {
		t.Error("expected error for NXDOMAIN")
	}
}

func TestNewDNSResolver_DefaultPort(t *testing.T) {
	r := NewDNSResolver("192.0.2.53", 0)
	if r.Nameserver() != "192.0.2.53:53" {
		t.Errorf("got %q, want %q", r.Nameserver(), "192.0.2.53:53")
	}
	if r.timeout != DefaultResolverTimeout {
		t.Errorf("timeout: got %v, want %v", r.timeout, DefaultResolverTimeout)
	}

	if NewDNSResolver("", time.Second).Nameserver() != "" {
		t.Error("expected system resolver")
	}
}

func TestPickIP(t *testing.T) {
	tests := []struct {
		name string
		ips  []string
		want string
		err  bool
	}{
		{"empty", nil, "", true},
		{"v4 first", []string{"192.0.2.1", "2001:db8::1"}, "192.0.2.1", false},
		{"v4 preferred", []string{"2001:db8::1", "192.0.2.1"}, "192.0.2.1", false},
		{"v6 only", []string{"2001:db8::1"}, "2001:db8::1", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pickIP(tt.ips)
			if (err != nil) != tt.err {
				t.Fatalf("err: got %v, want error=%v", err, tt.err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
