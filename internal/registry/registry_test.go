package registry

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/vulnverified/subsweep/internal/engine"
	"github.com/vulnverified/subsweep/internal/recon"
	"github.com/vulnverified/subsweep/internal/subdomain"
)

type mockRequester struct {
	sync.Mutex
	cfg        engine.RequesterConfig
	configured int
	unlocked   bool
}

func (r *mockRequester) Get(context.Context, string) (engine.Content, error) {
	return engine.Content{}, nil
}

func (r *mockRequester) Configure(cfg engine.RequesterConfig) {
	if r.TryLock() {
		r.Unlock()
		r.unlocked = true
	}
	r.cfg = cfg
	r.configured++
}

func (r *mockRequester) Config() engine.RequesterConfig { return r.cfg }

type mockModule struct {
	name string
	req  engine.Requester
}

func (m *mockModule) Name() string                { return m.name }
func (m *mockModule) Requester() engine.Requester { return m.req }
func (m *mockModule) Extractor() engine.Extractor { return nil }
func (m *mockModule) Run(context.Context, string) engine.Outcome {
	return engine.Outcome{Subdomains: subdomain.NewSet(), Status: engine.Finished()}
}

func TestNew_RejectsDuplicates(t *testing.T) {
	_, err := New(&mockModule{name: "a"}, &mockModule{name: "b"}, &mockModule{name: "a"})
	if err == nil {
		t.Fatal("expected duplicate name error")
	}

	if _, err := New(&mockModule{name: ""}); err == nil {
		t.Error("expected empty name error")
	}
}

func TestRegistry_LookupAndNames(t *testing.T) {
	r, err := New(&mockModule{name: "zeta"}, &mockModule{name: "alpha"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := r.Lookup("alpha"); !ok {
		t.Error("alpha not found")
	}
	if _, ok := r.Lookup("missing"); ok {
		t.Error("unexpected module")
	}

	names := r.Names()
	if len(names) != 2 || names[0] != "alpha" || names[1] != "zeta" {
		t.Errorf("got %v, want [alpha zeta]", names)
	}
	if r.Len() != 2 {
		t.Errorf("len: got %d, want 2", r.Len())
	}

	unknown := r.Unknown([]string{"alpha", "*", "nope"})
	if len(unknown) != 1 || unknown[0] != "nope" {
		t.Errorf("unknown: got %v, want [nope]", unknown)
	}
}

func TestRegistry_ConfigureBroadcast(t *testing.T) {
	a, b := &mockRequester{}, &mockRequester{}
	r, err := New(
		&mockModule{name: "a", req: a},
		&mockModule{name: "b", req: b},
		&mockModule{name: "dns"},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := engine.DefaultRequesterConfig()
	cfg.Timeout = 42 * time.Second
	r.Configure(cfg)

	for name, req := range map[string]*mockRequester{"a": a, "b": b} {
		if req.configured != 1 {
			t.Errorf("%s: configured %d times, want 1", name, req.configured)
		}
		if req.unlocked {
			t.Errorf("%s: configured without holding the lock", name)
		}
		if req.cfg.Timeout != 42*time.Second {
			t.Errorf("%s: timeout got %v", name, req.cfg.Timeout)
		}
	}
}

func TestRegistry_ConfigureWaitsForRun(t *testing.T) {
	req := &mockRequester{}
	r, _ := New(&mockModule{name: "busy", req: req})

	req.Lock()
	done := make(chan struct{})
	go func() {
		r.Configure(engine.DefaultRequesterConfig())
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("configure did not wait for the running module")
	case <-time.After(50 * time.Millisecond):
	}

	req.Unlock()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("configure never completed")
	}
}

func TestGlobal(t *testing.T) {
	g := Global()
	if g != Global() {
		t.Error("Global built more than once")
	}

	for _, name := range []string{
		"alienvault", "anubis", "bevigil", "binaryedge", "bing", "bufferover",
		"builtwith", "censys", "certspotter", "chaos", "commoncrawl", "crtsh",
		"digitorus", "dnsdumpster", "dnsrepo", "duckduckgo", "github", "google",
		"hackertarget", "leakix", "netlas", "securitytrails", "shodan",
		"sitedossier", "subdomaincenter", "threatcrowd", "virustotal",
		"waybackarchive", "whoisxmlapi", "yahoo", "zonetransfer", "zoomeye",
	} {
		if _, ok := g.Lookup(name); !ok {
			t.Errorf("module %q not registered", name)
		}
	}
}

func TestDescribe(t *testing.T) {
	infos := Global().Describe()
	byName := make(map[string]Info, len(infos))
	for _, info := range infos {
		byName[info.Name] = info
	}

	tests := []Info{
		{Name: "crtsh", Transport: "http", Auth: "none"},
		{Name: "shodan", Transport: "http", Auth: "query key", EnvVar: recon.APIKeyEnv("shodan")},
		{Name: "github", Transport: "http", Auth: "header Authorization", EnvVar: "SUBSWEEP_GITHUB_APIKEY"},
		{Name: "duckduckgo", Transport: "browser", Auth: "none"},
		{Name: "zonetransfer", Transport: "dns", Auth: "none"},
	}
	for _, want := range tests {
		if got := byName[want.Name]; got != want {
			t.Errorf("got %+v, want %+v", got, want)
		}
	}
}
