package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vulnverified/subsweep/internal/engine"
)

const sample = `
requester:
  timeout: 30
  user_agent: subsweep-test
  proxy: http://127.0.0.1:8080
  rate_limit: 2.5
  headers:
    X-Team: red
concurrency: 8
resolver:
  concurrency: 32
  timeout: 3
  nameserver: 1.1.1.1
modules:
  include: [crtsh, shodan]
  exclude: [google]
apikeys:
  shodan: abc123
  virustotal: " "
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "subsweep.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	f, err := Load(writeConfig(t, sample))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.Concurrency != 8 {
		t.Errorf("concurrency: got %d, want 8", f.Concurrency)
	}
	if f.Resolver.Nameserver != "1.1.1.1" || f.Resolver.Concurrency != 32 || f.Resolver.Timeout != 3 {
		t.Errorf("resolver: got %+v", f.Resolver)
	}
	if len(f.Modules.Include) != 2 || f.Modules.Exclude[0] != "google" {
		t.Errorf("modules: got %+v", f.Modules)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv(PathEnv, writeConfig(t, "concurrency: 2\n"))

	f, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Concurrency != 2 {
		t.Errorf("got %d, want 2", f.Concurrency)
	}
}

func TestLoad_NoFile(t *testing.T) {
	t.Setenv(PathEnv, "")

	f, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Concurrency != 0 || f.APIKeys != nil {
		t.Errorf("expected empty config, got %+v", f)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParse_Rejects(t *testing.T) {
	tests := map[string]string{
		"unknown key":      "concurrency: 2\nbogus: true\n",
		"negative timeout": "requester:\n  timeout: -1\n",
		"wrong type":       "concurrency: many\n",
	}
	for name, body := range tests {
		if _, err := Parse([]byte(body)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}

	if _, err := Parse(nil); err != nil {
		t.Errorf("empty document: unexpected error %v", err)
	}
}

func TestApplyRequester(t *testing.T) {
	f, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	base := engine.DefaultRequesterConfig()
	cfg := f.ApplyRequester(base)

	if cfg.Timeout != 30*time.Second {
		t.Errorf("timeout: got %v, want 30s", cfg.Timeout)
	}
	if cfg.UserAgent != "subsweep-test" {
		t.Errorf("user agent: got %q", cfg.UserAgent)
	}
	if cfg.Proxy != "http://127.0.0.1:8080" {
		t.Errorf("proxy: got %q", cfg.Proxy)
	}
	if cfg.RateLimit != 2.5 {
		t.Errorf("rate limit: got %v", cfg.RateLimit)
	}
	if cfg.Headers.Get("X-Team") != "red" {
		t.Errorf("header: got %q", cfg.Headers.Get("X-Team"))
	}
	if base.Headers.Get("X-Team") != "" {
		t.Error("ApplyRequester mutated its base")
	}

	empty := (&File{}).ApplyRequester(base)
	if empty.Timeout != base.Timeout || empty.UserAgent != base.UserAgent {
		t.Errorf("empty file changed defaults: %+v", empty)
	}
}

func TestExportAPIKeys(t *testing.T) {
	t.Setenv("SUBSWEEP_SHODAN_APIKEY", "")
	t.Setenv("SUBSWEEP_CENSYS_APIKEY", "from-env")
	t.Setenv("SUBSWEEP_VIRUSTOTAL_APIKEY", "")

	f := &File{APIKeys: map[string]string{
		"shodan":     "abc123",
		"censys":     "from-file",
		"virustotal": " ",
	}}

	exported, err := f.ExportAPIKeys()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(exported) != 1 || exported[0] != "SUBSWEEP_SHODAN_APIKEY" {
		t.Errorf("exported: got %v", exported)
	}
	if got := os.Getenv("SUBSWEEP_SHODAN_APIKEY"); got != "abc123" {
		t.Errorf("shodan: got %q", got)
	}
	if got := os.Getenv("SUBSWEEP_CENSYS_APIKEY"); got != "from-env" {
		t.Errorf("environment overridden: got %q", got)
	}
	if got := os.Getenv("SUBSWEEP_VIRUSTOTAL_APIKEY"); got != "" {
		t.Errorf("blank key exported: got %q", got)
	}
}

func TestParseHeader(t *testing.T) {
	tests := []struct {
		in, name, value string
		err             bool
	}{
		{"X-Key: abc", "X-Key", "abc", false},
		{"Cookie:a=b; c=d", "Cookie", "a=b; c=d", false},
		{"Authorization: Bearer x:y", "Authorization", "Bearer x:y", false},
		{"novalue", "", "", true},
		{": value", "", "", true},
		{"Bad Name: v", "", "", true},
	}
	for _, tt := range tests {
		name, value, err := ParseHeader(tt.in)
		if (err != nil) != tt.err {
			t.Errorf("%q: err got %v, want error=%v", tt.in, err, tt.err)
			continue
		}
		if name != tt.name || value != tt.value {
			t.Errorf("%q: got (%q, %q), want (%q, %q)", tt.in, name, value, tt.name, tt.value)
		}
	}
}

func TestSplitList(t *testing.T) {
	got := SplitList(" Crtsh, ,shodan,")
	if len(got) != 2 || got[0] != "crtsh" || got[1] != "shodan" {
		t.Errorf("got %v, want [crtsh shodan]", got)
	}
	if SplitList("") != nil {
		t.Error("expected nil for empty list")
	}
}
