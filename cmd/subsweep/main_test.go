package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"github.com/vulnverified/subsweep/internal/config"
	"github.com/vulnverified/subsweep/internal/engine"
)

func mergeArgs(t *testing.T, file *config.File, args ...string) (settings, error) {
	t.Helper()
	opts := &options{}
	fs := pflag.NewFlagSet("subsweep", pflag.ContinueOnError)
	opts.register(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if file == nil {
		file = &config.File{}
	}
	return opts.merge(fs, file)
}

func TestMerge_Defaults(t *testing.T) {
	s, err := mergeArgs(t, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.requester.Timeout != engine.DefaultTimeout {
		t.Errorf("timeout: got %v, want %v", s.requester.Timeout, engine.DefaultTimeout)
	}
	if s.requester.UserAgent != engine.DefaultUserAgent {
		t.Errorf("user agent: got %q", s.requester.UserAgent)
	}
	if s.concurrency != engine.DefaultConcurrency || s.resolverConcurrency != engine.DefaultResolverConcurrency {
		t.Errorf("concurrency: got %d/%d", s.concurrency, s.resolverConcurrency)
	}
	if !s.filter.IsEmpty() {
		t.Error("expected no filter")
	}
}

func TestMerge_FlagsOverrideFile(t *testing.T) {
	file := &config.File{
		Concurrency: 8,
		Requester:   config.RequesterSection{Timeout: 30, UserAgent: "from-file"},
		Resolver:    config.ResolverSection{Nameserver: "9.9.9.9"},
		Modules:     config.ModulesSection{Exclude: []string{"google"}},
	}

	s, err := mergeArgs(t, file,
		"-t", "5",
		"-H", "X-Team: red",
		"--nameserver", "1.1.1.1",
		"-m", "crtsh,shodan",
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.requester.Timeout != 5*time.Second {
		t.Errorf("timeout: got %v, want 5s", s.requester.Timeout)
	}
	if s.requester.UserAgent != "from-file" {
		t.Errorf("user agent: got %q, want the file value", s.requester.UserAgent)
	}
	if s.requester.Headers.Get("X-Team") != "red" {
		t.Errorf("header: got %q", s.requester.Headers.Get("X-Team"))
	}
	if s.concurrency != 8 {
		t.Errorf("concurrency: got %d, want 8", s.concurrency)
	}
	if s.nameserver != "1.1.1.1" {
		t.Errorf("nameserver: got %q", s.nameserver)
	}
	if !s.filter.Allows("crtsh") || s.filter.Allows("bing") || s.filter.Allows("google") {
		t.Error("filter does not match -m crtsh,shodan with google excluded")
	}
}

func TestMerge_Rejects(t *testing.T) {
	tests := map[string][]string{
		"bad header":   {"-H", "nocolon"},
		"bad proxy":    {"-p", "127.0.0.1:8080"},
		"zero timeout": {"-t", "0"},
		"zero workers": {"-c", "0"},
	}
	for name, args := range tests {
		if _, err := mergeArgs(t, nil, args...); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestModulesCommand_JSON(t *testing.T) {
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"modules", "--json"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var infos []struct {
		Name   string `json:"name"`
		EnvVar string `json:"env_var"`
	}
	if err := json.Unmarshal(buf.Bytes(), &infos); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	found := false
	for _, info := range infos {
		if info.Name == "virustotal" {
			found = true
			if info.EnvVar != "SUBSWEEP_VIRUSTOTAL_APIKEY" {
				t.Errorf("env var: got %q", info.EnvVar)
			}
		}
	}
	if !found {
		t.Error("virustotal missing from listing")
	}
}

func TestRootCommand_RejectsInvalidDomain(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"https://example.com/path"})

	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "domain") {
		t.Errorf("got %v, want a domain error", err)
	}
}
