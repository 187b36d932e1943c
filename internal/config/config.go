// Package config loads the optional subsweep YAML configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vulnverified/subsweep/internal/engine"
	"github.com/vulnverified/subsweep/internal/recon"
)

// PathEnv names the environment variable consulted when no --config flag
// is given.
const PathEnv = "SUBSWEEP_CONFIG"

// File is the on-disk configuration. Zero values mean "not set" and leave
// the built-in default in place.
type File struct {
	Requester   RequesterSection  `yaml:"requester"`
	Concurrency int               `yaml:"concurrency"`
	Resolver    ResolverSection   `yaml:"resolver"`
	Modules     ModulesSection    `yaml:"modules"`
	APIKeys     map[string]string `yaml:"apikeys"`
}

type RequesterSection struct {
	// Timeout is in seconds.
	Timeout   int               `yaml:"timeout"`
	UserAgent string            `yaml:"user_agent"`
	Proxy     string            `yaml:"proxy"`
	Headers   map[string]string `yaml:"headers"`
	RateLimit float64           `yaml:"rate_limit"`
}

type ResolverSection struct {
	Concurrency int `yaml:"concurrency"`
	// Timeout is in seconds.
	Timeout    int    `yaml:"timeout"`
	Nameserver string `yaml:"nameserver"`
}

type ModulesSection struct {
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
}

// Load reads the config file at path. An empty path falls back to
// $SUBSWEEP_CONFIG; if that is unset too, an empty File is returned.
func Load(path string) (*File, error) {
	if path == "" {
		path = os.Getenv(PathEnv)
	}
	if path == "" {
		return &File{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a config document. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	f := &File{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) validate() error {
	switch {
	case f.Requester.Timeout < 0:
		return fmt.Errorf("requester.timeout must not be negative")
	case f.Requester.RateLimit < 0:
		return fmt.Errorf("requester.rate_limit must not be negative")
	case f.Concurrency < 0:
		return fmt.Errorf("concurrency must not be negative")
	case f.Resolver.Concurrency < 0:
		return fmt.Errorf("resolver.concurrency must not be negative")
	case f.Resolver.Timeout < 0:
		return fmt.Errorf("resolver.timeout must not be negative")
	}
	return nil
}

// ApplyRequester overlays the file's requester section on base.
func (f *File) ApplyRequester(base engine.RequesterConfig) engine.RequesterConfig {
	cfg := base.Clone()
	r := f.Requester
	if r.Timeout > 0 {
		cfg.Timeout = time.Duration(r.Timeout) * time.Second
	}
	if r.UserAgent != "" {
		cfg.UserAgent = r.UserAgent
	}
	if r.Proxy != "" {
		cfg.Proxy = r.Proxy
	}
	if r.RateLimit > 0 {
		cfg.RateLimit = r.RateLimit
	}

	names := make([]string, 0, len(r.Headers))
	for name := range r.Headers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cfg.AddHeader(name, r.Headers[name])
	}
	return cfg
}

// ExportAPIKeys sets SUBSWEEP_<MODULE>_APIKEY for every configured key that
// is not already present in the environment. It returns the variables it set.
func (f *File) ExportAPIKeys() ([]string, error) {
	modules := make([]string, 0, len(f.APIKeys))
	for module := range f.APIKeys {
		modules = append(modules, module)
	}
	sort.Strings(modules)

	var exported []string
	for _, module := range modules {
		key := strings.TrimSpace(f.APIKeys[module])
		if key == "" {
			continue
		}
		env := recon.APIKeyEnv(module)
		if v, ok := os.LookupEnv(env); ok && strings.TrimSpace(v) != "" {
			continue
		}
		if err := os.Setenv(env, key); err != nil {
			return exported, fmt.Errorf("export %s: %w", env, err)
		}
		exported = append(exported, env)
	}
	return exported, nil
}

// ParseHeader splits a "Name: value" header flag.
func ParseHeader(s string) (string, string, error) {
	name, value, ok := strings.Cut(s, ":")
	name = strings.TrimSpace(name)
	if !ok || name == "" || strings.ContainsAny(name, " \t") {
		return "", "", fmt.Errorf("invalid header %q, expected \"Name: value\"", s)
	}
	return name, strings.TrimSpace(value), nil
}

// SplitList parses a comma-separated module list, dropping empty entries.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(strings.ToLower(part)); part != "" {
			out = append(out, part)
		}
	}
	return out
}
