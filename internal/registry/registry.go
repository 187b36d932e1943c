// Package registry holds the set of modules a subsweep process knows about.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vulnverified/subsweep/internal/engine"
	"github.com/vulnverified/subsweep/internal/recon"
	"github.com/vulnverified/subsweep/internal/requester"
)

// Registry is an immutable, name-indexed set of modules.
type Registry struct {
	modules []engine.Module
	byName  map[string]engine.Module
}

// New builds a registry. Module names must be unique.
func New(modules ...engine.Module) (*Registry, error) {
	r := &Registry{byName: make(map[string]engine.Module, len(modules))}
	for _, m := range modules {
		name := m.Name()
		if name == "" {
			return nil, fmt.Errorf("module with empty name")
		}
		if _, dup := r.byName[name]; dup {
			return nil, fmt.Errorf("duplicate module %q", name)
		}
		r.byName[name] = m
		r.modules = append(r.modules, m)
	}
	sort.Slice(r.modules, func(i, j int) bool {
		return r.modules[i].Name() < r.modules[j].Name()
	})
	return r, nil
}

var (
	globalOnce sync.Once
	global     *Registry
)

// Global returns the process-wide registry of built-in modules. It is built
// on first use.
func Global() *Registry {
	globalOnce.Do(func() {
		r, err := New(Builtin()...)
		if err != nil {
			panic(err)
		}
		global = r
	})
	return global
}

// Builtin returns a fresh instance of every built-in module.
func Builtin() []engine.Module {
	return []engine.Module{
		recon.AlienVault(),
		recon.Anubis(),
		recon.Bevigil(),
		recon.BinaryEdge(),
		recon.Bing(),
		recon.BufferOver(),
		recon.BuiltWith(),
		recon.Censys(),
		recon.CertSpotter(),
		recon.Chaos(),
		recon.NewCommonCrawl(),
		recon.Crtsh(),
		recon.Digitorus(),
		recon.DNSDumpster(),
		recon.DNSRepo(),
		recon.DuckDuckGo(),
		recon.NewGitHub(),
		recon.Google(),
		recon.HackerTarget(),
		recon.Leakix(),
		recon.Netlas(),
		recon.SecurityTrails(),
		recon.Shodan(),
		recon.Sitedossier(),
		recon.SubdomainCenter(),
		recon.ThreatCrowd(),
		recon.VirusTotal(),
		recon.WaybackArchive(),
		recon.WhoisXMLAPI(),
		recon.Yahoo(),
		recon.NewZoneTransfer(),
		recon.ZoomEye(),
	}
}

// Lookup returns the named module.
func (r *Registry) Lookup(name string) (engine.Module, bool) {
	m, ok := r.byName[name]
	return m, ok
}

// Modules returns every module, sorted by name.
func (r *Registry) Modules() []engine.Module {
	return append([]engine.Module(nil), r.modules...)
}

// Names returns every module name, sorted.
func (r *Registry) Names() []string {
	names := make([]string, len(r.modules))
	for i, m := range r.modules {
		names[i] = m.Name()
	}
	return names
}

// Len returns the number of registered modules.
func (r *Registry) Len() int { return len(r.modules) }

// Configure applies cfg to every module's requester, one module at a time.
// Each requester is locked while it is reconfigured, so a module that is
// mid-run finishes with its old configuration.
func (r *Registry) Configure(cfg engine.RequesterConfig) {
	for _, m := range r.modules {
		req := m.Requester()
		if req == nil {
			continue
		}
		req.Lock()
		req.Configure(cfg)
		req.Unlock()
	}
}

// Unknown returns the names in names that are not registered. The "*"
// wildcard is always known.
func (r *Registry) Unknown(names []string) []string {
	var unknown []string
	for _, n := range names {
		if n == engine.AllModules {
			continue
		}
		if _, ok := r.byName[n]; !ok {
			unknown = append(unknown, n)
		}
	}
	return unknown
}

// Info describes a module for listings.
type Info struct {
	Name      string `json:"name"`
	Transport string `json:"transport"`
	Auth      string `json:"auth"`
	EnvVar    string `json:"env_var,omitempty"`
}

type authenticated interface {
	Auth() recon.AuthMethod
}

// Describe returns listing information for every module, sorted by name.
func (r *Registry) Describe() []Info {
	infos := make([]Info, 0, len(r.modules))
	for _, m := range r.modules {
		info := Info{Name: m.Name(), Transport: transport(m), Auth: recon.NoAuth().String()}
		if a, ok := m.(authenticated); ok && a.Auth().IsSet() {
			info.Auth = a.Auth().String()
			info.EnvVar = recon.APIKeyEnv(m.Name())
		}
		infos = append(infos, info)
	}
	return infos
}

func transport(m engine.Module) string {
	switch m.Requester().(type) {
	case nil:
		return "dns"
	case *requester.Browser:
		return "browser"
	default:
		return "http"
	}
}
