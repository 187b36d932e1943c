package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/vulnverified/subsweep/internal/subdomain"
)

// Module is a self-contained subdomain discovery source.
type Module interface {
	Name() string
	// Requester returns the module's transport, or nil if it has none.
	Requester() Requester
	// Extractor returns the module's content extractor, or nil if it has none.
	Extractor() Extractor
	Run(ctx context.Context, domain string) Outcome
}

// Outcome is what a single module run produced.
type Outcome struct {
	Subdomains subdomain.Set
	Status     ModuleStatus
}

// Requester fetches content over the network. Callers hold the lock for a
// whole logical operation, so a configuration change never lands in the
// middle of a module run.
type Requester interface {
	sync.Locker
	Get(ctx context.Context, url string) (Content, error)
	Configure(cfg RequesterConfig)
	Config() RequesterConfig
}

// Extractor derives subdomains of domain from content. Implementations are
// stateless.
type Extractor interface {
	Extract(content Content, domain string) subdomain.Set
}

// Resolver maps a hostname to a single IP address.
type Resolver interface {
	Resolve(ctx context.Context, host string) (string, error)
}

// Config holds the runtime configuration for a subsweep run.
type Config struct {
	Target              string
	Filter              CacheFilter
	Concurrency         int
	ResolverConcurrency int
}

// ProgressReporter is called by the engine to report progress.
type ProgressReporter interface {
	Stage(msg string)
	Detail(msg string)
	Warn(msg string)
	ModuleStatus(module string, status ModuleStatus)
}

// Run executes one scan of the given modules against cfg.Target.
func Run(ctx context.Context, cfg Config, modules []Module, resolver Resolver, progress ProgressReporter) (*ScanResult, error) {
	domain, err := subdomain.ValidateDomain(cfg.Target)
	if err != nil {
		return nil, err
	}
	if len(modules) == 0 {
		return nil, fmt.Errorf("no modules to run")
	}

	pool := NewPool(PoolConfig{
		Domain:          domain,
		Filter:          cfg.Filter,
		ModuleWorkers:   cfg.Concurrency,
		ResolverWorkers: cfg.ResolverConcurrency,
		Resolver:        resolver,
		OnStatus:        progress.ModuleStatus,
	})

	progress.Stage(fmt.Sprintf("Running %d modules against %s...", len(modules), domain))
	pool.Submit(modules...)
	pool.Start(ctx)
	pool.Join()

	result := pool.Result()

	if ctx.Err() != nil {
		progress.Warn("scan interrupted, results are partial")
	}
	progress.Detail(fmt.Sprintf("Found %d unique subdomains, %d resolved",
		len(result.Subdomains()), result.Resolved()))

	return result, nil
}
