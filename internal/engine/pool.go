package engine

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/vulnverified/subsweep/internal/subdomain"
)

// PoolConfig configures a Pool.
type PoolConfig struct {
	Domain          string
	Filter          CacheFilter
	ModuleWorkers   int
	ResolverWorkers int
	// Resolver may be nil, in which case items carry no IP.
	Resolver Resolver
	// OnStatus, if set, is called on every status change.
	OnStatus func(module string, status ModuleStatus)
}

// Pool runs modules on a bounded set of workers and resolves every name
// they produce on a second bounded set of workers. A Pool may run several
// Submit/Start/Join cycles; results accumulate across them.
type Pool struct {
	cfg PoolConfig

	mu        sync.Mutex
	queue     []Module
	pending   int
	seen      subdomain.Set
	items     map[ResultItem]struct{}
	stats     map[string]ModuleStat
	startedAt time.Time

	wg sync.WaitGroup
}

// NewPool creates a pool for one scan.
func NewPool(cfg PoolConfig) *Pool {
	if cfg.ModuleWorkers < 1 {
		cfg.ModuleWorkers = 1
	}
	if cfg.ResolverWorkers < 1 {
		cfg.ResolverWorkers = 1
	}
	return &Pool{
		cfg:   cfg,
		seen:  subdomain.NewSet(),
		items: make(map[ResultItem]struct{}),
		stats: make(map[string]ModuleStat),
	}
}

// Submit queues modules for the next Start.
func (p *Pool) Submit(modules ...Module) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queue = append(p.queue, modules...)
	p.pending += len(modules)
}

// Len returns the number of submitted modules that have not finished.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending
}

// IsEmpty reports whether every submitted module has finished.
func (p *Pool) IsEmpty() bool { return p.Len() == 0 }

// Start dispatches the queued modules. It returns immediately; use Join
// to wait for both stages to drain.
func (p *Pool) Start(ctx context.Context) {
	p.mu.Lock()
	batch := p.queue
	p.queue = nil
	if p.startedAt.IsZero() {
		p.startedAt = time.Now()
	}
	p.mu.Unlock()

	work := make(chan Module, len(batch))
	for _, m := range batch {
		work <- m
	}
	close(work)

	names := make(chan string, p.cfg.ResolverWorkers*4)

	var stageA sync.WaitGroup
	for i := 0; i < p.cfg.ModuleWorkers; i++ {
		stageA.Add(1)
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			defer stageA.Done()
			for m := range work {
				p.runModule(ctx, m, names)
			}
		}()
	}

	for i := 0; i < p.cfg.ResolverWorkers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for name := range names {
				p.resolve(ctx, name)
			}
		}()
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		stageA.Wait()
		close(names)
	}()
}

// Join blocks until every started module has finished and every name it
// produced has been resolved.
func (p *Pool) Join() {
	p.wg.Wait()
}

func (p *Pool) runModule(ctx context.Context, m Module, names chan<- string) {
	name := m.Name()
	if !p.cfg.Filter.Allows(name) {
		p.finish(name, Skipped(SkippedByUser), 0, 0)
		return
	}
	if err := ctx.Err(); err != nil {
		p.finish(name, Failed(err), 0, 0)
		return
	}

	p.setStatus(ModuleStat{Module: name, Status: Started()})

	start := time.Now()
	out := p.safeRun(ctx, m)
	elapsed := time.Since(start)

	count := 0
	for _, n := range out.Subdomains.Sorted() {
		if !subdomain.IsSubdomain(n, p.cfg.Domain) {
			continue
		}
		count++
		if p.markSeen(n) {
			names <- n
		}
	}

	status := out.Status
	if !status.Final() {
		status = Finished()
	}
	p.finish(name, status, count, elapsed)
}

func (p *Pool) safeRun(ctx context.Context, m Module) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = Outcome{Status: Failed(CustomError(fmt.Sprintf("panic: %v", r)))}
		}
	}()
	return m.Run(ctx, p.cfg.Domain)
}

func (p *Pool) markSeen(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.seen.Add(name)
}

func (p *Pool) resolve(ctx context.Context, name string) {
	item := ResultItem{Subdomain: name}
	if p.cfg.Resolver != nil {
		if ip, err := p.cfg.Resolver.Resolve(ctx, name); err == nil {
			item.IP = ip
		}
	}

	p.mu.Lock()
	p.items[item] = struct{}{}
	p.mu.Unlock()
}

func (p *Pool) finish(name string, status ModuleStatus, count int, elapsed time.Duration) {
	p.setStatus(ModuleStat{
		Module:      name,
		Status:      status,
		Count:       count,
		ElapsedSecs: elapsed.Seconds(),
	})

	p.mu.Lock()
	p.pending--
	p.mu.Unlock()
}

func (p *Pool) setStatus(stat ModuleStat) {
	p.mu.Lock()
	p.stats[stat.Module] = stat
	p.mu.Unlock()

	if p.cfg.OnStatus != nil {
		p.cfg.OnStatus(stat.Module, stat.Status)
	}
}

// Result returns the ordered items and per-module statistics gathered so
// far. Call it after Join for a complete result.
func (p *Pool) Result() *ScanResult {
	p.mu.Lock()
	defer p.mu.Unlock()

	result := &ScanResult{
		Target:      p.cfg.Domain,
		StartedAt:   p.startedAt,
		CompletedAt: time.Now(),
		Items:       make([]ResultItem, 0, len(p.items)),
		Statistics:  make([]ModuleStat, 0, len(p.stats)),
	}
	if !p.startedAt.IsZero() {
		result.DurationSecs = result.CompletedAt.Sub(p.startedAt).Seconds()
	}

	for item := range p.items {
		result.Items = append(result.Items, item)
	}
	sort.Slice(result.Items, func(i, j int) bool {
		return result.Items[i].Less(result.Items[j])
	})

	for _, stat := range p.stats {
		result.Statistics = append(result.Statistics, stat)
	}
	sort.Slice(result.Statistics, func(i, j int) bool {
		return result.Statistics[i].Module < result.Statistics[j].Module
	})

	return result
}
