package main

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/vulnverified/subsweep/internal/config"
	"github.com/vulnverified/subsweep/internal/engine"
	"github.com/vulnverified/subsweep/internal/recon"
)

// options holds the raw flag values of the scan command.
type options struct {
	configPath string

	userAgent string
	timeout   int
	proxy     string
	headers   []string
	rateLimit float64

	concurrency         int
	resolverConcurrency int
	resolverTimeout     int
	nameserver          string

	modules string
	skip    string

	jsonOutput bool
	plain      bool
	noColor    bool
	silent     bool
	verbose    bool
}

func (o *options) register(fs *pflag.FlagSet) {
	fs.StringVar(&o.configPath, "config", "", "Path to a YAML config file (default $"+config.PathEnv+")")

	fs.StringVarP(&o.userAgent, "user-agent", "u", engine.DefaultUserAgent, "User-Agent sent with every request")
	fs.IntVarP(&o.timeout, "timeout", "t", int(engine.DefaultTimeout/time.Second), "Per-request timeout in seconds")
	fs.StringVarP(&o.proxy, "proxy", "p", "", "HTTP proxy URL, e.g. http://127.0.0.1:8080")
	fs.StringArrayVarP(&o.headers, "header", "H", nil, `Extra request header "Name: value" (repeatable)`)
	fs.Float64Var(&o.rateLimit, "rate-limit", 0, "Max requests per second per module (0 = unlimited)")

	fs.IntVarP(&o.concurrency, "concurrency", "c", engine.DefaultConcurrency, "Modules run concurrently")
	fs.IntVar(&o.resolverConcurrency, "resolver-concurrency", engine.DefaultResolverConcurrency, "Concurrent DNS resolutions")
	fs.IntVar(&o.resolverTimeout, "resolver-timeout", int(recon.DefaultResolverTimeout/time.Second), "DNS resolution timeout in seconds")
	fs.StringVar(&o.nameserver, "nameserver", "", "Resolve through this nameserver instead of the system resolver")

	fs.StringVarP(&o.modules, "modules", "m", "", `Comma-separated modules to run ("*" = all)`)
	fs.StringVarP(&o.skip, "skip", "s", "", "Comma-separated modules to skip")

	fs.BoolVar(&o.jsonOutput, "json", false, "Output structured JSON to stdout")
	fs.BoolVar(&o.plain, "plain", false, "Output one subdomain per line")
	fs.BoolVar(&o.noColor, "no-color", false, "Disable terminal colors")
	fs.BoolVar(&o.silent, "silent", false, "Results only, no progress")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "Verbose progress")
}

// settings is the merged result of defaults, config file and flags.
type settings struct {
	requester           engine.RequesterConfig
	filter              engine.CacheFilter
	include, exclude    []string
	concurrency         int
	resolverConcurrency int
	resolverTimeout     time.Duration
	nameserver          string
}

// merge layers explicitly set flags over the config file over defaults.
func (o *options) merge(fs *pflag.FlagSet, file *config.File) (settings, error) {
	s := settings{
		requester:           file.ApplyRequester(engine.DefaultRequesterConfig()),
		concurrency:         engine.DefaultConcurrency,
		resolverConcurrency: engine.DefaultResolverConcurrency,
		resolverTimeout:     recon.DefaultResolverTimeout,
		nameserver:          file.Resolver.Nameserver,
		include:             file.Modules.Include,
		exclude:             file.Modules.Exclude,
	}
	if file.Concurrency > 0 {
		s.concurrency = file.Concurrency
	}
	if file.Resolver.Concurrency > 0 {
		s.resolverConcurrency = file.Resolver.Concurrency
	}
	if file.Resolver.Timeout > 0 {
		s.resolverTimeout = time.Duration(file.Resolver.Timeout) * time.Second
	}

	if fs.Changed("user-agent") {
		s.requester.UserAgent = o.userAgent
	}
	if fs.Changed("timeout") {
		s.requester.Timeout = time.Duration(o.timeout) * time.Second
	}
	if fs.Changed("proxy") {
		s.requester.Proxy = o.proxy
	}
	if fs.Changed("rate-limit") {
		s.requester.RateLimit = o.rateLimit
	}
	for _, h := range o.headers {
		name, value, err := config.ParseHeader(h)
		if err != nil {
			return s, err
		}
		s.requester.AddHeader(name, value)
	}
	if err := s.requester.Validate(); err != nil {
		return s, fmt.Errorf("invalid requester settings: %w", err)
	}

	if fs.Changed("concurrency") {
		s.concurrency = o.concurrency
	}
	if fs.Changed("resolver-concurrency") {
		s.resolverConcurrency = o.resolverConcurrency
	}
	if fs.Changed("resolver-timeout") {
		s.resolverTimeout = time.Duration(o.resolverTimeout) * time.Second
	}
	if fs.Changed("nameserver") {
		s.nameserver = o.nameserver
	}
	if s.concurrency < 1 || s.resolverConcurrency < 1 {
		return s, fmt.Errorf("concurrency must be at least 1")
	}

	if fs.Changed("modules") {
		s.include = config.SplitList(o.modules)
	}
	if fs.Changed("skip") {
		s.exclude = config.SplitList(o.skip)
	}
	s.filter = engine.NoFilter()
	if len(s.include) > 0 || len(s.exclude) > 0 {
		s.filter = engine.FilterByName(s.include, s.exclude)
	}

	return s, nil
}
