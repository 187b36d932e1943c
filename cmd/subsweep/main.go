package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vulnverified/subsweep/internal/config"
	"github.com/vulnverified/subsweep/internal/engine"
	"github.com/vulnverified/subsweep/internal/output"
	"github.com/vulnverified/subsweep/internal/recon"
	"github.com/vulnverified/subsweep/internal/registry"
	"github.com/vulnverified/subsweep/internal/subdomain"
)

// Set via ldflags at build time.
var version = "dev"

func main() {
	output.Version = version

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "subsweep <domain>",
		Short: "Passive subdomain enumeration",
		Long:  "Discover subdomains of a domain from certificate logs, search engines, passive DNS and threat intelligence APIs, then resolve them.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, opts, args[0])
		},
	}
	opts.register(rootCmd.Flags())

	rootCmd.AddCommand(newModulesCmd())

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("subsweep {{.Version}}\n")

	return rootCmd
}

func runScan(cmd *cobra.Command, opts *options, target string) error {
	domain, err := subdomain.ValidateDomain(target)
	if err != nil {
		return err
	}

	// Respect NO_COLOR env var.
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		opts.noColor = true
	}

	file, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if _, err := file.ExportAPIKeys(); err != nil {
		return err
	}

	s, err := opts.merge(cmd.Flags(), file)
	if err != nil {
		return err
	}

	// Progress output.
	showProgress := !opts.jsonOutput && !opts.plain && !opts.silent
	progress := output.NewProgress(os.Stderr, opts.verbose, !showProgress, opts.noColor)

	reg := registry.Global()
	if unknown := reg.Unknown(append(append([]string(nil), s.include...), s.exclude...)); len(unknown) > 0 {
		progress.Warn(fmt.Sprintf("unknown modules ignored: %s", strings.Join(unknown, ", ")))
	}
	reg.Configure(s.requester)

	// Set up context with signal handling for clean Ctrl+C.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			fmt.Fprintln(os.Stderr, "\nInterrupted, cleaning up...")
			cancel()
		case <-ctx.Done():
		}
	}()

	if showProgress {
		output.WriteHeader(os.Stderr, opts.noColor)
	}

	resolver := recon.NewDNSResolver(s.nameserver, s.resolverTimeout)
	if ns := resolver.Nameserver(); ns != "" {
		progress.Detail("Resolving through " + ns)
	}

	cfg := engine.Config{
		Target:              domain,
		Filter:              s.filter,
		Concurrency:         s.concurrency,
		ResolverConcurrency: s.resolverConcurrency,
	}

	result, err := engine.Run(ctx, cfg, reg.Modules(), resolver, progress)
	if err != nil {
		return err
	}

	if showProgress {
		progress.Complete()
	}

	return writeResult(os.Stdout, opts, result, zoneTransfers(reg))
}

func writeResult(w io.Writer, opts *options, result *engine.ScanResult, transfers []recon.AXFRAttempt) error {
	switch {
	case opts.jsonOutput:
		return output.WriteJSON(w, result)
	case opts.plain:
		return output.WritePlain(w, result, false)
	}

	output.WriteTable(w, result, opts.noColor)
	if opts.verbose {
		output.WriteStats(w, result, opts.noColor)
	}
	if !opts.silent {
		output.WriteSummary(w, result, transfers, opts.noColor)
	}
	return nil
}

// zoneTransfers returns the attempts of the zone transfer module's last run.
func zoneTransfers(reg *registry.Registry) []recon.AXFRAttempt {
	m, ok := reg.Lookup("zonetransfer")
	if !ok {
		return nil
	}
	zt, ok := m.(*recon.ZoneTransfer)
	if !ok {
		return nil
	}
	return zt.Attempts()
}
