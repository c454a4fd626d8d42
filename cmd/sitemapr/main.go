package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/sitemapr"
	"github.com/fwojciec/sitemapr/goquery"
	smhttp "github.com/fwojciec/sitemapr/http"
	smslog "github.com/fwojciec/sitemapr/slog"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sitemapr"),
		kong.Description("Discover and retrieve XML sitemaps for a website"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	_, err = parser.Parse(args)
	if err != nil {
		return err
	}

	if cli.Threshold < 0 {
		return sitemapr.Errorf(sitemapr.EINVALID, "threshold must not be negative")
	}

	filter, err := compileFilter(cli.Include, cli.Exclude)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Wire dependencies
	fetcherOpts := []smhttp.Option{smhttp.WithTimeout(cli.Timeout)}
	if cli.UserAgent != "" {
		fetcherOpts = append(fetcherOpts, smhttp.WithUserAgent(cli.UserAgent))
	}
	fetcher := smhttp.NewFetcher(fetcherOpts...)
	defer fetcher.Close()

	var discovery sitemapr.DiscoveryService = smhttp.NewDiscoveryService(
		smslog.NewLoggingFetcher(fetcher, logger),
		smhttp.WithScraper(goquery.NewScraper()),
		smhttp.WithLimiter(smhttp.NewLimiter(cli.RPS)),
		smhttp.WithLogger(logger),
	)
	if cli.Verbose {
		discovery = smslog.NewLoggingDiscoveryService(discovery, logger)
	}

	deps := &Dependencies{
		Ctx:       ctx,
		Stdout:    stdout,
		Stderr:    stderr,
		Discovery: discovery,
	}

	cmd := &DiscoverCmd{
		URL:       cli.URL,
		Threshold: cli.Threshold,
		Filter:    filter,
	}

	return cmd.Run(deps)
}

// compileFilter builds a URLFilter from CLI regex patterns.
// Returns nil when no patterns were given.
func compileFilter(include, exclude []string) (*sitemapr.URLFilter, error) {
	if len(include) == 0 && len(exclude) == 0 {
		return nil, nil
	}

	filter := &sitemapr.URLFilter{}
	for _, p := range include {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, sitemapr.Errorf(sitemapr.EINVALID, "invalid include pattern %q: %s", p, err)
		}
		filter.Include = append(filter.Include, re)
	}
	for _, p := range exclude {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, sitemapr.Errorf(sitemapr.EINVALID, "invalid exclude pattern %q: %s", p, err)
		}
		filter.Exclude = append(filter.Exclude, re)
	}
	return filter, nil
}
