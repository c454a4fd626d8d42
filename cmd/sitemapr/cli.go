package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/sitemapr"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	Discovery sitemapr.DiscoveryService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URL       string        `arg:"" required:"" help:"Website URL to discover sitemaps for"`
	Threshold int           `short:"t" default:"50" help:"Maximum URLs displayed per sitemap"`
	Timeout   time.Duration `default:"10s" help:"Timeout per HTTP request"`
	RPS       float64       `name:"rps" default:"3" help:"Probe requests per second per host"`
	Include   []string      `short:"i" help:"Only report page URLs matching regex (repeatable)"`
	Exclude   []string      `short:"x" help:"Drop page URLs matching regex (repeatable)"`
	UserAgent string        `help:"Override the User-Agent header"`
	Verbose   bool          `short:"v" help:"Enable debug logging to stderr"`
}
