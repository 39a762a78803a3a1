// Package main is the entry point for the storefront terminal client.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/multierr"

	"github.com/dshills/storefront/internal/app"
	"github.com/dshills/storefront/internal/config"
	"github.com/dshills/storefront/internal/logging"
	"github.com/dshills/storefront/internal/view"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type flags struct {
	configPath string
	logFile    string
	logLevel   string
	apiURL     string
	metrics    string
}

func main() {
	os.Exit(run())
}

func run() int {
	f := parseFlags()

	cfg, err := config.Load(config.Options{Path: f.configPath})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if f.logLevel != "" {
		cfg.Logging.Level = f.logLevel
	}
	if f.apiURL != "" {
		cfg.API.BaseURL = f.apiURL
	}
	if f.metrics != "" {
		cfg.Metrics.Addr = f.metrics
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid options: %v\n", err)
		return 1
	}

	// The terminal owns stdout and stderr while the UI runs.
	var logOut io.Writer = io.Discard
	if f.logFile != "" {
		file, err := os.OpenFile(f.logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to open log file: %v\n", err)
			return 1
		}
		defer file.Close()
		logOut = file
	}

	term, err := view.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}

	fxApp, application := app.NewFx(app.Options{
		Config:     cfg,
		ConfigPath: f.configPath,
		LogOutput:  logOut,
		Surface:    term,
	})
	if err := fxApp.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	startCtx, cancel := context.WithTimeout(ctx, fxApp.StartTimeout())
	defer cancel()
	if err := fxApp.Start(startCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to start: %v\n", err)
		return 1
	}

	runErr := application.Run(ctx)

	stopCtx, cancelStop := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelStop()
	if err := multierr.Append(runErr, fxApp.Stop(stopCtx)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() flags {
	var f flags
	var showVersion bool
	var showHelp bool

	flag.StringVar(&f.configPath, "config", "", "Path to configuration file (.toml or .yaml)")
	flag.StringVar(&f.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&f.logFile, "log-file", "storefront.log", "Log file; empty disables logging")
	flag.StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&f.apiURL, "api", "", "API base URL")
	flag.StringVar(&f.metrics, "metrics", "", "Address to serve /metrics on, e.g. :9090")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - terminal storefront\n\n", logging.DefaultConfig().Name)
		fmt.Fprintf(os.Stderr, "Usage: storefront [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  j/k, arrows   move      Enter  open/confirm\n")
		fmt.Fprintf(os.Stderr, "  b             basket    Esc    close\n")
		fmt.Fprintf(os.Stderr, "  Tab           next field        q, Ctrl-C  quit\n")
		fmt.Fprintf(os.Stderr, "\nEnvironment:\n")
		fmt.Fprintf(os.Stderr, "  %sAPI_URL, %sCDN_URL, %sLOG_LEVEL, ...\n", config.EnvPrefix, config.EnvPrefix, config.EnvPrefix)
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("storefront %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	return f
}
