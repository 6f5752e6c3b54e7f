// Package main is the entry point for the redlined document server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/redline/internal/app"
	"github.com/dshills/redline/internal/config"
	"github.com/dshills/redline/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	flags := parseFlags()

	cfg, err := config.Load(flags.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	// Flags override the file.
	if flags.stdio {
		cfg.Server.Stdio = true
	}
	if flags.addr != "" {
		cfg.Server.HTTPAddr = flags.addr
	}
	if flags.document != "" {
		cfg.Document.Path = flags.document
	}
	if flags.author != "" {
		cfg.Document.Author = flags.author
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	// Logs go to stderr or a file; stdout stays free for the stdio
	// transport.
	log, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Path:   cfg.Log.Path,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer log.Close()

	application, err := app.New(cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	if err := application.WatchConfig(flags.configPath); err != nil {
		log.Warn("config watch unavailable", "path", flags.configPath, "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("starting", "version", version)
	if err := application.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

type cliFlags struct {
	configPath string
	stdio      bool
	addr       string
	document   string
	author     string
	logLevel   string
}

func parseFlags() cliFlags {
	var flags cliFlags
	var showVersion bool
	var showHelp bool

	flag.StringVar(&flags.configPath, "config", "redline.toml", "Path to configuration file")
	flag.StringVar(&flags.configPath, "c", "redline.toml", "Path to configuration file (shorthand)")
	flag.BoolVar(&flags.stdio, "stdio", false, "Speak JSON-RPC on stdin/stdout instead of HTTP")
	flag.StringVar(&flags.addr, "addr", "", "HTTP listen address (overrides config)")
	flag.StringVar(&flags.document, "doc", "", "Text file to open as the working document")
	flag.StringVar(&flags.author, "author", "", "Author stamped on tracked changes and comments")
	flag.StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "redlined - document editing tool server\n\n")
		fmt.Fprintf(os.Stderr, "Usage: redlined [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  redlined                       Serve HTTP on :8765 with an empty document\n")
		fmt.Fprintf(os.Stderr, "  redlined -doc draft.txt        Serve HTTP with draft.txt loaded\n")
		fmt.Fprintf(os.Stderr, "  redlined -stdio                Speak JSON-RPC on stdin/stdout\n")
		fmt.Fprintf(os.Stderr, "  redlined -addr 127.0.0.1:9000  Serve HTTP on another address\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("redlined %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	return flags
}
