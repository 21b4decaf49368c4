// ABOUTME: CLI entrypoint for wlhash with hash, compare, HTTP server, and MCP modes.
// ABOUTME: Layers configuration, hashes DOT files, and maps outcomes to exit codes.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/2389-research/wlhash/mcp"
	"github.com/2389-research/wlhash/server"
)

var version = "dev"

// Exit codes.
const (
	exitOK       = 0
	exitError    = 1
	exitUsage    = 2
	exitMismatch = 3
)

func main() {
	loadDotEnv(".env")

	cfg, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(exitOK)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(exitUsage)
	}

	os.Exit(run(cfg, os.Stdout, os.Stderr))
}

// parseFlags parses args and layers them over the config file and
// environment. Explicitly set flags win.
func parseFlags(args []string, stderr io.Writer) (config, error) {
	cfg := defaultConfig()

	fs := flag.NewFlagSet("wlhash", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.configFile, "config", os.Getenv("WLHASH_CONFIG"), "YAML config file")
	fs.StringVar(&cfg.nodeAttr, "attr", cfg.nodeAttr, "Node attribute for initial labels (default: degree)")
	fs.IntVar(&cfg.iterations, "iterations", cfg.iterations, "Number of WL rounds")
	fs.IntVar(&cfg.digestSize, "digest-size", cfg.digestSize, "BLAKE2b digest size in bytes (1-64)")
	fs.IntVar(&cfg.workers, "workers", cfg.workers, "Parallel workers per round (0 or 1: sequential)")
	fs.StringVar(&cfg.format, "format", cfg.format, "Output format: text, json, yaml")
	fs.BoolVar(&cfg.compare, "compare", false, "Compare the hashes of two files")
	fs.BoolVar(&cfg.explain, "explain", false, "Show per-round and per-node detail")
	fs.BoolVar(&cfg.verbose, "verbose", false, "Log each file and round")
	fs.BoolVar(&cfg.serverMode, "server", false, "Start HTTP API server")
	fs.IntVar(&cfg.port, "port", cfg.port, "Server port")
	fs.DurationVar(&cfg.timeout, "timeout", cfg.timeout, "Per-request hash timeout in server mode")
	fs.BoolVar(&cfg.mcpMode, "mcp", false, "Serve MCP tools on stdio")
	fs.BoolVar(&cfg.showVersion, "version", false, "Print version and exit")

	fs.Usage = func() {
		printHelp(stderr, version)
	}

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	merged := defaultConfig()
	if cfg.configFile != "" {
		if err := merged.applyFile(cfg.configFile); err != nil {
			return cfg, err
		}
	}
	if err := merged.applyEnv(); err != nil {
		return cfg, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "attr":
			merged.nodeAttr = cfg.nodeAttr
		case "iterations":
			merged.iterations = cfg.iterations
		case "digest-size":
			merged.digestSize = cfg.digestSize
		case "workers":
			merged.workers = cfg.workers
		case "format":
			merged.format = cfg.format
		case "port":
			merged.port = cfg.port
		case "timeout":
			merged.timeout = cfg.timeout
		}
	})
	merged.configFile = cfg.configFile
	merged.compare = cfg.compare
	merged.explain = cfg.explain
	merged.verbose = cfg.verbose
	merged.serverMode = cfg.serverMode
	merged.mcpMode = cfg.mcpMode
	merged.showVersion = cfg.showVersion
	merged.files = fs.Args()

	return merged, nil
}

// run dispatches to the mode selected by cfg and returns an exit code.
func run(cfg config, stdout, stderr io.Writer) int {
	if cfg.showVersion {
		fmt.Fprintf(stdout, "wlhash %s\n", version)
		return exitOK
	}

	if err := cfg.validate(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}

	if cfg.serverMode {
		return runServer(cfg, stderr)
	}
	if cfg.mcpMode {
		return runMCP(cfg, stderr)
	}

	if len(cfg.files) == 0 {
		printHelp(stderr, version)
		return exitUsage
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.compare {
		return compareFiles(ctx, cfg, stdout, stderr)
	}
	return hashFiles(ctx, cfg, stdout, stderr)
}

// runServer starts the HTTP API and blocks until interrupted.
func runServer(cfg config, stderr io.Writer) int {
	srv := server.New(server.Config{
		Addr:     fmt.Sprintf("127.0.0.1:%d", cfg.port),
		Defaults: cfg.options(),
		Timeout:  cfg.timeout,
	})
	httpServer := srv.HTTPServer()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		httpServer.Close()
	}()

	log.Printf("component=cli action=listen addr=%s iterations=%d digest_size=%d", srv.Addr(), cfg.iterations, cfg.digestSize)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}
	return exitOK
}

// runMCP serves MCP tools on stdio until the client disconnects.
func runMCP(cfg config, stderr io.Writer) int {
	log.Printf("component=cli action=mcp_serve version=%s", version)
	if err := mcp.NewServer(version, cfg.options()).Serve(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}
	return exitOK
}
