// ABOUTME: Help display for the wlhash CLI with grouped flags, examples, and environment status.
// ABOUTME: Lists the WLHASH_* environment overrides and whether each is currently set.
package main

import (
	"fmt"
	"io"
	"os"
)

// printHelp writes usage, grouped flags, examples, and the effective
// environment overrides to w.
func printHelp(w io.Writer, ver string) {
	fmt.Fprintf(w, "wlhash %s: Weisfeiler-Lehman hashes for DOT digraphs\n", ver)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  wlhash [flags] <graph.dot>...           Print <digest>  <file> per graph")
	fmt.Fprintln(w, "  wlhash -compare <a.dot> <b.dot>         Exit 0 if hashes match, 3 if not")
	fmt.Fprintln(w, "  wlhash -server [-port 2390]             Start HTTP API server")
	fmt.Fprintln(w, "  wlhash -mcp                             Serve MCP tools on stdio")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Hash Flags:")
	fmt.Fprintln(w, "  -attr <name>          Node attribute for initial labels; 'id' uses the DOT node ID (default: degree)")
	fmt.Fprintln(w, "  -iterations <n>       Number of WL rounds (default: 3)")
	fmt.Fprintln(w, "  -digest-size <bytes>  BLAKE2b digest size, 1-64 (default: 16)")
	fmt.Fprintln(w, "  -workers <n>          Parallel workers per round (default: sequential)")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Output Flags:")
	fmt.Fprintln(w, "  -format <fmt>         text, json, yaml (default: text)")
	fmt.Fprintln(w, "  -explain              Show per-round and per-node detail")
	fmt.Fprintln(w, "  -verbose              Log each file and round to stderr")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Server Flags:")
	fmt.Fprintln(w, "  -server               Start HTTP server mode")
	fmt.Fprintln(w, "  -port <port>          Server port (default: 2390)")
	fmt.Fprintln(w, "  -timeout <duration>   Per-request hash timeout (default: 30s)")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Other:")
	fmt.Fprintln(w, "  -config <file>        YAML config file (default: $WLHASH_CONFIG)")
	fmt.Fprintln(w, "  -version              Print version and exit")
	fmt.Fprintln(w, "  -help                 Show this help")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  wlhash testdata/path.dot")
	fmt.Fprintln(w, "  wlhash -attr label -iterations 5 a.dot b.dot")
	fmt.Fprintln(w, "  wlhash -compare -explain left.dot right.dot")
	fmt.Fprintln(w, "  wlhash -format json graph.dot")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment:")
	for _, key := range []string{"WLHASH_CONFIG", "WLHASH_NODE_ATTR", "WLHASH_ITERATIONS", "WLHASH_DIGEST_SIZE", "WLHASH_WORKERS", "WLHASH_PORT"} {
		fmt.Fprintf(w, "  %-20s %s\n", key, envStatus(key))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Flags override the environment, which overrides the config file.")
}

// envStatus returns "[set]" if the named environment variable is non-empty,
// or "[not set]" otherwise.
func envStatus(key string) string {
	if os.Getenv(key) != "" {
		return "[set]"
	}
	return "[not set]"
}
