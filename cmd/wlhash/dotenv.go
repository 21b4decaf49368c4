// ABOUTME: Loads WLHASH_* settings from a .env file before configuration is layered.
// ABOUTME: Never overrides variables already present in the process environment.
package main

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// parseDotEnv reads KEY=VALUE lines. Blank lines and # comments are skipped,
// an "export " prefix is allowed, and matching quotes around a value are removed.
func parseDotEnv(r io.Reader) (map[string]string, error) {
	vars := make(map[string]string)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		// Values may contain '='.
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = unquote(strings.TrimSpace(value))
		if key != "" {
			vars[key] = value
		}
	}
	return vars, scanner.Err()
}

func unquote(v string) string {
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		return v[1 : len(v)-1]
	}
	return v
}

// loadDotEnv applies path to the environment without clobbering. A missing
// or unreadable file leaves the environment unchanged.
func loadDotEnv(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	vars, err := parseDotEnv(f)
	if err != nil {
		return
	}
	for key, value := range vars {
		if _, exists := os.LookupEnv(key); !exists {
			os.Setenv(key, value)
		}
	}
}
