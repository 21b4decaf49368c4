// ABOUTME: Layered CLI configuration: built-in defaults, a YAML file, environment, then flags.
// ABOUTME: Validates the merged result before any graph is read.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/2389-research/wlhash/wl"
)

const defaultPort = 2390

// Output formats accepted by -format.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// config holds all CLI configuration after layering.
type config struct {
	configFile  string
	nodeAttr    string
	iterations  int
	digestSize  int
	workers     int
	format      string
	compare     bool
	explain     bool
	verbose     bool
	serverMode  bool
	mcpMode     bool
	port        int
	timeout     time.Duration
	showVersion bool
	files       []string
}

// fileConfig is the YAML configuration file schema. Pointer fields
// distinguish "absent" from zero values.
type fileConfig struct {
	NodeAttr   *string `yaml:"node_attr"`
	Iterations *int    `yaml:"iterations"`
	DigestSize *int    `yaml:"digest_size"`
	Workers    *int    `yaml:"workers"`
	Format     string  `yaml:"format"`
	Server     struct {
		Port    *int   `yaml:"port"`
		Timeout string `yaml:"timeout"`
	} `yaml:"server"`
}

func defaultConfig() config {
	return config{
		iterations: wl.DefaultIterations,
		digestSize: wl.DefaultDigestSize,
		format:     formatText,
		port:       defaultPort,
		timeout:    30 * time.Second,
	}
}

// options returns the hash options the config describes.
func (c config) options() wl.Options {
	return wl.Options{
		NodeAttr:   c.nodeAttr,
		Iterations: c.iterations,
		DigestSize: c.digestSize,
		Workers:    c.workers,
	}
}

// applyFile overlays settings from a YAML file. Unknown keys are errors.
func (c *config) applyFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("config file: %w", err)
	}
	defer f.Close()

	var fc fileConfig
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config file %s: %w", path, err)
	}

	if fc.NodeAttr != nil {
		c.nodeAttr = *fc.NodeAttr
	}
	if fc.Iterations != nil {
		c.iterations = *fc.Iterations
	}
	if fc.DigestSize != nil {
		c.digestSize = *fc.DigestSize
	}
	if fc.Workers != nil {
		c.workers = *fc.Workers
	}
	if fc.Format != "" {
		c.format = fc.Format
	}
	if fc.Server.Port != nil {
		c.port = *fc.Server.Port
	}
	if fc.Server.Timeout != "" {
		d, err := time.ParseDuration(fc.Server.Timeout)
		if err != nil {
			return fmt.Errorf("config file %s: server.timeout: %w", path, err)
		}
		c.timeout = d
	}
	return nil
}

// applyEnv overlays WLHASH_* environment variables.
func (c *config) applyEnv() error {
	if v, ok := os.LookupEnv("WLHASH_NODE_ATTR"); ok {
		c.nodeAttr = v
	}
	for _, e := range []struct {
		key string
		dst *int
	}{
		{"WLHASH_ITERATIONS", &c.iterations},
		{"WLHASH_DIGEST_SIZE", &c.digestSize},
		{"WLHASH_WORKERS", &c.workers},
		{"WLHASH_PORT", &c.port},
	} {
		v := os.Getenv(e.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: invalid integer %q", e.key, v)
		}
		*e.dst = n
	}
	return nil
}

// validate checks the merged config.
func (c config) validate() error {
	if err := c.options().Validate(); err != nil {
		return err
	}
	if c.workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.workers)
	}
	switch c.format {
	case formatText, formatJSON, formatYAML:
	default:
		return fmt.Errorf("unknown format %q (want text, json, or yaml)", c.format)
	}
	if c.serverMode && c.mcpMode {
		return errors.New("-server and -mcp are mutually exclusive")
	}
	if c.serverMode && (c.port < 1 || c.port > 65535) {
		return fmt.Errorf("port out of range: %d", c.port)
	}
	if c.compare && len(c.files) != 2 {
		return fmt.Errorf("-compare needs exactly two files, got %d", len(c.files))
	}
	return nil
}
