// ABOUTME: Hash and compare commands for DOT files with text, JSON, and YAML output.
// ABOUTME: Compare exits 0 when digests match and 3 when they differ.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"

	"gopkg.in/yaml.v3"

	"github.com/2389-research/wlhash/hashing"
)

// fileReport pairs a report with the file it came from.
type fileReport struct {
	File           string `json:"file" yaml:"file"`
	hashing.Report `yaml:",inline"`
}

// comparison is the structured output of -compare.
type comparison struct {
	Equal   bool       `json:"equal" yaml:"equal"`
	Verdict string     `json:"verdict" yaml:"verdict"`
	Left    fileReport `json:"left" yaml:"left"`
	Right   fileReport `json:"right" yaml:"right"`
}

// hashOne hashes path and logs per-round detail when verbose.
func hashOne(ctx context.Context, cfg config, path string) (fileReport, error) {
	rep, err := hashing.HashFile(ctx, path, cfg.options())
	if err != nil {
		return fileReport{}, err
	}
	if cfg.verbose {
		log.Printf("component=cli action=hash file=%s nodes=%d edges=%d digest=%s", path, rep.Nodes, rep.Edges, rep.Digest)
		for _, r := range rep.Rounds {
			log.Printf("component=cli action=round file=%s round=%d distinct=%d", path, r.Round, r.Distinct)
		}
	}
	if !cfg.explain {
		rep.NodeHashes = nil
	}
	return fileReport{File: path, Report: *rep}, nil
}

func hashFiles(ctx context.Context, cfg config, stdout, stderr io.Writer) int {
	reports := make([]fileReport, 0, len(cfg.files))
	code := exitOK
	for _, path := range cfg.files {
		fr, err := hashOne(ctx, cfg, path)
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			code = exitError
			continue
		}
		reports = append(reports, fr)
	}

	switch cfg.format {
	case formatJSON:
		if err := writeJSON(stdout, reports); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return exitError
		}
	case formatYAML:
		if err := writeYAML(stdout, reports); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return exitError
		}
	default:
		for _, fr := range reports {
			fmt.Fprintf(stdout, "%s  %s\n", fr.Digest, fr.File)
			if cfg.explain {
				fmt.Fprintln(stdout, renderExplain(fr.File, &fr.Report))
			}
		}
	}
	return code
}

func compareFiles(ctx context.Context, cfg config, stdout, stderr io.Writer) int {
	left, err := hashOne(ctx, cfg, cfg.files[0])
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}
	right, err := hashOne(ctx, cfg, cfg.files[1])
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}

	cmp := comparison{
		Equal:   left.Digest == right.Digest,
		Verdict: "not isomorphic",
		Left:    left,
		Right:   right,
	}
	if cmp.Equal {
		cmp.Verdict = "possibly isomorphic"
	}

	switch cfg.format {
	case formatJSON:
		err = writeJSON(stdout, cmp)
	case formatYAML:
		err = writeYAML(stdout, cmp)
	default:
		fmt.Fprintf(stdout, "%s  %s\n", left.Digest, left.File)
		fmt.Fprintf(stdout, "%s  %s\n", right.Digest, right.File)
		if cfg.explain {
			fmt.Fprintln(stdout, renderExplain(left.File, &left.Report))
			fmt.Fprintln(stdout, renderExplain(right.File, &right.Report))
		}
		fmt.Fprintln(stdout, cmp.Verdict)
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}

	if !cmp.Equal {
		return exitMismatch
	}
	return exitOK
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
