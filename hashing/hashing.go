// ABOUTME: Shared hash-a-DOT-document service used by the CLI, HTTP API, and MCP tools.
// ABOUTME: Loads DOT source, runs wl.Compute, and summarizes the result into a serializable Report.
package hashing

import (
	"context"
	"errors"
	"fmt"

	"github.com/2389-research/wlhash/dot"
	"github.com/2389-research/wlhash/wl"
)

// Report is the serializable outcome of hashing one DOT document.
type Report struct {
	Graph      string         `json:"graph" yaml:"graph"`
	Digest     string         `json:"digest" yaml:"digest"`
	Iterations int            `json:"iterations" yaml:"iterations"`
	DigestSize int            `json:"digest_size" yaml:"digest_size"`
	NodeAttr   string         `json:"node_attr" yaml:"node_attr"`
	Nodes      int            `json:"nodes" yaml:"nodes"`
	Edges      int            `json:"edges" yaml:"edges"`
	Rounds     []RoundSummary `json:"rounds" yaml:"rounds"`

	// NodeHashes maps DOT node IDs to their label after each round.
	NodeHashes map[string][]string `json:"node_hashes,omitempty" yaml:"node_hashes,omitempty"`
}

// RoundSummary describes the label multiset produced by one round.
type RoundSummary struct {
	Round    int             `json:"round" yaml:"round"`
	Distinct int             `json:"distinct" yaml:"distinct"`
	Counts   []wl.LabelCount `json:"counts" yaml:"counts"`
}

// Comparison is the outcome of hashing two documents with the same options.
type Comparison struct {
	Equal bool    `json:"equal" yaml:"equal"`
	Left  *Report `json:"left" yaml:"left"`
	Right *Report `json:"right" yaml:"right"`
}

// HashDOT parses source and hashes it with opts.
func HashDOT(ctx context.Context, source string, opts wl.Options) (*Report, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	g, x, err := dot.Load(source)
	if err != nil {
		return nil, err
	}
	return HashIndexed(ctx, g.Name, x, opts)
}

// HashFile reads path and hashes it with opts.
func HashFile(ctx context.Context, path string, opts wl.Options) (*Report, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	g, x, err := dot.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return HashIndexed(ctx, g.Name, x, opts)
}

// HashIndexed hashes an already indexed graph.
func HashIndexed(ctx context.Context, name string, x *dot.Indexed, opts wl.Options) (*Report, error) {
	res, err := wl.Compute(ctx, x, opts)
	if err != nil {
		return nil, err
	}

	rep := &Report{
		Graph:      name,
		Digest:     res.Digest,
		Iterations: opts.Iterations,
		DigestSize: opts.DigestSize,
		NodeAttr:   opts.NodeAttr,
		Nodes:      x.Len(),
		Edges:      x.EdgeCount(),
		Rounds:     make([]RoundSummary, len(res.Rounds)),
		NodeHashes: make(map[string][]string, len(res.NodeHashes)),
	}
	for i, r := range res.Rounds {
		rep.Rounds[i] = RoundSummary{Round: i + 1, Distinct: len(r), Counts: r}
	}
	for n, labels := range res.NodeHashes {
		rep.NodeHashes[x.Name(n)] = labels
	}
	return rep, nil
}

// Compare hashes left and right with the same options. Equal digests mean the
// graphs may be isomorphic; different digests mean they are not.
func Compare(ctx context.Context, left, right string, opts wl.Options) (*Comparison, error) {
	l, err := HashDOT(ctx, left, opts)
	if err != nil {
		return nil, fmt.Errorf("left: %w", err)
	}
	r, err := HashDOT(ctx, right, opts)
	if err != nil {
		return nil, fmt.Errorf("right: %w", err)
	}
	return &Comparison{Equal: l.Digest == r.Digest, Left: l, Right: r}, nil
}

// Kind classifies an error returned by this package.
type Kind int

const (
	// KindInternal is anything not caused by the caller's input.
	KindInternal Kind = iota
	// KindConfig is an invalid iteration count or digest size.
	KindConfig
	// KindInput is malformed or inconsistent DOT source.
	KindInput
	// KindCanceled means the context ended before the hash finished.
	KindCanceled
)

// Classify maps an error to the Kind the outer surfaces report on.
func Classify(err error) Kind {
	switch {
	case errors.Is(err, wl.ErrInvalidDigestSize), errors.Is(err, wl.ErrInvalidIterations):
		return KindConfig
	case errors.Is(err, dot.ErrParse), errors.Is(err, dot.ErrDanglingEdge):
		return KindInput
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	default:
		return KindInternal
	}
}
