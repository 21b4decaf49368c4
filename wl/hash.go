// ABOUTME: Entry points for computing a Weisfeiler-Lehman graph hash.
// ABOUTME: Hash returns only the digest; Compute also returns round multisets and per-node label history.
package wl

import (
	"context"
	"fmt"
)

// Default parameters used by the CLI and servers when none are supplied.
const (
	DefaultIterations = 3
	DefaultDigestSize = 16
)

// Options controls one hash computation.
type Options struct {
	// NodeAttr names the node attribute used for initial labels. Empty means
	// initial labels come from undirected degree.
	NodeAttr string

	// Iterations is the number of WL rounds. Zero is allowed.
	Iterations int

	// DigestSize is the BLAKE2b output length in bytes for every compression.
	DigestSize int

	// Workers parallelizes per-node work within a round when greater than 1.
	Workers int
}

// DefaultOptions returns Options with the default iteration count and digest size.
func DefaultOptions() Options {
	return Options{
		Iterations: DefaultIterations,
		DigestSize: DefaultDigestSize,
	}
}

// Validate checks the numeric options without touching a graph.
func (o Options) Validate() error {
	if o.Iterations < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidIterations, o.Iterations)
	}
	return ValidateDigestSize(o.DigestSize)
}

// Result is the full outcome of a hash computation.
type Result struct {
	// Digest is the final graph hash, 2*DigestSize hex characters.
	Digest string

	// Rounds holds each round's sorted label multiset.
	Rounds []Round

	// NodeHashes holds, for every node, its label after each round. These are
	// the WL subgraph hashes rooted at that node of increasing depth.
	NodeHashes map[NodeID][]string
}

// Sequence returns the accumulated label-count sequence the digest was built from.
func (r *Result) Sequence() []LabelCount {
	return Flatten(r.Rounds)
}

// Hash computes the WL graph hash of g. nodeAttr may be empty to use degree
// labels. It returns a hexadecimal digest of 2*digestSize characters.
func Hash(g Graph, nodeAttr string, iterations, digestSize int) (string, error) {
	res, err := Compute(context.Background(), g, Options{
		NodeAttr:   nodeAttr,
		Iterations: iterations,
		DigestSize: digestSize,
	})
	if err != nil {
		return "", err
	}
	return res.Digest, nil
}

// Compute runs the full pipeline: initial labels, opts.Iterations rounds of
// refinement, and digest synthesis. ctx is checked between rounds; nil means
// context.Background. No partial result is returned on error.
func Compute(ctx context.Context, g Graph, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	initial := InitLabels(g, opts.NodeAttr)
	nodeHashes := make(map[NodeID][]string, len(initial))
	rounds, err := Iterate(g, initial, opts.Iterations, opts.DigestSize,
		WithContext(ctx),
		WithWorkers(opts.Workers),
		WithRoundObserver(func(_ int, labels LabelTable) {
			for n, l := range labels {
				nodeHashes[n] = append(nodeHashes[n], l)
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	digest, err := Synthesize(Flatten(rounds), opts.DigestSize)
	if err != nil {
		return nil, err
	}

	return &Result{
		Digest:     digest,
		Rounds:     rounds,
		NodeHashes: nodeHashes,
	}, nil
}
