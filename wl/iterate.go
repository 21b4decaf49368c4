// ABOUTME: WL iterator that runs aggregate-then-compress rounds over every node.
// ABOUTME: Each round reads only the previous table, swaps in a fresh one, and records sorted label counts.
package wl

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// LabelCount is one entry of a round's label multiset.
type LabelCount struct {
	Label string `json:"label" yaml:"label"`
	Count int    `json:"count" yaml:"count"`
}

// Round is the label multiset produced by one WL round, sorted by label.
type Round []LabelCount

// IterateOption configures optional Iterate behavior.
type IterateOption func(*iterateConfig)

type iterateConfig struct {
	ctx     context.Context
	workers int
	observe func(round int, labels LabelTable)
}

// WithWorkers computes each round's node labels with n goroutines. Values
// below 2 keep the sequential path. Output does not depend on n.
func WithWorkers(n int) IterateOption {
	return func(c *iterateConfig) {
		c.workers = n
	}
}

// WithContext makes Iterate check ctx before every round. A nil ctx is
// ignored.
func WithContext(ctx context.Context) IterateOption {
	return func(c *iterateConfig) {
		if ctx != nil {
			c.ctx = ctx
		}
	}
}

// WithRoundObserver calls fn with the completed table after every round.
// Rounds are numbered from 1. fn must not retain or modify the table.
func WithRoundObserver(fn func(round int, labels LabelTable)) IterateOption {
	return func(c *iterateConfig) {
		c.observe = fn
	}
}

// Iterate runs iterations WL rounds starting from initial and returns each
// round's sorted label multiset in round order. Zero iterations return no
// rounds. Any aggregation or compression failure aborts the whole run.
func Iterate(g Graph, initial LabelTable, iterations, digestSize int, opts ...IterateOption) ([]Round, error) {
	cfg := iterateConfig{ctx: context.Background()}
	for _, opt := range opts {
		opt(&cfg)
	}

	if iterations < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidIterations, iterations)
	}
	if err := ValidateDigestSize(digestSize); err != nil {
		return nil, err
	}

	nodes := g.Nodes()
	labels := initial
	rounds := make([]Round, 0, iterations)
	for i := 1; i <= iterations; i++ {
		if err := cfg.ctx.Err(); err != nil {
			return nil, err
		}

		var next LabelTable
		var err error
		if cfg.workers > 1 && len(nodes) > 1 {
			next, err = stepParallel(g, nodes, labels, digestSize, cfg.workers)
		} else {
			next, err = step(g, nodes, labels, digestSize)
		}
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", i, err)
		}

		labels = next
		rounds = append(rounds, countLabels(labels))
		if cfg.observe != nil {
			cfg.observe(i, labels)
		}
	}
	return rounds, nil
}

// Flatten concatenates rounds into the single accumulated sequence consumed by
// Synthesize: round-major, lexicographic within a round.
func Flatten(rounds []Round) []LabelCount {
	total := 0
	for _, r := range rounds {
		total += len(r)
	}
	seq := make([]LabelCount, 0, total)
	for _, r := range rounds {
		seq = append(seq, r...)
	}
	return seq
}

// step computes one round sequentially.
func step(g Graph, nodes []NodeID, labels LabelTable, digestSize int) (LabelTable, error) {
	next := make(LabelTable, len(nodes))
	for _, n := range nodes {
		h, err := relabel(g, n, labels, digestSize)
		if err != nil {
			return nil, err
		}
		next[n] = h
	}
	return next, nil
}

// stepParallel computes one round with a fixed pool of workers. Results land
// in a slice indexed like nodes, so the table is only assembled after every
// worker has finished. When several nodes fail, the error for the earliest
// node in enumeration order is returned.
func stepParallel(g Graph, nodes []NodeID, labels LabelTable, digestSize, workers int) (LabelTable, error) {
	if workers > len(nodes) {
		workers = len(nodes)
	}
	hashed := make([]string, len(nodes))
	errs := make([]error, len(nodes))

	var wg sync.WaitGroup
	chunk := (len(nodes) + workers - 1) / workers
	for start := 0; start < len(nodes); start += chunk {
		end := min(start+chunk, len(nodes))
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				hashed[i], errs[i] = relabel(g, nodes[i], labels, digestSize)
				if errs[i] != nil {
					return
				}
			}
		}(start, end)
	}
	wg.Wait()

	next := make(LabelTable, len(nodes))
	for i, n := range nodes {
		if errs[i] != nil {
			return nil, errs[i]
		}
		next[n] = hashed[i]
	}
	return next, nil
}

func relabel(g Graph, n NodeID, labels LabelTable, digestSize int) (string, error) {
	agg, err := Aggregate(g, n, labels)
	if err != nil {
		return "", err
	}
	return Compress(agg, digestSize)
}

// countLabels builds a round's multiset sorted by label string.
func countLabels(labels LabelTable) Round {
	counts := make(map[string]int)
	for _, l := range labels {
		counts[l]++
	}
	round := make(Round, 0, len(counts))
	for l, c := range counts {
		round = append(round, LabelCount{Label: l, Count: c})
	}
	sort.Slice(round, func(i, j int) bool {
		return round[i].Label < round[j].Label
	})
	return round
}
