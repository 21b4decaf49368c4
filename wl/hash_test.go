// ABOUTME: End-to-end tests for Hash and Compute on small directed graphs.
// ABOUTME: Covers determinism, isomorphism invariance, label sensitivity, zero iterations, and digest lengths.
package wl

import (
	"context"
	"errors"
	"testing"
)

func TestHashPath(t *testing.T) {
	g := pathABC(t)

	h1, err := Hash(g, "", 3, 16)
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if len(h1) != 32 || !isLowerHex(h1) {
		t.Fatalf("expected 32-char hex digest, got %q", h1)
	}

	h2, err := Hash(g, "", 3, 16)
	if err != nil {
		t.Fatal(err)
	}
	if h1 != h2 {
		t.Errorf("expected stable digest, got %s and %s", h1, h2)
	}
}

func TestHashIsomorphicTriangles(t *testing.T) {
	h1, err := Hash(trianglePendantFirst(t), "", 3, 16)
	if err != nil {
		t.Fatal(err)
	}
	h2, err := Hash(trianglePendantSecond(t), "", 3, 16)
	if err != nil {
		t.Fatal(err)
	}
	if h1 != h2 {
		t.Errorf("expected isomorphic graphs to hash equal, got %s and %s", h1, h2)
	}
}

func TestHashNonIsomorphicUnderAttribute(t *testing.T) {
	h1, err := Hash(trianglePendantFirst(t), "label", 3, 16)
	if err != nil {
		t.Fatal(err)
	}
	h2, err := Hash(trianglePendantSecond(t), "label", 3, 16)
	if err != nil {
		t.Fatal(err)
	}
	if h1 == h2 {
		t.Errorf("expected different hashes under distinct labels, both were %s", h1)
	}
}

func TestHashLabelSensitivity(t *testing.T) {
	g := trianglePendantFirst(t)
	withAttr, err := Hash(g, "label", 3, 16)
	if err != nil {
		t.Fatal(err)
	}
	withoutAttr, err := Hash(g, "", 3, 16)
	if err != nil {
		t.Fatal(err)
	}
	if withAttr == withoutAttr {
		t.Error("expected attribute labels to change the digest")
	}
}

func TestHashIndependentOfInsertionOrder(t *testing.T) {
	// Same triangle-plus-pendant as trianglePendantFirst with nodes and edges
	// inserted in a different order.
	g := buildGraph(t, []string{"4", "3", "2", "1"},
		[][2]int{{3, 0}, {1, 3}, {2, 1}, {3, 2}})

	h1, err := Hash(trianglePendantFirst(t), "label", 3, 16)
	if err != nil {
		t.Fatal(err)
	}
	h2, err := Hash(g, "label", 3, 16)
	if err != nil {
		t.Fatal(err)
	}
	if h1 != h2 {
		t.Errorf("expected relabeled insertion order to hash equal, got %s and %s", h1, h2)
	}
}

func TestHashDirectionMatters(t *testing.T) {
	forward := buildGraph(t, []string{"", "", ""}, [][2]int{{0, 1}, {0, 2}})
	backward := buildGraph(t, []string{"", "", ""}, [][2]int{{1, 0}, {2, 0}})

	h1, _ := Hash(forward, "", 2, 16)
	h2, _ := Hash(backward, "", 2, 16)
	if h1 == h2 {
		t.Error("expected out-star and in-star to hash differently")
	}
}

func TestHashZeroIterationsIgnoresGraph(t *testing.T) {
	want, err := Compress("[]", 16)
	if err != nil {
		t.Fatal(err)
	}
	for name, g := range map[string]Graph{
		"path":     pathABC(t),
		"triangle": trianglePendantFirst(t),
		"empty":    NewDigraph(),
	} {
		got, err := Hash(g, "", 0, 16)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if got != want {
			t.Errorf("%s: expected %s, got %s", name, want, got)
		}
	}
}

func TestHashDigestLengths(t *testing.T) {
	g := trianglePendantFirst(t)
	for _, size := range []int{1, 8, 20, 64} {
		res, err := Compute(context.Background(), g, Options{Iterations: 3, DigestSize: size})
		if err != nil {
			t.Fatalf("size %d: %v", size, err)
		}
		if len(res.Digest) != 2*size {
			t.Errorf("size %d: digest has %d chars", size, len(res.Digest))
		}
		for _, lc := range res.Sequence() {
			if len(lc.Label) != 2*size {
				t.Errorf("size %d: intermediate label %q has %d chars", size, lc.Label, len(lc.Label))
			}
		}
	}
}

func TestHashInvalidDigestSize(t *testing.T) {
	_, err := Hash(pathABC(t), "", 3, 0)
	if !errors.Is(err, ErrInvalidDigestSize) {
		t.Errorf("expected ErrInvalidDigestSize, got %v", err)
	}
	_, err = Hash(pathABC(t), "", 0, 65)
	if !errors.Is(err, ErrInvalidDigestSize) {
		t.Errorf("expected ErrInvalidDigestSize with zero iterations, got %v", err)
	}
}

func TestHashLabelLookupFailure(t *testing.T) {
	_, err := Hash(danglingGraph{}, "", 2, 16)
	if !errors.Is(err, ErrLabelLookup) {
		t.Errorf("expected ErrLabelLookup, got %v", err)
	}
}

func TestComputeResult(t *testing.T) {
	g := pathABC(t)
	res, err := Compute(context.Background(), g, Options{Iterations: 3, DigestSize: 16})
	if err != nil {
		t.Fatal(err)
	}

	want, _ := Hash(g, "", 3, 16)
	if res.Digest != want {
		t.Errorf("Compute digest %s differs from Hash %s", res.Digest, want)
	}
	if len(res.Rounds) != 3 {
		t.Errorf("expected 3 rounds, got %d", len(res.Rounds))
	}
	synth, _ := Synthesize(res.Sequence(), 16)
	if synth != res.Digest {
		t.Errorf("digest is not the synthesis of its own sequence")
	}

	if len(res.NodeHashes) != 3 {
		t.Fatalf("expected node hashes for 3 nodes, got %d", len(res.NodeHashes))
	}
	for n, hs := range res.NodeHashes {
		if len(hs) != 3 {
			t.Errorf("node %d: expected 3 round labels, got %d", n, len(hs))
		}
	}
	// A and C both have degree 1 but A has a successor, so their depth-1
	// subgraph hashes must differ.
	if res.NodeHashes[0][0] == res.NodeHashes[2][0] {
		t.Error("expected source and sink to diverge after one round")
	}
}

func TestComputeWorkersMatchSequential(t *testing.T) {
	g := trianglePendantFirst(t)
	seq, err := Compute(context.Background(), g, Options{Iterations: 4, DigestSize: 16})
	if err != nil {
		t.Fatal(err)
	}
	par, err := Compute(context.Background(), g, Options{Iterations: 4, DigestSize: 16, Workers: 4})
	if err != nil {
		t.Fatal(err)
	}
	if seq.Digest != par.Digest {
		t.Errorf("parallel digest %s differs from sequential %s", par.Digest, seq.Digest)
	}
}

func TestOptionsValidate(t *testing.T) {
	if err := DefaultOptions().Validate(); err != nil {
		t.Errorf("default options should validate: %v", err)
	}
	if err := (Options{Iterations: -2, DigestSize: 16}).Validate(); !errors.Is(err, ErrInvalidIterations) {
		t.Errorf("expected ErrInvalidIterations, got %v", err)
	}
	if err := (Options{Iterations: 1, DigestSize: 100}).Validate(); !errors.Is(err, ErrInvalidDigestSize) {
		t.Errorf("expected ErrInvalidDigestSize, got %v", err)
	}
}

func TestHashKnownDigests(t *testing.T) {
	selfLoop := buildGraph(t, []string{"a"}, [][2]int{{0, 0}})

	tests := []struct {
		name       string
		g          Graph
		attr       string
		iterations int
		digestSize int
		want       string
	}{
		{"path", pathABC(t), "", 3, 16, "2ed3f20f9fae5817df84b52dc81cf795"},
		{"triangle pendant", trianglePendantFirst(t), "", 3, 16, "ab6545310913fdb30be56a87ac234e81"},
		{"triangle pendant relabeled", trianglePendantSecond(t), "", 3, 16, "ab6545310913fdb30be56a87ac234e81"},
		{"triangle pendant by label", trianglePendantFirst(t), "label", 3, 16, "54d09b2d9376f103ff763341c03bb3e7"},
		{"zero iterations", pathABC(t), "", 0, 16, "7ebb3c7c2a87b1a2f8a7ed729ecb040d"},
		{"self loop", selfLoop, "", 2, 8, "f209c232537c0ef6"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Hash(tt.g, tt.attr, tt.iterations, tt.digestSize)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Hash = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestComputeNilContext(t *testing.T) {
	// nil is treated as context.Background
	res, err := Compute(nil, pathABC(t), DefaultOptions())
	if err != nil {
		t.Fatalf("Compute with nil context: %v", err)
	}
	if res.Digest != "2ed3f20f9fae5817df84b52dc81cf795" {
		t.Errorf("unexpected digest %s", res.Digest)
	}
}
