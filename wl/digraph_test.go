// ABOUTME: Tests for the index-based Digraph provider.
// ABOUTME: Covers handle assignment, attribute copies, edge validation, and degree bookkeeping.
package wl

import (
	"errors"
	"testing"
)

func TestDigraphAddNodeCopiesAttrs(t *testing.T) {
	g := NewDigraph()
	attrs := map[string]string{"label": "A"}
	n := g.AddNode(attrs)
	attrs["label"] = "changed"

	if got, _ := g.Attr(n, "label"); got != "A" {
		t.Errorf("expected stored attr %q, got %q", "A", got)
	}
}

func TestDigraphHandles(t *testing.T) {
	g := NewDigraph()
	a := g.AddNode(nil)
	b := g.AddNode(nil)
	if a != 0 || b != 1 {
		t.Errorf("expected handles 0 and 1, got %d and %d", a, b)
	}
	if g.Len() != 2 {
		t.Errorf("expected Len 2, got %d", g.Len())
	}
	if nodes := g.Nodes(); len(nodes) != 2 || nodes[0] != 0 || nodes[1] != 1 {
		t.Errorf("unexpected Nodes(): %v", nodes)
	}
}

func TestDigraphAddEdgeUnknownNode(t *testing.T) {
	g := NewDigraph()
	a := g.AddNode(nil)
	if err := g.AddEdge(a, 5); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("expected ErrUnknownNode, got %v", err)
	}
	if err := g.AddEdge(-1, a); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("expected ErrUnknownNode, got %v", err)
	}
	if g.EdgeCount() != 0 {
		t.Errorf("failed edges should not be counted, got %d", g.EdgeCount())
	}
}

func TestDigraphDegreeAndSuccessors(t *testing.T) {
	g := buildGraph(t, []string{"a", "b", "c"}, [][2]int{{0, 1}, {0, 1}, {2, 0}})

	if g.EdgeCount() != 3 {
		t.Errorf("expected 3 edges, got %d", g.EdgeCount())
	}
	if d := g.Degree(0); d != 3 {
		t.Errorf("node 0: expected degree 3, got %d", d)
	}
	if d := g.Degree(1); d != 2 {
		t.Errorf("node 1: expected degree 2, got %d", d)
	}
	if succ := g.Successors(0); len(succ) != 2 || succ[0] != 1 || succ[1] != 1 {
		t.Errorf("node 0: unexpected successors %v", succ)
	}
	if g.Degree(99) != 0 || g.Successors(99) != nil {
		t.Error("unknown node should have no degree or successors")
	}
}

func TestDigraphSetAttr(t *testing.T) {
	g := NewDigraph()
	n := g.AddNode(nil)
	if err := g.SetAttr(n, "label", "x"); err != nil {
		t.Fatal(err)
	}
	if v, ok := g.Attr(n, "label"); !ok || v != "x" {
		t.Errorf("expected label x, got %q (%v)", v, ok)
	}
	if err := g.SetAttr(3, "label", "x"); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("expected ErrUnknownNode, got %v", err)
	}
}
