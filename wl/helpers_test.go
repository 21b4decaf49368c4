// ABOUTME: Shared graph builders and fakes for wl package tests.
// ABOUTME: Includes the directed path, triangle-with-pendant fixtures, and an inconsistent graph.
package wl

import "testing"

// buildGraph creates a Digraph whose nodes carry a "label" attribute from
// labels and whose edges are given as index pairs into labels.
func buildGraph(t *testing.T, labels []string, edges [][2]int) *Digraph {
	t.Helper()
	g := NewDigraph()
	ids := make([]NodeID, len(labels))
	for i, l := range labels {
		ids[i] = g.AddNode(map[string]string{"label": l})
	}
	for _, e := range edges {
		if err := g.AddEdge(ids[e[0]], ids[e[1]]); err != nil {
			t.Fatalf("AddEdge(%d, %d): %v", e[0], e[1], err)
		}
	}
	return g
}

// pathABC returns A -> B -> C.
func pathABC(t *testing.T) *Digraph {
	t.Helper()
	return buildGraph(t, []string{"A", "B", "C"}, [][2]int{{0, 1}, {1, 2}})
}

// trianglePendantFirst is 1->2->3->1 with pendant 1->4.
func trianglePendantFirst(t *testing.T) *Digraph {
	t.Helper()
	return buildGraph(t, []string{"1", "2", "3", "4"},
		[][2]int{{0, 1}, {1, 2}, {2, 0}, {0, 3}})
}

// trianglePendantSecond is 5->6->7->5 with pendant 7->8: same shape,
// different node identities, pendant on a different cycle position.
func trianglePendantSecond(t *testing.T) *Digraph {
	t.Helper()
	return buildGraph(t, []string{"5", "6", "7", "8"},
		[][2]int{{0, 1}, {1, 2}, {2, 0}, {2, 3}})
}

// danglingGraph reports a successor that is not one of its nodes.
type danglingGraph struct{}

func (danglingGraph) Nodes() []NodeID { return []NodeID{0, 1} }

func (danglingGraph) Attr(NodeID, string) (string, bool) { return "", false }

func (danglingGraph) Degree(NodeID) int { return 1 }

func (danglingGraph) Successors(n NodeID) []NodeID {
	if n == 0 {
		return []NodeID{7}
	}
	return nil
}

func isLowerHex(s string) bool {
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
