// ABOUTME: Index-based directed graph implementing the Graph provider contract.
// ABOUTME: Nodes are dense integer handles in insertion order; edges are stored as successor lists.
package wl

import "fmt"

// Digraph is a simple directed graph with per-node string attributes.
// Parallel edges and self-loops are allowed. The zero value is ready to use.
type Digraph struct {
	attrs    []map[string]string
	out      [][]NodeID
	inDegree []int
	edges    int
}

// NewDigraph returns an empty graph.
func NewDigraph() *Digraph {
	return &Digraph{}
}

// AddNode appends a node carrying a copy of attrs and returns its handle.
func (d *Digraph) AddNode(attrs map[string]string) NodeID {
	cp := make(map[string]string, len(attrs))
	for k, v := range attrs {
		cp[k] = v
	}
	d.attrs = append(d.attrs, cp)
	d.out = append(d.out, nil)
	d.inDegree = append(d.inDegree, 0)
	return NodeID(len(d.attrs) - 1)
}

// AddEdge adds a directed edge. Both endpoints must already exist.
func (d *Digraph) AddEdge(from, to NodeID) error {
	if !d.has(from) {
		return fmt.Errorf("%w: %d", ErrUnknownNode, from)
	}
	if !d.has(to) {
		return fmt.Errorf("%w: %d", ErrUnknownNode, to)
	}
	d.out[from] = append(d.out[from], to)
	// a self-loop is one incident edge, already counted in out
	if from != to {
		d.inDegree[to]++
	}
	d.edges++
	return nil
}

// SetAttr sets a node attribute.
func (d *Digraph) SetAttr(n NodeID, name, value string) error {
	if !d.has(n) {
		return fmt.Errorf("%w: %d", ErrUnknownNode, n)
	}
	d.attrs[n][name] = value
	return nil
}

// Len returns the number of nodes.
func (d *Digraph) Len() int { return len(d.attrs) }

// EdgeCount returns the number of edges, counting parallel edges separately.
func (d *Digraph) EdgeCount() int { return d.edges }

// Nodes returns handles 0..Len()-1.
func (d *Digraph) Nodes() []NodeID {
	nodes := make([]NodeID, len(d.attrs))
	for i := range nodes {
		nodes[i] = NodeID(i)
	}
	return nodes
}

// Attr returns a node attribute.
func (d *Digraph) Attr(n NodeID, name string) (string, bool) {
	if !d.has(n) {
		return "", false
	}
	v, ok := d.attrs[n][name]
	return v, ok
}

// Successors returns the targets of n's outgoing edges in insertion order.
func (d *Digraph) Successors(n NodeID) []NodeID {
	if !d.has(n) {
		return nil
	}
	return d.out[n]
}

// Degree returns in-degree plus out-degree, with self-loops counted once.
func (d *Digraph) Degree(n NodeID) int {
	if !d.has(n) {
		return 0
	}
	return len(d.out[n]) + d.inDegree[n]
}

func (d *Digraph) has(n NodeID) bool {
	return n >= 0 && int(n) < len(d.attrs)
}
