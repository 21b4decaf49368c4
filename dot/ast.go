// ABOUTME: AST types for parsed DOT digraphs: Graph, Node, Edge, and Subgraph.
// ABOUTME: Provides construction and traversal helpers with deterministic node ordering.
package dot

import "sort"

// Graph represents a parsed DOT digraph with its nodes, edges, attributes, and subgraphs.
type Graph struct {
	Name         string
	Strict       bool              // strict digraphs drop repeated edges
	Nodes        map[string]*Node
	Edges        []*Edge
	Attrs        map[string]string // graph-level attributes
	NodeDefaults map[string]string // top-level node [...] defaults
	EdgeDefaults map[string]string // top-level edge [...] defaults
	Subgraphs    []*Subgraph
}

// Node represents a node in the graph with an ID and key-value attributes.
type Node struct {
	ID    string
	Attrs map[string]string
}

// Edge represents a directed edge from one node to another with optional attributes.
// Edge attributes are kept for round-tripping but do not take part in hashing.
type Edge struct {
	From  string
	To    string
	Attrs map[string]string
}

// Subgraph records a subgraph scope and the nodes first declared inside it.
type Subgraph struct {
	Name    string
	Attrs   map[string]string
	NodeIDs []string
}

// NewGraph returns an empty graph with all maps initialized.
func NewGraph(name string) *Graph {
	return &Graph{
		Name:         name,
		Nodes:        make(map[string]*Node),
		Attrs:        make(map[string]string),
		NodeDefaults: make(map[string]string),
		EdgeDefaults: make(map[string]string),
	}
}

// AddNode adds a node to the graph, replacing any node with the same ID.
func (g *Graph) AddNode(n *Node) {
	if g.Nodes == nil {
		g.Nodes = make(map[string]*Node)
	}
	if n.Attrs == nil {
		n.Attrs = make(map[string]string)
	}
	g.Nodes[n.ID] = n
}

// AddEdge appends an edge to the graph.
func (g *Graph) AddEdge(e *Edge) {
	g.Edges = append(g.Edges, e)
}

// FindNode returns the node with the given ID, or nil if not found.
func (g *Graph) FindNode(id string) *Node {
	if g.Nodes == nil {
		return nil
	}
	return g.Nodes[id]
}

// HasEdge reports whether an edge from -> to exists.
func (g *Graph) HasEdge(from, to string) bool {
	for _, e := range g.Edges {
		if e.From == from && e.To == to {
			return true
		}
	}
	return false
}

// OutgoingEdges returns all edges originating from the given node ID.
func (g *Graph) OutgoingEdges(nodeID string) []*Edge {
	var result []*Edge
	for _, e := range g.Edges {
		if e.From == nodeID {
			result = append(result, e)
		}
	}
	return result
}

// IncomingEdges returns all edges terminating at the given node ID.
func (g *Graph) IncomingEdges(nodeID string) []*Edge {
	var result []*Edge
	for _, e := range g.Edges {
		if e.To == nodeID {
			result = append(result, e)
		}
	}
	return result
}

// NodeIDs returns all node IDs in sorted order for deterministic output.
func (g *Graph) NodeIDs() []string {
	ids := make([]string, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
