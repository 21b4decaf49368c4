// ABOUTME: Adapts a parsed DOT Graph to the wl.Graph provider contract.
// ABOUTME: Assigns integer handles in sorted node-ID order and precomputes successors and degrees.
package dot

import (
	"fmt"
	"os"

	"github.com/2389-research/wlhash/wl"
)

// IDAttr is the pseudo-attribute that resolves to a node's DOT ID when the
// node has no explicit attribute of that name.
const IDAttr = "id"

// Indexed is an immutable wl.Graph view of a DOT graph. Later changes to the
// source Graph are not reflected.
type Indexed struct {
	ids    []string
	index  map[string]wl.NodeID
	attrs  []map[string]string
	out    [][]wl.NodeID
	degree []int
	edges  int
}

var _ wl.Graph = (*Indexed)(nil)

// Index builds the wl.Graph view. Every edge endpoint must be a node of g.
func (g *Graph) Index() (*Indexed, error) {
	ids := g.NodeIDs()
	x := &Indexed{
		ids:    ids,
		index:  make(map[string]wl.NodeID, len(ids)),
		attrs:  make([]map[string]string, len(ids)),
		out:    make([][]wl.NodeID, len(ids)),
		degree: make([]int, len(ids)),
	}
	for i, id := range ids {
		x.index[id] = wl.NodeID(i)
		x.attrs[i] = copyAttrs(g.Nodes[id].Attrs)
	}

	for _, e := range g.Edges {
		from, ok := x.index[e.From]
		if !ok {
			return nil, fmt.Errorf("%w: %s -> %s: unknown node %q", ErrDanglingEdge, e.From, e.To, e.From)
		}
		to, ok := x.index[e.To]
		if !ok {
			return nil, fmt.Errorf("%w: %s -> %s: unknown node %q", ErrDanglingEdge, e.From, e.To, e.To)
		}
		x.out[from] = append(x.out[from], to)
		x.degree[from]++
		if from != to {
			x.degree[to]++
		}
		x.edges++
	}
	return x, nil
}

// Load parses DOT source and indexes the result.
func Load(source string) (*Graph, *Indexed, error) {
	g, err := Parse(source)
	if err != nil {
		return nil, nil, err
	}
	x, err := g.Index()
	if err != nil {
		return nil, nil, err
	}
	return g, x, nil
}

// LoadFile reads and loads a DOT file.
func LoadFile(path string) (*Graph, *Indexed, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	g, x, err := Load(string(source))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, x, nil
}

// Len returns the number of nodes.
func (x *Indexed) Len() int { return len(x.ids) }

// EdgeCount returns the number of edges.
func (x *Indexed) EdgeCount() int { return x.edges }

// Name returns the DOT ID for a handle, or "" if the handle is unknown.
func (x *Indexed) Name(n wl.NodeID) string {
	if !x.has(n) {
		return ""
	}
	return x.ids[n]
}

// Lookup returns the handle for a DOT node ID.
func (x *Indexed) Lookup(id string) (wl.NodeID, bool) {
	n, ok := x.index[id]
	return n, ok
}

// Nodes returns handles 0..Len()-1, which follow sorted DOT ID order.
func (x *Indexed) Nodes() []wl.NodeID {
	nodes := make([]wl.NodeID, len(x.ids))
	for i := range nodes {
		nodes[i] = wl.NodeID(i)
	}
	return nodes
}

// Attr returns a node attribute. IDAttr falls back to the DOT ID.
func (x *Indexed) Attr(n wl.NodeID, name string) (string, bool) {
	if !x.has(n) {
		return "", false
	}
	if v, ok := x.attrs[n][name]; ok {
		return v, true
	}
	if name == IDAttr {
		return x.ids[n], true
	}
	return "", false
}

// Successors returns edge targets in source order, repeated for parallel edges.
func (x *Indexed) Successors(n wl.NodeID) []wl.NodeID {
	if !x.has(n) {
		return nil
	}
	return x.out[n]
}

// Degree returns the undirected incident edge count. A self-loop counts once.
func (x *Indexed) Degree(n wl.NodeID) int {
	if !x.has(n) {
		return 0
	}
	return x.degree[n]
}

func (x *Indexed) has(n wl.NodeID) bool {
	return n >= 0 && int(n) < len(x.ids)
}
