// ABOUTME: Graph provider contract consumed by the WL hashing pipeline.
// ABOUTME: Defines NodeID handles and the capabilities the core needs: enumeration, attributes, successors, degree.
package wl

// NodeID is a stable integer handle for a node within one graph.
type NodeID int

// Graph is the read-only view of a directed graph that the hasher consumes.
// Implementations must return the same answers for the duration of one hash
// computation.
type Graph interface {
	// Nodes returns every node handle in the graph.
	Nodes() []NodeID

	// Attr returns the named attribute of a node and whether it was present.
	Attr(n NodeID, name string) (string, bool)

	// Successors returns the targets of n's outgoing edges. Parallel edges
	// yield the same target more than once.
	Successors(n NodeID) []NodeID

	// Degree returns the number of edges incident to n ignoring direction.
	// Parallel edges count once per edge and a self-loop counts once.
	Degree(n NodeID) int
}
