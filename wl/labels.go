// ABOUTME: Label table type and initial label assignment for WL refinement.
// ABOUTME: Labels come from a node attribute when one is named, otherwise from undirected degree.
package wl

import "strconv"

// LabelTable maps every node handle to its current label. A table is never
// updated in place during refinement; each round builds a new one.
type LabelTable map[NodeID]string

// InitLabels builds the round-zero label table. With a non-empty nodeAttr each
// node's label is that attribute's value taken verbatim (empty when the node
// lacks it). With an empty nodeAttr the label is the decimal undirected degree.
func InitLabels(g Graph, nodeAttr string) LabelTable {
	nodes := g.Nodes()
	labels := make(LabelTable, len(nodes))
	for _, n := range nodes {
		if nodeAttr != "" {
			v, _ := g.Attr(n, nodeAttr)
			labels[n] = v
			continue
		}
		labels[n] = strconv.Itoa(g.Degree(n))
	}
	return labels
}
