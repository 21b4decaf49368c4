// ABOUTME: Neighborhood aggregation for one node: its own label followed by sorted successor labels.
// ABOUTME: Only outgoing edges contribute; duplicate neighbor labels are kept.
package wl

import (
	"sort"
	"strings"
)

// Aggregate returns n's current label concatenated with the lexicographically
// sorted labels of its successors. It fails with a *LabelLookupError when any
// referenced node is missing from labels.
func Aggregate(g Graph, n NodeID, labels LabelTable) (string, error) {
	succ := g.Successors(n)
	neighborLabels := make([]string, 0, len(succ))
	for _, m := range succ {
		l, ok := labels[m]
		if !ok {
			return "", &LabelLookupError{Node: m, Neighbor: true}
		}
		neighborLabels = append(neighborLabels, l)
	}
	sort.Strings(neighborLabels)

	own, ok := labels[n]
	if !ok {
		return "", &LabelLookupError{Node: n}
	}

	var b strings.Builder
	size := len(own)
	for _, l := range neighborLabels {
		size += len(l)
	}
	b.Grow(size)
	b.WriteString(own)
	for _, l := range neighborLabels {
		b.WriteString(l)
	}
	return b.String(), nil
}
