// ABOUTME: Digest synthesizer that renders the accumulated label counts canonically and hashes them.
// ABOUTME: The rendering is [("label", count), ...] in accumulated order, "[]" when nothing accumulated.
package wl

import (
	"strconv"
	"strings"
)

// Serialize renders seq as [("label", count), ("label", count)]. Labels are
// quoted so the rendering is unambiguous for any label content.
func Serialize(seq []LabelCount) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, lc := range seq {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		b.WriteString(strconv.Quote(lc.Label))
		b.WriteString(", ")
		b.WriteString(strconv.Itoa(lc.Count))
		b.WriteByte(')')
	}
	b.WriteByte(']')
	return b.String()
}

// Synthesize compresses the serialized sequence into the final graph hash.
func Synthesize(seq []LabelCount, digestSize int) (string, error) {
	return Compress(Serialize(seq), digestSize)
}
