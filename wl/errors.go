// ABOUTME: Error types for the WL hashing pipeline.
// ABOUTME: Sentinels support errors.Is; typed errors carry the offending node or digest size.
package wl

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error checking via errors.Is().
var (
	// ErrLabelLookup indicates that aggregation referenced a node with no
	// current label. This means the label table and graph disagree.
	ErrLabelLookup = errors.New("label lookup failure")

	// ErrInvalidDigestSize indicates a digest byte length BLAKE2b cannot produce.
	ErrInvalidDigestSize = errors.New("invalid digest size")

	// ErrInvalidIterations indicates a negative iteration count.
	ErrInvalidIterations = errors.New("invalid iteration count")

	// ErrUnknownNode indicates an edge endpoint that is not a node of the graph.
	ErrUnknownNode = errors.New("unknown node")
)

// LabelLookupError reports the node whose current label could not be found.
// Neighbor is true when the node was reached as a successor of the node
// being aggregated.
type LabelLookupError struct {
	Node     NodeID
	Neighbor bool
}

func (e *LabelLookupError) Error() string {
	if e == nil {
		return ""
	}
	kind := "node"
	if e.Neighbor {
		kind = "neighbor"
	}
	return fmt.Sprintf("%s: no current label for %s %d", ErrLabelLookup.Error(), kind, e.Node)
}

func (e *LabelLookupError) Unwrap() error { return ErrLabelLookup }

// DigestSizeError reports a requested digest size outside [1, MaxDigestSize].
type DigestSizeError struct {
	Size int
}

func (e *DigestSizeError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %d (must be between %d and %d bytes)",
		ErrInvalidDigestSize.Error(), e.Size, MinDigestSize, MaxDigestSize)
}

func (e *DigestSizeError) Unwrap() error { return ErrInvalidDigestSize }
