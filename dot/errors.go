// ABOUTME: Error types for DOT lexing, parsing, and graph indexing.
// ABOUTME: ParseError carries source positions; sentinels support errors.Is.
package dot

import (
	"errors"
	"fmt"
)

var (
	// ErrParse indicates malformed or unsupported DOT source.
	ErrParse = errors.New("dot parse error")

	// ErrDanglingEdge indicates an edge whose endpoint is not a node of the graph.
	ErrDanglingEdge = errors.New("dangling edge")
)

// ParseError reports a lexing or parsing failure at a source position.
// Line and Col are 1-based; zero means the position is unknown.
type ParseError struct {
	Line int
	Col  int
	Msg  string
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	if e.Line == 0 {
		return fmt.Sprintf("%s: %s", ErrParse.Error(), e.Msg)
	}
	return fmt.Sprintf("%s: %s at line %d, col %d", ErrParse.Error(), e.Msg, e.Line, e.Col)
}

func (e *ParseError) Unwrap() error { return ErrParse }

func errorAt(line, col int, format string, args ...any) *ParseError {
	return &ParseError{Line: line, Col: col, Msg: fmt.Sprintf(format, args...)}
}
