// ABOUTME: Tests for the MCP tool handlers, called directly without a stdio transport.
// ABOUTME: Verifies hash and compare results, defaults, and tool-level error reporting.
package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/2389-research/wlhash/wl"
)

const (
	triangleA = `digraph g1 { n1 -> n2 -> n3 -> n1; n1 -> n4 }`
	triangleB = `digraph g2 { n5 -> n6 -> n7 -> n5; n7 -> n8 }`
)

func callRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("expected content in result")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected TextContent, got %T", result.Content[0])
	}
	return text.Text
}

func TestMCPServer_Hash(t *testing.T) {
	s := NewServer("test", wl.DefaultOptions())

	result, err := s.handleHash(context.Background(), callRequest("wl_hash", map[string]interface{}{
		"dot":         triangleA,
		"digest_size": float64(8),
	}))
	if err != nil {
		t.Fatalf("handleHash failed: %v", err)
	}
	if result.IsError {
		t.Fatalf("expected success, got error: %s", resultText(t, result))
	}

	var rep struct {
		Digest     string `json:"digest"`
		Iterations int    `json:"iterations"`
		DigestSize int    `json:"digest_size"`
		Nodes      int    `json:"nodes"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &rep); err != nil {
		t.Fatalf("failed to parse result JSON: %v", err)
	}
	if len(rep.Digest) != 16 || rep.DigestSize != 8 {
		t.Errorf("unexpected digest %q size %d", rep.Digest, rep.DigestSize)
	}
	if rep.Iterations != wl.DefaultIterations || rep.Nodes != 4 {
		t.Errorf("unexpected report: %+v", rep)
	}
}

func TestMCPServer_HashErrors(t *testing.T) {
	s := NewServer("test", wl.DefaultOptions())
	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{"missing dot", map[string]interface{}{}, "dot is required"},
		{"fractional iterations", map[string]interface{}{"dot": triangleA, "iterations": 1.5}, "must be an integer"},
		{"bad digest size", map[string]interface{}{"dot": triangleA, "digest_size": float64(0)}, "invalid digest size"},
		{"malformed dot", map[string]interface{}{"dot": "digraph {"}, "hash failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := s.handleHash(context.Background(), callRequest("wl_hash", tt.args))
			if err != nil {
				t.Fatalf("handler returned protocol error: %v", err)
			}
			if !result.IsError {
				t.Fatal("expected tool error result")
			}
			if text := resultText(t, result); !strings.Contains(text, tt.want) {
				t.Errorf("expected %q in %q", tt.want, text)
			}
		})
	}
}

func TestMCPServer_Compare(t *testing.T) {
	s := NewServer("test", wl.DefaultOptions())

	for _, tt := range []struct {
		attr  string
		equal bool
	}{
		{"", true},
		{"id", false},
	} {
		result, err := s.handleCompare(context.Background(), callRequest("wl_compare", map[string]interface{}{
			"left":      triangleA,
			"right":     triangleB,
			"node_attr": tt.attr,
		}))
		if err != nil {
			t.Fatalf("handleCompare failed: %v", err)
		}
		if result.IsError {
			t.Fatalf("expected success, got error: %s", resultText(t, result))
		}

		var cmp struct {
			Equal   bool   `json:"equal"`
			Verdict string `json:"verdict"`
		}
		if err := json.Unmarshal([]byte(resultText(t, result)), &cmp); err != nil {
			t.Fatal(err)
		}
		if cmp.Equal != tt.equal {
			t.Errorf("attr %q: equal = %t, want %t", tt.attr, cmp.Equal, tt.equal)
		}
	}
}

func TestMCPServer_CompareRequiresBothSides(t *testing.T) {
	s := NewServer("test", wl.DefaultOptions())
	result, err := s.handleCompare(context.Background(), callRequest("wl_compare", map[string]interface{}{
		"left": triangleA,
	}))
	if err != nil {
		t.Fatal(err)
	}
	if !result.IsError {
		t.Error("expected tool error when right is missing")
	}
}
