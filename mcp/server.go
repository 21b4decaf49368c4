// ABOUTME: Model Context Protocol server exposing WL graph hashing as tools over stdio.
// ABOUTME: Registers wl_hash and wl_compare, which accept DOT source and return JSON results.
package mcp

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"log"
	"math"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/oklog/ulid/v2"

	"github.com/2389-research/wlhash/hashing"
	"github.com/2389-research/wlhash/wl"
)

// Server adapts the hashing service to the Model Context Protocol.
type Server struct {
	mcpServer *server.MCPServer
	defaults  wl.Options
}

// NewServer creates an MCP server whose tools fall back to defaults for
// omitted parameters.
func NewServer(version string, defaults wl.Options) *Server {
	s := &Server{
		mcpServer: server.NewMCPServer(
			"wlhash",
			version,
		),
		defaults: defaults,
	}
	s.registerTools()
	return s
}

// Serve starts the MCP server on stdio.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool(
		"wl_hash",
		mcp.WithDescription("Compute the Weisfeiler-Lehman hash of a directed graph given as DOT source."),
		mcp.WithString("dot", mcp.Required(), mcp.Description("DOT source of a digraph")),
		mcp.WithString("node_attr", mcp.Description("Node attribute used for initial labels; empty uses node degree. 'id' uses the DOT node ID.")),
		mcp.WithNumber("iterations", mcp.Description("Number of refinement rounds")),
		mcp.WithNumber("digest_size", mcp.Description("BLAKE2b digest size in bytes (1-64)")),
	), s.handleHash)

	s.mcpServer.AddTool(mcp.NewTool(
		"wl_compare",
		mcp.WithDescription("Hash two DOT digraphs with the same parameters. Equal hashes mean possibly isomorphic; different hashes mean not isomorphic."),
		mcp.WithString("left", mcp.Required(), mcp.Description("DOT source of the first digraph")),
		mcp.WithString("right", mcp.Required(), mcp.Description("DOT source of the second digraph")),
		mcp.WithString("node_attr", mcp.Description("Node attribute used for initial labels")),
		mcp.WithNumber("iterations", mcp.Description("Number of refinement rounds")),
		mcp.WithNumber("digest_size", mcp.Description("BLAKE2b digest size in bytes (1-64)")),
	), s.handleCompare)
}

// options resolves tool arguments against the server defaults.
func (s *Server) options(request mcp.CallToolRequest) (wl.Options, error) {
	opts := s.defaults
	opts.NodeAttr = mcp.ParseString(request, "node_attr", opts.NodeAttr)

	var err error
	if opts.Iterations, err = parseInt(request, "iterations", opts.Iterations); err != nil {
		return opts, err
	}
	if opts.DigestSize, err = parseInt(request, "digest_size", opts.DigestSize); err != nil {
		return opts, err
	}
	return opts, nil
}

func parseInt(request mcp.CallToolRequest, key string, def int) (int, error) {
	f := mcp.ParseFloat64(request, key, float64(def))
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%s must be an integer, got %v", key, f)
	}
	return int(f), nil
}

func (s *Server) handleHash(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	reqID := ulid.MustNew(ulid.Now(), rand.Reader).String()
	source := mcp.ParseString(request, "dot", "")
	if source == "" {
		return mcp.NewToolResultError("dot is required"), nil
	}
	opts, err := s.options(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rep, err := hashing.HashDOT(ctx, source, opts)
	if err != nil {
		log.Printf("component=mcp action=wl_hash request_id=%s error=%q", reqID, err)
		return mcp.NewToolResultError(fmt.Sprintf("hash failed: %v", err)), nil
	}
	rep.NodeHashes = nil

	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	log.Printf("component=mcp action=wl_hash request_id=%s nodes=%d digest=%s", reqID, rep.Nodes, rep.Digest)
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleCompare(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	reqID := ulid.MustNew(ulid.Now(), rand.Reader).String()
	left := mcp.ParseString(request, "left", "")
	right := mcp.ParseString(request, "right", "")
	if left == "" || right == "" {
		return mcp.NewToolResultError("left and right are required"), nil
	}
	opts, err := s.options(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	cmp, err := hashing.Compare(ctx, left, right, opts)
	if err != nil {
		log.Printf("component=mcp action=wl_compare request_id=%s error=%q", reqID, err)
		return mcp.NewToolResultError(fmt.Sprintf("compare failed: %v", err)), nil
	}

	verdict := "not isomorphic"
	if cmp.Equal {
		verdict = "possibly isomorphic"
	}
	data, err := json.MarshalIndent(map[string]any{
		"equal":   cmp.Equal,
		"verdict": verdict,
		"left":    cmp.Left.Digest,
		"right":   cmp.Right.Digest,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal comparison: %w", err)
	}
	log.Printf("component=mcp action=wl_compare request_id=%s equal=%t", reqID, cmp.Equal)
	return mcp.NewToolResultText(string(data)), nil
}
