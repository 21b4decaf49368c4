// ABOUTME: Request decoding and handlers for the /v1/hash and /v1/compare endpoints.
// ABOUTME: Accepts JSON bodies or raw DOT with query parameters and maps errors to HTTP statuses.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/2389-research/wlhash/hashing"
	"github.com/2389-research/wlhash/wl"
)

// hashParams are the optional parameters shared by both endpoints.
type hashParams struct {
	NodeAttr   *string `json:"node_attr"`
	Iterations *int    `json:"iterations"`
	DigestSize *int    `json:"digest_size"`
	NodeHashes bool    `json:"node_hashes"`
}

// hashRequest is the JSON body of POST /v1/hash.
type hashRequest struct {
	DOT string `json:"dot"`
	hashParams
}

// compareRequest is the JSON body of POST /v1/compare.
type compareRequest struct {
	Left  string `json:"left"`
	Right string `json:"right"`
	hashParams
}

// hashResponse is returned by POST /v1/hash.
type hashResponse struct {
	RequestID string `json:"request_id"`
	*hashing.Report
}

// compareResponse is returned by POST /v1/compare.
type compareResponse struct {
	RequestID string `json:"request_id"`
	Equal     bool   `json:"equal"`
	Left      string `json:"left"`
	Right     string `json:"right"`
}

// errorResponse is the body of every non-2xx reply.
type errorResponse struct {
	RequestID string `json:"request_id"`
	Error     string `json:"error"`
}

// options resolves p against the server defaults.
func (s *Server) options(p hashParams) wl.Options {
	opts := s.defaults
	if p.NodeAttr != nil {
		opts.NodeAttr = *p.NodeAttr
	}
	if p.Iterations != nil {
		opts.Iterations = *p.Iterations
	}
	if p.DigestSize != nil {
		opts.DigestSize = *p.DigestSize
	}
	return opts
}

// queryParams reads hashParams from the URL query for raw DOT bodies.
func queryParams(r *http.Request) (hashParams, error) {
	var p hashParams
	q := r.URL.Query()
	if q.Has("node_attr") {
		v := q.Get("node_attr")
		p.NodeAttr = &v
	}
	for _, field := range []struct {
		name string
		dst  **int
	}{
		{"iterations", &p.Iterations},
		{"digest_size", &p.DigestSize},
	} {
		if !q.Has(field.name) {
			continue
		}
		n, err := strconv.Atoi(q.Get(field.name))
		if err != nil {
			return p, fmt.Errorf("invalid %s: %q", field.name, q.Get(field.name))
		}
		*field.dst = &n
	}
	if v := q.Get("node_hashes"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return p, fmt.Errorf("invalid node_hashes: %q", v)
		}
		p.NodeHashes = b
	}
	return p, nil
}

func isJSON(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}

func (s *Server) handleHash(w http.ResponseWriter, r *http.Request) {
	reqID := newRequestID()
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req hashRequest
	if isJSON(r) {
		if err := json.NewDecoder(body).Decode(&req); err != nil {
			s.failBody(w, "hash", reqID, "invalid JSON: ", err)
			return
		}
	} else {
		raw, err := io.ReadAll(body)
		if err != nil {
			s.failBody(w, "hash", reqID, "failed to read body: ", err)
			return
		}
		req.DOT = string(raw)
		if req.hashParams, err = queryParams(r); err != nil {
			s.fail(w, "hash", reqID, http.StatusBadRequest, err.Error())
			return
		}
	}
	if strings.TrimSpace(req.DOT) == "" {
		s.fail(w, "hash", reqID, http.StatusBadRequest, "empty DOT source")
		return
	}

	ctx, cancel := s.hashContext(r.Context())
	defer cancel()

	rep, err := s.hash(ctx, req.DOT, s.options(req.hashParams))
	if err != nil {
		s.failErr(w, "hash", reqID, err)
		return
	}
	if !req.NodeHashes {
		rep.NodeHashes = nil
	}

	RequestsTotal.WithLabelValues("hash", "ok").Inc()
	log.Printf("component=server action=hash request_id=%s nodes=%d edges=%d digest=%s", reqID, rep.Nodes, rep.Edges, rep.Digest)
	writeJSON(w, http.StatusOK, hashResponse{RequestID: reqID, Report: rep})
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	reqID := newRequestID()

	var req compareRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.failBody(w, "compare", reqID, "invalid JSON: ", err)
		return
	}
	if strings.TrimSpace(req.Left) == "" || strings.TrimSpace(req.Right) == "" {
		s.fail(w, "compare", reqID, http.StatusBadRequest, "left and right DOT sources are required")
		return
	}

	ctx, cancel := s.hashContext(r.Context())
	defer cancel()

	opts := s.options(req.hashParams)
	left, err := s.hash(ctx, req.Left, opts)
	if err != nil {
		s.failErr(w, "compare", reqID, fmt.Errorf("left: %w", err))
		return
	}
	right, err := s.hash(ctx, req.Right, opts)
	if err != nil {
		s.failErr(w, "compare", reqID, fmt.Errorf("right: %w", err))
		return
	}

	resp := compareResponse{
		RequestID: reqID,
		Equal:     left.Digest == right.Digest,
		Left:      left.Digest,
		Right:     right.Digest,
	}
	RequestsTotal.WithLabelValues("compare", "ok").Inc()
	log.Printf("component=server action=compare request_id=%s equal=%t", reqID, resp.Equal)
	writeJSON(w, http.StatusOK, resp)
}

// hash runs one computation and records its metrics.
func (s *Server) hash(ctx context.Context, source string, opts wl.Options) (*hashing.Report, error) {
	start := time.Now()
	rep, err := hashing.HashDOT(ctx, source, opts)
	if err != nil {
		return nil, err
	}
	HashDuration.Observe(time.Since(start).Seconds())
	GraphNodes.Observe(float64(rep.Nodes))
	return rep, nil
}

func (s *Server) hashContext(parent context.Context) (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(parent, s.timeout)
	}
	return context.WithCancel(parent)
}

// failErr maps a hashing error to a status code and writes it.
func (s *Server) failErr(w http.ResponseWriter, endpoint, reqID string, err error) {
	status := http.StatusInternalServerError
	switch hashing.Classify(err) {
	case hashing.KindConfig:
		status = http.StatusBadRequest
	case hashing.KindInput:
		status = http.StatusUnprocessableEntity
	case hashing.KindCanceled:
		status = http.StatusServiceUnavailable
	}
	s.fail(w, endpoint, reqID, status, err.Error())
}

// failBody reports a body read or decode error. Oversized bodies get 413.
func (s *Server) failBody(w http.ResponseWriter, endpoint, reqID, prefix string, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		s.fail(w, endpoint, reqID, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
		return
	}
	s.fail(w, endpoint, reqID, http.StatusBadRequest, prefix+err.Error())
}

func (s *Server) fail(w http.ResponseWriter, endpoint, reqID string, status int, msg string) {
	RequestsTotal.WithLabelValues(endpoint, outcome(status)).Inc()
	log.Printf("component=server action=%s request_id=%s status=%d error=%q", endpoint, reqID, status, msg)
	writeJSON(w, status, errorResponse{RequestID: reqID, Error: msg})
}

func outcome(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusRequestEntityTooLarge:
		return "too_large"
	case http.StatusUnprocessableEntity:
		return "invalid_graph"
	case http.StatusServiceUnavailable:
		return "canceled"
	default:
		return "error"
	}
}
