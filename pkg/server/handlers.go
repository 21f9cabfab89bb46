package server

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/edgeviz/pkg/buildinfo"
	"github.com/matzehuels/edgeviz/pkg/errors"
	"github.com/matzehuels/edgeviz/pkg/graph"
	"github.com/matzehuels/edgeviz/pkg/pipeline"
)

// ContentTypes maps output formats to their media types.
var ContentTypes = map[string]string{
	pipeline.FormatSVG:      "image/svg+xml",
	pipeline.FormatPNG:      "image/png",
	pipeline.FormatDOT:      "text/vnd.graphviz",
	pipeline.FormatGraphviz: "image/svg+xml",
}

// =============================================================================
// Request and Response Types
// =============================================================================

// RenderResponse is the body of a successful POST /v1/render. Text formats
// are returned verbatim; PNG is base64-encoded.
type RenderResponse struct {
	RunID     string            `json:"run_id"`
	RequestID string            `json:"request_id"`
	Summary   graph.Summary     `json:"summary"`
	Cached    bool              `json:"cached"`
	Artifacts map[string]string `json:"artifacts"`
}

// StatsRequest is the body of POST /v1/stats.
type StatsRequest struct {
	Graph graph.Graph `json:"graph"`
}

// StatsResponse describes a graph.
type StatsResponse struct {
	graph.Summary
	NodeNames []string `json:"node_names"`
}

// BoundaryRequest is the body of POST /v1/boundary.
type BoundaryRequest struct {
	Graph graph.Graph `json:"graph"`
	Nodes []string    `json:"nodes"`
}

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	Error     string      `json:"error"`
	Code      errors.Code `json:"code,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Get()})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	res, err := s.render(w, r, nil)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := RenderResponse{
		RunID:     res.RunID,
		RequestID: RequestID(r.Context()),
		Summary:   res.Summary,
		Cached:    res.Cached,
		Artifacts: make(map[string]string, len(res.Artifacts)),
	}
	for format, data := range res.Artifacts {
		if format == pipeline.FormatPNG {
			out.Artifacts[format] = base64.StdEncoding.EncodeToString(data)
			continue
		}
		out.Artifacts[format] = string(data)
	}
	writeJSON(w, http.StatusOK, out)
}

// handleRenderRaw renders a single format and returns its bytes.
func (s *Server) handleRenderRaw(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.render(w, r, []string{format})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", ContentTypes[format])
	w.Header().Set("X-Run-ID", res.RunID)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, formats []string) (*pipeline.Result, error) {
	var opts pipeline.Options
	if err := s.decode(w, r, &opts); err != nil {
		return nil, err
	}
	if formats != nil {
		opts.Formats = formats
	}
	opts.Logger = s.logger.With("request", RequestID(r.Context()))
	return s.runner.Execute(r.Context(), opts)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	var req StatsRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := graph.Validate(req.Graph); err != nil {
		s.writeError(w, r, err)
		return
	}
	names := graph.NodeNames(req.Graph)
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, StatsResponse{Summary: graph.Summarize(req.Graph), NodeNames: names})
}

func (s *Server) handleBoundary(w http.ResponseWriter, r *http.Request) {
	var req BoundaryRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := graph.Validate(req.Graph); err != nil {
		s.writeError(w, r, err)
		return
	}
	out := graph.BoundaryEdges(req.Graph, req.Nodes)
	if out == nil {
		out = graph.Graph{}
	}
	writeJSON(w, http.StatusOK, out)
}

// =============================================================================
// Helpers
// =============================================================================

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, s.maxBody)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.GetCode(err) != "" {
			return err
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request")
	}
	return nil
}

// StatusCode maps an error to an HTTP status.
func StatusCode(err error) int {
	switch {
	case errors.IsInputError(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeNotFound), errors.Is(err, errors.ErrCodeFileNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusCode(err)
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "id", RequestID(r.Context()), "error", err)
		msg = "internal error"
	}
	writeJSON(w, status, ErrorResponse{
		Error:     msg,
		Code:      errors.GetCode(err),
		RequestID: RequestID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, fmt.Sprintf("encode response: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(data, '\n'))
}
