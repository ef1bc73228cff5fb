package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/teranos/sketchflow/codegen"
	"github.com/teranos/sketchflow/errors"
	"github.com/teranos/sketchflow/logger"
	"github.com/teranos/sketchflow/parse"
	"github.com/teranos/sketchflow/version"
)

// GenerateRequest is the body of POST /api/generate, POST /api/introspect
// and each /ws message.
//
// Source is the raw input. A JSON string is passed to the parser as text
// (YAML documents travel this way); any other JSON value is passed as
// bytes. Kind defaults to "json".
type GenerateRequest struct {
	Kind       parse.Kind      `json:"kind,omitempty"`
	Source     json.RawMessage `json:"source"`
	Framework  string          `json:"framework,omitempty"`
	Frameworks []string        `json:"frameworks,omitempty"`
	Options    codegen.Options `json:"options,omitzero"`
}

// BatchResponse answers a request naming several frameworks.
type BatchResponse struct {
	Results []*codegen.Artifacts `json:"results"`
}

// Entry describes one registered parser, layout engine or adapter.
type Entry struct {
	Name     string `json:"name"`
	Version  string `json:"version,omitempty"`
	Language string `json:"language,omitempty"`
}

func (req GenerateRequest) toRequest() (codegen.Request, error) {
	raw := bytes.TrimSpace(req.Source)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return codegen.Request{}, errors.NewInvalidRequestError("source is required")
	}

	kind := req.Kind
	if kind == "" {
		kind = parse.KindJSON
	}

	var payload any = []byte(raw)
	if raw[0] == '"' {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return codegen.Request{}, errors.NewInvalidRequestError("source string is malformed: %v", err)
		}
		payload = text
	}

	return codegen.Request{
		Source:    parse.Source{Kind: kind, Payload: payload},
		Framework: req.Framework,
		Options:   req.Options,
	}, nil
}

// frameworks lists the requested targets, single or batch.
func (req GenerateRequest) frameworks() ([]string, error) {
	switch {
	case len(req.Frameworks) > 0 && req.Framework != "":
		return nil, errors.NewInvalidRequestError("set either framework or frameworks, not both")
	case len(req.Frameworks) > 0:
		return req.Frameworks, nil
	case req.Framework != "":
		return []string{req.Framework}, nil
	default:
		return nil, errors.NewInvalidRequestError("framework is required")
	}
}

// HandleHealth serves health check endpoint with version info
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	info := version.Get()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"version":    info.Version,
		"commit":     info.CommitHash,
		"build_time": info.BuildTime,
		"adapters":   len(s.gen.Adapters().List()),
	})
}

// HandleAdapters lists registered framework adapters.
func (s *Server) HandleAdapters(w http.ResponseWriter, r *http.Request) {
	adapters := s.gen.Adapters().List()
	out := make([]Entry, len(adapters))
	for i, a := range adapters {
		out[i] = Entry{Name: a.Framework(), Language: string(a.Language())}
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleLayouts lists registered layout engines.
func (s *Server) HandleLayouts(w http.ResponseWriter, r *http.Request) {
	engines := s.gen.Layouts().List()
	out := make([]Entry, len(engines))
	for i, e := range engines {
		out[i] = Entry{Name: e.Name(), Version: e.Version()}
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleParsers lists registered parsers in priority order.
func (s *Server) HandleParsers(w http.ResponseWriter, r *http.Request) {
	parsers := s.gen.Parsers().List()
	out := make([]Entry, len(parsers))
	for i, p := range parsers {
		out[i] = Entry{Name: p.Name(), Version: p.Version()}
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleGenerate runs a generation and returns its artifacts.
func (s *Server) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var body GenerateRequest
	if err := readJSON(r, &body); err != nil {
		writeFailure(w, err)
		return
	}
	result, err := s.generate(r.Context(), body)
	if err != nil {
		logger.FromContext(r.Context(), s.log).Debugw("Generation failed",
			logger.FieldStatus, statusFor(err),
			logger.FieldError, err)
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleIntrospect reports what an adapter would render.
func (s *Server) HandleIntrospect(w http.ResponseWriter, r *http.Request) {
	var body GenerateRequest
	if err := readJSON(r, &body); err != nil {
		writeFailure(w, err)
		return
	}
	if len(body.Frameworks) > 0 {
		writeFailure(w, errors.NewInvalidRequestError("introspect takes a single framework"))
		return
	}
	if body.Framework == "" {
		writeFailure(w, errors.NewInvalidRequestError("framework is required"))
		return
	}
	req, err := body.toRequest()
	if err != nil {
		writeFailure(w, err)
		return
	}
	result, err := s.gen.Introspect(r.Context(), req)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// generate answers a single framework with *codegen.Artifacts and several
// with a BatchResponse.
func (s *Server) generate(ctx context.Context, body GenerateRequest) (any, error) {
	frameworks, err := body.frameworks()
	if err != nil {
		return nil, err
	}
	req, err := body.toRequest()
	if err != nil {
		return nil, err
	}

	if len(body.Frameworks) == 0 {
		artifacts, err := s.gen.Generate(ctx, req)
		files := 0
		if artifacts != nil {
			files = len(artifacts.Files)
		}
		s.metrics.RecordGeneration(req.Framework, files, err)
		if err != nil {
			return nil, err
		}
		return artifacts, nil
	}

	results, err := s.gen.GenerateMany(ctx, req, frameworks)
	if err != nil {
		for _, f := range frameworks {
			s.metrics.RecordGeneration(f, 0, err)
		}
		return nil, err
	}
	for i, f := range frameworks {
		s.metrics.RecordGeneration(f, len(results[i].Files), nil)
	}
	return BatchResponse{Results: results}, nil
}
