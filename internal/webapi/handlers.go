package webapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/erraggy/swagrec"
	"github.com/erraggy/swagrec/extractor"
	"github.com/erraggy/swagrec/jsonvalue"
	"github.com/erraggy/swagrec/oaserrors"
	"github.com/erraggy/swagrec/parser"
)

type referenceResponse struct {
	Session   string                   `json:"session"`
	Version   string                   `json:"version"`
	Endpoints []extractor.EndpointInfo `json:"endpoints"`
}

type generateRequest struct {
	Session         string          `json:"session"`
	Endpoints       []endpointParam `json:"endpoints"`
	Match           []string        `json:"match,omitempty"`
	SortPaths       bool            `json:"sortPaths,omitempty"`
	PathItemFields  bool            `json:"pathItemFields,omitempty"`
	PruneComponents bool            `json:"pruneComponents,omitempty"`
	Format          string          `json:"format,omitempty"`
}

// endpointParam accepts either "GET /pets" or {"method": "get", "path": "/pets"}.
type endpointParam struct {
	extractor.Endpoint
}

func (p *endpointParam) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		ep, err := extractor.ParseEndpoint(s)
		if err != nil {
			return err
		}
		p.Endpoint = ep
		return nil
	}
	var ep extractor.Endpoint
	if err := json.Unmarshal(data, &ep); err != nil {
		return err
	}
	if ep.Method == "" || !strings.HasPrefix(ep.Path, "/") {
		return fmt.Errorf("invalid endpoint %s", data)
	}
	p.Endpoint = ep.Normalize()
	return nil
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleReference(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodySize))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, err)
		return
	}
	if len(bytes.TrimSpace(body)) == 0 {
		writeError(w, http.StatusBadRequest, errors.New("request body is empty"))
		return
	}

	opts := []parser.Option{
		parser.WithContext(r.Context()),
		parser.WithLogger(s.cfg.Logger),
		parser.WithMaxFileSize(s.cfg.MaxBodySize),
	}
	if url, ok := referenceURL(body); ok {
		if !parser.IsURL(url) {
			writeError(w, http.StatusBadRequest, fmt.Errorf("url must start with http:// or https://: %q", url))
			return
		}
		opts = append(opts,
			parser.WithFilePath(url),
			parser.WithUserAgent(s.cfg.UserAgent),
			parser.WithHTTPClient(s.cfg.HTTPClient),
			parser.WithRequireJSON(s.cfg.RequireJSON),
		)
	} else {
		opts = append(opts, parser.WithBytes(body), parser.WithSourceName("request"))
	}

	result, err := parser.ParseWithOptions(opts...)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	id := s.storeSession(result)
	s.cfg.Logger.Info("stored document",
		"session", id,
		"version", result.Version,
		"size", parser.FormatBytes(result.SourceSize))
	writeJSON(w, http.StatusCreated, referenceResponse{
		Session:   id,
		Version:   result.Version,
		Endpoints: listOrEmpty(result.Document),
	})
}

// referenceURL reports whether body is {"url": "..."} rather than a document.
func referenceURL(body []byte) (string, bool) {
	doc, err := jsonvalue.ParseJSON(body)
	if err != nil {
		return "", false
	}
	obj, ok := doc.AsObject()
	if !ok || obj.Len() != 1 {
		return "", false
	}
	v, ok := obj.Get("url")
	if !ok {
		return "", false
	}
	return v.AsString()
}

func (s *Server) handleEndpoints(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("session")
	result, ok := s.lookupSession(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("unknown session %q", id))
		return
	}
	writeJSON(w, http.StatusOK, referenceResponse{
		Session:   id,
		Version:   result.Version,
		Endpoints: listOrEmpty(result.Document),
	})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodySize))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request: %w", err))
		return
	}

	format := extractor.FormatJSON
	if req.Format != "" {
		f, err := extractor.ParseFormat(req.Format)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		format = f
	}

	parsed, ok := s.lookupSession(req.Session)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("unknown session %q", req.Session))
		return
	}

	endpoints := make([]extractor.Endpoint, len(req.Endpoints))
	for i, p := range req.Endpoints {
		endpoints[i] = p.Endpoint
	}
	opts := []extractor.Option{
		extractor.WithParsed(*parsed),
		extractor.WithContext(r.Context()),
		extractor.WithEndpoints(endpoints...),
		extractor.WithSortPaths(req.SortPaths),
		extractor.WithPathItemFields(req.PathItemFields),
		extractor.WithPruneComponents(req.PruneComponents),
		extractor.WithLogger(s.cfg.Logger),
	}
	if len(req.Match) > 0 {
		opts = append(opts, extractor.WithMatch(req.Match...))
	}
	result, err := extractor.ExtractWithOptions(opts...)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	data, err := extractor.MarshalDocument(result.Document, format)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	contentType := "application/json"
	if format == extractor.FormatYAML {
		contentType = "application/yaml"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Swagrec-Matched", fmt.Sprint(len(result.Matched)))
	w.Header().Set("X-Swagrec-Schemas", fmt.Sprint(result.Schemas.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": swagrec.Version(),
	})
}

func listOrEmpty(doc jsonvalue.Value) []extractor.EndpointInfo {
	list := extractor.ListEndpoints(doc)
	if list == nil {
		return []extractor.EndpointInfo{}
	}
	return list
}

// statusFor maps loading errors to HTTP statuses: fetch failures are the
// upstream's fault, everything else is the client's.
func statusFor(err error) int {
	switch {
	case errors.Is(err, oaserrors.ErrFetch):
		return http.StatusBadGateway
	case errors.Is(err, oaserrors.ErrResourceLimit):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusBadRequest
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
