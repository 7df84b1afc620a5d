package server

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/orbifold/cytoconv/pkg/buildinfo"
	"github.com/orbifold/cytoconv/pkg/cyto"
	"github.com/orbifold/cytoconv/pkg/errors"
	"github.com/orbifold/cytoconv/pkg/graph"
	"github.com/orbifold/cytoconv/pkg/pipeline"
)

// Response headers describing cache use.
const (
	headerCache = "X-Cache"
	cacheHit    = "HIT"
	cacheMiss   = "MISS"
)

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

// handleElements converts the posted graph into elements.
func (s *Server) handleElements(w http.ResponseWriter, r *http.Request) {
	data, format, err := s.readBody(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	g, err := graph.UnmarshalGraph(data, format)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	opts, err := pipelineOptions(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	res, err := s.runner.Elements(r.Context(), g, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	setCacheHeader(w, res.CacheHit)
	writeJSON(w, http.StatusOK, nonNil(res.Elements))
}

// handleGraph rebuilds a graph from the posted elements.
func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	data, format, err := s.readBody(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	els, err := graph.UnmarshalElements(data, format)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	opts, err := pipelineOptions(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	opts.GraphID = r.URL.Query().Get("id")
	if err := opts.Validate(); err != nil {
		s.fail(w, r, err)
		return
	}

	res, err := s.runner.Graph(r.Context(), els, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	setCacheHeader(w, res.CacheHit)
	writeJSON(w, http.StatusOK, res.Graph)
}

func (s *Server) handleListGraphs(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// handlePutGraph stores the posted graph under the id in the path, which
// takes precedence over any id in the body.
func (s *Server) handlePutGraph(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateGraphID(id); err != nil {
		s.fail(w, r, err)
		return
	}
	data, format, err := s.readBody(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	g, err := graph.UnmarshalGraph(data, format)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if g == nil {
		g = &cyto.Graph{}
	}
	g.ID = id

	if err := s.store.Save(r.Context(), g); err != nil {
		s.fail(w, r, err)
		return
	}
	s.logger.Info("graph stored", "id", id, "nodes", g.NodeCount(), "edges", g.EdgeCount())
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) handleGetGraph(w http.ResponseWriter, r *http.Request) {
	g, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) handleDeleteGraph(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	s.logger.Info("graph deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// handleGraphElements converts a stored graph. Results go through the
// runner's cache, so generated edge ids are stable between calls.
func (s *Server) handleGraphElements(w http.ResponseWriter, r *http.Request) {
	g, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	opts, err := pipelineOptions(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	res, err := s.runner.Elements(r.Context(), g, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	setCacheHeader(w, res.CacheHit)
	writeJSON(w, http.StatusOK, nonNil(res.Elements))
}

// =============================================================================
// Helpers
// =============================================================================

// readBody reads the request body up to the configured limit and picks the
// decoding format from the content type.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, graph.Format, error) {
	format := graph.JSON
	if ct := r.Header.Get("Content-Type"); ct != "" {
		if mt, _, err := mime.ParseMediaType(ct); err == nil && strings.Contains(mt, "yaml") {
			format = graph.YAML
		}
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return nil, format, errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return nil, format, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	return data, format, nil
}

// pipelineOptions reads the ids, prefix and refresh query parameters.
func pipelineOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		IDs:      q.Get("ids"),
		IDPrefix: q.Get("prefix"),
	}
	if v := q.Get("refresh"); v != "" {
		refresh, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.InvalidInput("invalid refresh value %q", v)
		}
		opts.Refresh = refresh
	}
	return opts, opts.Validate()
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		s.logger.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	writeError(w, status, string(code), errors.UserMessage(err))
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeMissingEndpoint, errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func setCacheHeader(w http.ResponseWriter, hit bool) {
	if hit {
		w.Header().Set(headerCache, cacheHit)
	} else {
		w.Header().Set(headerCache, cacheMiss)
	}
}

func nonNil(els []cyto.Element) []cyto.Element {
	if els == nil {
		return []cyto.Element{}
	}
	return els
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorBody{Code: code, Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
