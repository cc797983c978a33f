package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/justify/pkg/buildinfo"
	"github.com/matzehuels/justify/pkg/errors"
	jio "github.com/matzehuels/justify/pkg/io"
	"github.com/matzehuels/justify/pkg/pipeline"
	"github.com/matzehuels/justify/pkg/render"
	"github.com/matzehuels/justify/pkg/store"
)

var contentTypes = map[string]string{
	render.FormatSVG:  "image/svg+xml",
	render.FormatPNG:  "image/png",
	render.FormatJSON: "application/json",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

// =============================================================================
// Stateless layout
// =============================================================================

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	doc, err := readDocument(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	opts, err := s.options(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.serveLayout(w, r, doc, opts)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	doc, err := readDocument(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	opts, err := s.options(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.serveRender(w, r, doc, opts)
}

// =============================================================================
// Galleries
// =============================================================================

type createGalleryRequest struct {
	Name     string            `json:"name"`
	Items    []jio.ItemSpec    `json:"items"`
	Settings *jio.SettingsSpec `json:"settings,omitempty"`
}

func (s *Server) handleCreateGallery(w http.ResponseWriter, r *http.Request) {
	var req createGalleryRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.fail(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode gallery"))
		return
	}

	g, err := s.store.Create(r.Context(), store.Gallery{
		Name:     req.Name,
		Items:    req.Items,
		Settings: req.Settings,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Location", "/v1/galleries/"+g.ID)
	writeJSON(w, http.StatusCreated, g)
}

func (s *Server) handleListGalleries(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.fail(w, r, errors.New(errors.ErrCodeInvalidInput, "limit must be a non-negative integer, got %q", v))
			return
		}
		limit = n
	}

	galleries, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"galleries": galleries})
}

func (s *Server) handleGetGallery(w http.ResponseWriter, r *http.Request) {
	g, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) handleDeleteGallery(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGalleryLayout(w http.ResponseWriter, r *http.Request) {
	g, opts, ok := s.galleryRequest(w, r)
	if !ok {
		return
	}
	s.serveLayout(w, r, g.Document(), opts)
}

func (s *Server) handleGalleryRender(w http.ResponseWriter, r *http.Request) {
	g, opts, ok := s.galleryRequest(w, r)
	if !ok {
		return
	}
	s.serveRender(w, r, g.Document(), opts)
}

func (s *Server) galleryRequest(w http.ResponseWriter, r *http.Request) (store.Gallery, pipeline.Options, bool) {
	g, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return store.Gallery{}, pipeline.Options{}, false
	}
	opts, err := s.options(r)
	if err != nil {
		s.fail(w, r, err)
		return store.Gallery{}, pipeline.Options{}, false
	}
	return g, opts, true
}

// =============================================================================
// Shared
// =============================================================================

func (s *Server) serveLayout(w http.ResponseWriter, r *http.Request, doc *jio.Document, opts pipeline.Options) {
	lineup, hit, err := s.runner.LayoutWithCacheInfo(r.Context(), doc, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("X-Cache", cacheHeader(hit))
	writeJSON(w, http.StatusOK, lineup)
}

func (s *Server) serveRender(w http.ResponseWriter, r *http.Request, doc *jio.Document, opts pipeline.Options) {
	result, err := s.runner.Execute(r.Context(), doc, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	format := opts.Formats[0]
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Cache", cacheHeader(result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// options builds pipeline options from the server defaults and the query:
// width, format, style, labels, scale, refresh.
func (s *Server) options(r *http.Request) (pipeline.Options, error) {
	opts := s.cfg.Defaults
	opts.Logger = s.logger
	q := r.URL.Query()

	if v := q.Get("width"); v != "" {
		width, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidWidth, "width must be a number, got %q", v)
		}
		opts.Width = width
	}

	format := q.Get("format")
	if format == "" {
		format = render.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		return opts, err
	}
	opts.Formats = []string{format}

	if v := q.Get("style"); v != "" {
		opts.Style = v
	}
	if v := q.Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "scale must be a number, got %q", v)
		}
		opts.Scale = scale
	}
	for name, dst := range map[string]*bool{"labels": &opts.Labels, "refresh": &opts.Refresh} {
		if v := q.Get(name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return opts, errors.New(errors.ErrCodeInvalidInput, "%s must be a boolean, got %q", name, v)
			}
			*dst = b
		}
	}
	return opts, nil
}

func readDocument(w http.ResponseWriter, r *http.Request) (*jio.Document, error) {
	doc, err := jio.ReadDocument(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil && errors.GetCode(err) == "" {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	return doc, err
}

// fail writes err as a JSON error, logging it first when it is a server
// fault.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if statusFor(err) >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err)
	}
	writeError(w, err)
}

func cacheHeader(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}
