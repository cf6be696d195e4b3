// Package inspect serves a read-only HTTP view of a live layout engine:
// snapshots as JSON or SVG, rect queries, and per-section geometry. It is a
// debugging surface, not a public API.
package inspect

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/abhi266raj/gridlayout/pkg/errors"
	"github.com/abhi266raj/gridlayout/pkg/geo"
	"github.com/abhi266raj/gridlayout/pkg/grid"
	"github.com/abhi266raj/gridlayout/pkg/observability"
	"github.com/abhi266raj/gridlayout/pkg/render"
)

// Options configures the inspector.
type Options struct {
	// Logger receives request traces. Defaults to a discarding logger.
	Logger *log.Logger
}

func (o *Options) setDefaults() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

type server struct {
	logger *log.Logger
	engine *grid.Engine
}

// NewRouter builds the inspector's HTTP routes over a layout engine. The
// engine is single-goroutine; serve the router from the goroutine that owns
// the engine, or put a lock in front of it.
func NewRouter(engine *grid.Engine, opts Options) http.Handler {
	opts.setDefaults()
	s := &server{logger: opts.Logger, engine: engine}

	r := chi.NewRouter()
	r.Use(s.observe)
	r.Get("/layout", s.handleLayout)
	r.Get("/layout.svg", s.handleLayoutSVG)
	r.Get("/attributes", s.handleAttributes)
	r.Get("/sections/{index}", s.handleSection)
	return r
}

// observe traces requests through the logger and the HTTP hooks.
func (s *server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.HTTP().OnRequest(r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		elapsed := time.Since(start)
		observability.HTTP().OnResponse(r.Method, r.URL.Path, ww.Status(), elapsed)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"elapsed", elapsed.Round(time.Microsecond))
	})
}

func (s *server) handleLayout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Snapshot())
}

func (s *server) handleLayoutSVG(w http.ResponseWriter, r *http.Request) {
	var opts []render.SVGOption
	if r.URL.Query().Get("labels") == "true" {
		opts = append(opts, render.WithLabels())
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	w.Write(render.RenderSVG(s.engine.Snapshot(), opts...))
}

func (s *server) handleAttributes(w http.ResponseWriter, r *http.Request) {
	rect, err := rectFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	elements := []grid.ElementSnapshot{}
	for _, a := range s.engine.AttributesInRect(rect) {
		elements = append(elements, grid.ElementSnapshot{
			Category:        a.Category.String(),
			Kind:            a.Kind,
			IndexPath:       a.IndexPath.String(),
			Frame:           a.Frame,
			ZIndex:          a.ZIndex,
			Pinned:          a.Pinned,
			BackgroundColor: a.BackgroundColor,
		})
	}
	writeJSON(w, http.StatusOK, elements)
}

func (s *server) handleSection(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "index")
	var index int
	if raw == "global" {
		index = int(grid.GlobalSectionIndex)
	} else {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest,
				errors.New(errors.ErrCodeInvalidSection, "section index %q is not a number", raw))
			return
		}
		index = parsed
	}

	snap := s.engine.Snapshot()
	ordinary := 0
	for _, sec := range snap.Sections {
		if !sec.Index.IsGlobal() {
			ordinary++
		}
	}
	if err := errors.ValidateSectionIndex(index, ordinary); err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	for _, sec := range snap.Sections {
		if sec.Index == grid.SectionIndex(index) {
			writeJSON(w, http.StatusOK, sec)
			return
		}
	}
	writeError(w, http.StatusNotFound,
		errors.New(errors.ErrCodeSectionNotFound, "section %d not in layout", index))
}

// rectFromQuery reads x, y, w, h query parameters. Missing parameters
// default to the zero origin; w and h are required.
func rectFromQuery(r *http.Request) (geo.Rect, error) {
	q := r.URL.Query()
	parse := func(name string, required bool) (float64, error) {
		raw := q.Get(name)
		if raw == "" {
			if required {
				return 0, errors.New(errors.ErrCodeInvalidRect, "missing query parameter %q", name)
			}
			return 0, nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, errors.Wrap(errors.ErrCodeInvalidRect, err, "bad query parameter %q", name)
		}
		return v, nil
	}

	x, err := parse("x", false)
	if err != nil {
		return geo.Rect{}, err
	}
	y, err := parse("y", false)
	if err != nil {
		return geo.Rect{}, err
	}
	width, err := parse("w", true)
	if err != nil {
		return geo.Rect{}, err
	}
	height, err := parse("h", true)
	if err != nil {
		return geo.Rect{}, err
	}
	if width <= 0 || height <= 0 {
		return geo.Rect{}, errors.New(errors.ErrCodeInvalidRect, "w and h must be positive")
	}
	return geo.NewRect(x, y, width, height), nil
}

// errorBody is the JSON error envelope.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	var body errorBody
	body.Error.Code = string(errors.GetCode(err))
	body.Error.Message = errors.UserMessage(err)
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
