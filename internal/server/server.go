// Package server exposes rendering and stored gists over HTTP.
//
// Routes:
//
//	GET  /healthz          liveness probe
//	POST /render?lang=go   body is source, response is image/png
//	GET  /gists/{id}.png   stored image
//	GET  /gists/{id}       gist metadata as JSON
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gogpu/codeshot"
	"github.com/gogpu/codeshot/gist"
	"github.com/gogpu/codeshot/internal/query"
)

// DefaultRequestTimeout applies when Config.RequestTimeout is zero.
const DefaultRequestTimeout = 15 * time.Second

// Renderer renders source into PNG bytes. *codeshot.Pool implements it.
type Renderer interface {
	RenderCode(ctx context.Context, source, hint string) ([]byte, error)
}

// Config holds server settings.
type Config struct {
	// MaxSourceBytes rejects larger request bodies with 413. Zero disables
	// the limit.
	MaxSourceBytes int

	RequestTimeout time.Duration

	// PublicURL prefixes image URLs in gist metadata.
	PublicURL string

	Logger *slog.Logger
}

// Server is the HTTP handler.
type Server struct {
	render Renderer
	store  gist.Store
	cfg    Config
	log    *slog.Logger
	router chi.Router
}

// New builds the router.
func New(render Renderer, store gist.Store, cfg Config) *Server {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	cfg.PublicURL = strings.TrimRight(cfg.PublicURL, "/")
	log := cfg.Logger
	if log == nil {
		log = codeshot.Component("server")
	}
	s := &Server{render: render, store: store, cfg: cfg, log: log}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Post("/render", s.handleRender)
	r.Get("/gists/{id}", s.handleGist)
	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves h on addr until ctx is cancelled, then shuts down
// gracefully.
func ListenAndServe(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "ok")
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	body := io.Reader(r.Body)
	if s.cfg.MaxSourceBytes > 0 {
		body = io.LimitReader(r.Body, int64(s.cfg.MaxSourceBytes)+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "read body: "+err.Error())
		return
	}

	// The limit covers the whole body, hint prefix included; the reader
	// stops one byte past it.
	if s.cfg.MaxSourceBytes > 0 && len(data) > s.cfg.MaxSourceBytes {
		writeError(w, http.StatusRequestEntityTooLarge, codeshot.ErrSourceTooLarge.Error())
		return
	}

	source := string(data)
	var hint string
	if q := r.URL.Query(); q.Has("lang") {
		hint = q.Get("lang")
	} else {
		hint, source = query.Parse(source)
	}

	png, err := s.render.RenderCode(r.Context(), source, hint)
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		writeError(w, http.StatusServiceUnavailable, "renderer busy")
		return
	case err != nil:
		s.log.Error("render failed", "request_id", middleware.GetReqID(r.Context()), "err", err)
		writeError(w, http.StatusInternalServerError, "render failed")
		return
	}
	writePNG(w, png)
}

type gistJSON struct {
	ID        string    `json:"id"`
	Hint      string    `json:"hint,omitempty"`
	Syntax    string    `json:"syntax"`
	Source    string    `json:"source"`
	Ephemeral bool      `json:"ephemeral"`
	CreatedAt time.Time `json:"created_at"`
	ImageURL  string    `json:"image_url"`
}

func (s *Server) handleGist(w http.ResponseWriter, r *http.Request) {
	id, wantPNG := strings.CutSuffix(chi.URLParam(r, "id"), ".png")
	if !gist.ValidID(id) {
		writeError(w, http.StatusNotFound, gist.ErrNotFound.Error())
		return
	}
	g, err := s.store.Get(r.Context(), id)
	switch {
	case errors.Is(err, gist.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
		return
	case err != nil:
		s.log.Error("load gist", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "load gist failed")
		return
	}

	if wantPNG {
		writePNG(w, g.PNG)
		return
	}
	writeJSON(w, http.StatusOK, gistJSON{
		ID:        g.ID,
		Hint:      g.Hint,
		Syntax:    g.Syntax,
		Source:    g.Source,
		Ephemeral: g.Ephemeral,
		CreatedAt: g.CreatedAt,
		ImageURL:  s.cfg.PublicURL + "/gists/" + g.ID + ".png",
	})
}

// accessLog logs one line per request.
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.log.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}

func writePNG(w http.ResponseWriter, png []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", fmt.Sprint(len(png)))
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
