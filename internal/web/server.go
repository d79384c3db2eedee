// Package web serves the course viewer over HTTP. The page is rendered on the
// server; a live WebSocket connection owns one view's state and pushes
// re-rendered markup after every action.
package web

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/p-n-ai/pai-course/internal/course"
	"github.com/p-n-ai/pai-course/internal/events"
	"github.com/p-n-ai/pai-course/internal/view"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static/*
var staticFS embed.FS

const (
	defaultIdleTimeout = 30 * time.Minute
	checkTimeout       = 2 * time.Second
	xlsxContentType    = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Publisher accepts analytics events without blocking.
type Publisher interface {
	Publish(event events.Event) bool
}

// Checker is a dependency probed by the readiness endpoint.
type Checker interface {
	Name() string
	HealthCheck(ctx context.Context) error
}

// Options configures a Server. The zero value is usable.
type Options struct {
	Events      Publisher
	Origins     []string
	Checks      []Checker
	IdleTimeout time.Duration
}

// Server renders the catalog and hosts live views.
type Server struct {
	catalog     *course.Catalog
	templates   *template.Template
	registry    *Registry
	events      Publisher
	origins     []string
	checks      []Checker
	idleTimeout time.Duration
}

// NewServer parses the embedded templates and prepares a server for c.
func NewServer(c *course.Catalog, opts Options) (*Server, error) {
	if c == nil {
		return nil, fmt.Errorf("catalog is nil")
	}

	tmpl, err := template.New("").ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	s := &Server{
		catalog:     c,
		templates:   tmpl,
		registry:    NewRegistry(),
		events:      opts.Events,
		origins:     opts.Origins,
		checks:      opts.Checks,
		idleTimeout: opts.IdleTimeout,
	}
	if s.idleTimeout <= 0 {
		s.idleTimeout = defaultIdleTimeout
	}
	return s, nil
}

// Registry returns the set of open live views.
func (s *Server) Registry() *Registry { return s.registry }

// Routes creates the HTTP router.
func (s *Server) Routes() *http.ServeMux {
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /live", s.handleLive)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static)))
	mux.HandleFunc("GET /export.xlsx", s.handleExport)
	mux.HandleFunc("GET /healthz", handleHealthz)
	mux.HandleFunc("GET /readyz", s.handleReadyz)
	return mux
}

func (s *Server) etag() string {
	return `"` + s.catalog.Version() + `"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	etag := s.etag()
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "page", snapshot(view.NewRoot(s.catalog))); err != nil {
		slog.Error("failed to render page", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("ETag", etag)
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := course.ExportWorkbook(s.catalog, &buf); err != nil {
		slog.Error("failed to export catalog", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="catalog.xlsx"`)
	w.Header().Set("ETag", s.etag())
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

type readiness struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Views   int               `json:"views"`
	Failed  map[string]string `json:"failed,omitempty"`
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	resp := readiness{
		Status:  "ready",
		Version: s.catalog.Version(),
		Views:   s.registry.Count(),
	}
	for _, c := range s.checks {
		if err := c.HealthCheck(ctx); err != nil {
			if resp.Failed == nil {
				resp.Failed = make(map[string]string)
			}
			resp.Failed[c.Name()] = err.Error()
		}
	}

	code := http.StatusOK
	if len(resp.Failed) > 0 {
		resp.Status = "unavailable"
		code = http.StatusServiceUnavailable
		slog.Warn("readiness check failed", "failed", resp.Failed)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(resp)
}
