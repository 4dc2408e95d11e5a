// Package httpapi serves the review workspace over JSON and Server-Sent Events.
package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"provmark/internal/application"
)

// Server routes API requests to workspace commands
type Server struct {
	router *chi.Mux
	ws     *application.Workspace
	hub    *Hub
	logger *slog.Logger
}

// NewServer creates a server for ws
func NewServer(ws *application.Workspace) *Server {
	s := &Server{
		router: chi.NewRouter(),
		ws:     ws,
		hub:    NewHub(ws.Notifier, ws.Logger),
		logger: ws.Logger,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Hub returns the event hub; its Run loop must be started by the caller
func (s *Server) Hub() *Hub {
	return s.hub
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/events", s.hub.HandleSSE)

		r.Get("/rows", s.handleListRows)
		r.Post("/rows/{idx}/{quality}", s.handleMarkRow)

		r.Get("/marks", s.handleMarks)
		r.Post("/marks/clear", s.handleClearMarks)
		r.Get("/inspected", s.handleInspected)
		r.Get("/stats", s.handleStats)

		r.Get("/categories/{namespace}", s.handleCategories)
		r.Post("/categories/{namespace}/{index}/{quality}", s.handleMarkCategory)

		r.Get("/export/rows", s.handleExportRows)
		r.Get("/export/categories/{namespace}", s.handleExportCategories)
	})
}

// requestLogger logs each request through the workspace logger
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
