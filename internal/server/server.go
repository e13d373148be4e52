package server

import (
	"log/slog"
	"net/http"

	"seller-report/internal/handlers"
	"seller-report/internal/services"
)

type Server struct {
	report      *services.SalesReport
	mux         *http.ServeMux
	logger      *slog.Logger
	apiHandlers *handlers.APIHandlers
	sseHandlers *handlers.SSEHandlers
}

type TemplateHandlers struct {
	Dashboard http.HandlerFunc
}

func NewServer(report *services.SalesReport, logger *slog.Logger, maxBodyBytes int64, templateHandlers *TemplateHandlers) *Server {
	s := &Server{
		report:      report,
		mux:         http.NewServeMux(),
		logger:      logger,
		apiHandlers: handlers.NewAPIHandlers(report, logger, maxBodyBytes),
		sseHandlers: handlers.NewSSEHandlers(report, logger),
	}
	s.setupRoutes(templateHandlers)
	return s
}

func (s *Server) setupRoutes(templateHandlers *TemplateHandlers) {
	// Dashboard routes
	s.mux.HandleFunc("GET /{$}", templateHandlers.Dashboard)
	s.mux.HandleFunc("GET /health", s.apiHandlers.HandleHealth)
	s.mux.HandleFunc("GET /admin/stats", s.apiHandlers.HandleStats)

	// REST API endpoints
	s.mux.HandleFunc("POST /api/reports", s.apiHandlers.HandleGenerate)
	s.mux.HandleFunc("GET /api/report", s.apiHandlers.HandleReport)
	s.mux.HandleFunc("GET /api/report/top", s.apiHandlers.HandleTopSellers)
	s.mux.HandleFunc("GET /api/sellers/{id}", s.apiHandlers.HandleSeller)

	// Datastar SSE endpoints
	s.mux.HandleFunc("GET /sse/report", s.sseHandlers.HandleReport)
	s.mux.HandleFunc("GET /sse/stats", s.sseHandlers.HandleStats)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
