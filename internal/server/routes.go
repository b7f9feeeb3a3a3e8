package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// Upload UI
	mux.HandleFunc("/", s.app.PageHandler.IndexHandler)

	// Document processing
	mux.HandleFunc("/process", s.app.ProcessHandler.ProcessHandler)
	mux.HandleFunc("/download/", s.app.DownloadHandler.DownloadHandler)

	// API routes - System
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.app.APIHandler.NotFoundHandler)

	return mux
}
