// Package server sets up the HTTP server and registers API routes for go-pdfstamp.
//
// RegisterRoutes returns an http.Handler with all API endpoints for sessions,
// documents and the annotation overlay.
//
// Expected outputs:
// - All API endpoints are available under /api/sessions
// - CORS, request ID, recovery and logging middleware are enabled
//
// See README.md for endpoint details and integration examples.
package server

import (
	"net"
	"net/http"

	_ "go-pdfstamp/docs"
	"go-pdfstamp/internal/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Only allow requests from localhost to /swagger/*
func localhostOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, _ := net.SplitHostPort(r.RemoteAddr)
		if host != "127.0.0.1" && host != "::1" && host != "localhost" {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.Config.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders: []string{"Content-Type", "If-None-Match"},
		ExposedHeaders: []string{"Content-Disposition", "ETag"},
	}))
	r.With(localhostOnly).Get("/swagger/*", httpSwagger.WrapHandler)
	h := handlers.NewAPIHandler(s.SessionManager, s.Config, s.Fetcher)
	r.Route("/api/sessions", func(api chi.Router) {
		api.Post("/", h.CreateSession)
		api.Route("/{sessionID}", func(sr chi.Router) {
			sr.Get("/", h.GetSession)
			sr.Delete("/", h.DeleteSession)

			sr.Post("/document", h.UploadDocument)
			sr.Post("/document/fetch", h.FetchDocument)
			sr.Get("/document", h.DownloadDocument)
			sr.Delete("/document", h.UnloadDocument)
			sr.Put("/page", h.SetPage)
			sr.Put("/layout", h.SetLayout)

			sr.Post("/overlay", h.OpenOverlay)
			sr.Delete("/overlay", h.CancelOverlay)
			sr.Put("/overlay/text", h.SupplyText)
			sr.Post("/overlay/signature", h.UploadSignature)
			sr.Post("/overlay/drag", h.DragOverlay)
			sr.Post("/overlay/commit", h.CommitOverlay)

			sr.Post("/actions/reset", h.Reset)
		})
	})

	return r
}
