// Package server provides the HTTP server setup for go-pdfstamp.
//
// NewServer creates and configures the HTTP server, session manager, and
// remote document fetcher.
//
// Expected outputs:
// - Server listens on the configured port (default 8080)
// - Idle sessions are swept periodically
//
// Usage:
//
//	server, cleanup := server.NewServer(cfg)
//	server.ListenAndServe()
//
// See internal/server/routes.go for route registration.
package server

import (
	"log"
	"net/http"
	"time"

	"go-pdfstamp/internal/config"
	"go-pdfstamp/internal/pdf"
	"go-pdfstamp/internal/session"

	_ "github.com/joho/godotenv/autoload"
)

type Server struct {
	Config         *config.Config
	SessionManager *session.SessionManager
	Fetcher        *pdf.Fetcher
}

func New(cfg *config.Config) *Server {
	return &Server{
		Config:         cfg,
		SessionManager: session.NewSessionManager(),
		Fetcher: &pdf.Fetcher{
			Client:  &http.Client{Timeout: cfg.FetchTimeout},
			MaxSize: cfg.MaxUploadSize,
		},
	}
}

// NewServer returns the HTTP server and a cleanup function that stops the
// session sweeper and drops all sessions.
func NewServer(cfg *config.Config) (*http.Server, func()) {
	srv := New(cfg)

	// Cleanup goroutine for idle sessions
	stop := make(chan struct{})
	go srv.sweep(stop)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      srv.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	cleanup := func() {
		close(stop)
		srv.SessionManager.Close()
	}
	return server, cleanup
}

func (s *Server) sweep(stop <-chan struct{}) {
	ticker := time.NewTicker(s.Config.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			if n := s.SessionManager.Sweep(now, s.Config.SessionTTL); n > 0 {
				log.Printf("Swept %d idle sessions", n)
			}
		}
	}
}
