// Package main API.
//
// go-pdfstamp provides a REST API for placing signatures and text on PDF pages.
//
//	Schemes: http
//	BasePath: /
//	Version: 1.0.0
//	Host: localhost:8080
//
//	Consumes:
//	- application/json
//	- multipart/form-data
//
//	Produces:
//	- application/json
//	- application/pdf
//
// swagger:meta
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go-pdfstamp/internal/config"
	"go-pdfstamp/internal/server"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
)

const shutdownTimeout = 5 * time.Second

// waitForShutdown blocks until SIGINT or SIGTERM, drains in-flight requests
// and then drops every session. It closes done when finished.
func waitForShutdown(srv *http.Server, closeSessions func(), done chan<- struct{}) {
	defer close(done)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	<-ctx.Done()
	stop() // a second signal kills the process

	log.Printf("Signal received, draining requests for up to %s", shutdownTimeout)
	drainCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(drainCtx); err != nil {
		log.Printf("Drain incomplete: %v", err)
	}

	if closeSessions != nil {
		closeSessions()
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if !cfg.PDFCPUConfigDir {
		pdfapi.DisableConfigDir()
	}

	srv, closeSessions := server.NewServer(cfg)
	done := make(chan struct{})
	go waitForShutdown(srv, closeSessions, done)

	log.Printf("go-pdfstamp listening on %s (source %s)", cfg.Addr(), cfg.SourceURL)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("http server error: %v", err)
	}

	<-done
	log.Println("Stopped")
}
