// cmd/server is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/brightcode-org/outreach/internal/config"
	"github.com/brightcode-org/outreach/internal/content"
	"github.com/brightcode-org/outreach/internal/database"
	"github.com/brightcode-org/outreach/internal/handler"
	"github.com/brightcode-org/outreach/internal/logging"
	"github.com/brightcode-org/outreach/internal/mailer"
	"github.com/brightcode-org/outreach/internal/notify"
	"github.com/brightcode-org/outreach/internal/repository"
	"github.com/brightcode-org/outreach/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)
	logger := logging.WithModule("server")

	// ── 1. External collaborators ─────────────────────────────────────────
	var notifier mailer.Notifier
	ready := cfg.EmailAPIKey != ""
	if ready {
		notifier = mailer.NewClient(cfg.EmailAPIURL, cfg.EmailAPIKey)
	} else {
		logger.Warn("EMAIL_API_KEY is not set, all form endpoints will refuse requests")
	}

	var store notify.ContentStore
	if cfg.ContentAPIURL != "" {
		store = content.NewClient(cfg.ContentAPIURL, cfg.ContentDataset,
			cfg.ContentReadToken, cfg.ContentWriteToken)
	} else {
		logger.Warn("CONTENT_API_URL is not set, volunteer persistence degrades to email-only")
	}

	var journal notify.Journal
	if cfg.DatabaseURL != "" {
		pool, err := database.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		journal = repository.NewSubmissionRepository(pool)
		logger.Info("submission journal enabled")
	}

	// ── 2. Wire up layers ────────────────────────────────────────────────
	resolver := notify.NewResolver(cfg.FallbackRecipients)
	pipeline := notify.NewPipeline(store, notifier, resolver, journal,
		cfg.FromAddress, cfg.ReplyTo, logging.WithModule("notify"))
	formSvc := service.NewFormService(pipeline)
	formHandler := handler.NewFormHandler(formSvc, logging.WithModule("handler"), ready)

	// ── 3. Build the router ───────────────────────────────────────────────
	r := chi.NewRouter()

	// Global middleware stack
	r.Use(chimiddleware.Recoverer) // recover from panics, return 500
	r.Use(chimiddleware.RequestID) // attach request IDs
	r.Use(chimiddleware.RealIP)    // trust X-Forwarded-For
	r.Use(handler.Logger)          // structured access log
	r.Use(handler.CORS)            // forms are posted from the static site

	// Health
	r.Get("/health", handler.HealthCheck)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Post("/chapter-application", formHandler.ChapterApplication)
		r.Route("/workshops", func(r chi.Router) {
			r.Post("/rsvp", formHandler.RSVP)
			r.Post("/contact", formHandler.Contact)
			r.Post("/volunteer", formHandler.Volunteer)
		})
	})

	// ── 4. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Run in background goroutine so we can listen for shutdown signal.
	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Block until SIGINT or SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
