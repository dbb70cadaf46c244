// Package main is the entry point for the API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/snowcore/sourcing-assistant/internal/agent"
	"github.com/snowcore/sourcing-assistant/internal/chat"
	"github.com/snowcore/sourcing-assistant/internal/config"
	"github.com/snowcore/sourcing-assistant/internal/events"
	"github.com/snowcore/sourcing-assistant/internal/handler"
	"github.com/snowcore/sourcing-assistant/internal/middleware"
	"github.com/snowcore/sourcing-assistant/internal/registry"
	"github.com/snowcore/sourcing-assistant/internal/warehouse"
	"github.com/snowcore/sourcing-assistant/pkg/logger"
	"github.com/snowcore/sourcing-assistant/pkg/tracing"
)

const (
	seedPartCount  = 2000
	seedOrderCount = 5000
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting API server")

	// Initialize tracing if enabled
	ctx := context.Background()
	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, "sourcing-assistant", cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			defer tracing.Shutdown(ctx, tp)
		}
	}

	// Open the warehouse
	store, err := warehouse.NewSQLite(cfg.WarehousePath)
	if err != nil {
		log.Error("failed to open warehouse", zap.Error(err))
		os.Exit(1)
	}
	defer store.Close()

	if cfg.SeedWarehouse {
		seeded, err := store.IsSeeded(ctx)
		if err != nil {
			log.Error("failed to inspect warehouse", zap.Error(err))
			os.Exit(1)
		}
		if !seeded {
			log.Info("seeding warehouse with synthetic dataset")
			if err := store.Seed(seedPartCount, seedOrderCount); err != nil {
				log.Error("failed to seed warehouse", zap.Error(err))
				os.Exit(1)
			}
		}
	}

	// Connect the optional audit stream
	var publisher *events.Publisher
	if cfg.NATSURL != "" {
		publisher, err = events.Connect(ctx, events.Config{
			URL:   cfg.NATSURL,
			Token: cfg.NATSToken,
		}, log)
		if err != nil {
			log.Warn("failed to connect audit stream, auditing disabled", zap.Error(err))
			publisher = nil
		} else {
			defer publisher.Close()
		}
	}

	// Select the assistant backend
	assistant := agent.New(cfg)
	log.Info("assistant backend selected", zap.String("provider", assistant.Provider()))

	// Initialize core components
	queryRegistry := registry.New()
	threadStore := chat.NewThreadStore()
	orchestrator := chat.NewOrchestrator(threadStore, assistant, publisher, log)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(store)
	dashboardHandler := handler.NewDashboardHandler(store, queryRegistry, publisher, log)
	analystHandler := handler.NewAnalystHandler(store, queryRegistry, log)
	chatHandler := handler.NewChatHandler(orchestrator, log)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Correlation-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health endpoints (no auth required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	// API routes with authentication
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWTSecret))
		r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))

		r.Get("/dashboards/{page}", dashboardHandler.Get)
		r.Get("/queries", dashboardHandler.ListQueries)
		r.Post("/analyst", analystHandler.Ask)
		r.Get("/docs/search", analystHandler.SearchDocs)

		r.Route("/chat/{persona}", func(r chi.Router) {
			r.Get("/", chatHandler.GetThread)
			r.Post("/messages", chatHandler.SendMessage)
			r.Delete("/", chatHandler.ClearThread)
		})
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("server listening", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}
