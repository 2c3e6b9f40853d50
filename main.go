package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"media-catalog/internal/catalog"
	"media-catalog/internal/handlers"
	"media-catalog/internal/jobs"
	"media-catalog/internal/logging"
	"media-catalog/internal/metrics"
	"media-catalog/internal/middleware"
	"media-catalog/internal/scanner"
	"media-catalog/internal/startup"
)

func main() {
	startTime := time.Now()

	// Load configuration
	config, err := startup.LoadConfig()
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}

	// Initialize catalog
	catStart := time.Now()
	cat, err := catalog.Open(context.Background(), config.DatabasePath)
	if err != nil {
		startup.LogFatal("Failed to initialize catalog: %v", err)
	}
	defer func() {
		if err := cat.Close(); err != nil {
			logging.Error("Failed to close catalog: %v", err)
		}
	}()
	startup.LogCatalogInit(time.Since(catStart))

	// Export connection pool stats periodically
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		for range ticker.C {
			cat.UpdateDBMetrics()
		}
	}()

	// Initialize job broker and scanner
	startup.LogBrokerInit(config.ScanWorkers, config.QueueBuffer)
	broker := jobs.NewBroker(config.ScanWorkers, config.QueueBuffer)
	scan := scanner.New(cat, broker)
	scan.Register(broker)
	broker.Start()
	startup.LogBrokerStarted()

	// Pre-populate metric series so dashboards see zeros, not gaps
	metrics.InitializeMetrics()

	// Initialize handlers
	h := handlers.New(cat, scan)

	// Setup router
	router := setupRouter(h)

	// Log routes dynamically
	startup.LogHTTPRoutes(router, config.LogHealthChecks)

	// Apply metrics middleware
	var handler http.Handler = router
	if config.MetricsEnabled {
		handler = middleware.Metrics(middleware.DefaultMetricsConfig())(handler)
	}

	// Apply logging middleware
	loggingConfig := middleware.DefaultLoggingConfig()
	loggingConfig.LogHealthChecks = config.LogHealthChecks
	handler = middleware.Logger(loggingConfig)(handler)

	// Create server
	srv := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Metrics server on its own port
	var metricsSrv *http.Server
	if config.MetricsEnabled {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", promhttp.Handler())
		metricsSrv = &http.Server{
			Addr:         ":" + config.MetricsPort,
			Handler:      metricsMux,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
		}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != http.ErrServerClosed {
				logging.Error("Metrics server error: %v", err)
			}
		}()
	}

	// Start graceful shutdown handler
	go handleShutdown(srv, metricsSrv, broker)

	// Start server
	startup.LogServerStarted(startup.ServerConfig{
		Port:            config.Port,
		MetricsPort:     config.MetricsPort,
		MetricsEnabled:  config.MetricsEnabled,
		StartupDuration: time.Since(startTime),
	})
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		startup.LogFatal("Server error: %v", err)
	}
}

func setupRouter(h *handlers.Handlers) *mux.Router {
	r := mux.NewRouter()

	// Health check and version routes
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/healthz", h.HealthCheck).Methods("GET")
	r.HandleFunc("/livez", h.LivenessCheck).Methods("GET", "HEAD")
	r.HandleFunc("/readyz", h.ReadinessCheck).Methods("GET")
	r.HandleFunc("/version", h.GetVersion).Methods("GET")

	// Library API
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/libraries", h.CreateLibrary).Methods("POST")
	api.HandleFunc("/libraries/{id}", h.GetLibrary).Methods("GET")
	api.HandleFunc("/libraries/{id}/import-paths", h.SetImportPaths).Methods("PUT")
	api.HandleFunc("/libraries/{id}/refresh", h.RefreshLibrary).Methods("POST")
	api.HandleFunc("/stats", h.GetStats).Methods("GET")
	api.HandleFunc("/version", h.GetVersion).Methods("GET")

	return r
}

func handleShutdown(srv, metricsSrv *http.Server, broker *jobs.Broker) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	startup.LogShutdownInitiated(sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	startup.LogShutdownStep("Shutting down HTTP server")
	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	} else {
		startup.LogShutdownStepComplete("HTTP server stopped")
	}

	startup.LogShutdownStep("Draining job broker")
	broker.Stop()
	startup.LogShutdownStepComplete("Job broker drained")

	if metricsSrv != nil {
		startup.LogShutdownStep("Shutting down metrics server")
		if err := metricsSrv.Shutdown(ctx); err != nil {
			logging.Warn("Metrics server shutdown error: %v", err)
		} else {
			startup.LogShutdownStepComplete("Metrics server stopped")
		}
	}

	startup.LogShutdownComplete()
}
