package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"flightbooking-agent/internal/infrastructure/config"
	"flightbooking-agent/internal/infrastructure/oauth"
	"flightbooking-agent/internal/interface/console"
	"flightbooking-agent/internal/interface/export"
	apiRepo "flightbooking-agent/internal/interface/repository"
	"flightbooking-agent/internal/usecase"
	"flightbooking-agent/pkg/logger"
	"flightbooking-agent/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Flight Booking Agent")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.NewMetrics("flight_agent")

	// Set up flight API auth and repositories
	amadeusOAuth := oauth.NewAmadeusOAuth(cfg.AmadeusClientID, cfg.AmadeusClientSecret, cfg.AmadeusBaseURL, log)
	apiClient := amadeusOAuth.HTTPClient(ctx, cfg.RequestTimeout)
	amadeusRepo := apiRepo.NewAmadeusRepository(apiClient, cfg.AmadeusBaseURL, log)
	parserRepo := apiRepo.NewOpenAIParserRepository(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL, cfg.RequestTimeout, log)

	workflow := usecase.NewBookingWorkflow(amadeusRepo, amadeusRepo, amadeusRepo, m, log, usecase.RetryControllerConfig{
		MaxRetries: cfg.MaxBookingRetries,
		Backoff:    cfg.ResyncBackoff,
	})

	exporter := export.NewJSONExporter(cfg.ExportDir, log)
	prompter := console.NewPrompter(os.Stdin, os.Stdout, cfg.DefaultProfile, log)

	agent := newAgent(workflow, parserRepo, exporter, prompter, log)

	// Set up HTTP server for metrics
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.MetricsPort,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting metrics server", "port", cfg.MetricsPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Metrics server error", "error", err)
		}
	}()

	// Run the interactive loop in a goroutine
	done := make(chan struct{})
	go func() {
		defer close(done)
		agent.run(ctx)
	}()

	// Wait for interrupt signal or end of input
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Info("Received signal", "signal", sig)
	case <-done:
	}

	cancel()
	if err := server.Shutdown(context.Background()); err != nil {
		log.Error("Metrics server shutdown error", "error", err)
	}

	log.Info("Flight Booking Agent stopped")
}
