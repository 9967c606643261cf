package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gorilllaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"leetStats/handlers"
	"leetStats/internal/config"
	"leetStats/middleware"
	"leetStats/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger := middleware.InitLogger(cfg.LogLevel, "leetstats")

	middleware.InitPrometheus(prometheus.DefaultRegisterer)
	services.RegisterMetrics(prometheus.DefaultRegisterer)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fetcher := services.NewLeetCodeFetcher(services.FetcherConfig{
		Endpoint:       cfg.LeetCodeURL,
		Timeout:        cfg.RequestTimeout,
		MaxAttempts:    cfg.MaxAttempts,
		RetryDelay:     cfg.RetryDelay,
		RateLimitDelay: cfg.RateLimitDelay,
		MaxRPS:         cfg.UpstreamMaxRPS,
	}, logger)
	profileService := services.NewProfileService(fetcher, logger)

	assistantService, closeAssistant := newAssistant(ctx, cfg, logger)
	defer closeAssistant()

	pageHandler := handlers.NewPageHandler(profileService, assistantService, logger)
	apiHandler := handlers.NewAPIHandler(profileService, assistantService)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.TrustProxy)
	go rateLimiter.CleanupVisitors(ctx)

	r := mux.NewRouter()
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.RequestLogger)
	r.Use(middleware.MonitorMiddleware)
	r.Use(rateLimiter.Middleware)

	r.Handle("/metrics", middleware.BasicAuthMiddleware(cfg.MetricsUser, cfg.MetricsPass)(promhttp.Handler())).Methods("GET")
	r.HandleFunc("/health", handlers.Health).Methods("GET")
	r.HandleFunc("/", pageHandler.Home).Methods("GET", "POST")

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/stats/{username}", apiHandler.GetStats).Methods("GET")
	api.HandleFunc("/ask", apiHandler.Ask).Methods("POST")

	corsHandler := gorilllaHandlers.CORS(
		gorilllaHandlers.AllowedOrigins(cfg.CORSOrigins),
		gorilllaHandlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		gorilllaHandlers.AllowedHeaders([]string{"Content-Type", middleware.RequestIDHeader}),
		gorilllaHandlers.ExposedHeaders([]string{"Content-Length", middleware.RequestIDHeader}),
	)
	recovery := gorilllaHandlers.RecoveryHandler(gorilllaHandlers.PrintRecoveryStack(cfg.Environment != "production"))

	server := http.Server{
		Addr:              cfg.Addr(),
		Handler:           recovery(corsHandler(r)),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// Lookups can spend up to three upstream timeouts plus backoff.
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Str("env", cfg.Environment).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("error starting server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown error")
	}

	logger.Info().Msg("server shutdown complete")
}

// newAssistant wires Gemini when a key is configured. Without one the
// assistant still answers, with a "not configured" error.
func newAssistant(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*services.AssistantService, func()) {
	noop := func() {}
	if cfg.GeminiAPIKey == "" {
		logger.Warn().Msg("GEMINI_API_KEY is not set, assistant disabled")
		return services.NewAssistantService(nil, logger), noop
	}

	gemini, err := services.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		logger.Error().Err(err).Msg("could not initialize Gemini, assistant disabled")
		return services.NewAssistantService(nil, logger), noop
	}

	logger.Info().Str("model", cfg.GeminiModel).Msg("Gemini initialized successfully")
	return services.NewAssistantService(gemini, logger), func() {
		if err := gemini.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close Gemini client")
		}
	}
}
