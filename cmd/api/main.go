package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/arogyahealth/triage-server/internal/adapters/cache"
	"github.com/arogyahealth/triage-server/internal/adapters/classifier"
	"github.com/arogyahealth/triage-server/internal/adapters/database"
	"github.com/arogyahealth/triage-server/internal/adapters/documents"
	"github.com/arogyahealth/triage-server/internal/api/handlers"
	"github.com/arogyahealth/triage-server/internal/api/routes"
	"github.com/arogyahealth/triage-server/internal/application/services"
	"github.com/arogyahealth/triage-server/internal/domain/providers"
	"github.com/arogyahealth/triage-server/internal/domain/repositories"
	"github.com/arogyahealth/triage-server/internal/infrastructure/clients/gemini"
	"github.com/arogyahealth/triage-server/internal/infrastructure/clients/groq"
	"github.com/arogyahealth/triage-server/internal/infrastructure/clients/postgres"
	"github.com/arogyahealth/triage-server/internal/infrastructure/clients/redis"
	"github.com/arogyahealth/triage-server/internal/infrastructure/observability"
	"github.com/arogyahealth/triage-server/pkg/config"
)

func main() {
	// .env is optional; real deployments configure through the environment
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Environment)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				if err := shutdown(shutdownCtx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// History persistence is optional: triage still works without it, the
	// chat assistant just loses patient context.
	var historyRepo repositories.HistoryRepository
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Warn().Err(err).Msg("PostgreSQL unavailable, triage history disabled")
	} else {
		defer pgClient.Close()
		historyRepo = database.NewHistoryAdapter(pgClient)
		log.Info().Msg("PostgreSQL client initialized")
	}

	// Redis is optional caching
	var cacheProvider providers.CacheProvider
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, continuing without cache")
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		log.Info().Msg("Redis client initialized")
	}

	// The narrative provider is mandatory: every successful triage response
	// needs a generated assessment.
	geminiClient, err := gemini.NewClient(&cfg.Gemini)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize Gemini client")
	}

	// The chat provider is optional; without it /api/chat answers 503.
	var chatProvider providers.ChatCompletionProvider
	groqClient, err := groq.NewClient(&cfg.Groq)
	if err != nil {
		log.Warn().Err(err).Msg("Groq unavailable, chat assistant disabled")
	} else {
		chatProvider = groqClient
	}

	triageService := services.NewTriageService(
		services.NewDocumentService(documents.NewPDFExtractor(), geminiClient),
		services.NewPredictionService(classifier.NewArtifactClassifier(cfg.Models.Dir)),
		services.NewNarrativeService(geminiClient),
		historyRepo,
	)
	chatService := services.NewChatService(chatProvider, historyRepo, cacheProvider)

	router := routes.NewRouter(
		handlers.NewTriageHandler(triageService),
		handlers.NewChatHandler(chatService, cacheProvider),
		handlers.NewHistoryHandler(historyRepo),
		cfg.CORS.AllowedOrigins,
		metrics,
	)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // narrative synthesis can be slow
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	log.Info().Msg("server stopped")
}
