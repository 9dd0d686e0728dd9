package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/auditrain/auditrain-backend/internal/config"
	"github.com/auditrain/auditrain-backend/internal/database"
	"github.com/auditrain/auditrain-backend/internal/export"
	"github.com/auditrain/auditrain-backend/internal/handler"
	"github.com/auditrain/auditrain-backend/internal/logger"
	"github.com/auditrain/auditrain-backend/internal/repository"
	"github.com/auditrain/auditrain-backend/internal/router"
	"github.com/auditrain/auditrain-backend/internal/service"
	"github.com/auditrain/auditrain-backend/internal/validator"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting AuditTrain Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	questionRepo := repository.NewQuestionRepository(pool)
	submissionRepo := repository.NewSubmissionRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb)
	userService := service.NewUserService(userRepo)
	questionService := service.NewQuestionService(questionRepo)
	surveyService := service.NewSurveyService(submissionRepo, questionRepo, rdb, log)
	statsService := service.NewStatsService(submissionRepo, questionRepo, userRepo)
	mediaService := service.NewMediaService(cfg)
	pdfExporter := export.NewPDFExporter(cfg.PDFFontPath, cfg.PDFFontName)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:     handler.NewAuthHandler(authService, userService),
		Survey:   handler.NewSurveyHandler(surveyService),
		Question: handler.NewQuestionHandler(questionService),
		Stats:    handler.NewStatsHandler(statsService, surveyService),
		User:     handler.NewUserHandler(userService, authService),
		Export:   handler.NewExportHandler(statsService, surveyService, questionService, userService, mediaService, pdfExporter, log),
		Media:    handler.NewMediaHandler(mediaService),
		Live:     handler.NewLiveHandler(rdb, log, cfg.AllowedOrigins),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
