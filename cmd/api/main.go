package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/asbhive/directory/api/internal/ai"
	"github.com/asbhive/directory/api/internal/auth"
	"github.com/asbhive/directory/api/internal/config"
	"github.com/asbhive/directory/api/internal/database"
	"github.com/asbhive/directory/api/internal/handler"
	"github.com/asbhive/directory/api/internal/logger"
	middlewarepkg "github.com/asbhive/directory/api/internal/middleware"
	"github.com/asbhive/directory/api/internal/news"
	"github.com/asbhive/directory/api/internal/repository"
	"github.com/asbhive/directory/api/internal/router"
	"github.com/asbhive/directory/api/internal/service"
	"github.com/asbhive/directory/api/internal/service/report"
	"github.com/asbhive/directory/api/internal/service/search"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New(logger.Config{})
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New(logger.Config{Env: cfg.Env, Level: cfg.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL, database.PoolOptions{})
	if err != nil {
		log.Warn().Err(err).Msg("record store unavailable, serving sample data")
	} else {
		defer pool.Close()
	}

	generator := newGenerator(context.Background(), cfg.AI, log)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	revocations := auth.NewRevocations()

	usersRepo := repository.NewPGXUsersRepository(pool)
	companiesRepo := repository.NewPGXCompaniesRepository(pool)

	validator := service.NewProfileValidator(cfg.DefaultPhoneRegion, service.WithDNSResolver(service.SystemDNSResolver{}))
	authService := service.NewAuthService(usersRepo, companiesRepo, jwtManager, revocations, log)
	companiesService := service.NewCompaniesService(companiesRepo, validator, log)
	newsService := service.NewNewsService(companiesRepo, news.NewClient(cfg.News), cfg.News.Delay, cfg.News.MaxArticles, log)

	ranker := search.NewRanker(generator, log, search.WithTimeout(cfg.AI.Timeout))
	synthesizer := report.NewSynthesizer(generator, cfg.AI.Timeout, log)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewRequestValidator()

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging(log))
	e.Use(echoMiddleware.Recover())
	e.Use(middlewarepkg.SecureHeaders(!cfg.IsDevelopment()))

	router.Register(e, cfg, jwtManager, revocations, router.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Companies:   handler.NewCompaniesHandler(companiesService),
		AdminUpload: handler.NewAdminUploadHandler(companiesService),
		Search:      handler.NewSearchHandler(companiesService, ranker),
		Report:      handler.NewReportHandler(companiesService, synthesizer),
		News:        handler.NewNewsHandler(newsService, log),
	}, log)

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// newGenerator returns nil when the reasoning service cannot be used, which keeps search
// and reports on their basic paths.
func newGenerator(ctx context.Context, cfg config.AIConfig, log zerolog.Logger) ai.Generator {
	gemini, err := ai.NewGemini(ctx, ai.GeminiConfig{APIKey: cfg.APIKey, Model: cfg.Model})
	switch {
	case err == nil:
		log.Info().Str("model", gemini.Model()).Msg("reasoning service enabled")
		return gemini
	case errors.Is(err, ai.ErrCredentialMissing):
		log.Debug().Msg("no reasoning credential, using basic search and template reports")
	default:
		log.Warn().Err(err).Msg("reasoning service disabled")
	}
	return nil
}
