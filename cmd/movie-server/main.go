package main

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"moviereviews/database"
	"moviereviews/internal/cache"
	"moviereviews/internal/config"
	"moviereviews/internal/http-api/repository"
	"moviereviews/internal/http-api/server"
	"moviereviews/internal/http-api/service"
	"moviereviews/internal/logging"
	"moviereviews/internal/storage/posters"
)

func main() {
	// 1. Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// 2. Connect to the database
	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("could not connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close(db)

	// 3. Optional score cache
	scores := newScoreCache(cfg, logger)

	// 4. Poster storage
	store, err := newPosterStore(cfg)
	if err != nil {
		logger.Error("could not set up poster storage", "error", err)
		os.Exit(1)
	}

	maxUpload, err := cfg.UploadMaxBytes()
	if err != nil {
		logger.Error("invalid upload size", "error", err)
		os.Exit(1)
	}

	// 5. Wire services and routes
	router, err := buildRouter(cfg, db, scores, store, maxUpload, logger)
	if err != nil {
		logger.Error("could not build router", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              cfg.Address(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server running", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	if closer, ok := scores.(io.Closer); ok {
		closer.Close()
	}
}

func buildRouter(cfg *config.Config, db *gorm.DB, scores cache.ScoreCache, store posters.Store, maxUpload int64, logger *slog.Logger) (*gin.Engine, error) {
	repos := repository.NewRepositories(db)
	uow := repository.NewUnitOfWork(db)

	reviewSvc := service.NewReviewService(uow, repos.Reviews, scores, logger)
	movieSvc := service.NewMovieService(uow, repos.Movies, store, reviewSvc, logger)

	return server.NewRouter(server.Deps{
		Logger:         logger,
		Movies:         movieSvc,
		Reviews:        reviewSvc,
		Posters:        store,
		Ping:           func() error { return database.Ping(db) },
		UploadMaxBytes: maxUpload,
		RequestTimeout: cfg.RequestTimeout,
		CORSOrigins:    cfg.CORSOrigins,
	})
}

// newScoreCache falls back to no caching when Redis is unset or unreachable.
func newScoreCache(cfg *config.Config, logger *slog.Logger) cache.ScoreCache {
	if cfg.RedisURL == "" {
		return cache.NoopScoreCache{}
	}
	c, err := cache.NewRedisScoreCache(cfg.RedisURL, cfg.RedisPassword, cfg.CacheTTL, logger)
	if err != nil {
		logger.Warn("redis unavailable, score cache disabled", "error", err)
		return cache.NoopScoreCache{}
	}
	logger.Info("redis connected successfully")
	return c
}

func newPosterStore(cfg *config.Config) (posters.Store, error) {
	if cfg.PosterStorage == "minio" {
		return posters.NewMinioStore(posters.MinioOptions{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		})
	}
	return posters.NewLocalStore(cfg.UploadDir), nil
}
