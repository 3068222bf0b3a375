package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/movieshare/backend/internal/auth"
	"github.com/anonto42/movieshare/backend/internal/repositories"
	"github.com/anonto42/movieshare/backend/internal/router"
	"github.com/anonto42/movieshare/backend/internal/storage"
	"github.com/anonto42/movieshare/backend/pkg/config"
	"github.com/anonto42/movieshare/backend/pkg/firebase"
	"github.com/anonto42/movieshare/backend/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("failed to load configuration", zap.Error(err))
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync() //nolint:errcheck

	db, err := config.InitDB(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to initialize databases", zap.Error(err))
	}
	defer db.CloseDB()

	deps := router.Dependencies{
		Logger:      log,
		DB:          db.Postgres,
		Tokens:      auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL),
		CORSOrigins: cfg.CORSOrigins,
	}

	if db.Redis != nil {
		deps.UserCache = repositories.NewRedisUserCache(db.Redis, cfg.UserCacheTTL)
	}

	switch cfg.AvatarStore {
	case "gridfs":
		deps.Avatars, err = storage.NewGridFSAvatarStore(db.Mongo.Database(cfg.MongoDatabase))
	default:
		deps.Avatars, err = storage.NewDiskAvatarStore(cfg.AvatarDir)
	}
	if err != nil {
		log.Fatal("failed to initialize avatar store", zap.Error(err))
	}
	log.Info("Avatar store ready", zap.String("kind", cfg.AvatarStore))

	if cfg.FirebaseCredentialsPath != "" {
		authClient, err := firebase.NewAuthClient(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Fatal("failed to initialize Firebase", zap.Error(err))
		}
		deps.Firebase = authClient
		log.Info("Firebase login enabled")
	}

	e, err := router.New(deps)
	if err != nil {
		log.Fatal("failed to set up routes", zap.Error(err))
	}

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to run http server", zap.Error(err))
		}
	}()
	log.Info("Server started", zap.String("port", cfg.Port), zap.String("env", cfg.Env))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	log.Info("Server shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
