package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devconnector/backend/internal/config"
	"devconnector/backend/internal/httpserver"
	"devconnector/backend/internal/infrastructure/github"
	"devconnector/backend/internal/infrastructure/password"
	"devconnector/backend/internal/infrastructure/postgres"
	"devconnector/backend/internal/infrastructure/token"
	authusecase "devconnector/backend/internal/usecase/auth"
	postusecase "devconnector/backend/internal/usecase/post"
	profileusecase "devconnector/backend/internal/usecase/profile"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	rootCtx := context.Background()
	db, err := postgres.New(rootCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Migrate(rootCtx); err != nil {
		log.Fatalf("failed to run database migrations: %v", err)
	}

	tokenManager := token.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry)
	hasher := password.NewBcryptHasher(cfg.BcryptCost)

	users := postgres.NewUserRepository(db.Pool)
	profiles := postgres.NewProfileRepository(db.Pool)
	posts := postgres.NewPostRepository(db.Pool)

	authService := authusecase.NewService(users, tokenManager, hasher)
	profileService := profileusecase.NewService(profiles, users, posts,
		github.NewClient(cfg.GithubClientID, cfg.GithubClientSecret))
	postService := postusecase.NewService(posts, users)

	server := httpserver.NewServer(cfg, logger, tokenManager, authService, profileService, postService)
	logger.Info("HTTP server listening", "addr", server.Addr())

	go func() {
		if err := server.Start(); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				logger.Info("HTTP server closed")
				return
			}
			log.Fatalf("server error: %v", err)
		}
	}()

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	} else {
		logger.Info("graceful shutdown completed")
	}
}
