// @title        Hospital Portal API
// @version      1.0
// @description  Session, routing and backend facade for the hospital management portal.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/hospitalcms/portal/internal/api"
	"github.com/hospitalcms/portal/internal/api/handler"
	"github.com/hospitalcms/portal/internal/api/middleware"
	"github.com/hospitalcms/portal/internal/core/ports"
	"github.com/hospitalcms/portal/internal/core/service"
	"github.com/hospitalcms/portal/internal/infrastructure/backend"
	"github.com/hospitalcms/portal/internal/infrastructure/db/memory"
	mongorepo "github.com/hospitalcms/portal/internal/infrastructure/db/mongo"
	redisrepo "github.com/hospitalcms/portal/internal/infrastructure/db/redis"
	"github.com/hospitalcms/portal/internal/pkg/config"
	"github.com/hospitalcms/portal/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
		Env:    cfg.Env,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("portal stopped")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	repo, closeRepo, err := openSessionRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	client := backend.NewClient(backend.Config{
		BaseURL:  cfg.Backend.URL,
		Timeout:  cfg.Backend.Timeout,
		AuthMode: backend.AuthMode(cfg.Backend.AuthMode),
	}, logger.Component("backend"))

	sessions := service.NewSessionStore(repo, cfg.Session.TTL, logger.Component("session"))
	router := service.NewRouter(sessions, logger.Component("router"))

	e := api.NewRouter(api.Deps{
		Sessions: sessions,
		Router:   router,
		Auth:     service.NewAuthService(client, router, logger.Component("auth")),
		Portal:   service.NewPortalService(client, sessions, logger.Component("portal")),
		Health: map[string]handler.Pinger{
			"session_store": repo,
			"backend":       client,
		},
		Session: middleware.SessionConfig{
			CookieName: cfg.Session.CookieName,
			Secure:     cfg.Session.CookieSecure || cfg.Production(),
			TTL:        cfg.Session.TTL,
		},
		Log: logger.Component("http"),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("session_store", cfg.Session.Store).
			Str("backend", cfg.Backend.URL).
			Msg("portal listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

type sessionRepository interface {
	ports.SessionRepository
	handler.Pinger
}

func openSessionRepository(ctx context.Context, cfg *config.Config) (sessionRepository, func(), error) {
	switch cfg.Session.Store {
	case "redis":
		client, err := redisrepo.Connect(ctx, redisrepo.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		repo := redisrepo.NewSessionRepository(client, cfg.Session.TTL)
		return repo, func() { _ = client.Close() }, nil

	case "mongo":
		client, db, err := mongorepo.Connect(ctx, mongorepo.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return nil, nil, err
		}
		repo := mongorepo.NewSessionRepository(db, cfg.Session.TTL)
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, err
		}
		return repo, func() { _ = client.Disconnect(context.Background()) }, nil

	default:
		repo := memory.NewSessionRepository(cfg.Session.TTL)
		return repo, func() {}, nil
	}
}
