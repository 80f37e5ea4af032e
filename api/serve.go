package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rogerio-castellano/product-values/internal/config"
	"github.com/rogerio-castellano/product-values/internal/db"
	api "github.com/rogerio-castellano/product-values/internal/http"
	"github.com/rogerio-castellano/product-values/internal/http/ratelimit"
	"github.com/rogerio-castellano/product-values/internal/logging"
	"github.com/rogerio-castellano/product-values/internal/repo"
)

func serve(ctx context.Context, cfg config.Config) error {
	closer, err := logging.Setup(cfg.Log)
	if err != nil {
		return err
	}
	defer closer.Close()

	log.Info().
		Str("version", version).
		Str("addr", cfg.Server.Addr).
		Str("driver", cfg.Database.Driver).
		Msg("Starting product service")

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, sessions, err := openStorage(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer database.Close()

	products := repo.NewSQLProductRepository(cfg.Database.QueryTimeout)
	if err := prepareStorage(ctx, sessions, products, cfg.Seed.Enabled); err != nil {
		return fmt.Errorf("failed to prepare storage: %w", err)
	}

	var limiter *ratelimit.Limiter
	if cfg.RateLimit.RPS > 0 {
		limiter = ratelimit.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst, 5*time.Minute)
		go limiter.Cleanup(ctx, time.Minute)
		log.Info().Float64("rps", cfg.RateLimit.RPS).Int("burst", cfg.RateLimit.Burst).Msg("Rate limiting enabled")
	}

	server := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: api.NewRouter(api.Options{
			Products:       products,
			Sessions:       sessions,
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			Limiter:        limiter,
		}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}
		log.Info().Int64("open_sessions", sessions.Open()).Msg("Product service stopped")
		return nil
	case err := <-errChan:
		return fmt.Errorf("http server failed: %w", err)
	}
}

func migrate(ctx context.Context, cfg config.Config) error {
	closer, err := logging.Setup(cfg.Log)
	if err != nil {
		return err
	}
	defer closer.Close()

	database, sessions, err := openStorage(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer database.Close()

	products := repo.NewSQLProductRepository(cfg.Database.QueryTimeout)
	if err := prepareStorage(ctx, sessions, products, cfg.Seed.Enabled); err != nil {
		return fmt.Errorf("failed to prepare storage: %w", err)
	}
	log.Info().Str("driver", cfg.Database.Driver).Msg("Schema is up to date")
	return nil
}

func openStorage(ctx context.Context, cfg config.Config) (*sql.DB, *db.SessionManager, error) {
	database, dialect, err := db.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	return database, db.NewSessionManager(database, dialect), nil
}

// prepareStorage creates the schema and, when enabled, the seed product,
// using a single session.
func prepareStorage(ctx context.Context, sessions *db.SessionManager, products repo.ProductRepository, seed bool) error {
	return sessions.WithSession(ctx, func(s *db.Session) error {
		if err := db.EnsureSchema(ctx, s); err != nil {
			return err
		}
		if !seed {
			return nil
		}
		_, err := repo.Seed(ctx, s, products, repo.DefaultSeed)
		return err
	})
}
