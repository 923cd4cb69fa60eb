// Package app wires configuration, storage, services, and transport into a
// running HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/wordbook-backend/internal/adapter/postgres"
	savedwordrepo "github.com/heartmarshall/wordbook-backend/internal/adapter/postgres/savedword"
	tagrepo "github.com/heartmarshall/wordbook-backend/internal/adapter/postgres/tag"
	wordrepo "github.com/heartmarshall/wordbook-backend/internal/adapter/postgres/word"
	"github.com/heartmarshall/wordbook-backend/internal/adapter/provider/claude"
	"github.com/heartmarshall/wordbook-backend/internal/auth"
	"github.com/heartmarshall/wordbook-backend/internal/config"
	"github.com/heartmarshall/wordbook-backend/internal/service/lookup"
	"github.com/heartmarshall/wordbook-backend/internal/service/vocab"
	"github.com/heartmarshall/wordbook-backend/internal/transport/middleware"
	"github.com/heartmarshall/wordbook-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, builds the services and transport, and serves until the
// context is cancelled or a termination signal arrives.
func Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	if cfg.Database.MigrateOnStart {
		if err := Migrate(ctx, cfg.Database); err != nil {
			return err
		}
		logger.Info("migrations applied")
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)
	words := wordrepo.New(pool)
	saved := savedwordrepo.New(pool)
	tags := tagrepo.New(pool)

	llm := claude.New(cfg.LLM)

	lookupSvc := lookup.NewService(logger, llm, words, saved, cfg.LLM.Timeout)
	vocabSvc := vocab.NewService(logger, txManager, words, saved, tags, cfg.Dictionary)

	jwtManager := auth.NewJWTManager(cfg.Auth)

	router := rest.NewRouter(
		rest.NewLookupHandler(logger, lookupSvc),
		rest.NewVocabHandler(logger, vocabSvc),
		rest.NewHealthHandler(pool, BuildVersion()),
	)

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(jwtManager),
	)(router)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("stopped")
	return nil
}
