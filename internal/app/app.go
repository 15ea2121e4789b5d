// Package app wires configuration, storage, services and the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/asvabprep/backend/internal/adapter/postgres"
	auditrepo "github.com/asvabprep/backend/internal/adapter/postgres/audit"
	cardrepo "github.com/asvabprep/backend/internal/adapter/postgres/flashcard"
	reviewrepo "github.com/asvabprep/backend/internal/adapter/postgres/review"
	tokenrepo "github.com/asvabprep/backend/internal/adapter/postgres/token"
	userrepo "github.com/asvabprep/backend/internal/adapter/postgres/user"
	internalauth "github.com/asvabprep/backend/internal/auth"
	"github.com/asvabprep/backend/internal/config"
	authsvc "github.com/asvabprep/backend/internal/service/auth"
	"github.com/asvabprep/backend/internal/service/flashcard"
	"github.com/asvabprep/backend/internal/service/flashcard/sm2"
	usersvc "github.com/asvabprep/backend/internal/service/user"
	"github.com/asvabprep/backend/internal/transport/middleware"
	"github.com/asvabprep/backend/internal/transport/rest"
	"github.com/asvabprep/backend/migrations"
)

// Run is the application entry point. It loads configuration, connects to
// the database, applies migrations, wires services and handlers, and serves
// HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if err := migrate(ctx, pool, logger); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	// Repositories and transaction manager.
	txm := postgres.NewTxManager(pool)
	cards := cardrepo.New(pool)
	reviews := reviewrepo.New(pool)
	users := userrepo.New(pool)
	tokens := tokenrepo.New(pool)
	audit := auditrepo.New(pool)

	// Services.
	jwtMgr := internalauth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	authService := authsvc.NewService(logger, users, users, tokens, txm, jwtMgr, cfg.Auth)
	flashcardService := flashcard.NewService(
		logger, cards, reviews, users, audit, txm,
		sm2.Config{
			DefaultEaseFactor:   cfg.SRS.DefaultEaseFactor,
			MinEaseFactor:       cfg.SRS.MinEaseFactor,
			MaxEaseFactor:       cfg.SRS.MaxEaseFactor,
			GraduatingInterval:  cfg.SRS.GraduatingInterval,
			MasteryRepetitions:  cfg.SRS.MasteryRepetitions,
			MasteryIntervalDays: cfg.SRS.MasteryIntervalDays,
			JitterSpread:        cfg.SRS.JitterSpread,
		},
		cfg.Study.MaxCardsPerUser,
		cfg.Study.DefaultQueueLimit,
		cfg.Study.UndoWindow,
	)
	userService := usersvc.NewService(logger, users, users, audit, txm)

	// HTTP transport.
	router := rest.NewRouter(rest.Handlers{
		Auth:       rest.NewAuthHandler(authService, logger),
		Flashcards: rest.NewFlashcardHandler(flashcardService, logger),
		Study:      rest.NewStudyHandler(flashcardService, logger),
		User:       rest.NewUserHandler(userService, logger),
		Health:     rest.NewHealthHandler(pool, BuildVersion()),
	})

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		limiter.Limit(cfg.Server.RateLimitPerMin),
		middleware.Auth(authService),
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
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

// migrate applies pending goose migrations from the embedded filesystem.
func migrate(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	if len(results) > 0 {
		logger.Info("migrations applied", slog.Int("count", len(results)))
	}

	return nil
}
