package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"cryptomobile/internal/auth"
	"cryptomobile/internal/bits"
	"cryptomobile/internal/config"
	"cryptomobile/internal/httpserver"
	"cryptomobile/internal/logger"
	"cryptomobile/internal/store"
	"cryptomobile/internal/suite"
)

func main() {
	cfg := config.Load()
	lg := logger.New(cfg.LogLevel)
	defer lg.Sync()

	if cfg.JWTSecret == "" {
		lg.Fatalw("JWT_SECRET is empty")
	}
	st := openStore(cfg, lg)
	if err := store.SeedCatalogue(context.Background(), st); err != nil {
		lg.Fatalw("catalogue seed failed", "error", err)
	}

	eng := suite.Engine{Limit: bits.Limit{MaxBits: cfg.MaxMessageBits}}
	router := httpserver.NewRouter(httpserver.Deps{
		Store:     st,
		Engine:    eng,
		Tokens:    auth.NewTokens(cfg.JWTSecret, cfg.JWTExpiresIn),
		Logger:    lg,
		MCTRounds: cfg.MCTRounds,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		lg.Infow("listening", "port", cfg.HTTPPort, "max_message_bits", cfg.MaxMessageBits)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	lg.Infow("shutting down", "timeout", cfg.ShutdownTimeout)
	sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		lg.Errorw("shutdown failed", "error", err)
	}
}

func openStore(cfg config.Config, lg *zap.SugaredLogger) store.Store {
	if cfg.DatabaseURL == "" {
		lg.Warnw("DATABASE_URL is empty, using in-memory store")
		return store.NewMemory()
	}
	st, err := store.Open(cfg.DatabaseURL)
	if err != nil {
		lg.Fatalw("db connect failed", "error", err)
	}
	return st
}
