// memberd serves the member management REST API.
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

	"github.com/memberhub/member-console/internal/api"
	"github.com/memberhub/member-console/internal/infrastructure/config"
	mongodb "github.com/memberhub/member-console/internal/infrastructure/db/mongo"
	"github.com/memberhub/member-console/internal/infrastructure/queue"
	"github.com/memberhub/member-console/pkg/logger"
)

func main() {
	ctx := context.Background()
	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Service: "memberd",
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
	})

	if cfg.API.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	repo := mongodb.NewMemberRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	audit := queue.NewDispatcher(0, mongodb.NewAuditStore(db), log)
	audit.Start(ctx)

	e := api.NewRouter(db, audit, cfg, log)

	go func() {
		log.Info().Str("port", cfg.API.Port).Msg("member api listening")
		if err := e.Start(":" + cfg.API.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
