// console serves the browser-facing member console.
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

	"github.com/memberhub/member-console/internal/console"
	"github.com/memberhub/member-console/internal/infrastructure/config"
	redisdb "github.com/memberhub/member-console/internal/infrastructure/db/redis"
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
		Service: "console",
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient, err := redisdb.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
	if err != nil {
		return err
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	store := redisdb.NewTokenStore(redisClient)

	e, err := console.NewRouter(store, cfg, log)
	if err != nil {
		return err
	}

	go func() {
		log.Info().Str("port", cfg.Console.Port).Msg("console listening")
		if err := e.Start(":" + cfg.Console.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
