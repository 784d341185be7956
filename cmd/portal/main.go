package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/chinnasivakrishna/brahmakosh-portal/internal/api"
	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/session"
	"github.com/chinnasivakrishna/brahmakosh-portal/internal/infrastructure/config"
	redisdb "github.com/chinnasivakrishna/brahmakosh-portal/internal/infrastructure/db/redis"
	"github.com/chinnasivakrishna/brahmakosh-portal/internal/upstream"
	"github.com/chinnasivakrishna/brahmakosh-portal/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend := upstream.New(cfg.API.BaseURL, cfg.API.Timeout, log)

	var (
		cache session.ProfileCache
		rdb   *redis.Client
	)
	if cfg.Redis.Addr != "" {
		var err error
		rdb, err = redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, profile cache disabled")
			rdb = nil
		} else {
			cache = redisdb.NewProfileCache(rdb, cfg.Redis.ProfileTTL, log)
		}
	}

	e := api.NewRouter(cfg, backend, cache, rdb, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("backend", cfg.API.BaseURL).Msg("portal listening")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
	if rdb != nil {
		_ = rdb.Close()
	}
}
