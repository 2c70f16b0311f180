package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/portfolio/internal/site"
	"github.com/dmitrymomot/portfolio/pkg/clientip"
	"github.com/dmitrymomot/portfolio/pkg/config"
	"github.com/dmitrymomot/portfolio/pkg/environment"
	"github.com/dmitrymomot/portfolio/pkg/httpserver"
	"github.com/dmitrymomot/portfolio/pkg/logger"
	"github.com/dmitrymomot/portfolio/pkg/ratelimiter"
	"github.com/dmitrymomot/portfolio/pkg/redis"
	"github.com/dmitrymomot/portfolio/pkg/requestid"
)

func main() {
	if err := run(); err != nil {
		slog.Error("portfolio stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load[site.Config]()
	if err != nil {
		return err
	}

	env := environment.Parse(cfg.Env)
	log := logger.New(
		logger.WithEnvironment(env, "portfolio"),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			clientip.LoggerExtractor(),
			environment.LoggerExtractor(),
		),
	)
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []site.Option{site.WithLogger(log)}

	if cfg.Redis.Enabled() {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()

		limiter, err := ratelimiter.NewBucket(ratelimiter.NewRedisStore(client), cfg.RateLimit)
		if err != nil {
			return err
		}
		opts = append(opts,
			site.WithLimiter(limiter),
			site.WithHealthChecks(redis.Healthcheck(client)),
		)
		log.Info("contact rate limits shared through redis")
	}

	s, err := site.New(ctx, cfg, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			log.Error("failed to close site", logger.Error(err))
		}
	}()

	return httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log)).Run(ctx, s.Handler())
}
