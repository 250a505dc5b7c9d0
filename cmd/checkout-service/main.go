package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
	"github.com/sonuudigital/nimblestore/internal/cache"
	"github.com/sonuudigital/nimblestore/internal/catalog"
	"github.com/sonuudigital/nimblestore/internal/config"
	"github.com/sonuudigital/nimblestore/internal/database"
	"github.com/sonuudigital/nimblestore/internal/events"
	"github.com/sonuudigital/nimblestore/internal/events/worker"
	"github.com/sonuudigital/nimblestore/internal/handlers"
	"github.com/sonuudigital/nimblestore/internal/logs"
	"github.com/sonuudigital/nimblestore/internal/middlewares"
	"github.com/sonuudigital/nimblestore/internal/order"
	"github.com/sonuudigital/nimblestore/internal/rabbitmq"
	"github.com/sonuudigital/nimblestore/internal/repository/postgres"
	"github.com/sonuudigital/nimblestore/internal/router"
	"github.com/sonuudigital/nimblestore/internal/web"
)

func main() {
	logger := logs.NewSlogLogger()
	if config.LoadDotEnv() {
		logger.Info("loaded environment variables from .env file")
	} else {
		logger.Info("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	pgDb, err := database.InitializePostgresDB(cfg.DatabaseURL, cfg.MigrationsDir)
	if err != nil {
		logger.Error("error connecting to database", "error", err)
		os.Exit(1)
	}
	logger.Info("database connected successfully")
	defer pgDb.Close()

	var productCache cache.ProductCache = cache.NoopProductCache{}
	var limiter middlewares.Limiter
	var readiness []router.ReadinessCheck
	if cfg.RedisURL != "" {
		redisClient, err := initializeRedisClient(cfg.RedisURL)
		if err != nil {
			logger.Error("error connecting to redis", "error", err)
			os.Exit(1)
		}
		logger.Info("redis connected successfully")
		defer redisClient.Close()

		productCache = cache.NewRedisProductCache(redisClient, logger, cfg.ProductsCacheTTL)
		limiter = redis_rate.NewLimiter(redisClient)
		readiness = append(readiness, router.ReadinessCheck{
			Name:  "redis",
			Check: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		})
	} else {
		logger.Warn("REDIS_URL is not set, product cache and rate limiting disabled")
	}

	relayerCtx, stopRelayer := context.WithCancel(context.Background())
	defer stopRelayer()
	if cfg.RabbitMQURL != "" {
		rabbitClient, err := rabbitmq.NewClient(logger, cfg.RabbitMQURL)
		if err != nil {
			logger.Error("error connecting to rabbitmq", "error", err)
			os.Exit(1)
		}
		logger.Info("rabbitmq connected successfully")
		defer rabbitClient.Close()

		relayer := worker.NewOutboxEventMessageRelayer(
			logger,
			events.NewRoutingPublisher(rabbitClient),
			postgres.NewOutboxEventMessageRelayerRepository(pgDb),
			cfg.OutboxPollInterval,
			cfg.OutboxBatchSize,
		)
		go relayer.Start(relayerCtx)

		readiness = append(readiness, router.ReadinessCheck{
			Name:  "rabbitmq",
			Check: func(context.Context) error { return rabbitClient.Ping() },
		})
	} else {
		logger.Warn("RABBITMQ_URL is not set, outbox events stay pending")
	}

	catalogService := catalog.NewService(postgres.NewProductRepository(pgDb), productCache, logger)
	orderProcessor := order.NewProcessor(postgres.NewOrderRepository(pgDb), productCache, logger)
	h := handlers.NewHandler(catalogService, orderProcessor, logger)

	rateLimiter := middlewares.NewRateLimiterMiddleware(logger, middlewares.RateLimitConfig{
		Rate:  cfg.OrderRateLimit,
		Burst: cfg.OrderRateBurst,
	}, limiter, cfg.RateLimitEnabled)

	mux := router.ConfigRoutes(pgDb, h, rateLimiter.Middleware, logger, readiness...)

	srv, err := web.InitializeServer(cfg.Port, mux, logger)
	if err != nil {
		logger.Error("failed to initialize server", "error", err)
		os.Exit(1)
	}

	web.StartServerAndWaitForShutdown(srv, logger, stopRelayer)
}

func initializeRedisClient(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("could not parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("could not ping redis: %w", err)
	}

	return client, nil
}
