// @title                       User Service API
// @version                     1.0
// @description                 User accounts with bearer-token authentication and role-gated administration.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the access token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/useraccounts/user-service/internal/api"
	"github.com/useraccounts/user-service/internal/api/handler"
	"github.com/useraccounts/user-service/internal/core/ports"
	"github.com/useraccounts/user-service/internal/core/security"
	"github.com/useraccounts/user-service/internal/core/service"
	"github.com/useraccounts/user-service/internal/infrastructure/db/mongo"
	"github.com/useraccounts/user-service/internal/infrastructure/db/redis"
	"github.com/useraccounts/user-service/internal/infrastructure/queue"
	"github.com/useraccounts/user-service/internal/pkg/config"
	"github.com/useraccounts/user-service/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// The logger depends on config; fall back to a bare one.
		fallback := zerolog.New(os.Stderr)
		fallback.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "user-service",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("service stopped")
	}
	log.Info().Msg("service stopped")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Storage ---
	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := mongo.Disconnect(context.WithoutCancel(ctx), client); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	userRepo := mongo.NewUserRepository(db, cfg.Mongo.Collection, cfg.Mongo.Timeout)
	activityRepo := mongo.NewActivityRepository(db, cfg.Mongo.Timeout)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := activityRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("activity indexes not created")
	}

	health := map[string]handler.Pinger{"mongodb": handler.MongoPinger(db)}

	var reserver ports.UsernameReserver
	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	switch {
	case errors.Is(err, redis.ErrNotConfigured):
		log.Info().Msg("redis not configured, username reservation disabled")
	case err != nil:
		return err
	default:
		defer closeRedis(rdb, log)
		reserver = redis.NewUsernameReserver(rdb)
		health["redis"] = handler.RedisPinger(rdb)
	}

	// --- Core ---
	hasher := security.NewBcryptHasher(cfg.Auth.BcryptCost)
	codec, err := security.NewJWTCodec(cfg.Auth.JWTSecret, cfg.Auth.JWTAlgorithm, cfg.TokenLifetime())
	if err != nil {
		return err
	}

	activityService := service.NewActivityService(activityRepo, logger.Component("activity"))
	dispatcher := queue.NewDispatcher(cfg.ActivityWorkers, activityService, logger.Component("activity"))

	authService := service.NewAuthService(userRepo, hasher, codec, cfg.TokenLifetime(), dispatcher, logger.Component("auth"))
	userService := service.NewUserService(userRepo, hasher, reserver, dispatcher, cfg.Mongo.ListLimit, logger.Component("users"))

	e := api.NewRouter(api.Dependencies{
		Auth:   authService,
		Users:  userService,
		Health: health,
		Log:    log,
	})

	// --- Lifecycle ---
	// Activity workers outlive the HTTP server so requests finishing during
	// shutdown still have their events written.
	activityCtx, stopActivity := context.WithCancel(context.WithoutCancel(ctx))
	defer stopActivity()
	dispatcher.Start(activityCtx)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Msg("starting http server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	stopActivity()
	dispatcher.Wait()
	return err
}

func closeRedis(rdb *goredis.Client, log zerolog.Logger) {
	if err := rdb.Close(); err != nil {
		log.Warn().Err(err).Msg("redis close failed")
	}
}
