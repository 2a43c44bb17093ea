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

	"github.com/rs/zerolog"

	"github.com/openforum/forum-api/internal/api"
	"github.com/openforum/forum-api/internal/api/handler"
	"github.com/openforum/forum-api/internal/core/ports"
	"github.com/openforum/forum-api/internal/core/service"
	mongodb "github.com/openforum/forum-api/internal/infrastructure/db/mongo"
	redisdb "github.com/openforum/forum-api/internal/infrastructure/db/redis"
	"github.com/openforum/forum-api/internal/infrastructure/memory"
	"github.com/openforum/forum-api/internal/infrastructure/queue"
	"github.com/openforum/forum-api/internal/pkg/config"
	"github.com/openforum/forum-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "forum-api",
		Env:     cfg.Env,
	})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.UsingDefaultSecret() {
		log.Warn().Msg("JWT_SECRET is not set, signing tokens with the development secret")
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = client.Disconnect(dctx)
	}()

	userRepo := mongodb.NewUserRepository(db)
	categoryRepo := mongodb.NewCategoryRepository(db)
	activityRepo := mongodb.NewActivityRepository(db)
	threads := mongodb.NewThreadStats(db)

	for name, ensure := range map[string]func(context.Context) error{
		"users":      userRepo.EnsureIndexes,
		"categories": categoryRepo.EnsureIndexes,
		"activity":   activityRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			return fmt.Errorf("ensure %s indexes: %w", name, err)
		}
	}

	health := map[string]handler.Pinger{"mongodb": mongodb.NewPinger(db)}

	var limiter ports.RateLimiter
	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()
		limiter = redisdb.NewRateLimiter(rdb, cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateWindow)
		health["redis"] = redisdb.NewPinger(rdb)
	} else {
		log.Info().Msg("REDIS_ADDR not set, using in-process login rate limiter")
		limiter = memory.NewRateLimiter(cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateWindow)
	}

	proxies, err := cfg.TrustedProxyRanges()
	if err != nil {
		return err
	}

	activityLog := logger.Named("activity")
	dispatcher := queue.NewDispatcher(cfg.ActivityQueue, service.NewActivityService(activityRepo, activityLog), activityLog)
	dispatcher.Start(ctx)

	authLog := logger.Named("auth")
	hasher := service.NewPasswordHasher(cfg.Auth.BcryptCost)
	tokens := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL, cfg.Auth.JWTIssuer)
	authenticator := service.NewResolver(
		service.NewCredentialsStrategy(userRepo, hasher, authLog),
		service.NewTokenStrategy(userRepo, tokens, authLog),
	)

	e := api.NewRouter(api.Deps{
		Log:            logger.Named("http"),
		Authenticator:  authenticator,
		Auth:           service.NewAuthService(userRepo, authenticator, hasher, tokens, dispatcher, authLog),
		Users:          service.NewUserService(userRepo, threads, dispatcher, logger.Named("users")),
		Categories:     service.NewCategoryService(categoryRepo, threads, logger.Named("categories")),
		LoginLimiter:   limiter,
		Health:         health,
		TokenTTL:       tokens.TTL(),
		CORSOrigins:    cfg.CORSOrigins,
		TrustedProxies: proxies,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(sctx)
}
