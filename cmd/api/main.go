package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"unite-match/internal/cache"
	"unite-match/internal/config"
	"unite-match/internal/db"
	apihttp "unite-match/internal/http"
	"unite-match/internal/repository"
	"unite-match/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Ping(ctx, pool); err != nil {
		logger.Fatal("db ping", zap.Error(err))
	}

	userRepo := repository.NewPgUserRepository(pool)

	var profileCache service.ProfileCache
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			ttl := time.Duration(cfg.ProfileCacheTTLMinutes) * time.Minute
			profileCache = cache.NewRedisProfileCache(redisClient, logger, ttl)
		}
		cancel()
	}

	profileSvc := service.NewProfileService(logger, userRepo, profileCache)
	profileHandler := apihttp.NewProfileHandler(logger, profileSvc)
	healthHandler := apihttp.NewHealthHandler(pool)
	router := apihttp.NewRouter(logger, cfg.AuthJWTSecret, profileHandler, healthHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
