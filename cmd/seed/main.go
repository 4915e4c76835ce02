package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"cajj-backend/internal/about"
	"cajj-backend/internal/actions"
	"cajj-backend/internal/cache"
	"cajj-backend/internal/config"
	"cajj-backend/internal/content"
	"cajj-backend/internal/db"
	"cajj-backend/internal/logging"
)

// seed inserts the fixed about sections and actions. Documents that already
// exist are left as edited by the admin.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger := logging.New(logging.Options{Level: cfg.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Error("mongo connection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		logger.Error("index creation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var cacheStore cache.Cache = cache.NewNoop()
	if cfg.RedisURL != "" {
		if redisCache, err := cache.NewRedisFromURL(cfg.RedisURL); err == nil {
			defer redisCache.Close()
			cacheStore = redisCache
		}
	} else if cfg.RedisAddr != "" {
		redisCache := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer redisCache.Close()
		cacheStore = redisCache
	}

	// Files are never touched by seeding.
	deps := content.Deps{Cache: cacheStore, Location: cfg.Timezone, Log: logger}

	sections, err := about.NewService(about.NewRepository(cols.AboutSections), deps).Seed(ctx, about.Defaults())
	if err != nil {
		logger.Error("seed about sections failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	items, err := actions.NewService(actions.NewRepository(cols.Actions), deps).Seed(ctx, actions.Defaults())
	if err != nil {
		logger.Error("seed actions failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("seed complete",
		slog.Int("about_sections_created", sections),
		slog.Int("actions_created", items),
	)
}
