// Package app wires storage, cache, classifier and the player table the same
// way for the server, the CLI and the MCP server.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jstittsworth/contrarian-dfs/internal/classifier"
	"github.com/jstittsworth/contrarian-dfs/internal/metrics"
	"github.com/jstittsworth/contrarian-dfs/internal/services"
	"github.com/jstittsworth/contrarian-dfs/pkg/config"
	"github.com/jstittsworth/contrarian-dfs/pkg/database"
	"github.com/jstittsworth/contrarian-dfs/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const redisConnectTimeout = 5 * time.Second

type App struct {
	Config     *config.Config
	DB         *database.DB
	Redis      *redis.Client
	Cache      *services.CacheService
	Classifier *classifier.Classifier
	Hub        *services.WebSocketHub
	Metrics    *metrics.Recorder
	Table      *services.PlayerTableService
}

// Weights maps the contrarian score settings onto classifier weights.
func Weights(cfg *config.Config) classifier.Weights {
	return classifier.Weights{
		Rank:        cfg.ContrarianRankWeight,
		Ownership:   cfg.ContrarianOwnershipWeight,
		RankCeiling: cfg.ContrarianRankCeiling,
	}
}

// New connects to the database and runs migrations. Redis is optional: an
// empty REDIS_URL or an unreachable server leaves the cache disabled.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logger.WithComponent("app")

	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	redisCtx, cancel := context.WithTimeout(ctx, redisConnectTimeout)
	defer cancel()
	redisClient, err := services.NewRedisClient(redisCtx, cfg.RedisURL)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, running without cache")
		redisClient = nil
	} else if redisClient == nil {
		log.Info("REDIS_URL not set, running without cache")
	}

	a := &App{
		Config:     cfg,
		DB:         db,
		Redis:      redisClient,
		Cache:      services.NewCacheService(redisClient),
		Classifier: classifier.New(Weights(cfg)),
		Hub:        services.NewWebSocketHub(),
		Metrics:    metrics.NewRecorder(),
	}
	a.Table = services.NewPlayerTableService(a.DB, a.Cache, a.Classifier, a.Hub, a.Metrics)
	return a, nil
}

func (a *App) Close() error {
	if a.Redis != nil {
		a.Redis.Close()
	}
	return a.DB.Close()
}
