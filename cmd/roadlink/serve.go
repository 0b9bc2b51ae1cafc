package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/roadlink/conflate/internal/cache"
	"github.com/roadlink/conflate/internal/config"
	"github.com/roadlink/conflate/internal/httpapi"
	"github.com/roadlink/conflate/internal/store/searchindex"
)

// newServeCmd starts the HTTP surface: ad-hoc conflation checks, health,
// decision-cache stats, and free-text search when Meilisearch is configured.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			decisionCache, err := buildCache(ctx, logger)
			if err != nil {
				return err
			}
			if decisionCache != nil {
				defer decisionCache.Close()
			}

			var search *searchindex.Index
			if config.C.Meili.Host != "" {
				search, err = searchindex.New(searchindex.Config{
					Host:      config.C.Meili.Host,
					APIKey:    config.C.Meili.APIKey,
					IndexName: config.C.Meili.IndexName,
					Timeout:   30 * time.Second,
				}, logger)
				if err != nil {
					logger.Warn("serve: search index unavailable, /v1/search disabled", zap.Error(err))
					search = nil
				}
			}

			srv := httpapi.NewServer(nameCtx, decisionCache, search, logger)
			logger.Info("serve: listening", zap.String("port", config.C.Server.Port))
			return srv.Router().Run(":" + config.C.Server.Port)
		},
	}
}

// buildCache assembles the Redis+Mongo hybrid decision cache described by
// config.C, or returns nil if Redis is unreachable (cache becomes a no-op).
func buildCache(ctx context.Context, logger *zap.Logger) (cache.Cache, error) {
	redisCache, err := cache.NewRedisCache(config.C.Redis.URL, config.C.Redis.TTL, logger)
	if err != nil {
		logger.Warn("serve: redis unavailable, running without decision cache", zap.Error(err))
		return nil, nil
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.C.Mongo.URL))
	if err != nil {
		return nil, fmt.Errorf("serve: connecting to mongo: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("serve: pinging mongo: %w", err)
	}

	mongoCache, err := cache.NewMongoCache(client.Database(config.C.Mongo.Database), config.C.Mongo.L1Size, logger)
	if err != nil {
		return nil, fmt.Errorf("serve: initializing mongo cache: %w", err)
	}

	return cache.NewHybridCache(redisCache, mongoCache, logger), nil
}
