package container

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"catalog/gateway/internal/cache"
	"catalog/gateway/internal/client"
	"catalog/gateway/internal/config"
	"catalog/gateway/internal/schema"
	"catalog/gateway/internal/service"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config  *config.Config
	Client  client.CatalogClient
	Store   cache.Store
	Cache   *cache.CategoryCache
	Fields  *schema.Resolver
	Service *service.Service

	redis *redis.Client
}

// New creates a new container with all dependencies initialized
func New(cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
	}

	catalogClient := client.NewCatalogClient(cfg.Catalog)
	container.Client = catalogClient

	switch cfg.Cache.Backend {
	case "", "file":
		container.Store = cache.NewFileStore(cfg.Cache.CategoriesPath())
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Database,
		})
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info("Connected to Redis successfully")
		container.redis = rdb
		container.Store = cache.NewRedisStore(rdb)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}

	container.Cache = cache.NewCategoryCache(container.Store, catalogClient.GetCategories)
	container.Fields = schema.Load(cfg.Cache.FieldsPath())
	container.Service = service.NewService(catalogClient, container.Cache, container.Fields)

	return container, nil
}

// Warm pre-loads the reference datasets so the first caller request does not
// pay the upstream round-trip.
func (c *Container) Warm(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		categories := c.Cache.Get(ctx)
		log.Infof("category cache warm: %d categories available", categories.TotalCount)
		return nil
	})

	g.Go(func() error {
		if c.Fields.CategoryCount() == 0 {
			log.Warn("field schema is empty, edit forms will have no dynamic fields")
			return nil
		}
		log.Infof("field schema loaded for %d categories", c.Fields.CategoryCount())
		return nil
	})

	return g.Wait()
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			return err
		}
	}
	log.Info("Container shut down successfully")
	return nil
}
