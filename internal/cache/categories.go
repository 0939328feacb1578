package cache

import (
	"context"

	"catalog/gateway/internal/domain"

	log "github.com/sirupsen/logrus"
)

// Fetcher pulls the full category list from the upstream API.
type Fetcher func(ctx context.Context) (*domain.CategoryList, error)

// CategoryCache is a read-through cache over a Store. A cached snapshot is
// served without any freshness check: categories change slowly and staleness
// is accepted until the snapshot is deleted by hand.
type CategoryCache struct {
	store Store
	fetch Fetcher
}

func NewCategoryCache(store Store, fetch Fetcher) *CategoryCache {
	return &CategoryCache{store: store, fetch: fetch}
}

// Get returns the category list, preferring the cached snapshot and falling
// back to an upstream fetch. It never fails: category lookups gate most other
// operations, so when both the store and the upstream are down the result is
// an empty, valid list.
func (c *CategoryCache) Get(ctx context.Context) *domain.CategoryList {
	list, err := c.store.ReadCategories(ctx)
	if err == nil {
		log.Debugf("returning %d categories from cache", list.TotalCount)
		return list
	}
	log.Infof("category cache miss (%v), fetching from upstream", err)

	list, fetchErr := c.fetch(ctx)
	if fetchErr != nil {
		log.Errorf("failed to fetch categories and no cached data available: %v", fetchErr)
		return domain.EmptyCategoryList()
	}

	if writeErr := c.store.WriteCategories(ctx, list); writeErr != nil {
		// An unpersisted result is still a valid result.
		log.Errorf("failed to persist category cache: %v", writeErr)
	}
	return list
}
