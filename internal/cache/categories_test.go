package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"catalog/gateway/internal/domain"

	"gotest.tools/assert"
)

func fixtureList() *domain.CategoryList {
	return &domain.CategoryList{
		TotalCount: 2,
		Data: []domain.Category{
			{ID: 1, Description: "Fasteners"},
			{ID: 2, Description: "Valves"},
		},
	}
}

func fetcherReturning(list *domain.CategoryList, calls *int) Fetcher {
	return func(context.Context) (*domain.CategoryList, error) {
		*calls++
		return list, nil
	}
}

func failingFetcher(calls *int) Fetcher {
	return func(context.Context) (*domain.CategoryList, error) {
		*calls++
		return nil, errors.New("upstream down")
	}
}

func TestGetFetchesAndPersistsOnMiss(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.json")
	store := NewFileStore(path)

	calls := 0
	cc := NewCategoryCache(store, fetcherReturning(fixtureList(), &calls))

	got := cc.Get(context.Background())
	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, got.TotalCount)

	// The snapshot must now be on disk and parseable.
	persisted, err := store.ReadCategories(context.Background())
	assert.NilError(t, err)
	assert.Equal(t, 2, persisted.TotalCount)
	assert.Equal(t, "Fasteners", persisted.Data[0].Description)
}

func TestGetServesCacheWithoutFetching(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.json")
	store := NewFileStore(path)
	assert.NilError(t, store.WriteCategories(context.Background(), fixtureList()))

	calls := 0
	cc := NewCategoryCache(store, fetcherReturning(nil, &calls))

	got := cc.Get(context.Background())
	assert.Equal(t, 0, calls)
	assert.Equal(t, 2, got.TotalCount)
}

func TestGetFallsBackOnCorruptCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.json")
	assert.NilError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	store := NewFileStore(path)

	calls := 0
	cc := NewCategoryCache(store, fetcherReturning(fixtureList(), &calls))

	got := cc.Get(context.Background())
	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, got.TotalCount)

	// The corrupt document must have been overwritten with the fetched one.
	persisted, err := store.ReadCategories(context.Background())
	assert.NilError(t, err)
	assert.Equal(t, 2, persisted.TotalCount)
}

func TestGetDegradesToEmptyWhenEverythingFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.json")
	assert.NilError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	calls := 0
	cc := NewCategoryCache(NewFileStore(path), failingFetcher(&calls))

	got := cc.Get(context.Background())
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, got.TotalCount)
	assert.Equal(t, 0, len(got.Data))
	assert.Assert(t, got.Data != nil)
}

func TestGetReturnsFetchedDataEvenWhenPersistFails(t *testing.T) {
	// A directory at the cache path makes the rename fail.
	dir := t.TempDir()
	path := filepath.Join(dir, "categories.json")
	assert.NilError(t, os.Mkdir(path, 0o755))

	calls := 0
	cc := NewCategoryCache(NewFileStore(path), fetcherReturning(fixtureList(), &calls))

	got := cc.Get(context.Background())
	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, got.TotalCount)
}

func TestFileStoreRoundTripKeepsExtraFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.json")
	store := NewFileStore(path)

	raw := `{"TotalCount":1,"Data":[{"ID":3,"Description":"Seals","SortOrder":12}]}`
	assert.NilError(t, os.WriteFile(path, []byte(raw), 0o644))

	list, err := store.ReadCategories(context.Background())
	assert.NilError(t, err)
	assert.NilError(t, store.WriteCategories(context.Background(), list))

	reread, err := store.ReadCategories(context.Background())
	assert.NilError(t, err)
	_, ok := reread.Data[0].Extra["SortOrder"]
	assert.Equal(t, true, ok)
}
