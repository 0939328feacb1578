package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"catalog/gateway/internal/domain"

	"github.com/redis/go-redis/v9"
)

// Store persists the category snapshot as one complete JSON document. There
// is no TTL anywhere: invalidation is manual, by deleting the document.
type Store interface {
	ReadCategories(ctx context.Context) (*domain.CategoryList, error)
	WriteCategories(ctx context.Context, list *domain.CategoryList) error
}

// FileStore keeps the snapshot in a single JSON file.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) ReadCategories(_ context.Context) (*domain.CategoryList, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read category cache %s: %w", s.path, err)
	}
	var list domain.CategoryList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse category cache %s: %w", s.path, err)
	}
	return &list, nil
}

// WriteCategories replaces the document wholesale: write to a temp file, then
// rename over the target. Concurrent writers race as last-write-wins but a
// reader never sees a partial document.
func (s *FileStore) WriteCategories(_ context.Context, list *domain.CategoryList) error {
	data, err := json.MarshalIndent(list, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode category cache: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".categories-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp cache file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write temp cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp cache file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace category cache %s: %w", s.path, err)
	}
	return nil
}

// RedisStore keeps the snapshot under a single redis key, for deployments
// where the gateway has no durable disk.
type RedisStore struct {
	redisClient *redis.Client
	key         string
}

func NewRedisStore(redisClient *redis.Client) *RedisStore {
	return &RedisStore{
		redisClient: redisClient,
		key:         "catalog:cache:categories",
	}
}

func (s *RedisStore) ReadCategories(ctx context.Context) (*domain.CategoryList, error) {
	data, err := s.redisClient.Get(ctx, s.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("no category snapshot under %s", s.key)
		}
		return nil, fmt.Errorf("failed to read category cache from redis: %w", err)
	}
	var list domain.CategoryList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse category cache from redis: %w", err)
	}
	return &list, nil
}

func (s *RedisStore) WriteCategories(ctx context.Context, list *domain.CategoryList) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to encode category cache: %w", err)
	}
	// No expiration: the snapshot lives until someone deletes the key.
	if err := s.redisClient.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write category cache to redis: %w", err)
	}
	return nil
}
