package versions

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisKey = "booking:design-versions"

// RedisStore persists the version list as a single JSON blob.
type RedisStore struct {
	redis *redis.Client
}

// NewRedisStore creates a store on the given client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{redis: client}
}

// List fetches and decodes the blob. A missing key reads as an empty list.
func (s *RedisStore) List(ctx context.Context) ([]DesignVersion, error) {
	data, err := s.redis.Get(ctx, redisKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("versions: redis get: %w", err)
	}

	var entries []DesignVersion
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("versions: redis unmarshal: %w", err)
	}
	return entries, nil
}

// Replace overwrites the blob.
func (s *RedisStore) Replace(ctx context.Context, entries []DesignVersion) error {
	if entries == nil {
		entries = []DesignVersion{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("versions: redis marshal: %w", err)
	}
	if err := s.redis.Set(ctx, redisKey, data, 0).Err(); err != nil {
		return fmt.Errorf("versions: redis set: %w", err)
	}
	return nil
}
