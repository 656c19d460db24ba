package biomarker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/laborator/rezulta/model"
)

const redisKeyPrefix = "rezulta:alias:"

// RedisStore is a Store backed by Redis, for deployments where several
// workers extract documents against a shared alias table. Insert-if-absent
// maps onto SETNX, so two workers racing to record the same first-seen
// alias cannot both win.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing client. The caller owns the client's
// lifecycle.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Find implements Store.
func (s *RedisStore) Find(ctx context.Context, alias string) (*model.CanonicalAlias, error) {
	payload, err := s.client.Get(ctx, redisKeyPrefix+alias).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %q: %w", alias, err)
	}

	var record model.CanonicalAlias
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, fmt.Errorf("decode alias %q: %w", alias, err)
	}
	return &record, nil
}

// InsertIfAbsent implements Store.
func (s *RedisStore) InsertIfAbsent(ctx context.Context, record model.CanonicalAlias) (bool, error) {
	payload, err := json.Marshal(record)
	if err != nil {
		return false, fmt.Errorf("encode alias %q: %w", record.Alias, err)
	}
	inserted, err := s.client.SetNX(ctx, redisKeyPrefix+record.Alias, payload, 0).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx %q: %w", record.Alias, err)
	}
	return inserted, nil
}

// Update implements Store.
func (s *RedisStore) Update(ctx context.Context, record model.CanonicalAlias) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode alias %q: %w", record.Alias, err)
	}
	if err := s.client.Set(ctx, redisKeyPrefix+record.Alias, payload, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", record.Alias, err)
	}
	return nil
}
