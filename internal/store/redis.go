package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	gameKeyPrefix = "game:"
	recordTTL     = 24 * time.Hour
)

// RedisRepository stores records as JSON under "game:<id>" with a sliding
// 24h TTL.
type RedisRepository struct {
	client *redis.Client
}

// NewRedisRepository connects to addr and verifies the connection.
func NewRedisRepository(ctx context.Context, addr string) (*RedisRepository, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("store: redis ping %s: %w", addr, err)
	}
	return &RedisRepository{client: client}, nil
}

func (r *RedisRepository) Save(ctx context.Context, rec GameRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("store: marshal game %s: %w", rec.ID, err)
	}
	if err := r.client.Set(ctx, gameKeyPrefix+rec.ID, data, recordTTL).Err(); err != nil {
		return fmt.Errorf("store: save game %s: %w", rec.ID, err)
	}
	return nil
}

func (r *RedisRepository) Get(ctx context.Context, id string) (GameRecord, error) {
	data, err := r.client.Get(ctx, gameKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return GameRecord{}, ErrNotFound
	}
	if err != nil {
		return GameRecord{}, fmt.Errorf("store: get game %s: %w", id, err)
	}
	var rec GameRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return GameRecord{}, fmt.Errorf("store: unmarshal game %s: %w", id, err)
	}
	return rec, nil
}

func (r *RedisRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, gameKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("store: delete game %s: %w", id, err)
	}
	return nil
}

// Close releases the underlying client.
func (r *RedisRepository) Close() error { return r.client.Close() }
