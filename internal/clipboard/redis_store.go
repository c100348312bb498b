package clipboard

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/sathvik2377/timetable-api/internal/models"
)

// RedisStore shares the clipboard across replicas behind a load balancer.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore builds a clipboard backed by the given redis key.
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	return &RedisStore{client: client, key: key}
}

// Put serialises the slot and replaces whatever the key held.
func (s *RedisStore) Put(ctx context.Context, slot *models.Slot) error {
	raw, err := json.Marshal(slot)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key, raw, 0).Err()
}

// Peek reads the current clipboard content without clearing it.
func (s *RedisStore) Peek(ctx context.Context) (*models.Slot, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var slot models.Slot
	if err := json.Unmarshal(raw, &slot); err != nil {
		return nil, err
	}
	return &slot, nil
}
