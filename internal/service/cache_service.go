package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sathvik2377/timetable-api/internal/models"
)

// CacheService mirrors committed grids into redis so reads survive process
// restarts and can be served by any replica. A nil client disables caching.
type CacheService struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCacheService wires the redis-backed grid cache.
func NewCacheService(client *redis.Client, ttl time.Duration, logger *zap.Logger) *CacheService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &CacheService{client: client, ttl: ttl, logger: logger}
}

func officialGridKey(sessionID string) string {
	return fmt.Sprintf("timetable:official:%s", sessionID)
}

// StoreOfficialGrid writes the committed grid under the session key.
func (s *CacheService) StoreOfficialGrid(ctx context.Context, sessionID string, grid models.Grid) error {
	if s == nil || s.client == nil {
		return nil
	}
	raw, err := json.Marshal(grid)
	if err != nil {
		return fmt.Errorf("encode official grid: %w", err)
	}
	return s.client.Set(ctx, officialGridKey(sessionID), raw, s.ttl).Err()
}

// GetOfficialGrid reads a previously cached committed grid. Returns nil
// without error on cache miss.
func (s *CacheService) GetOfficialGrid(ctx context.Context, sessionID string) (models.Grid, error) {
	if s == nil || s.client == nil {
		return nil, nil
	}
	raw, err := s.client.Get(ctx, officialGridKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var grid models.Grid
	if err := json.Unmarshal(raw, &grid); err != nil {
		return nil, fmt.Errorf("decode official grid: %w", err)
	}
	return grid, nil
}
