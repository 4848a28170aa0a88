package gate

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/redmonkez12/wardrobe-api/internal/logging"
)

// CompletionCache remembers users known to have finished onboarding.
// The flag only ever moves from false to true. Neither method may fail:
// a cache that cannot be read reports false, which forces a remote lookup.
type CompletionCache interface {
	Completed(ctx context.Context, userID uuid.UUID) bool
	MarkCompleted(ctx context.Context, userID uuid.UUID)
}

// MemoryCache is a process-local CompletionCache
type MemoryCache struct {
	completed sync.Map
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{}
}

func (c *MemoryCache) Completed(_ context.Context, userID uuid.UUID) bool {
	_, ok := c.completed.Load(userID)
	return ok
}

func (c *MemoryCache) MarkCompleted(_ context.Context, userID uuid.UUID) {
	c.completed.Store(userID, struct{}{})
}

// RedisCache is a CompletionCache shared by every API instance
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func completionKey(userID uuid.UUID) string {
	return fmt.Sprintf("onboarding_completed:%s", userID.String())
}

func (c *RedisCache) Completed(ctx context.Context, userID uuid.UUID) bool {
	n, err := c.client.Exists(ctx, completionKey(userID)).Result()
	if err != nil {
		logging.GetLoggerFromContext(ctx).Warn("completion cache read failed", "user_id", userID, "error", err)
		return false
	}
	return n > 0
}

// MarkCompleted uses SETNX without expiry so racing writers are harmless
func (c *RedisCache) MarkCompleted(ctx context.Context, userID uuid.UUID) {
	if err := c.client.SetNX(ctx, completionKey(userID), "1", 0).Err(); err != nil {
		logging.GetLoggerFromContext(ctx).Warn("completion cache write failed", "user_id", userID, "error", err)
	}
}
