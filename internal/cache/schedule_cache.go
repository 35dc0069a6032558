package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	domain "github.com/promeza/agenda-api/internal/domain/agenda"
)

// ScheduleCache is a short-TTL read-through cache for per-business schedule
// snapshots, so a chat integration hammering the availability endpoints does
// not re-read four tables per message. A nil cache is valid and disables
// caching entirely.
type ScheduleCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client, ttl time.Duration) *ScheduleCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &ScheduleCache{rdb: rdb, ttl: ttl}
}

func Key(businessID string, from, to time.Time) string {
	return fmt.Sprintf("agenda:snapshot:%s:%d:%d", businessID, from.Unix(), to.Unix())
}

func (c *ScheduleCache) GetSnapshot(ctx context.Context, key string) (*domain.Snapshot, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}

	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, false
	}
	return &snap, true
}

func (c *ScheduleCache) SetSnapshot(ctx context.Context, key string, snap *domain.Snapshot) {
	if c == nil || c.rdb == nil {
		return
	}

	b, err := json.Marshal(snap)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
		log.Println("schedule cache set error:", err)
	}
}
