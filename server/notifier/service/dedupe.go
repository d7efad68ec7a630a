package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	commonlog "cam_server/server/common/log"
)

const dedupeTTL = 24 * time.Hour

// RedisDeduper remembers alerted clip keys so a redelivered ObjectCreated
// event does not mail the operator twice. Best-effort: if Redis is down the
// answer is "first sighting" and the alert goes out anyway.
type RedisDeduper struct {
	client *redis.Client
}

func NewRedisDeduper(client *redis.Client) *RedisDeduper {
	return &RedisDeduper{client: client}
}

func (d *RedisDeduper) FirstSeen(ctx context.Context, key string) bool {
	first, err := d.client.SetNX(ctx, "alert:"+key, 1, dedupeTTL).Result()
	if err != nil {
		commonlog.Warnf("alert dedupe check for %s: %v", key, err)
		return true
	}
	return first
}
