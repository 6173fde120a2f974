package cachesvc

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/export"
)

const snapshotKeyPrefix = "export:snapshot:"

// redisCache keeps recent export snapshots so repeated "select all" and
// "export all" actions do not hammer the identity directory.
type redisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger core.Logger
}

var _ export.SnapshotCache = (*redisCache)(nil)

func NewRedisCache(conf *core.Config, logger core.Logger) *redisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     conf.Redis.Address,
		Password: conf.Redis.Password,
	})
	return &redisCache{client: client, ttl: conf.Redis.SnapshotTTL, logger: logger}
}

func (c *redisCache) GetSnapshot(ctx context.Context, query string) ([]string, bool) {
	val, err := c.client.Get(ctx, snapshotKeyPrefix+query).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Error(fmt.Sprintf("redis: getting snapshot: %v", err), err)
		}
		return nil, false
	}
	var emails []string
	if err = json.Unmarshal(val, &emails); err != nil {
		c.logger.Error(fmt.Sprintf("redis: decoding snapshot: %v", err), err)
		return nil, false
	}
	return emails, true
}

func (c *redisCache) SetSnapshot(ctx context.Context, query string, emails []string) {
	val, err := json.Marshal(emails)
	if err != nil {
		c.logger.Error(fmt.Sprintf("redis: encoding snapshot: %v", err), err)
		return
	}
	if err = c.client.Set(ctx, snapshotKeyPrefix+query, val, c.ttl).Err(); err != nil {
		c.logger.Error(fmt.Sprintf("redis: setting snapshot: %v", err), err)
	}
}
