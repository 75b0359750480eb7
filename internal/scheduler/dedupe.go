package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const sendMarkerTTL = 7 * 24 * time.Hour

// SendGuard records delivered notifications in redis so task retries do not
// send the same email twice.
type SendGuard struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewSendGuard returns a guard whose markers expire after seven days.
func NewSendGuard(rdb *redis.Client) *SendGuard {
	return &SendGuard{rdb: rdb, ttl: sendMarkerTTL}
}

func sendMarkerKey(taskType, orderID, status string) string {
	return fmt.Sprintf("notify:%s:%s:%s", taskType, orderID, status)
}

// Once runs send unless a marker for key exists. The marker is removed when
// send fails so the retry can deliver.
func (g *SendGuard) Once(ctx context.Context, key string, send func(context.Context) error) (bool, error) {
	if g == nil || g.rdb == nil {
		return true, send(ctx)
	}

	acquired, err := g.rdb.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339), g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("send marker: %w", err)
	}
	if !acquired {
		return false, nil
	}

	if err := send(ctx); err != nil {
		if delErr := g.rdb.Del(context.WithoutCancel(ctx), key).Err(); delErr != nil {
			return true, fmt.Errorf("%w (release marker: %v)", err, delErr)
		}
		return true, err
	}
	return true, nil
}
