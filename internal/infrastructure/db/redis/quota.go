package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// QuotaLimiter caps analysis requests per user with a fixed one-hour window.
// Key format: quota:analyze:<user_id>:<window_start_unix>
type QuotaLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
	now    func() time.Time
}

func NewQuotaLimiter(client *redis.Client, perHour int) *QuotaLimiter {
	return &QuotaLimiter{
		client: client,
		limit:  int64(perHour),
		window: time.Hour,
		now:    time.Now,
	}
}

// Allow counts the request and reports whether it fits in the current window.
func (q *QuotaLimiter) Allow(ctx context.Context, userID string) (bool, error) {
	start := q.now().Truncate(q.window)
	key := fmt.Sprintf("quota:analyze:%s:%d", userID, start.Unix())

	pipe := q.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, q.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("quota increment: %w", err)
	}
	return incr.Val() <= q.limit, nil
}
