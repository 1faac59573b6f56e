package inventory

import (
	"context"
	"fmt"

	"github.com/go-redis/redis_rate/v10"
)

type RateAllower interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

// RateLimiter caps how many bookings a customer may submit per minute.
type RateLimiter struct {
	limiter   RateAllower
	perMinute int
}

func NewRateLimiter(limiter RateAllower, perMinute int) *RateLimiter {
	return &RateLimiter{
		limiter:   limiter,
		perMinute: perMinute,
	}
}

// Allow always allows when the limit is not positive.
func (l *RateLimiter) Allow(ctx context.Context, customerID int) (bool, error) {
	if l.perMinute <= 0 {
		return true, nil
	}

	res, err := l.limiter.Allow(ctx, fmt.Sprintf("limit:booking:%d", customerID),
		redis_rate.PerMinute(l.perMinute))
	if err != nil {
		return false, fmt.Errorf("failed to rate limit: %w", err)
	}

	return res.Allowed > 0, nil
}
