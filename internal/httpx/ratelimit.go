package httpx

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	redis "github.com/redis/go-redis/v9"

	"github.com/acadres/auth-service/internal/metrics"
)

// RateLimiter is a Redis fixed-window limiter. It fails open: when Redis is
// unreachable the request proceeds, since losing throttling is preferable to
// locking everyone out of login.
type RateLimiter struct {
	client  *redis.Client
	log     *slog.Logger
	prefix  string
	timeout time.Duration
}

func NewRateLimiter(addr, password string, db int, log *slog.Logger) (*RateLimiter, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()

		return nil, err
	}

	return &RateLimiter{
		client:  client,
		log:     log,
		prefix:  "acadres:ratelimit:",
		timeout: 250 * time.Millisecond,
	}, nil
}

// Limit returns a middleware enforcing at most limit requests per window for
// each client IP on the given route. A nil limiter lets everything through.
func (rl *RateLimiter) Limit(route string, limit int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rl == nil || limit <= 0 {
			return c.Next()
		}

		if rl.allow(route+":"+c.IP(), limit, window) {
			return c.Next()
		}

		metrics.RateLimited.WithLabelValues(route).Inc()

		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error": "too many requests",
		})
	}
}

func (rl *RateLimiter) allow(key string, limit int, window time.Duration) bool {
	ctx, cancel := context.WithTimeout(context.Background(), rl.timeout)
	defer cancel()

	redisKey := rl.prefix + key
	counter, err := rl.client.Incr(ctx, redisKey).Result()
	if err != nil {
		rl.log.Error("rate limiter incr failed", "error", err)

		return true
	}
	if counter == 1 {
		if err := rl.client.Expire(ctx, redisKey, window).Err(); err != nil {
			rl.log.Error("rate limiter expire failed", "error", err)
		}
	}

	return int(counter) <= limit
}

// Close releases the Redis connection.
func (rl *RateLimiter) Close() {
	if rl != nil && rl.client != nil {
		_ = rl.client.Close()
	}
}
