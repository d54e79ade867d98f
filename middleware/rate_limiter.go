package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	apperrors "github.com/shopkart/shopkart-api/common/errors"
)

// RateLimitStore answers a windowed check-and-increment per client key.
// The in-memory store is per-process; the Redis store shares the counter
// across instances behind the same contract.
type RateLimitStore interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryStore keeps one limiter per client key, with periodic cleanup of
// stale entries to avoid unbounded map growth.
type MemoryStore struct {
	keys  map[string]*limiterEntry
	mu    sync.Mutex
	rate  rate.Limit
	burst int
	ttl   time.Duration
}

func NewMemoryStore(r rate.Limit, burst int, ttl time.Duration) *MemoryStore {
	s := &MemoryStore{
		keys:  make(map[string]*limiterEntry),
		rate:  r,
		burst: burst,
		ttl:   ttl,
	}

	go func() {
		ticker := time.NewTicker(ttl)
		defer ticker.Stop()
		for range ticker.C {
			s.mu.Lock()
			now := time.Now()
			for key, e := range s.keys {
				if now.Sub(e.lastSeen) > s.ttl {
					delete(s.keys, key)
				}
			}
			s.mu.Unlock()
		}
	}()

	return s
}

func (s *MemoryStore) Allow(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	entry, exists := s.keys[key]
	if !exists {
		entry = &limiterEntry{limiter: rate.NewLimiter(s.rate, s.burst)}
		s.keys[key] = entry
	}
	entry.lastSeen = time.Now()
	s.mu.Unlock()

	return entry.limiter.Allow(), nil
}

// RedisStore implements the same contract with INCR + EXPIRE so the
// counter is shared across process instances.
type RedisStore struct {
	client *redis.Client
	max    int64
	window time.Duration
}

func NewRedisStore(client *redis.Client, max int64, window time.Duration) *RedisStore {
	return &RedisStore{client: client, max: max, window: window}
}

func (s *RedisStore) Allow(ctx context.Context, key string) (bool, error) {
	count, err := s.client.Incr(ctx, "ratelimit:"+key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := s.client.Expire(ctx, "ratelimit:"+key, s.window).Err(); err != nil {
			return false, err
		}
	}
	return count <= s.max, nil
}

// RateLimit rejects clients that exceed the store's window, keyed by
// client IP. A store failure fails open: the request is served and the
// failure is logged.
func RateLimit(store RateLimitStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := store.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			zap.L().Warn("rate limit store failure", zap.Error(err), zap.String("ip", c.ClientIP()))
			c.Next()
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apperrors.New(
				http.StatusTooManyRequests,
				apperrors.ReasonRateLimited,
				"Too many requests",
				nil,
			))
			return
		}
		c.Next()
	}
}
