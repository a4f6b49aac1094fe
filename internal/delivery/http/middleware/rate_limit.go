package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"futur-backend/pkg/logger"
	"futur-backend/pkg/utils"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// Limiter decides whether the caller identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter is an in-process token bucket per client IP.
type RateLimiter struct {
	clients       map[string]*client
	mu            sync.Mutex
	limit         rate.Limit
	burst         int
	cleanupPeriod time.Duration
	clientTTL     time.Duration
	ctx           context.Context
	cancel        context.CancelFunc
}

// NewRateLimiter creates a RateLimiter with background cleanup of clients
// idle for longer than clientTTL.
func NewRateLimiter(ctx context.Context, limit rate.Limit, burst int, cleanupPeriod, clientTTL time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients:       make(map[string]*client),
		limit:         limit,
		burst:         burst,
		cleanupPeriod: cleanupPeriod,
		clientTTL:     clientTTL,
	}
	rl.ctx, rl.cancel = context.WithCancel(ctx)
	go rl.cleanupLoop()
	return rl
}

func (rl *RateLimiter) Allow(_ context.Context, key string) bool {
	return rl.getVisitor(key).Allow()
}

func (rl *RateLimiter) getVisitor(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.clients[key]
	if !exists {
		limiter := rate.NewLimiter(rl.limit, rl.burst)
		rl.clients[key] = &client{limiter: limiter, lastSeen: time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.cleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.ctx.Done():
			return
		}
	}
}

func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, v := range rl.clients {
		if time.Since(v.lastSeen) > rl.clientTTL {
			delete(rl.clients, key)
		}
	}
}

// Shutdown stops the cleanup goroutine
func (rl *RateLimiter) Shutdown() {
	rl.cancel()
}

// RedisCounter is the subset of *redis.Client the shared limiter needs.
type RedisCounter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// RedisRateLimiter is a fixed-window counter shared by every instance behind
// the load balancer. It fails open when Redis is unreachable.
type RedisRateLimiter struct {
	client RedisCounter
	limit  int64
	window time.Duration
	prefix string
}

func NewRedisRateLimiter(client RedisCounter, limit int64, window time.Duration, prefix string) *RedisRateLimiter {
	return &RedisRateLimiter{client: client, limit: limit, window: window, prefix: prefix}
}

// WindowLimit converts a per-second rate into the request budget of one
// fixed window, so both limiters honour the same RATE_LIMIT_RPS.
func WindowLimit(rps float64, window time.Duration) int64 {
	n := int64(math.Ceil(rps * window.Seconds()))
	if n < 1 {
		return 1
	}
	return n
}

func (rl *RedisRateLimiter) Allow(ctx context.Context, key string) bool {
	slot := time.Now().UnixNano() / int64(rl.window)
	k := fmt.Sprintf("%sratelimit:%s:%d", rl.prefix, key, slot)

	n, err := rl.client.Incr(ctx, k).Result()
	if err != nil {
		logger.Warn().Err(err).Msg("Rate limiter: redis unavailable, allowing request")
		return true
	}
	if n == 1 {
		// A key left without a TTL would block the caller for good.
		if err := rl.client.Expire(context.WithoutCancel(ctx), k, rl.window).Err(); err != nil {
			logger.Warn().Err(err).Str("key", k).Msg("Rate limiter: failed to set window expiry")
		}
	}
	return n <= rl.limit
}

// RateLimit rejects callers the limiter refuses with 429.
func RateLimit(l Limiter) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow(r.Context(), getClientIP(r)) {
				w.Header().Set("Retry-After", strconv.Itoa(1))
				utils.WriteError(w, http.StatusTooManyRequests, "Too Many Requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
