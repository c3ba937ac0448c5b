package api

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"mediashelf/internal/logging"
	"mediashelf/internal/services"
)

const requestIDHeader = "X-Request-ID"

// requestContext tags each request with a correlation id and logs its outcome.
func (s *Server) requestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)
		ctx := services.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)

		start := time.Now()
		c.Next()

		logging.WithContext(ctx, s.logger).Debug("request served",
			logging.String("method", c.Request.Method),
			logging.String("path", c.FullPath()),
			logging.Int("status", c.Writer.Status()),
			logging.Duration("latency", time.Since(start)),
		)
	}
}

// clientLimiter hands out one token bucket per client address. Requests over
// the limit are rejected immediately rather than queued. A bucket idle long
// enough to have refilled completely is indistinguishable from a new one, so
// such buckets are swept out to keep the map bounded by recent clients.
type clientLimiter struct {
	limit     rate.Limit
	burst     int
	idleAfter time.Duration
	now       func() time.Time

	mu        sync.Mutex
	buckets   map[string]*clientBucket
	lastSweep time.Time
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newClientLimiter(perMinute, burst int) *clientLimiter {
	if perMinute <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}
	interval := time.Minute / time.Duration(perMinute)
	idleAfter := interval * time.Duration(burst)
	if idleAfter < time.Minute {
		idleAfter = time.Minute
	}
	return &clientLimiter{
		limit:     rate.Every(interval),
		burst:     burst,
		idleAfter: idleAfter,
		now:       time.Now,
		buckets:   make(map[string]*clientBucket),
	}
}

func (l *clientLimiter) allow(client string) bool {
	if l == nil {
		return true
	}
	now := l.now()
	l.mu.Lock()
	l.sweep(now)
	bucket, ok := l.buckets[client]
	if !ok {
		bucket = &clientBucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[client] = bucket
	}
	bucket.lastSeen = now
	limiter := bucket.limiter
	l.mu.Unlock()
	return limiter.AllowN(now, 1)
}

// sweep drops idle buckets at most once per idleAfter. Callers hold l.mu.
func (l *clientLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.idleAfter {
		return
	}
	l.lastSweep = now
	for client, bucket := range l.buckets {
		if now.Sub(bucket.lastSeen) >= l.idleAfter {
			delete(l.buckets, client)
		}
	}
}

func (l *clientLimiter) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{Error: "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
