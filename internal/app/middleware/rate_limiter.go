package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kyue26/emertgency-sub001/internal/error/code"
	"github.com/kyue26/emertgency-sub001/internal/error/response"
	"golang.org/x/time/rate"
)

// RateLimiterConfig configures a rate limiting middleware
type RateLimiterConfig struct {
	Rate       float64                   // requests per second
	Burst      int                       // bucket size
	ExpiryTime time.Duration             // idle limiters are dropped after this
	LimitType  string                    // "ip", "path" or "combined"
	KeyFunc    func(*gin.Context) string // overrides LimitType when set
}

// DefaultRateLimiterConfig is used for zero fields
var DefaultRateLimiterConfig = RateLimiterConfig{
	Rate:       1,
	Burst:      5,
	ExpiryTime: time.Hour,
	LimitType:  "ip",
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterSet holds one token bucket per key. Idle entries are swept during
// lookups, at most once per expiry period.
type limiterSet struct {
	mu        sync.Mutex
	entries   map[string]*limiterEntry
	limit     rate.Limit
	burst     int
	expiry    time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func newLimiterSet(cfg RateLimiterConfig) *limiterSet {
	return &limiterSet{
		entries:   make(map[string]*limiterEntry),
		limit:     rate.Limit(cfg.Rate),
		burst:     cfg.Burst,
		expiry:    cfg.ExpiryTime,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (s *limiterSet) allow(key string) bool {
	s.mu.Lock()
	now := s.now()
	if s.expiry > 0 && now.Sub(s.lastSweep) >= s.expiry {
		for k, e := range s.entries {
			if now.Sub(e.lastSeen) >= s.expiry {
				delete(s.entries, k)
			}
		}
		s.lastSweep = now
	}

	entry, ok := s.entries[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.entries[key] = entry
	}
	entry.lastSeen = now
	s.mu.Unlock()

	return entry.limiter.AllowN(now, 1)
}

func (s *limiterSet) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// RateLimiter returns a middleware answering 429 once a key exceeds its rate.
func RateLimiter(config ...RateLimiterConfig) gin.HandlerFunc {
	var cfg RateLimiterConfig
	if len(config) > 0 {
		cfg = config[0]
	} else {
		cfg = DefaultRateLimiterConfig
	}

	if cfg.Rate <= 0 {
		cfg.Rate = DefaultRateLimiterConfig.Rate
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultRateLimiterConfig.Burst
	}
	if cfg.ExpiryTime <= 0 {
		cfg.ExpiryTime = DefaultRateLimiterConfig.ExpiryTime
	}
	if cfg.LimitType == "" {
		cfg.LimitType = DefaultRateLimiterConfig.LimitType
	}

	keyFunc := cfg.KeyFunc
	if keyFunc == nil {
		switch cfg.LimitType {
		case "path":
			keyFunc = func(c *gin.Context) string { return c.FullPath() }
		case "combined":
			keyFunc = func(c *gin.Context) string { return c.ClientIP() + ":" + c.FullPath() }
		default:
			keyFunc = func(c *gin.Context) string { return c.ClientIP() }
		}
	}

	limiters := newLimiterSet(cfg)
	return func(c *gin.Context) {
		if !limiters.allow(keyFunc(c)) {
			response.Abort(c, code.ErrTooManyRequests)
			return
		}
		c.Next()
	}
}

// IPRateLimiter limits per client IP
func IPRateLimiter(rps float64, burst int) gin.HandlerFunc {
	return RateLimiter(RateLimiterConfig{Rate: rps, Burst: burst, LimitType: "ip"})
}

// ProfessionalRateLimiter limits per authenticated professional, falling back
// to the client IP. It must run after Authentication.
func ProfessionalRateLimiter(rps float64, burst int) gin.HandlerFunc {
	return RateLimiter(RateLimiterConfig{
		Rate:  rps,
		Burst: burst,
		KeyFunc: func(c *gin.Context) string {
			if id := c.GetString(ContextProfessionalID); id != "" {
				return "professional:" + id
			}
			return "ip:" + c.ClientIP()
		},
	})
}
