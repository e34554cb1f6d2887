package middleware

import (
	"bytes"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type cacheEntry struct {
	Content    []byte
	Expiration time.Time
}

// ResponseCache keeps successful GET responses in memory for a fixed time.
// Only use it on routes whose body does not depend on the caller.
type ResponseCache struct {
	mu         sync.RWMutex
	items      map[string]cacheEntry
	expiration time.Duration
	now        func() time.Time
}

// NewResponseCache creates a cache whose entries live for expiration
func NewResponseCache(expiration time.Duration) *ResponseCache {
	return &ResponseCache{
		items:      make(map[string]cacheEntry),
		expiration: expiration,
		now:        time.Now,
	}
}

func cacheKey(c *gin.Context) string {
	return c.Request.URL.Path + "?" + c.Request.URL.Query().Encode()
}

// Handler serves cached GET responses and records 200 responses
func (rc *ResponseCache) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := cacheKey(c)
		now := rc.now()

		rc.mu.RLock()
		entry, found := rc.items[key]
		rc.mu.RUnlock()

		if found && entry.Expiration.After(now) {
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, "application/json; charset=utf-8", entry.Content)
			c.Abort()
			return
		}

		writer := &responseWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer
		c.Header("X-Cache", "MISS")

		c.Next()

		if writer.Status() == http.StatusOK {
			rc.mu.Lock()
			// Drop expired entries while holding the lock anyway.
			for k, e := range rc.items {
				if !e.Expiration.After(now) {
					delete(rc.items, k)
				}
			}
			rc.items[key] = cacheEntry{
				Content:    writer.body.Bytes(),
				Expiration: now.Add(rc.expiration),
			}
			rc.mu.Unlock()
		}
	}
}

// Purge removes every entry
func (rc *ResponseCache) Purge() {
	rc.mu.Lock()
	rc.items = make(map[string]cacheEntry)
	rc.mu.Unlock()
}

// Len returns the number of stored entries, expired ones included
func (rc *ResponseCache) Len() int {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return len(rc.items)
}

// responseWriter copies the body into a buffer while writing it
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
