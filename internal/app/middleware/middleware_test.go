package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kyue26/emertgency-sub001/internal/domain/services"
	"github.com/kyue26/emertgency-sub001/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWTService() services.InterfaceJWTService {
	cfg := &config.Config{}
	cfg.JWT.SecretKey = "middleware-secret"
	cfg.JWT.TTL = time.Hour
	return services.NewJWTService(cfg, nil, zap.NewNop())
}

func perform(r http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthentication(t *testing.T) {
	jwtService := newTestJWTService()
	r := gin.New()
	r.GET("/me", Authentication(jwtService), func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"id": actor.ProfessionalID, "role": actor.Role})
	})

	token, _, err := jwtService.GenerateToken("p1", "EMT")
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"valid", "Bearer " + token, http.StatusOK},
		{"lowercase scheme", "bearer " + token, http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"no scheme", token, http.StatusUnauthorized},
		{"garbage", "Bearer abc.def.ghi", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.header != "" {
				headers["Authorization"] = tt.header
			}
			w := perform(r, http.MethodGet, "/me", headers)
			assert.Equal(t, tt.wantStatus, w.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "p1", body["id"])
				assert.Equal(t, "EMT", body["role"])
			} else {
				assert.Equal(t, false, body["success"])
			}
		})
	}
}

func TestCurrentActorWithoutAuthentication(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := CurrentActor(c)
	assert.False(t, ok)
}

func TestRateLimiter(t *testing.T) {
	r := gin.New()
	r.GET("/ping", IPRateLimiter(1, 2), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/ping", nil).Code)
	assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/ping", nil).Code)
	w := perform(r, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// Another client has its own bucket.
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	other := httptest.NewRecorder()
	r.ServeHTTP(other, req)
	assert.Equal(t, http.StatusOK, other.Code)
}

func TestLimiterSetSweepsIdleEntries(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	set := newLimiterSet(RateLimiterConfig{Rate: 1, Burst: 1, ExpiryTime: time.Minute})
	set.now = func() time.Time { return now }
	set.lastSweep = now

	assert.True(t, set.allow("a"))
	assert.True(t, set.allow("b"))
	assert.False(t, set.allow("a"))
	assert.Equal(t, 2, set.size())

	now = now.Add(2 * time.Minute)
	assert.True(t, set.allow("c"))
	assert.Equal(t, 1, set.size())
}

func TestResponseCache(t *testing.T) {
	calls := 0
	rc := NewResponseCache(time.Minute)
	r := gin.New()
	r.GET("/stats", rc.Handler(), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusOK, gin.H{"calls": calls})
	})
	r.GET("/fail", rc.Handler(), func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{})
	})

	first := perform(r, http.MethodGet, "/stats", nil)
	second := perform(r, http.MethodGet, "/stats", nil)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, calls)

	perform(r, http.MethodGet, "/fail", nil)
	assert.Equal(t, 1, rc.Len())

	rc.Purge()
	perform(r, http.MethodGet, "/stats", nil)
	assert.Equal(t, 2, calls)
}

func TestResponseCacheExpiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rc := NewResponseCache(5 * time.Second)
	rc.now = func() time.Time { return now }

	calls := 0
	r := gin.New()
	r.GET("/stats", rc.Handler(), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusOK, gin.H{})
	})

	perform(r, http.MethodGet, "/stats", nil)
	now = now.Add(6 * time.Second)
	perform(r, http.MethodGet, "/stats", nil)
	assert.Equal(t, 2, calls)
}

func TestRequestIDAndLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(RequestID(), RequestLogger(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	w := perform(r, http.MethodGet, "/ok", map[string]string{HeaderRequestID: "req-1"})
	assert.Equal(t, "req-1", w.Header().Get(HeaderRequestID))

	w = perform(r, http.MethodGet, "/missing", nil)
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)
	assert.Equal(t, "req-1", entries[0].ContextMap()["request_id"])
	assert.Equal(t, int64(http.StatusOK), entries[0].ContextMap()["status"])
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
}

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	r := gin.New()
	r.Use(Recovery(zap.New(core)))
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := perform(r, http.MethodGet, "/panic", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}
