package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kyue26/emertgency-sub001/internal/domain/models"
	"github.com/kyue26/emertgency-sub001/internal/domain/services/container"
	"github.com/kyue26/emertgency-sub001/internal/error/code"
	"github.com/kyue26/emertgency-sub001/internal/infrastructure/config"
	"github.com/kyue26/emertgency-sub001/internal/infrastructure/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "password123"

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig(envType string) *config.Config {
	cfg := &config.Config{}
	cfg.Server.EnvType = envType
	cfg.Store.UseMemoryStore = true
	cfg.JWT.SecretKey = "routes-test-secret"
	cfg.JWT.TTL = time.Hour
	cfg.RateLimit.RPS = 1000
	cfg.RateLimit.Burst = 1000
	return cfg
}

func newMemoryStore() *store.MemoryStore {
	return store.NewMemoryStore([]store.SeedAccount{
		{Name: "Test Commander", Email: store.DefaultCommanderEmail, Role: models.RoleCommander, Password: testPassword, Cost: bcrypt.MinCost},
		{Name: "Erin Medic", Email: "erin@test.com", Role: "EMT", Password: testPassword, Cost: bcrypt.MinCost},
	}, zap.NewNop())
}

func newTestRouter(t *testing.T, cfg *config.Config, st store.Store) *gin.Engine {
	t.Helper()
	return SetupRouter(container.NewServiceContainer(cfg, st, nil, zap.NewNop()))
}

func doJSON(r http.Handler, method, path, token string, body []byte) (*httptest.ResponseRecorder, map[string]interface{}) {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func login(t *testing.T, r http.Handler, email string) (string, map[string]interface{}) {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"email": email, "password": testPassword})
	w, out := doJSON(r, http.MethodPost, "/api/auth/login", "", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token, _ := out["token"].(string)
	require.NotEmpty(t, token)
	professional, _ := out["professional"].(map[string]interface{})
	require.NotNil(t, professional)
	return token, professional
}

func TestPing(t *testing.T) {
	r := newTestRouter(t, testConfig(config.EnvLocal), newMemoryStore())

	w, out := doJSON(r, http.MethodGet, "/api/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", out["message"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestHealthStatus(t *testing.T) {
	r := newTestRouter(t, testConfig(config.EnvLocal), newMemoryStore())

	w, out := doJSON(r, http.MethodGet, "/api/health/status", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", out["status"])
	assert.Equal(t, "memory", out["backend"])
	assert.Equal(t, "disabled", out["redis"])
}

func TestLogin(t *testing.T) {
	r := newTestRouter(t, testConfig(config.EnvLocal), newMemoryStore())

	t.Run("success", func(t *testing.T) {
		_, professional := login(t, r, "COMMANDER@test.com")
		assert.Equal(t, models.RoleCommander, professional["role"])
		assert.NotContains(t, professional, "password_hash")
	})

	t.Run("wrong password", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"email": store.DefaultCommanderEmail, "password": "nope"})
		w, out := doJSON(r, http.MethodPost, "/api/auth/login", "", body)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, float64(code.ErrInvalidCredentials), out["code"])
	})

	t.Run("missing fields", func(t *testing.T) {
		w, out := doJSON(r, http.MethodPost, "/api/auth/login", "", []byte(`{"email":"x@test.com"}`))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, false, out["success"])
	})
}

func TestAuthenticatedRoutesRequireToken(t *testing.T) {
	r := newTestRouter(t, testConfig(config.EnvLocal), newMemoryStore())

	for _, path := range []string{"/api/professionals", "/api/drills/active", "/api/statistics/casualties", "/api/resources/requests"} {
		w, _ := doJSON(r, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	w, _ := doJSON(r, http.MethodGet, "/api/professionals", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProfessionalRoutes(t *testing.T) {
	r := newTestRouter(t, testConfig(config.EnvLocal), newMemoryStore())
	commanderToken, commander := login(t, r, store.DefaultCommanderEmail)
	emtToken, emt := login(t, r, "erin@test.com")
	commanderID := commander["professional_id"].(string)
	emtID := emt["professional_id"].(string)

	t.Run("list is ordered by name", func(t *testing.T) {
		w, out := doJSON(r, http.MethodGet, "/api/professionals", emtToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		list := out["professionals"].([]interface{})
		require.Len(t, list, 2)
		assert.Equal(t, "Erin Medic", list[0].(map[string]interface{})["name"])
		assert.Equal(t, "Test Commander", list[1].(map[string]interface{})["name"])
	})

	t.Run("get by id", func(t *testing.T) {
		w, out := doJSON(r, http.MethodGet, "/api/professionals/"+emtID, emtToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "erin@test.com", out["professional"].(map[string]interface{})["email"])
	})

	t.Run("unknown id", func(t *testing.T) {
		w, out := doJSON(r, http.MethodGet, "/api/professionals/missing", emtToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, float64(code.ErrProfessionalNotFound), out["code"])
	})

	t.Run("emt updates self", func(t *testing.T) {
		w, out := doJSON(r, http.MethodPut, "/api/professionals/"+emtID, emtToken, []byte(`{"phone_number":"555-0100"}`))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "Professional updated successfully", out["message"])
		professional := out["professional"].(map[string]interface{})
		assert.Equal(t, "555-0100", professional["phone_number"])
		assert.Equal(t, "Erin Medic", professional["name"])
	})

	t.Run("emt cannot update others", func(t *testing.T) {
		w, out := doJSON(r, http.MethodPut, "/api/professionals/"+commanderID, emtToken, []byte(`{"name":"X"}`))
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, float64(code.ErrForbidden), out["code"])
	})

	t.Run("commander updates others", func(t *testing.T) {
		w, out := doJSON(r, http.MethodPut, "/api/professionals/"+emtID, commanderToken, []byte(`{"group_id":"g-1"}`))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "g-1", out["professional"].(map[string]interface{})["group_id"])
	})

	t.Run("commander updates unknown id", func(t *testing.T) {
		w, _ := doJSON(r, http.MethodPut, "/api/professionals/missing", commanderToken, []byte(`{"name":"X"}`))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		w, _ := doJSON(r, http.MethodPut, "/api/professionals/"+emtID, emtToken, []byte(`{`))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("task summary unavailable on memory store", func(t *testing.T) {
		w, out := doJSON(r, http.MethodGet, "/api/professionals/"+emtID+"/tasks", emtToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, float64(code.ErrTaskSummaryNotFound), out["code"])
	})
}

func TestDrillRoutes(t *testing.T) {
	r := newTestRouter(t, testConfig(config.EnvLocal), newMemoryStore())
	commanderToken, _ := login(t, r, store.DefaultCommanderEmail)
	emtToken, _ := login(t, r, "erin@test.com")

	w, out := doJSON(r, http.MethodGet, "/api/drills/active", emtToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, out["drill"])

	w, _ = doJSON(r, http.MethodPut, "/api/drills/active", emtToken, []byte(`{"name":"Drill A"}`))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = doJSON(r, http.MethodPut, "/api/drills/active", commanderToken, []byte(`not json`))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, out = doJSON(r, http.MethodPut, "/api/drills/active", commanderToken, []byte(`{"name":"Drill A","casualties":12}`))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Active drill updated", out["message"])

	w, out = doJSON(r, http.MethodGet, "/api/drills/active", emtToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]interface{}{"name": "Drill A", "casualties": float64(12)}, out["drill"])
}

func TestIncidentRoutes(t *testing.T) {
	r := newTestRouter(t, testConfig(config.EnvLocal), newMemoryStore())
	token, _ := login(t, r, "erin@test.com")

	w, out := doJSON(r, http.MethodGet, "/api/statistics/casualties", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, out["statistics"])
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))

	w, _ = doJSON(r, http.MethodGet, "/api/statistics/casualties", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))

	w, out = doJSON(r, http.MethodGet, "/api/resources/requests", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []interface{}{}, out["requests"])
}

// failingStore fails listing while keeping login working.
type failingStore struct {
	*store.MemoryStore
}

func (failingStore) ListProfessionals(context.Context) ([]models.Professional, error) {
	return nil, errors.New("connection refused")
}

func TestServerErrorDetail(t *testing.T) {
	cases := []struct {
		envType    string
		wantDetail bool
	}{
		{config.EnvLocal, true},
		{config.EnvServer, false},
	}
	for _, tc := range cases {
		t.Run(tc.envType, func(t *testing.T) {
			r := newTestRouter(t, testConfig(tc.envType), failingStore{newMemoryStore()})
			token, _ := login(t, r, store.DefaultCommanderEmail)

			w, out := doJSON(r, http.MethodGet, "/api/professionals", token, nil)
			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Equal(t, false, out["success"])
			if tc.wantDetail {
				assert.Contains(t, out["error"], "connection refused")
			} else {
				assert.NotContains(t, out, "error")
			}
		})
	}
}
