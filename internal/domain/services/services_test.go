package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/kyue26/emertgency-sub001/internal/domain/models"
	"github.com/kyue26/emertgency-sub001/internal/infrastructure/config"
	"github.com/kyue26/emertgency-sub001/internal/infrastructure/store"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "password123"

func strPtr(s string) *string { return &s }

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.SecretKey = "test-secret"
	cfg.JWT.TTL = time.Hour
	cfg.Redis.TaskSummaryTTL = time.Minute
	return cfg
}

// newTestStore returns a memory store seeded with a Commander and two EMTs.
func newTestStore() *store.MemoryStore {
	return store.NewMemoryStore([]store.SeedAccount{
		{Name: "Test Commander", Email: store.DefaultCommanderEmail, Role: models.RoleCommander, Password: testPassword, Cost: bcrypt.MinCost},
		{Name: "Zoe Medic", Email: "zoe@test.com", Role: "EMT", Password: testPassword, Cost: bcrypt.MinCost},
		{Name: "Adam Medic", Email: "adam@test.com", Role: "EMT", Password: testPassword, Cost: bcrypt.MinCost},
	}, zap.NewNop())
}

func professionalID(t *testing.T, st store.Store, email string) string {
	t.Helper()
	cred, err := st.FindProfessionalByEmail(context.Background(), email)
	require.NoError(t, err)
	require.NotNil(t, cred)
	return cred.ProfessionalID
}

// summaryStore adds task summaries to a memory store.
type summaryStore struct {
	*store.MemoryStore
	mu        sync.Mutex
	summaries map[string]*models.TaskSummary
	reads     int
}

func (s *summaryStore) GetTaskSummary(_ context.Context, id string) (*models.TaskSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	return s.summaries[id], nil
}
