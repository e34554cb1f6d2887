package store

import (
	"context"
	"sort"
	"sync"

	"github.com/kyue26/emertgency-sub001/internal/domain/models"
	"github.com/kyue26/emertgency-sub001/pkg/utils"
	"go.uber.org/zap"
)

// MemoryStore keeps everything in process memory. Password hashes live in
// their own map so no read path can return them by accident.
type MemoryStore struct {
	mu            sync.RWMutex
	professionals map[string]models.Professional // professionalID -> record
	emailIndex    map[string]string              // normalized email -> professionalID
	passwords     map[string]string              // professionalID -> bcrypt hash
	drill         models.Drill

	seeds  []SeedAccount
	gate   initGate
	now    timeSource
	logger *zap.Logger
}

func NewMemoryStore(seeds []SeedAccount, log *zap.Logger) *MemoryStore {
	return &MemoryStore{
		professionals: map[string]models.Professional{},
		emailIndex:    map[string]string{},
		passwords:     map[string]string{},
		seeds:         seeds,
		now:           utcNow,
		logger:        log,
	}
}

func (s *MemoryStore) ensureInitialized(ctx context.Context) error {
	return s.gate.Do(ctx, s.seed)
}

func (s *MemoryStore) seed(_ context.Context) error {
	for _, account := range s.seeds {
		email := models.NormalizeEmail(account.Email)

		s.mu.RLock()
		_, exists := s.emailIndex[email]
		s.mu.RUnlock()
		if exists {
			continue
		}

		// Hash outside the lock; bcrypt is slow.
		cred, err := account.credentials(utils.NewID(), s.now)
		if err != nil {
			return err
		}

		s.mu.Lock()
		if _, exists := s.emailIndex[email]; !exists {
			s.insertLocked(cred)
			s.logger.Info("seeded professional", zap.String("email", email), zap.String("role", cred.Role))
		}
		s.mu.Unlock()
	}
	return nil
}

func (s *MemoryStore) insertLocked(cred models.ProfessionalCredentials) {
	s.professionals[cred.ProfessionalID] = cred.Professional
	s.emailIndex[cred.Email] = cred.ProfessionalID
	s.passwords[cred.ProfessionalID] = cred.PasswordHash
}

func (s *MemoryStore) FindProfessionalByEmail(ctx context.Context, email string) (*models.ProfessionalCredentials, error) {
	if err := s.ensureInitialized(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.emailIndex[models.NormalizeEmail(email)]
	if !ok {
		return nil, nil
	}
	return &models.ProfessionalCredentials{
		Professional: s.professionals[id],
		PasswordHash: s.passwords[id],
	}, nil
}

func (s *MemoryStore) FindProfessionalByID(ctx context.Context, id string) (*models.Professional, error) {
	if err := s.ensureInitialized(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.professionals[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// ListProfessionals returns professionals ordered by id; map iteration order
// is not stable.
func (s *MemoryStore) ListProfessionals(ctx context.Context) ([]models.Professional, error) {
	if err := s.ensureInitialized(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	list := make([]models.Professional, 0, len(s.professionals))
	for _, p := range s.professionals {
		list = append(list, p)
	}
	s.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool { return list[i].ProfessionalID < list[j].ProfessionalID })
	return list, nil
}

func (s *MemoryStore) UpdateProfessional(ctx context.Context, id string, update models.ProfessionalUpdate) (*models.Professional, error) {
	if err := s.ensureInitialized(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.professionals[id]
	if !ok {
		return nil, nil
	}
	update.Apply(&p, s.now())
	s.professionals[id] = p
	return &p, nil
}

func (s *MemoryStore) GetActiveDrill(ctx context.Context) (models.Drill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneDrill(s.drill), nil
}

func (s *MemoryStore) SetActiveDrill(ctx context.Context, drill models.Drill) (models.Drill, error) {
	if err := validateDrill(drill); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.drill = cloneDrill(drill)
	return cloneDrill(s.drill), nil
}

func (s *MemoryStore) GetCasualtyStatistics(context.Context) (models.CasualtyStatistics, error) {
	return models.PlaceholderCasualtyStatistics(), nil
}

func (s *MemoryStore) GetResourceRequests(context.Context) ([]models.ResourceRequest, error) {
	return []models.ResourceRequest{}, nil
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
