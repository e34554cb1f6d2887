package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/kyue26/emertgency-sub001/internal/domain/models"
	"github.com/kyue26/emertgency-sub001/internal/infrastructure/config"
	"github.com/kyue26/emertgency-sub001/internal/infrastructure/store"
	"go.uber.org/zap"
)

// InterfaceProfessionalService defines the professional service interface
type InterfaceProfessionalService interface {
	ListProfessionals(ctx context.Context) ([]models.Professional, error)
	GetProfessional(ctx context.Context, id string) (*models.Professional, error)
	GetTaskSummary(ctx context.Context, id string) (*models.TaskSummary, error)
	UpdateProfessional(ctx context.Context, actor Actor, id string, update models.ProfessionalUpdate) (*models.Professional, error)
}

// ProfessionalService serves professional records from the configured store.
// Cache is optional; a nil cache reads task summaries from the store every time.
type ProfessionalService struct {
	Store  store.Store
	Cache  InterfaceRedisService
	Config *config.Config
	logger *zap.Logger
}

// NewProfessionalService creates a new professional service
func NewProfessionalService(st store.Store, cache InterfaceRedisService, cfg *config.Config, log *zap.Logger) InterfaceProfessionalService {
	return &ProfessionalService{
		Store:  st,
		Cache:  cache,
		Config: cfg,
		logger: log,
	}
}

// 1 ListProfessionals returns every professional ordered by name
func (s *ProfessionalService) ListProfessionals(ctx context.Context) ([]models.Professional, error) {
	list, err := s.Store.ListProfessionals(ctx)
	if err != nil {
		return nil, fmt.Errorf("list professionals: %w", err)
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

// 2 GetProfessional returns one professional by id
func (s *ProfessionalService) GetProfessional(ctx context.Context, id string) (*models.Professional, error) {
	p, err := s.Store.FindProfessionalByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get professional %s: %w", id, err)
	}
	if p == nil {
		return nil, ErrProfessionalNotFound
	}
	return p, nil
}

// 3 GetTaskSummary returns the task aggregate of a professional. Only stores
// implementing store.TaskSummaryReader have one.
func (s *ProfessionalService) GetTaskSummary(ctx context.Context, id string) (*models.TaskSummary, error) {
	reader, ok := s.Store.(store.TaskSummaryReader)
	if !ok {
		return nil, ErrTaskSummaryNotFound
	}

	if s.Cache != nil {
		cached, err := s.Cache.GetTaskSummary(ctx, id)
		if err != nil {
			s.logger.Warn("task summary cache read failed", zap.String("professional_id", id), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	summary, err := reader.GetTaskSummary(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get task summary %s: %w", id, err)
	}
	if summary == nil {
		return nil, ErrTaskSummaryNotFound
	}

	if s.Cache != nil {
		if err := s.Cache.CacheTaskSummary(ctx, summary, s.Config.Redis.TaskSummaryTTL); err != nil {
			s.logger.Warn("task summary cache write failed", zap.String("professional_id", id), zap.Error(err))
		}
	}
	return summary, nil
}

// 4 UpdateProfessional merges the supplied fields into the record. Anyone may
// update themselves; only a Commander may update someone else.
func (s *ProfessionalService) UpdateProfessional(ctx context.Context, actor Actor, id string, update models.ProfessionalUpdate) (*models.Professional, error) {
	if !actor.CanUpdate(id) {
		return nil, ErrForbidden
	}

	p, err := s.Store.UpdateProfessional(ctx, id, update)
	if err != nil {
		return nil, fmt.Errorf("update professional %s: %w", id, err)
	}
	if p == nil {
		return nil, ErrProfessionalNotFound
	}

	// The summary carries the name.
	if s.Cache != nil {
		if err := s.Cache.DeleteTaskSummary(ctx, id); err != nil {
			s.logger.Warn("task summary cache invalidation failed", zap.String("professional_id", id), zap.Error(err))
		}
	}

	s.logger.Info("professional updated",
		zap.String("professional_id", id),
		zap.String("actor_id", actor.ProfessionalID),
		zap.String("actor_role", actor.Role),
	)
	return p, nil
}
