package services

import (
	"context"
	"fmt"

	"github.com/kyue26/emertgency-sub001/internal/domain/models"
	"github.com/kyue26/emertgency-sub001/internal/infrastructure/store"
	"go.uber.org/zap"
)

// InterfaceDrillService defines the drill service interface
type InterfaceDrillService interface {
	GetActiveDrill(ctx context.Context) (models.Drill, error)
	SetActiveDrill(ctx context.Context, actor Actor, drill models.Drill) (models.Drill, error)
}

// DrillService manages the single active drill
type DrillService struct {
	Store  store.Store
	logger *zap.Logger
}

// NewDrillService creates a new drill service
func NewDrillService(st store.Store, log *zap.Logger) InterfaceDrillService {
	return &DrillService{Store: st, logger: log}
}

// GetActiveDrill returns the active drill, or nil when none is set
func (s *DrillService) GetActiveDrill(ctx context.Context) (models.Drill, error) {
	drill, err := s.Store.GetActiveDrill(ctx)
	if err != nil {
		return nil, fmt.Errorf("get active drill: %w", err)
	}
	return drill, nil
}

// SetActiveDrill replaces the active drill. Commander only.
func (s *DrillService) SetActiveDrill(ctx context.Context, actor Actor, drill models.Drill) (models.Drill, error) {
	if !actor.IsCommander() {
		return nil, ErrForbidden
	}

	stored, err := s.Store.SetActiveDrill(ctx, drill)
	if err != nil {
		return nil, fmt.Errorf("set active drill: %w", err)
	}
	s.logger.Info("active drill replaced", zap.String("actor_id", actor.ProfessionalID))
	return stored, nil
}
