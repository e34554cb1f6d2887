package services

import (
	"context"
	"fmt"

	"github.com/kyue26/emertgency-sub001/internal/domain/models"
	"github.com/kyue26/emertgency-sub001/internal/infrastructure/store"
)

// InterfaceIncidentService defines the incident service interface
type InterfaceIncidentService interface {
	GetCasualtyStatistics(ctx context.Context) (models.CasualtyStatistics, error)
	GetResourceRequests(ctx context.Context) ([]models.ResourceRequest, error)
}

// IncidentService exposes incident-wide figures
type IncidentService struct {
	Store store.Store
}

// NewIncidentService creates a new incident service
func NewIncidentService(st store.Store) InterfaceIncidentService {
	return &IncidentService{Store: st}
}

func (s *IncidentService) GetCasualtyStatistics(ctx context.Context) (models.CasualtyStatistics, error) {
	stats, err := s.Store.GetCasualtyStatistics(ctx)
	if err != nil {
		return nil, fmt.Errorf("get casualty statistics: %w", err)
	}
	return stats, nil
}

func (s *IncidentService) GetResourceRequests(ctx context.Context) ([]models.ResourceRequest, error) {
	requests, err := s.Store.GetResourceRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("get resource requests: %w", err)
	}
	if requests == nil {
		requests = []models.ResourceRequest{}
	}
	return requests, nil
}
