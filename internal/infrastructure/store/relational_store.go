package store

import (
	"context"
	"fmt"

	"github.com/kyue26/emertgency-sub001/internal/domain/models"
	"github.com/kyue26/emertgency-sub001/internal/infrastructure/database"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// professionalRow is the professionals table including the password hash.
// Only the email lookup scans into it.
type professionalRow struct {
	models.Professional
	PasswordHash string `gorm:"column:password_hash;type:varchar(255);not null"`
}

func (professionalRow) TableName() string {
	return "professionals"
}

// professionalColumns is every professionals column except password_hash.
var professionalColumns = []string{
	"professional_id", "name", "email", "phone_number", "role",
	"group_id", "current_event_id", "current_camp_id", "created_at", "updated_at",
}

// RelationalStore serves the contract from PostgreSQL or MySQL. Tables and the
// professional_task_summary view must already exist (see Migrate). Each
// operation issues single statements; there are no multi-statement transactions.
type RelationalStore struct {
	pool   *database.ConnectionPool
	now    timeSource
	logger *zap.Logger
}

func NewRelationalStore(pool *database.ConnectionPool, log *zap.Logger) *RelationalStore {
	return &RelationalStore{pool: pool, now: utcNow, logger: log}
}

func (s *RelationalStore) db(ctx context.Context) *gorm.DB {
	return s.pool.GetDB().WithContext(ctx)
}

// FindProfessionalByEmail matches the stored email exactly. Emails are
// written normalized, so the unique index on email serves the lookup.
func (s *RelationalStore) FindProfessionalByEmail(ctx context.Context, email string) (*models.ProfessionalCredentials, error) {
	var rows []professionalRow
	err := s.db(ctx).
		Where("email = ?", models.NormalizeEmail(email)).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("find professional by email: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &models.ProfessionalCredentials{
		Professional: rows[0].Professional,
		PasswordHash: rows[0].PasswordHash,
	}, nil
}

func (s *RelationalStore) FindProfessionalByID(ctx context.Context, id string) (*models.Professional, error) {
	var rows []models.Professional
	err := s.db(ctx).
		Select(professionalColumns).
		Where("professional_id = ?", id).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("find professional by id: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (s *RelationalStore) ListProfessionals(ctx context.Context) ([]models.Professional, error) {
	list := []models.Professional{}
	err := s.db(ctx).
		Select(professionalColumns).
		Order("name").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("list professionals: %w", err)
	}
	return list, nil
}

// UpdateProfessional writes the supplied fields and re-reads the record. The
// two statements are not atomic together; a concurrent delete between them
// yields a nil result.
func (s *RelationalStore) UpdateProfessional(ctx context.Context, id string, update models.ProfessionalUpdate) (*models.Professional, error) {
	result := s.db(ctx).
		Model(&models.Professional{}).
		Where("professional_id = ?", id).
		Updates(update.Columns(s.now()))
	if result.Error != nil {
		return nil, fmt.Errorf("update professional %s: %w", id, result.Error)
	}
	return s.FindProfessionalByID(ctx, id)
}

func (s *RelationalStore) GetActiveDrill(ctx context.Context) (models.Drill, error) {
	var rows []models.ActiveDrill
	err := s.db(ctx).
		Where("id = ?", models.ActiveDrillID).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("get active drill: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rawOrString(rows[0].Payload), nil
}

func (s *RelationalStore) SetActiveDrill(ctx context.Context, drill models.Drill) (models.Drill, error) {
	if err := validateDrill(drill); err != nil {
		return nil, err
	}
	stored := cloneDrill(drill)

	row := models.ActiveDrill{
		ID:        models.ActiveDrillID,
		Payload:   string(stored),
		UpdatedAt: s.now(),
	}
	// Save updates the singleton row and inserts it when missing.
	if err := s.db(ctx).Save(&row).Error; err != nil {
		return nil, fmt.Errorf("set active drill: %w", err)
	}
	return stored, nil
}

func (s *RelationalStore) GetCasualtyStatistics(context.Context) (models.CasualtyStatistics, error) {
	return models.PlaceholderCasualtyStatistics(), nil
}

func (s *RelationalStore) GetResourceRequests(ctx context.Context) ([]models.ResourceRequest, error) {
	var rows []models.ResourceRequestRow
	if err := s.db(ctx).Order("created_at").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("get resource requests: %w", err)
	}

	requests := make([]models.ResourceRequest, 0, len(rows))
	for _, row := range rows {
		requests = append(requests, rawOrString(row.Payload))
	}
	return requests, nil
}

// GetTaskSummary reads the precomputed per-professional aggregate.
func (s *RelationalStore) GetTaskSummary(ctx context.Context, professionalID string) (*models.TaskSummary, error) {
	var rows []models.TaskSummary
	err := s.db(ctx).
		Where("professional_id = ?", professionalID).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("get task summary: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (s *RelationalStore) Ping(ctx context.Context) error {
	return s.pool.HealthCheck(ctx)
}

func (s *RelationalStore) Close() error {
	return s.pool.Close()
}
