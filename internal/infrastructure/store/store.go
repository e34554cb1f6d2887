// Package store holds the data-access contract of the service and its three
// backends: a relational database through gorm, DynamoDB, and process memory.
// One backend is chosen at startup by New and injected into the services.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"github.com/kyue26/emertgency-sub001/internal/domain/models"
	"github.com/kyue26/emertgency-sub001/internal/infrastructure/config"
	"github.com/kyue26/emertgency-sub001/internal/infrastructure/database"
	"go.uber.org/zap"
)

// ErrInvalidDrill is returned by SetActiveDrill for payloads that are empty,
// null or not valid JSON.
var ErrInvalidDrill = errors.New("drill payload must be a non-null JSON value")

// Store is the data-access contract shared by every backend. Lookups that
// find nothing return a nil result and a nil error.
type Store interface {
	// FindProfessionalByEmail is the only read that returns the password hash.
	FindProfessionalByEmail(ctx context.Context, email string) (*models.ProfessionalCredentials, error)
	FindProfessionalByID(ctx context.Context, id string) (*models.Professional, error)
	ListProfessionals(ctx context.Context) ([]models.Professional, error)
	UpdateProfessional(ctx context.Context, id string, update models.ProfessionalUpdate) (*models.Professional, error)

	GetActiveDrill(ctx context.Context) (models.Drill, error)
	SetActiveDrill(ctx context.Context, drill models.Drill) (models.Drill, error)

	GetCasualtyStatistics(ctx context.Context) (models.CasualtyStatistics, error)
	GetResourceRequests(ctx context.Context) ([]models.ResourceRequest, error)

	Ping(ctx context.Context) error
	Close() error
}

// TaskSummaryReader is implemented by backends that can aggregate tasks per
// professional. Only the relational backend does.
type TaskSummaryReader interface {
	GetTaskSummary(ctx context.Context, professionalID string) (*models.TaskSummary, error)
}

// New opens the backend selected by cfg. For the relational backend the schema
// is created here when DB_MIGRATION_MODE=auto; requests never create schema.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (Store, error) {
	backend := cfg.Backend()
	log = log.With(zap.String("backend", string(backend)))

	switch backend {
	case config.BackendDynamoDB:
		client, err := NewDynamoClient(ctx, cfg.Dynamo)
		if err != nil {
			return nil, err
		}
		log.Info("using DynamoDB store", zap.String("table_prefix", cfg.Dynamo.TablePrefix))
		return NewDynamoStore(client, cfg.Dynamo.TablePrefix, DefaultSeeds(cfg.Seed), log), nil

	case config.BackendMemory:
		log.Info("using in-memory store; data is lost on restart")
		return NewMemoryStore(DefaultSeeds(cfg.Seed), log), nil

	default:
		pool, err := database.NewConnectionPool(&cfg.Database, log)
		if err != nil {
			return nil, err
		}
		if cfg.Database.MigrationMode == "auto" {
			if err := Migrate(ctx, pool.GetDB()); err != nil {
				_ = pool.Close()
				return nil, err
			}
			log.Info("relational schema migrated")
		}
		return NewRelationalStore(pool, log), nil
	}
}

func validateDrill(drill models.Drill) error {
	trimmed := bytes.TrimSpace(drill)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || !json.Valid(trimmed) {
		return ErrInvalidDrill
	}
	return nil
}

// cloneDrill copies a payload so callers cannot mutate stored state.
func cloneDrill(drill models.Drill) models.Drill {
	if drill == nil {
		return nil
	}
	return append(models.Drill(nil), bytes.TrimSpace(drill)...)
}

// rawOrString keeps valid JSON payloads as-is and encodes anything else as a
// JSON string.
func rawOrString(payload string) json.RawMessage {
	if json.Valid([]byte(payload)) {
		return json.RawMessage(payload)
	}
	encoded, _ := json.Marshal(payload)
	return encoded
}
