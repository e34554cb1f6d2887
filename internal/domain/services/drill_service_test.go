package services

import (
	"context"
	"testing"

	"github.com/kyue26/emertgency-sub001/internal/domain/models"
	"github.com/kyue26/emertgency-sub001/internal/infrastructure/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDrillService_CommanderSetsDrill(t *testing.T) {
	svc := NewDrillService(newTestStore(), zap.NewNop())
	ctx := context.Background()
	commander := Actor{ProfessionalID: "c1", Role: models.RoleCommander}

	drill, err := svc.GetActiveDrill(ctx)
	require.NoError(t, err)
	assert.Nil(t, drill)

	stored, err := svc.SetActiveDrill(ctx, commander, models.Drill(`{"name":"Drill1"}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Drill1"}`, string(stored))

	drill, err = svc.GetActiveDrill(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Drill1"}`, string(drill))
}

func TestDrillService_NonCommanderForbidden(t *testing.T) {
	svc := NewDrillService(newTestStore(), zap.NewNop())

	_, err := svc.SetActiveDrill(context.Background(), Actor{ProfessionalID: "e1", Role: "EMT"}, models.Drill(`{"name":"x"}`))
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestDrillService_InvalidPayload(t *testing.T) {
	svc := NewDrillService(newTestStore(), zap.NewNop())

	_, err := svc.SetActiveDrill(context.Background(), Actor{Role: models.RoleCommander}, models.Drill(`{`))
	assert.ErrorIs(t, err, store.ErrInvalidDrill)
}

func TestIncidentService(t *testing.T) {
	svc := NewIncidentService(newTestStore())
	ctx := context.Background()

	stats, err := svc.GetCasualtyStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.PlaceholderCasualtyStatistics(), stats)

	requests, err := svc.GetResourceRequests(ctx)
	require.NoError(t, err)
	assert.NotNil(t, requests)
	assert.Empty(t, requests)
}
