package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/kyue26/emertgency-sub001/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestJWTService_LoginSeededCommander(t *testing.T) {
	svc := NewJWTService(testConfig(), newTestStore(), zap.NewNop())

	result, err := svc.Login(context.Background(), "Commander@Test.com", testPassword)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, models.RoleCommander, result.Professional.Role)
	assert.True(t, result.ExpiresAt.After(time.Now()))

	claims, err := svc.ExtractClaims(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.Professional.ProfessionalID, claims.ProfessionalID)
	assert.Equal(t, models.RoleCommander, claims.Role)
}

func TestJWTService_LoginFailures(t *testing.T) {
	svc := NewJWTService(testConfig(), newTestStore(), zap.NewNop())
	ctx := context.Background()

	_, err := svc.Login(ctx, "commander@test.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@test.com", testPassword)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestJWTService_ExtractClaimsRejectsBadTokens(t *testing.T) {
	svc := NewJWTService(testConfig(), newTestStore(), zap.NewNop())

	_, err := svc.ExtractClaims("not-a-token")
	assert.Error(t, err)

	otherCfg := testConfig()
	otherCfg.JWT.SecretKey = "other-secret"
	other := NewJWTService(otherCfg, newTestStore(), zap.NewNop())
	token, _, err := other.GenerateToken("p1", "EMT")
	require.NoError(t, err)
	_, err = svc.ExtractClaims(token)
	assert.Error(t, err)

	expiredCfg := testConfig()
	expiredCfg.JWT.TTL = -time.Minute
	expired := NewJWTService(expiredCfg, newTestStore(), zap.NewNop())
	token, _, err = expired.GenerateToken("p1", "EMT")
	require.NoError(t, err)
	_, err = svc.ExtractClaims(token)
	assert.Error(t, err)
}

func TestJWTService_ExtractClaimsRejectsNoneAlgorithm(t *testing.T) {
	svc := NewJWTService(testConfig(), newTestStore(), zap.NewNop())

	token := jwt.NewWithClaims(jwt.SigningMethodNone, &JWTClaims{ProfessionalID: "p1", Role: models.RoleCommander})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ExtractClaims(signed)
	assert.Error(t, err)
}
