package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/kyue26/emertgency-sub001/internal/domain/models"
	"github.com/kyue26/emertgency-sub001/internal/infrastructure/config"
	"github.com/kyue26/emertgency-sub001/internal/infrastructure/store"
	"github.com/kyue26/emertgency-sub001/pkg/utils"
	"go.uber.org/zap"
)

// InterfaceJWTService defines the JWT service interface
type InterfaceJWTService interface {
	GenerateToken(professionalID, role string) (string, time.Time, error)
	ExtractClaims(tokenString string) (*JWTClaims, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

// LoginResult is returned by a successful login
type LoginResult struct {
	Token        string              `json:"token"`
	ExpiresAt    time.Time           `json:"expires_at"`
	Professional models.Professional `json:"professional"`
}

// JWTService issues and validates the bearer tokens of the API
type JWTService struct {
	secretKey string
	issuer    string
	ttl       time.Duration
	Store     store.Store
	logger    *zap.Logger
}

// JWTClaims carries the caller identity used by the authorization rules
type JWTClaims struct {
	ProfessionalID string `json:"professional_id"`
	Role           string `json:"role"`
	jwt.RegisteredClaims
}

// NewJWTService creates a new JWT service
func NewJWTService(cfg *config.Config, st store.Store, log *zap.Logger) InterfaceJWTService {
	return &JWTService{
		secretKey: cfg.JWT.SecretKey,
		issuer:    "mci-http-service",
		ttl:       cfg.JWT.TTL,
		Store:     st,
		logger:    log,
	}
}

// GenerateToken signs an HS256 token for the professional
func (s *JWTService) GenerateToken(professionalID, role string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.ttl)

	claims := &JWTClaims{
		ProfessionalID: professionalID,
		Role:           role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   professionalID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ExtractClaims validates the token and returns its claims
func (s *JWTService) ExtractClaims(tokenString string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.ProfessionalID == "" {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// Login checks the password of the professional registered under email and
// issues a token. Unknown emails and wrong passwords are indistinguishable.
func (s *JWTService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	cred, err := s.Store.FindProfessionalByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find professional by email: %w", err)
	}
	if cred == nil || cred.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}

	if err := utils.ComparePassword(cred.PasswordHash, password); err != nil {
		if !errors.Is(err, utils.ErrPasswordMismatch) {
			s.logger.Warn("stored password hash is unusable",
				zap.String("professional_id", cred.ProfessionalID), zap.Error(err))
		}
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.GenerateToken(cred.ProfessionalID, cred.Role)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	s.logger.Info("professional logged in", zap.String("professional_id", cred.ProfessionalID))
	return &LoginResult{
		Token:        token,
		ExpiresAt:    expiresAt,
		Professional: cred.Professional,
	}, nil
}
