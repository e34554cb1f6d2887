package store

import (
	"fmt"

	"github.com/kyue26/emertgency-sub001/internal/domain/models"
	"github.com/kyue26/emertgency-sub001/internal/infrastructure/config"
	"github.com/kyue26/emertgency-sub001/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

// DefaultCommanderEmail is the login of the account seeded on first access.
const DefaultCommanderEmail = "commander@test.com"

// SeedAccount describes a professional created when a lazily initialized
// backend is first used. Existing emails are left untouched.
type SeedAccount struct {
	Name        string
	Email       string
	PhoneNumber string
	Role        string
	Password    string
	// Cost is the bcrypt cost; zero means bcrypt.DefaultCost.
	Cost int
}

// DefaultSeeds returns the default Commander account, or nothing when
// seeding is disabled.
func DefaultSeeds(cfg config.SeedConfig) []SeedAccount {
	if !cfg.Enabled {
		return nil
	}
	return []SeedAccount{{
		Name:     "Test Commander",
		Email:    DefaultCommanderEmail,
		Role:     models.RoleCommander,
		Password: cfg.CommanderPassword,
	}}
}

// credentials builds the record to insert for the seed, hashing its password.
func (s SeedAccount) credentials(id string, now timeSource) (models.ProfessionalCredentials, error) {
	cost := s.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := utils.HashPasswordWithCost(s.Password, cost)
	if err != nil {
		return models.ProfessionalCredentials{}, fmt.Errorf("hash seed password for %s: %w", s.Email, err)
	}

	ts := now()
	return models.ProfessionalCredentials{
		Professional: models.Professional{
			ProfessionalID: id,
			Name:           s.Name,
			Email:          models.NormalizeEmail(s.Email),
			PhoneNumber:    s.PhoneNumber,
			Role:           s.Role,
			CreatedAt:      ts,
			UpdatedAt:      ts,
		},
		PasswordHash: hash,
	}, nil
}
