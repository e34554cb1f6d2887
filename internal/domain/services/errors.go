package services

import (
	"errors"

	"github.com/kyue26/emertgency-sub001/internal/domain/models"
)

// Errors returned by the services. Controllers map them to HTTP statuses.
var (
	ErrProfessionalNotFound = errors.New("professional not found")
	ErrTaskSummaryNotFound  = errors.New("task summary not found")
	ErrForbidden            = errors.New("insufficient permissions")
	ErrInvalidCredentials   = errors.New("invalid email or password")
)

// Actor is the authenticated caller as placed in the request context by the
// authentication middleware.
type Actor struct {
	ProfessionalID string
	Role           string
}

// IsCommander reports whether the actor holds the Commander role.
func (a Actor) IsCommander() bool {
	return a.Role == models.RoleCommander
}

// CanUpdate reports whether the actor may modify the professional with the
// given id: their own record always, anyone else's only as Commander.
func (a Actor) CanUpdate(professionalID string) bool {
	return a.ProfessionalID == professionalID || a.IsCommander()
}
