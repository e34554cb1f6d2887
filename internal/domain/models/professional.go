package models

import (
	"strings"
	"time"
)

// RoleCommander may update any professional and replace the active drill.
const RoleCommander = "Commander"

// Professional is a responder record. It deliberately carries no password
// hash: list and read paths return this type.
type Professional struct {
	ProfessionalID string    `gorm:"column:professional_id;primaryKey;type:varchar(64)" json:"professional_id" dynamodbav:"professional_id"`
	Name           string    `gorm:"type:varchar(255);not null" json:"name" dynamodbav:"name"`
	Email          string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" dynamodbav:"email"` // normalized lowercase
	PhoneNumber    string    `gorm:"type:varchar(32)" json:"phone_number" dynamodbav:"phone_number"`
	Role           string    `gorm:"type:varchar(64)" json:"role" dynamodbav:"role"`
	GroupID        string    `gorm:"type:varchar(64)" json:"group_id" dynamodbav:"group_id"`
	CurrentEventID string    `gorm:"type:varchar(64)" json:"current_event_id" dynamodbav:"current_event_id"`
	CurrentCampID  string    `gorm:"type:varchar(64)" json:"current_camp_id" dynamodbav:"current_camp_id"`
	CreatedAt      time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" dynamodbav:"updated_at"`
}

func (Professional) TableName() string {
	return "professionals"
}

// ProfessionalCredentials is returned only by the email lookup used for login.
type ProfessionalCredentials struct {
	Professional
	PasswordHash string `json:"password_hash"`
}

// NormalizeEmail returns the key under which emails are stored and looked up.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ProfessionalUpdate holds the updatable fields. A nil field means "leave
// unchanged"; there is no way to clear a field.
type ProfessionalUpdate struct {
	Name           *string `json:"name"`
	PhoneNumber    *string `json:"phone_number"`
	Role           *string `json:"role"`
	GroupID        *string `json:"group_id"`
	CurrentCampID  *string `json:"current_camp_id"`
	CurrentEventID *string `json:"current_event_id"`
}

// Apply merges the non-nil fields into p and stamps UpdatedAt.
func (u ProfessionalUpdate) Apply(p *Professional, now time.Time) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.PhoneNumber != nil {
		p.PhoneNumber = *u.PhoneNumber
	}
	if u.Role != nil {
		p.Role = *u.Role
	}
	if u.GroupID != nil {
		p.GroupID = *u.GroupID
	}
	if u.CurrentCampID != nil {
		p.CurrentCampID = *u.CurrentCampID
	}
	if u.CurrentEventID != nil {
		p.CurrentEventID = *u.CurrentEventID
	}
	p.UpdatedAt = now
}

// Columns returns the column assignments for a relational UPDATE, always
// including updated_at.
func (u ProfessionalUpdate) Columns(now time.Time) map[string]interface{} {
	cols := map[string]interface{}{"updated_at": now}
	if u.Name != nil {
		cols["name"] = *u.Name
	}
	if u.PhoneNumber != nil {
		cols["phone_number"] = *u.PhoneNumber
	}
	if u.Role != nil {
		cols["role"] = *u.Role
	}
	if u.GroupID != nil {
		cols["group_id"] = *u.GroupID
	}
	if u.CurrentCampID != nil {
		cols["current_camp_id"] = *u.CurrentCampID
	}
	if u.CurrentEventID != nil {
		cols["current_event_id"] = *u.CurrentEventID
	}
	return cols
}
