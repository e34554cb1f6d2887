package models

import (
	"encoding/json"
	"time"
)

// TriageColor is a casualty severity category.
type TriageColor string

const (
	TriageRed    TriageColor = "red"
	TriageYellow TriageColor = "yellow"
	TriageGreen  TriageColor = "green"
	TriageBlack  TriageColor = "black"
)

// TriageColors lists every triage category in severity order.
var TriageColors = []TriageColor{TriageRed, TriageYellow, TriageGreen, TriageBlack}

// CasualtyCount holds the counters tracked per triage color.
type CasualtyCount struct {
	InTreatment int `json:"in_treatment"`
	Transported int `json:"transported"`
	Total       int `json:"total"`
}

// CasualtyStatistics always carries exactly the four triage colors.
type CasualtyStatistics map[TriageColor]CasualtyCount

// PlaceholderCasualtyStatistics returns the static statistics served by every
// backend until casualty tracking exists.
func PlaceholderCasualtyStatistics() CasualtyStatistics {
	stats := make(CasualtyStatistics, len(TriageColors))
	for _, color := range TriageColors {
		stats[color] = CasualtyCount{}
	}
	return stats
}

// ResourceRequest is an opaque request record.
type ResourceRequest = json.RawMessage

// ResourceRequestRow is the relational storage of a resource request.
type ResourceRequestRow struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Payload   string    `gorm:"type:text;not null" json:"payload"`
	CreatedAt time.Time `json:"created_at"`
}

func (ResourceRequestRow) TableName() string {
	return "resource_requests"
}
