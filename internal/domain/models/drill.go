package models

import (
	"encoding/json"
	"time"
)

// Drill is the opaque payload of the currently running exercise.
type Drill = json.RawMessage

// ActiveDrill is the singleton row holding the active drill in the relational store.
type ActiveDrill struct {
	ID        uint      `gorm:"primaryKey;autoIncrement:false" json:"-"`
	Payload   string    `gorm:"type:text;not null" json:"payload"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ActiveDrill) TableName() string {
	return "active_drills"
}

// ActiveDrillID is the primary key of the only active_drills row.
const ActiveDrillID uint = 1
