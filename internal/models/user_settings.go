package models

import (
	"time"

	"gorm.io/datatypes"
)

// Profile is the allocation and behaviour policy chosen at onboarding.
type Profile struct {
	SpotPct    float64 `json:"spotPct"`
	FutPct     float64 `json:"futPct"`
	ReservePct float64 `json:"reservePct"`
	MaxPos     float64 `json:"maxPos"`
	LevOK      bool    `json:"levOk"`
	Capital    float64 `json:"capital"`
}

// UserSettings is the per-user singleton written during onboarding.
// There should only ever be one row per user.
type UserSettings struct {
	ID            uint                        `gorm:"primaryKey" json:"id"`
	UserID        string                      `gorm:"uniqueIndex;not null" json:"user_id"`
	Name          string                      `json:"name"`
	ProfileLabel  string                      `json:"profile_label"`
	Profile       datatypes.JSONType[Profile] `gorm:"column:profile_data" json:"profile_data"`
	EmergencyFund float64                     `json:"emergency_fund"`
	CreatedAt     time.Time                   `json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`
}

// TableName matches the hosted schema, where settings live in "users".
func (UserSettings) TableName() string {
	return "users"
}

// ProfileData returns the decoded profile.
func (s UserSettings) ProfileData() Profile {
	return s.Profile.Data()
}
