package models

import "time"

// ArtSettings is the singleton configuration row for the art feature.
// Exactly one row exists, pinned to SettingsID; it is created on first read.
type ArtSettings struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	Enabled              bool      `gorm:"not null;default:true" json:"enabled"`
	RequireApproval      bool      `gorm:"not null;default:true" json:"require_approval"`
	MaxSubmissionsPerDay uint      `gorm:"not null;default:5" json:"max_submissions_per_day"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// SettingsID is the fixed primary key of the singleton row.
const SettingsID uint = 1

func (ArtSettings) TableName() string { return "art_settings" }
