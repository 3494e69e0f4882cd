package models

import (
	"time"

	"gorm.io/gorm"
)

// Ball is the game entity an art entry depicts. The directory is owned by the
// host game; this service only reads it and holds the foreign keys.
type Ball struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Country   string         `gorm:"uniqueIndex;size:64;not null" json:"country"`
	Emoji     string         `gorm:"size:64" json:"emoji"`
	Enabled   bool           `gorm:"default:true" json:"enabled"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Ball) TableName() string { return "balls" }
