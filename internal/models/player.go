package models

import (
	"time"

	"gorm.io/gorm"
)

// Player mirrors the host game's player row; created on demand from a Discord id.
type Player struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	DiscordID uint64         `gorm:"uniqueIndex;not null" json:"discord_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Player) TableName() string { return "players" }
