package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification records a notice sent (or attempted) to a player. The DM push
// itself is best-effort; the row is the durable trace.
type Notification struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	PlayerID  uint           `gorm:"not null;index" json:"player_id"`
	Type      string         `gorm:"size:50;not null;index" json:"type"`
	Title     string         `gorm:"size:255" json:"title"`
	Body      string         `gorm:"type:text" json:"body"`
	Data      string         `gorm:"type:text" json:"data"` // JSON payload
	ReadAt    *time.Time     `json:"read_at"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Player Player `gorm:"foreignKey:PlayerID" json:"-"`
}

func (Notification) TableName() string { return "notifications" }
