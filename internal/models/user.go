package models

import (
	"time"

	"artdex/internal/domain"

	"gorm.io/gorm"
)

// User is a back-office staff account. DiscordID is filled in by the Discord
// OAuth flow and is what links a staff account to its Player row when a
// moderation action needs a reviewer.
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Email        string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Username     string         `gorm:"size:64" json:"username"`
	PasswordHash string         `gorm:"size:255" json:"-"`
	Role         string         `gorm:"size:20;not null;index" json:"role"` // ADMIN | MODERATOR
	DiscordID    *uint64        `gorm:"uniqueIndex" json:"discord_id"`
	AvatarURL    string         `gorm:"size:512" json:"avatar_url"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

func (u *User) IsStaff() bool { return domain.IsStaffRole(u.Role) }
