package models

import (
	"time"

	"artdex/internal/domain"

	"gorm.io/gorm"
)

// ArtEntry is a single art submission tied to a ball and an artist.
// Rows are never deleted by this service; removal only cascades from the
// referenced ball or player.
type ArtEntry struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	BallID      uint   `gorm:"not null;index:idx_art_ball_status_enabled" json:"ball_id"`
	ArtistID    uint   `gorm:"not null;index:idx_art_artist_status" json:"artist_id"`
	Title       string `gorm:"size:256" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	MediaURL    string `gorm:"size:2048;not null" json:"media_url"`

	Status          string     `gorm:"size:20;not null;default:PENDING;index:idx_art_ball_status_enabled;index:idx_art_artist_status" json:"status"`
	RejectionReason string     `gorm:"type:text" json:"rejection_reason"`
	ReviewedByID    *uint      `gorm:"index" json:"reviewed_by_id"`
	ReviewedAt      *time.Time `json:"reviewed_at"`

	Enabled bool `gorm:"not null;default:true;index:idx_art_ball_status_enabled" json:"enabled"`

	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Ball       Ball    `gorm:"foreignKey:BallID;constraint:OnDelete:CASCADE" json:"-"`
	Artist     Player  `gorm:"foreignKey:ArtistID;constraint:OnDelete:CASCADE" json:"-"`
	ReviewedBy *Player `gorm:"foreignKey:ReviewedByID;constraint:OnDelete:SET NULL" json:"-"`
}

func (ArtEntry) TableName() string { return "art_entries" }

func (e *ArtEntry) IsApproved() bool { return e.Status == domain.StatusApproved }
func (e *ArtEntry) IsRejected() bool { return e.Status == domain.StatusRejected }
func (e *ArtEntry) IsPending() bool  { return e.Status == domain.StatusPending }

// Visible reports whether the entry shows up in player-facing listings.
func (e *ArtEntry) Visible() bool { return e.IsApproved() && e.Enabled }
