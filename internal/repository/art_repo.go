package repository

import (
	"time"

	"artdex/internal/domain"
	"artdex/internal/models"

	"gorm.io/gorm"
)

type ArtRepository struct {
	db *gorm.DB
}

func NewArtRepository(db *gorm.DB) *ArtRepository {
	return &ArtRepository{db: db}
}

func (r *ArtRepository) Create(e *models.ArtEntry) error {
	return r.db.Create(e).Error
}

func (r *ArtRepository) GetByID(id uint) (*models.ArtEntry, error) {
	var e models.ArtEntry
	if err := r.db.Preload("Ball").Preload("Artist").Preload("ReviewedBy").First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// CountByArtistSince counts the artist's submissions created at or after the
// given instant, used for the daily quota.
func (r *ArtRepository) CountByArtistSince(artistID uint, since time.Time) (int64, error) {
	var c int64
	err := r.db.Model(&models.ArtEntry{}).
		Where("artist_id = ? AND created_at >= ?", artistID, since).
		Count(&c).Error
	return c, err
}

// ListVisible returns APPROVED, enabled entries for a ball, newest first.
func (r *ArtRepository) ListVisible(ballID uint, limit int) ([]models.ArtEntry, error) {
	var list []models.ArtEntry
	err := r.db.Preload("Ball").Preload("Artist").
		Where("ball_id = ? AND status = ? AND enabled = ?", ballID, domain.StatusApproved, true).
		Order("created_at DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

// ListPending returns the review queue, oldest first.
func (r *ArtRepository) ListPending(limit int) ([]models.ArtEntry, error) {
	var list []models.ArtEntry
	err := r.db.Preload("Ball").Preload("Artist").
		Where("status = ?", domain.StatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *ArtRepository) CountByStatus(status string) (int64, error) {
	var c int64
	err := r.db.Model(&models.ArtEntry{}).Where("status = ?", status).Count(&c).Error
	return c, err
}

// Search matches entries by title or ball name substring. A zero artistID
// means no artist scoping (staff view).
func (r *ArtRepository) Search(q string, artistID uint, limit int) ([]models.ArtEntry, error) {
	var list []models.ArtEntry
	tx := r.db.Preload("Ball").Preload("Artist")
	if artistID != 0 {
		tx = tx.Where("artist_id = ?", artistID)
	}
	if q != "" {
		tx = tx.Joins("JOIN balls ON balls.id = art_entries.ball_id").
			Where("art_entries.title LIKE ? OR balls.country LIKE ?", "%"+q+"%", "%"+q+"%")
	}
	err := tx.Order("art_entries.created_at DESC").Limit(limit).Find(&list).Error
	return list, err
}

// SetReview persists exactly the fields a moderation decision touches, in a
// single row update.
func (r *ArtRepository) SetReview(id uint, status string, reviewerID uint, reviewedAt time.Time, reason string) error {
	return r.db.Model(&models.ArtEntry{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":           status,
		"reviewed_by_id":   reviewerID,
		"reviewed_at":      reviewedAt,
		"rejection_reason": reason,
	}).Error
}

// SetEnabled flips the visibility override.
func (r *ArtRepository) SetEnabled(id uint, enabled bool) error {
	return r.db.Model(&models.ArtEntry{}).Where("id = ?", id).Update("enabled", enabled).Error
}

type EntryFilter struct {
	Status   string
	BallID   uint
	ArtistID uint
	Page     int
	Limit    int
}

// ListFiltered powers the back-office browse view.
func (r *ArtRepository) ListFiltered(f EntryFilter) ([]models.ArtEntry, int64, error) {
	tx := r.db.Model(&models.ArtEntry{})
	if f.Status != "" {
		tx = tx.Where("status = ?", f.Status)
	}
	if f.BallID != 0 {
		tx = tx.Where("ball_id = ?", f.BallID)
	}
	if f.ArtistID != 0 {
		tx = tx.Where("artist_id = ?", f.ArtistID)
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Page <= 0 {
		f.Page = 1
	}
	var list []models.ArtEntry
	err := tx.Preload("Ball").Preload("Artist").Preload("ReviewedBy").
		Order("created_at DESC").
		Limit(f.Limit).Offset((f.Page - 1) * f.Limit).
		Find(&list).Error
	return list, total, err
}

// Transaction runs fn inside a storage transaction.
func (r *ArtRepository) Transaction(fn func(tx *ArtRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&ArtRepository{db: tx})
	})
}
