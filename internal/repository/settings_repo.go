package repository

import (
	"artdex/internal/models"

	"gorm.io/gorm"
)

type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetOrCreate returns the singleton settings row, inserting the defaults on
// first read. The fixed primary key means a concurrent first read leaves
// exactly one row behind.
func (r *SettingsRepository) GetOrCreate() (*models.ArtSettings, error) {
	s := models.ArtSettings{
		ID:                   models.SettingsID,
		Enabled:              true,
		RequireApproval:      true,
		MaxSubmissionsPerDay: 5,
	}
	if err := r.db.Where(models.ArtSettings{ID: models.SettingsID}).FirstOrCreate(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// Update replaces the mutable settings fields.
func (r *SettingsRepository) Update(enabled, requireApproval bool, maxPerDay uint) (*models.ArtSettings, error) {
	if _, err := r.GetOrCreate(); err != nil {
		return nil, err
	}
	err := r.db.Model(&models.ArtSettings{}).Where("id = ?", models.SettingsID).Updates(map[string]interface{}{
		"enabled":                 enabled,
		"require_approval":        requireApproval,
		"max_submissions_per_day": maxPerDay,
	}).Error
	if err != nil {
		return nil, err
	}
	return r.GetOrCreate()
}
