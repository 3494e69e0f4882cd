package repository

import (
	"artdex/internal/models"

	"gorm.io/gorm"
)

type BallRepository struct {
	db *gorm.DB
}

func NewBallRepository(db *gorm.DB) *BallRepository {
	return &BallRepository{db: db}
}

func (r *BallRepository) GetByID(id uint) (*models.Ball, error) {
	var b models.Ball
	if err := r.db.First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BallRepository) GetByCountry(country string) (*models.Ball, error) {
	var b models.Ball
	if err := r.db.Where("country = ?", country).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// Search lists enabled balls whose name contains q, for autocomplete.
func (r *BallRepository) Search(q string, limit int) ([]models.Ball, error) {
	var list []models.Ball
	tx := r.db.Where("enabled = ?", true)
	if q != "" {
		tx = tx.Where("country LIKE ?", "%"+q+"%")
	}
	err := tx.Order("country ASC").Limit(limit).Find(&list).Error
	return list, err
}
