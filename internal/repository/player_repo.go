package repository

import (
	"artdex/internal/models"

	"gorm.io/gorm"
)

type PlayerRepository struct {
	db *gorm.DB
}

func NewPlayerRepository(db *gorm.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// GetOrCreateByDiscordID resolves a player row from an external Discord id,
// creating it if the user has never interacted with the game before.
func (r *PlayerRepository) GetOrCreateByDiscordID(discordID uint64) (*models.Player, error) {
	var p models.Player
	err := r.db.Where(models.Player{DiscordID: discordID}).FirstOrCreate(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PlayerRepository) GetByID(id uint) (*models.Player, error) {
	var p models.Player
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}
