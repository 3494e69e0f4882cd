package repository

import (
	"artdex/internal/domain"
	"artdex/internal/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *models.User) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) GetByID(id uint) (*models.User, error) {
	var u models.User
	if err := r.db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var u models.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByDiscordID(discordID uint64) (*models.User, error) {
	var u models.User
	if err := r.db.Where("discord_id = ?", discordID).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Update(u *models.User) error {
	return r.db.Save(u).Error
}

// ListStaff returns the staff accounts, used by the review digest.
func (r *UserRepository) ListStaff() ([]models.User, error) {
	var list []models.User
	err := r.db.Where("role IN ?", []string{domain.RoleAdmin, domain.RoleModerator}).Find(&list).Error
	return list, err
}
