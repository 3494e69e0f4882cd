package repository

import (
	"artdex/internal/models"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(n *models.Notification) error {
	return r.db.Create(n).Error
}

func (r *NotificationRepository) ListByPlayerID(playerID uint, limit, offset int) ([]models.Notification, error) {
	var list []models.Notification
	err := r.db.Where("player_id = ?", playerID).Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

func (r *NotificationRepository) MarkRead(id, playerID uint) error {
	return r.db.Model(&models.Notification{}).
		Where("id = ? AND player_id = ?", id, playerID).
		Update("read_at", gorm.Expr("CURRENT_TIMESTAMP")).Error
}
