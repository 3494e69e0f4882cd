package database

import (
	"errors"

	"artdex/config"
	"artdex/internal/domain"
	"artdex/internal/models"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error), // Only log errors, not every SQL query
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Player{},
		&models.Ball{},
		&models.User{},
		&models.ArtSettings{},
		&models.ArtEntry{},
		&models.Notification{},
	)
}

// SeedAdmin creates the bootstrap back-office admin when credentials are
// configured and no account exists yet.
func SeedAdmin(db *gorm.DB, email, password string) {
	if email == "" || password == "" {
		return
	}
	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logrus.WithError(err).Warn("admin seed: lookup failed")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Warn("admin seed: hash failed")
		return
	}
	u := models.User{
		Email:        email,
		Username:     "admin",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}
	if err := db.Create(&u).Error; err != nil {
		logrus.WithError(err).Warn("admin seed: create failed")
		return
	}
	logrus.WithField("email", email).Info("seeded back-office admin")
}
