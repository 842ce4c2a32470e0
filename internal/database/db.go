package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/prysmhq/prysm_backend/internal/config"
	"github.com/prysmhq/prysm_backend/internal/models"
)

func Connect(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode,
	)
	// TranslateError makes unique violations surface as gorm.ErrDuplicatedKey;
	// the store layer depends on that for the email uniqueness race check.
	return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.RefreshTokenRecord{},
		&models.Organization{},
		&models.Membership{},
		&models.ErrorLog{},
	)
}
