package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prysmhq/prysm_backend/internal/models"
)

// GormStore implements UserStore and TokenStore on a gorm.DB. The DB must be
// opened with TranslateError so unique violations surface as
// gorm.ErrDuplicatedKey regardless of driver.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *GormStore) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *GormStore) CreateUser(ctx context.Context, name, email, passwordHash string) (*models.User, error) {
	user := models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return &user, nil
}

func (s *GormStore) UpdateUserName(ctx context.Context, id, name string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	user.Name = name
	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormStore) CreateRefreshRecord(ctx context.Context, userID, tokenHash, rotationID string, expiresAt time.Time) (*models.RefreshTokenRecord, error) {
	rec := models.RefreshTokenRecord{
		ID:         uuid.NewString(),
		RotationID: rotationID,
		TokenHash:  tokenHash,
		UserID:     userID,
		ExpiresAt:  expiresAt,
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *GormStore) FindRefreshRecordByRotationID(ctx context.Context, rotationID string) (*models.RefreshTokenRecord, error) {
	var rec models.RefreshTokenRecord
	if err := s.db.WithContext(ctx).Where("rotation_id = ?", rotationID).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (s *GormStore) DeleteRefreshRecord(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.RefreshTokenRecord{}).Error
}

// ConsumeRefreshRecords is a single DELETE statement, so the database decides
// which of two concurrent consumers wins; the loser sees zero rows affected.
func (s *GormStore) ConsumeRefreshRecords(ctx context.Context, rotationID string) (int64, error) {
	res := s.db.WithContext(ctx).Where("rotation_id = ?", rotationID).Delete(&models.RefreshTokenRecord{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
