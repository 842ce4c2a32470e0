// Package store persists user credentials and refresh-token state. The auth
// service only sees the two interfaces below, any engine with an atomic
// conditional delete can satisfy TokenStore.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/prysmhq/prysm_backend/internal/models"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already in use")
)

type UserStore interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	// CreateUser returns ErrDuplicateEmail on collision. Uniqueness is enforced
	// by the storage engine, not a pre-check, so concurrent sign-ups with the
	// same email cannot both succeed.
	CreateUser(ctx context.Context, name, email, passwordHash string) (*models.User, error)
	UpdateUserName(ctx context.Context, id, name string) (*models.User, error)
}

type TokenStore interface {
	CreateRefreshRecord(ctx context.Context, userID, tokenHash, rotationID string, expiresAt time.Time) (*models.RefreshTokenRecord, error)
	FindRefreshRecordByRotationID(ctx context.Context, rotationID string) (*models.RefreshTokenRecord, error)
	DeleteRefreshRecord(ctx context.Context, id string) error
	// ConsumeRefreshRecords deletes every record for rotationID and reports how
	// many existed. The delete must be atomic with respect to concurrent calls
	// for the same rotationID: of two simultaneous consumers exactly one may
	// observe a non-zero count. Rotation keys its exactly-once guarantee off
	// this.
	ConsumeRefreshRecords(ctx context.Context, rotationID string) (int64, error)
}
