package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/prysmhq/prysm_backend/internal/models"
)

func newTestStore(t *testing.T) *GormStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.RefreshTokenRecord{}))
	return NewGormStore(db)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u, err := s.CreateUser(ctx, "Ada", "ada@x.com", "hash1")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)

	_, err = s.CreateUser(ctx, "Other Ada", "ada@x.com", "hash2")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestFindUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateUser(ctx, "Ada", "ada@x.com", "hash1")
	require.NoError(t, err)

	byEmail, err := s.FindUserByEmail(ctx, "ada@x.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byID, err := s.FindUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@x.com", byID.Email)

	_, err = s.FindUserByEmail(ctx, "nobody@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.FindUserByID(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateUserName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateUser(ctx, "Ada", "ada@x.com", "hash1")
	require.NoError(t, err)

	updated, err := s.UpdateUserName(ctx, created.ID, "Ada L.")
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", updated.Name)
	assert.Equal(t, "hash1", updated.PasswordHash)

	_, err = s.UpdateUserName(ctx, "nope", "x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRefreshRecordLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	expires := time.Now().Add(24 * time.Hour).UTC()

	rec, err := s.CreateRefreshRecord(ctx, "u1", "tokenhash", "rot-1", expires)
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)

	found, err := s.FindRefreshRecordByRotationID(ctx, "rot-1")
	require.NoError(t, err)
	assert.Equal(t, rec.ID, found.ID)
	assert.Equal(t, "tokenhash", found.TokenHash)
	assert.Equal(t, "u1", found.UserID)

	_, err = s.FindRefreshRecordByRotationID(ctx, "rot-unknown")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.DeleteRefreshRecord(ctx, rec.ID))
	_, err = s.FindRefreshRecordByRotationID(ctx, "rot-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConsumeRefreshRecords(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	expires := time.Now().Add(24 * time.Hour).UTC()

	_, err := s.CreateRefreshRecord(ctx, "u1", "tokenhash", "rot-1", expires)
	require.NoError(t, err)

	n, err := s.ConsumeRefreshRecords(ctx, "rot-1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	// Second consume finds nothing: the record is gone, a replayed old token
	// cannot be rotated again.
	n, err = s.ConsumeRefreshRecords(ctx, "rot-1")
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)
}

func TestExpiredRecordStillReadable(t *testing.T) {
	// The store does not hide expired rows; callers must check ExpiresAt so the
	// check holds even before physical cleanup runs.
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateRefreshRecord(ctx, "u1", "tokenhash", "rot-old", time.Now().Add(-time.Hour).UTC())
	require.NoError(t, err)

	found, err := s.FindRefreshRecordByRotationID(ctx, "rot-old")
	require.NoError(t, err)
	assert.True(t, found.ExpiresAt.Before(time.Now()))
}
