// Package auth implements the session lifecycle: sign-up/sign-in issuance,
// refresh rotation, identity resolution and revocation. Persistence and token
// signing are injected, the package holds no global state.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/prysmhq/prysm_backend/internal/logging"
	"github.com/prysmhq/prysm_backend/internal/models"
	"github.com/prysmhq/prysm_backend/internal/store"
	"github.com/prysmhq/prysm_backend/internal/token"
	"github.com/prysmhq/prysm_backend/internal/utils"
)

// Identity is the authenticated principal attached to a request. It comes
// straight from the access token's claims: no store lookup per request, at the
// cost of Name going stale until the next login or rotation.
type Identity struct {
	ID    string
	Email string
	Name  string
}

// TokenOutput pairs a raw signed token with the expiry embedded in it. Cookie
// lifetimes are derived from ExpiresAt so cookie and token never drift.
type TokenOutput struct {
	Raw       string
	ExpiresAt time.Time
}

// Session is the result of any successful issuance path.
type Session struct {
	User    models.SafeUser
	Access  TokenOutput
	Refresh TokenOutput
}

// bcrypt hash of an unguessable filler password. Sign-in verifies against it
// when the email is unknown so both failure paths cost one bcrypt comparison.
const fillerHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type Service struct {
	users  store.UserStore
	tokens store.TokenStore
	codec  *token.Codec
	log    logging.Logger
	now    func() time.Time
}

func NewService(users store.UserStore, tokens store.TokenStore, codec *token.Codec, log logging.Logger) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		codec:  codec,
		log:    log,
		now:    time.Now,
	}
}

// WithClock replaces the service clock. Tests use this to force record expiry.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// SignUp creates a user and opens a session for it. The raw password is hashed
// immediately and never stored or logged.
func (s *Service) SignUp(ctx context.Context, name, email, password string) (*Session, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, name, email, hash)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return nil, ErrEmailInUse
		}
		return nil, s.storeFailure(ctx, "create user", err)
	}

	return s.issueSession(ctx, user)
}

// SignIn verifies credentials and opens a session. Unknown email and wrong
// password return the identical ErrInvalidCredentials.
func (s *Service) SignIn(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.CheckPassword(fillerHash, password)
			return nil, ErrInvalidCredentials
		}
		return nil, s.storeFailure(ctx, "find user by email", err)
	}

	if !utils.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return s.issueSession(ctx, user)
}

// issueSession is the shared issuance sequence: fresh rotation id, mint both
// envelopes, persist the hashed refresh token keyed by the rotation id.
func (s *Service) issueSession(ctx context.Context, user *models.User) (*Session, error) {
	rotationID := uuid.NewString()

	accessRaw, accessExp, err := s.codec.Issue(token.Access, token.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("signing access token: %w", err)
	}

	refreshRaw, refreshExp, err := s.codec.Issue(token.Refresh, token.Claims{
		UserID:     user.ID,
		Email:      user.Email,
		RotationID: rotationID,
	})
	if err != nil {
		return nil, fmt.Errorf("signing refresh token: %w", err)
	}

	if _, err := s.tokens.CreateRefreshRecord(ctx, user.ID, utils.SHA256Hex(refreshRaw), rotationID, refreshExp); err != nil {
		return nil, s.storeFailure(ctx, "create refresh record", err)
	}

	return &Session{
		User:    user.Safe(),
		Access:  TokenOutput{Raw: accessRaw, ExpiresAt: accessExp},
		Refresh: TokenOutput{Raw: refreshRaw, ExpiresAt: refreshExp},
	}, nil
}

// Rotate exchanges a valid refresh token for a fresh session. The old record
// is consumed before the replacement is issued, so a replay of the same token
// loses the race and fails. Every rejection surfaces as ErrUnauthenticated.
func (s *Service) Rotate(ctx context.Context, rawRefresh string) (*Session, error) {
	if rawRefresh == "" {
		return nil, s.reject(ctx, "refresh token missing")
	}

	claims, err := s.codec.Verify(token.Refresh, rawRefresh)
	if err != nil {
		return nil, s.reject(ctx, "refresh envelope rejected", "cause", err)
	}
	if claims.RotationID == "" {
		return nil, s.reject(ctx, "refresh token carries no rotation id")
	}

	rec, err := s.tokens.FindRefreshRecordByRotationID(ctx, claims.RotationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, s.reject(ctx, "refresh record not found", "rotation_id", claims.RotationID)
		}
		return nil, s.storeFailure(ctx, "find refresh record", err)
	}
	if !rec.ExpiresAt.After(s.now()) {
		return nil, s.reject(ctx, "refresh record expired", "rotation_id", claims.RotationID)
	}

	if subtle.ConstantTimeCompare([]byte(utils.SHA256Hex(rawRefresh)), []byte(rec.TokenHash)) != 1 {
		return nil, s.reject(ctx, "refresh token hash mismatch", "rotation_id", claims.RotationID)
	}

	consumed, err := s.tokens.ConsumeRefreshRecords(ctx, claims.RotationID)
	if err != nil {
		return nil, s.storeFailure(ctx, "consume refresh record", err)
	}
	if consumed == 0 {
		// A concurrent rotation on the same token got here first.
		return nil, s.reject(ctx, "refresh record already consumed", "rotation_id", claims.RotationID)
	}

	user, err := s.users.FindUserByID(ctx, rec.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, s.reject(ctx, "subject no longer exists", "user_id", rec.UserID)
		}
		return nil, s.storeFailure(ctx, "find user by id", err)
	}

	return s.issueSession(ctx, user)
}

// SignOut revokes the refresh record named by the token, if any. The token is
// decoded without verification: an expired or malformed token still identifies
// the rotation id to purge. Idempotent, absent sessions are not an error.
func (s *Service) SignOut(ctx context.Context, rawRefresh string) error {
	if rawRefresh == "" {
		return nil
	}
	claims, err := s.codec.DecodeUnverified(rawRefresh)
	if err != nil || claims.RotationID == "" {
		return nil
	}
	if _, err := s.tokens.ConsumeRefreshRecords(ctx, claims.RotationID); err != nil {
		return s.storeFailure(ctx, "revoke refresh record", err)
	}
	return nil
}

// Resolve verifies an access token and returns the identity it asserts. No
// store access, the claims are authoritative for the token's lifetime.
func (s *Service) Resolve(ctx context.Context, rawAccess string) (*Identity, error) {
	if rawAccess == "" {
		return nil, s.reject(ctx, "access token missing")
	}
	claims, err := s.codec.Verify(token.Access, rawAccess)
	if err != nil {
		return nil, s.reject(ctx, "access envelope rejected", "cause", err)
	}
	return &Identity{ID: claims.UserID, Email: claims.Email, Name: claims.Name}, nil
}

// CurrentUser loads the live profile for a resolved identity.
func (s *Service) CurrentUser(ctx context.Context, id string) (models.SafeUser, error) {
	user, err := s.users.FindUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.SafeUser{}, ErrUserNotFound
		}
		return models.SafeUser{}, s.storeFailure(ctx, "find user by id", err)
	}
	return user.Safe(), nil
}

// UpdateProfile changes the mutable profile fields of a user.
func (s *Service) UpdateProfile(ctx context.Context, id, name string) (models.SafeUser, error) {
	user, err := s.users.UpdateUserName(ctx, id, name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.SafeUser{}, ErrUserNotFound
		}
		return models.SafeUser{}, s.storeFailure(ctx, "update user", err)
	}
	return user.Safe(), nil
}

func (s *Service) reject(ctx context.Context, reason string, args ...any) error {
	s.log.Warn(ctx, "authentication rejected", append([]any{"reason", reason}, args...)...)
	return ErrUnauthenticated
}

func (s *Service) storeFailure(ctx context.Context, op string, err error) error {
	s.log.Error(ctx, "store failure", "op", op, "err", err)
	return fmt.Errorf("%w: %s", ErrStoreUnavailable, op)
}
