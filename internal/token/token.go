// Package token signs and verifies the compact envelopes carried in the auth
// cookies. Access and refresh tokens use separate secrets so one kind can never
// be replayed as the other.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Kind int

const (
	Access Kind = iota
	Refresh
)

func (k Kind) String() string {
	if k == Refresh {
		return "refresh"
	}
	return "access"
}

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

type Claims struct {
	UserID     string `json:"user_id"`
	Email      string `json:"email"`
	Name       string `json:"name,omitempty"`
	RotationID string `json:"rotation_id,omitempty"`
	jwt.RegisteredClaims
}

type Codec struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewCodec(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Codec {
	return &Codec{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
}

// WithClock replaces the codec's clock. Tests use this to force expiry.
func (c *Codec) WithClock(now func() time.Time) *Codec {
	c.now = now
	return c
}

func (c *Codec) TTL(kind Kind) time.Duration {
	if kind == Refresh {
		return c.refreshTTL
	}
	return c.accessTTL
}

func (c *Codec) secret(kind Kind) []byte {
	if kind == Refresh {
		return c.refreshSecret
	}
	return c.accessSecret
}

// Issue serializes claims into a signed envelope expiring after the TTL
// configured for kind. The returned expiry is the one embedded in the token,
// callers derive cookie lifetimes from it rather than recomputing.
func (c *Codec) Issue(kind Kind, claims Claims) (string, time.Time, error) {
	now := c.now().UTC()
	expiresAt := now.Add(c.TTL(kind))

	claims.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    "prysm_backend",
		Subject:   claims.UserID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret(kind))
	if err != nil {
		return "", time.Time{}, err
	}
	return raw, expiresAt, nil
}

// Verify checks signature and expiry against the kind-specific secret.
// ErrTokenExpired and ErrTokenInvalid are distinguished for logging only;
// callers collapse both to an unauthenticated result.
func (c *Codec) Verify(kind Kind, raw string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims,
		func(t *jwt.Token) (interface{}, error) {
			return c.secret(kind), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !tok.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// DecodeUnverified extracts claims without checking the signature or expiry.
// Sign-out uses it: even a stale token still unambiguously names the rotation
// id to purge.
func (c *Codec) DecodeUnverified(raw string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
