package session

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

const adminSubject = "admin"

var (
	ErrInvalidCredentials = httperr.New(httperr.KindUnauthorized, "invalid_credentials", "Invalid password.")
	ErrInvalidToken       = httperr.New(httperr.KindUnauthorized, "invalid_token", "Session is invalid or expired.")
	ErrRevokedToken       = httperr.New(httperr.KindUnauthorized, "revoked_token", "Session has been closed.")
)

// RevocationStore remembers logged-out token ids until they would expire
// anyway.
type RevocationStore interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type Claims struct {
	jwt.RegisteredClaims
}

type Token struct {
	Value     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Manager issues signed admin session tokens in exchange for the shop's
// shared admin password.
type Manager struct {
	secret       []byte
	passwordHash []byte
	ttl          time.Duration
	revocations  RevocationStore
	now          func() time.Time
}

func NewManager(secret string, passwordHash []byte, ttl time.Duration, revocations RevocationStore) *Manager {
	return &Manager{
		secret:       []byte(secret),
		passwordHash: passwordHash,
		ttl:          ttl,
		revocations:  revocations,
		now:          time.Now,
	}
}

// HashPassword resolves the configured credential. A ready bcrypt hash wins
// over a plain password.
func HashPassword(plain, hash string) ([]byte, error) {
	if hash != "" {
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return nil, fmt.Errorf("ADMIN_PASSWORD_HASH is not a bcrypt hash: %w", err)
		}
		return []byte(hash), nil
	}
	if plain == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH must be set")
	}
	return bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
}

func (m *Manager) Login(ctx context.Context, password string) (*Token, error) {
	if len(m.passwordHash) == 0 {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(m.passwordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := m.now()
	exp := now.Add(m.ttl)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   adminSubject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	return &Token{Value: signed, ExpiresAt: exp}, nil
}

func (m *Manager) Verify(ctx context.Context, raw string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil || !token.Valid || claims.Subject != adminSubject || claims.ID == "" {
		return nil, ErrInvalidToken
	}

	if m.revocations != nil {
		revoked, err := m.revocations.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("check session revocation: %w", err)
		}
		if revoked {
			return nil, ErrRevokedToken
		}
	}

	return claims, nil
}

// Logout revokes the token for the rest of its lifetime.
func (m *Manager) Logout(ctx context.Context, raw string) error {
	claims, err := m.Verify(ctx, raw)
	if err != nil {
		return err
	}
	if m.revocations == nil {
		return nil
	}

	ttl := claims.ExpiresAt.Time.Sub(m.now())
	if ttl <= 0 {
		return nil
	}

	return m.revocations.Revoke(ctx, claims.ID, ttl)
}
