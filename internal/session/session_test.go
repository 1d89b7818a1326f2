package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestManager(t *testing.T, now *time.Time) *Manager {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	m := NewManager("test-secret", hash, time.Hour, NewMemoryRevocations())
	m.now = func() time.Time { return *now }
	m.revocations.(*MemoryRevocations).now = m.now
	return m
}

func TestLoginAndVerify(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	m := newTestManager(t, &now)

	_, err := m.Login(ctx, "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	tok, err := m.Login(ctx, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), tok.ExpiresAt)

	claims, err := m.Verify(ctx, tok.Value)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.NotEmpty(t, claims.ID)

	now = now.Add(2 * time.Hour)
	_, err = m.Verify(ctx, tok.Value)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutRevokes(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	m := newTestManager(t, &now)

	tok, err := m.Login(ctx, "s3cret")
	require.NoError(t, err)

	require.NoError(t, m.Logout(ctx, tok.Value))

	_, err = m.Verify(ctx, tok.Value)
	assert.ErrorIs(t, err, ErrRevokedToken)

	other, err := m.Login(ctx, "s3cret")
	require.NoError(t, err)
	_, err = m.Verify(ctx, other.Value)
	assert.NoError(t, err)
}

func TestVerifyRejectsForeignTokens(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	m := newTestManager(t, &now)

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        "x",
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	_, err = m.Verify(ctx, forged)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Verify(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestHashPassword(t *testing.T) {
	h, err := HashPassword("plain", "")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword(h, []byte("plain")))

	_, err = HashPassword("", "")
	assert.Error(t, err)

	_, err = HashPassword("", "not-bcrypt")
	assert.Error(t, err)
}
