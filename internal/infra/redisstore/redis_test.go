package redisstore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These run against a real server; set REDIS_TEST_URL to enable them.
func connect(t *testing.T) *Store {
	t.Helper()

	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		t.Skip("REDIS_TEST_URL not set")
	}

	s, err := Connect(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRevocation(t *testing.T) {
	s := connect(t)
	ctx := context.Background()
	jti := uuid.NewString()

	revoked, err := s.IsRevoked(ctx, jti)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, s.Revoke(ctx, jti, time.Minute))

	revoked, err = s.IsRevoked(ctx, jti)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestTryLockIsExclusive(t *testing.T) {
	s := connect(t)
	ctx := context.Background()
	name := "test-" + uuid.NewString()

	release, ok, err := s.TryLock(ctx, name, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = s.TryLock(ctx, name, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	release()

	release, ok, err = s.TryLock(ctx, name, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	release()
}

func TestConnectRejectsBadURL(t *testing.T) {
	_, err := Connect(context.Background(), "not a url")
	assert.Error(t, err)
}
