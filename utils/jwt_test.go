package utils

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManagerRoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	token, expiresAt, err := m.Generate(7, "leo")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "leo", claims.Username)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenManagerRejectsForeignSecret(t *testing.T) {
	token, _, err := NewTokenManager("one", time.Hour).Generate(1, "a")
	require.NoError(t, err)
	_, err = NewTokenManager("two", time.Hour).Parse(token)
	assert.Error(t, err)
}

func TestTokenManagerRejectsExpired(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	m.ttl = -time.Minute
	token, _, err := m.Generate(1, "a")
	require.NoError(t, err)
	_, err = m.Parse(token)
	assert.Error(t, err)
}

func TestTokenBlacklist(t *testing.T) {
	ctx := context.Background()
	b := NewTokenBlacklist(NewMemoryCache())

	assert.False(t, b.IsRevoked(ctx, "id-1"))
	b.Revoke(ctx, "id-1", time.Now().Add(time.Hour))
	assert.True(t, b.IsRevoked(ctx, "id-1"))

	b.Revoke(ctx, "id-2", time.Now().Add(-time.Hour))
	assert.False(t, b.IsRevoked(ctx, "id-2"), "already expired tokens are not stored")
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "s3cret!"))
	assert.False(t, CheckPassword(hash, "other"))
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "hi", Sanitize("  <script>alert(1)</script>hi  "))
	assert.Equal(t, "<b>bold</b>", Sanitize("<b>bold</b>"))
}
