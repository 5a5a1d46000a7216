package cache

import (
	"testing"
	"time"

	"auth-gate/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestSessionCache_SetAndGet(t *testing.T) {
	c := NewSessionCache(5 * time.Minute)

	c.Set("token-1", domain.CachedSession{
		UserID: "user-1",
		Email:  "test@example.com",
	})

	got, found := c.Get("token-1")
	assert.True(t, found)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, "test@example.com", got.Email)
}

func TestSessionCache_NotFound(t *testing.T) {
	c := NewSessionCache(5 * time.Minute)

	got, found := c.Get("nonexistent")
	assert.False(t, found)
	assert.Nil(t, got)
}

func TestSessionCache_Delete(t *testing.T) {
	c := NewSessionCache(5 * time.Minute)

	c.Set("token-del", domain.CachedSession{UserID: "user-1"})
	c.Delete("token-del")

	got, found := c.Get("token-del")
	assert.False(t, found)
	assert.Nil(t, got)

	// Deleting an absent token is a no-op.
	c.Delete("token-del")
}

func TestSessionCache_Expiration(t *testing.T) {
	c := NewSessionCache(100 * time.Millisecond)

	c.Set("token-exp", domain.CachedSession{UserID: "user-1"})

	// Before expiry
	got, found := c.Get("token-exp")
	assert.True(t, found)
	assert.Equal(t, "user-1", got.UserID)

	// After expiry
	time.Sleep(150 * time.Millisecond)
	got, found = c.Get("token-exp")
	assert.False(t, found)
	assert.Nil(t, got)
}
