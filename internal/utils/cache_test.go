package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLCacheExpiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewTTLCache[string](4, time.Minute)
	c.now = func() time.Time { return now }

	c.Set("genres", "payload")
	v, ok := c.Get("genres")
	assert.True(t, ok)
	assert.Equal(t, "payload", v)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("genres")
	assert.False(t, ok)
	assert.Zero(t, c.storage.Len())
}

func TestTTLCacheEviction(t *testing.T) {
	c := NewTTLCache[int](2, time.Hour)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 2, c.storage.Len())
}
