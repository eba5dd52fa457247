package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	lookups int
}

func (s *countingStore) Revoke(_ context.Context, jti string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[jti] = expiresAt
	return nil
}

func (s *countingStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lookups++
	_, ok := s.revoked[jti]
	return ok, nil
}

func (s *countingStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for jti, exp := range s.revoked {
		if exp.Before(now) {
			delete(s.revoked, jti)
			n++
		}
	}
	return n, nil
}

func TestRevocationListCachesHits(t *testing.T) {
	store := &countingStore{revoked: map[string]time.Time{}}
	list := NewRevocationList(store)
	ctx := context.Background()

	revoked, err := list.IsRevoked(ctx, "a")
	require.NoError(t, err)
	assert.False(t, revoked)
	revoked, err = list.IsRevoked(ctx, "a")
	require.NoError(t, err)
	assert.False(t, revoked)
	assert.Equal(t, 2, store.lookups)

	require.NoError(t, list.Revoke(ctx, "a", time.Now().Add(time.Hour)))
	revoked, err = list.IsRevoked(ctx, "a")
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.Equal(t, 2, store.lookups)

	store.revoked["b"] = time.Now().Add(time.Hour)
	revoked, err = list.IsRevoked(ctx, "b")
	require.NoError(t, err)
	assert.True(t, revoked)
	_, _ = list.IsRevoked(ctx, "b")
	assert.Equal(t, 3, store.lookups)
}

func TestCleanupRunOnce(t *testing.T) {
	store := &countingStore{revoked: map[string]time.Time{
		"old": time.Now().Add(-time.Hour),
		"new": time.Now().Add(time.Hour),
	}}
	NewCleanupService(store).RunOnce(context.Background())
	assert.Len(t, store.revoked, 1)
	assert.Contains(t, store.revoked, "new")
}

func TestCleanupStopsWithContext(t *testing.T) {
	store := &countingStore{revoked: map[string]time.Time{"old": time.Now().Add(-time.Hour)}}
	svc := NewCleanupService(store)
	svc.interval = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	svc.Start(ctx)
	assert.Eventually(t, func() bool {
		store.mu.Lock()
		defer store.mu.Unlock()
		return len(store.revoked) == 0
	}, time.Second, 5*time.Millisecond)
	cancel()
}
