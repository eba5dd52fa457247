package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/cinestream/internal/model"
)

func TestTokenIssuer(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Minute, time.Hour)
	user := &model.User{ID: 7, Username: "alice"}

	pair, err := issuer.Issue(user)
	require.NoError(t, err)

	claims, err := issuer.Parse(pair.Access, TokenTypeAccess)
	require.NoError(t, err)
	assert.EqualValues(t, 7, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.NotEmpty(t, claims.ID)

	refresh, err := issuer.Parse(pair.Refresh, TokenTypeRefresh)
	require.NoError(t, err)
	assert.NotEqual(t, claims.ID, refresh.ID)

	_, err = issuer.Parse(pair.Access, TokenTypeRefresh)
	assert.Error(t, err)

	other := NewTokenIssuer("other-secret", time.Minute, time.Hour)
	_, err = other.Parse(pair.Access, TokenTypeAccess)
	assert.Error(t, err)
}

func TestTokenExpiry(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Minute, time.Hour)
	start := time.Now()
	issuer.now = func() time.Time { return start }

	access, err := issuer.IssueAccess(1, "alice")
	require.NoError(t, err)

	issuer.now = func() time.Time { return start.Add(2 * time.Minute) }
	_, err = issuer.Parse(access, TokenTypeAccess)
	assert.Error(t, err)
}
