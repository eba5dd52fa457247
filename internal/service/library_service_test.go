package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/cinestream/internal/model"
	"github.com/user/cinestream/internal/repository"
	"github.com/user/cinestream/internal/testutil"
)

func newLibrary(t *testing.T) (*LibraryService, *repository.Repositories, *testutil.Catalog) {
	t.Helper()
	repos := repository.NewRepositories(testutil.NewDB(t))
	cat := testutil.SeedCatalog(t, repos)
	svc := NewLibraryService(repos)
	svc.now = func() time.Time { return time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC) }
	return svc, repos, cat
}

func uintPtr(v uint) *uint { return &v }

func TestContentRefFrom(t *testing.T) {
	ref, err := ContentRefFrom(uintPtr(3), nil)
	require.NoError(t, err)
	assert.Equal(t, model.MovieRef(3), ref)

	ref, err = ContentRefFrom(nil, uintPtr(4))
	require.NoError(t, err)
	assert.Equal(t, model.TVShowRef(4), ref)

	_, err = ContentRefFrom(uintPtr(3), uintPtr(4))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Cannot provide both movie_id and tv_show_id", verr.Fields["non_field_errors"])

	_, err = ContentRefFrom(nil, nil)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Either movie_id or tv_show_id must be provided", verr.Fields["non_field_errors"])
}

func TestAddToWatchlist(t *testing.T) {
	svc, repos, cat := newLibrary(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, repos, "alice", "")

	item, err := svc.AddToWatchlist(ctx, user.ID, model.MovieRef(cat.Movies["Inception"].ID), false)
	require.NoError(t, err)
	require.NotNil(t, item.Movie)
	assert.Equal(t, "Inception", item.Movie.Title)
	assert.False(t, item.IsWatched)
	assert.Nil(t, item.WatchedAt)

	_, err = svc.AddToWatchlist(ctx, user.ID, model.MovieRef(cat.Movies["Inception"].ID), true)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.AddToWatchlist(ctx, user.ID, model.MovieRef(9999), false)
	assert.ErrorIs(t, err, ErrNotFound)

	watched, err := svc.AddToWatchlist(ctx, user.ID, model.TVShowRef(cat.TVShows["Dark"].ID), true)
	require.NoError(t, err)
	assert.True(t, watched.IsWatched)
	require.NotNil(t, watched.WatchedAt)
	assert.True(t, svc.now().Equal(*watched.WatchedAt))

	items, err := svc.ListWatchlist(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestUpdateWatchlistEntry(t *testing.T) {
	svc, repos, cat := newLibrary(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, repos, "alice", "")

	item, err := svc.AddToWatchlist(ctx, user.ID, model.MovieRef(cat.Movies["Iron Man"].ID), false)
	require.NoError(t, err)

	updated, err := svc.UpdateWatchlistEntry(ctx, user.ID, item.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.IsWatched)
	require.NotNil(t, updated.WatchedAt)

	first := *updated.WatchedAt
	svc.now = func() time.Time { return first.Add(time.Hour) }
	again, err := svc.UpdateWatchlistEntry(ctx, user.ID, item.ID, true)
	require.NoError(t, err)
	require.NotNil(t, again.WatchedAt)
	assert.True(t, first.Equal(*again.WatchedAt), "re-marking as watched keeps the original time")

	cleared, err := svc.UpdateWatchlistEntry(ctx, user.ID, item.ID, false)
	require.NoError(t, err)
	assert.False(t, cleared.IsWatched)
	assert.Nil(t, cleared.WatchedAt)

	stored, err := svc.GetWatchlistEntry(ctx, user.ID, item.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.WatchedAt)
}

func TestWatchlistIsPrivate(t *testing.T) {
	svc, repos, cat := newLibrary(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, repos, "alice", "")
	bob := testutil.CreateUser(t, repos, "bob", "")

	item, err := svc.AddToWatchlist(ctx, alice.ID, model.MovieRef(cat.Movies["Inception"].ID), false)
	require.NoError(t, err)

	_, err = svc.GetWatchlistEntry(ctx, bob.ID, item.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.UpdateWatchlistEntry(ctx, bob.ID, item.ID, true)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.RemoveFromWatchlist(ctx, bob.ID, item.ID), ErrNotFound)

	require.NoError(t, svc.RemoveFromWatchlist(ctx, alice.ID, item.ID))
	assert.ErrorIs(t, svc.RemoveFromWatchlist(ctx, alice.ID, item.ID), ErrNotFound)
}

func TestRateContent(t *testing.T) {
	svc, repos, cat := newLibrary(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, repos, "alice", "")
	ref := model.TVShowRef(cat.TVShows["Breaking Bad"].ID)

	for _, score := range []int{0, 6, -1} {
		_, err := svc.RateContent(ctx, user.ID, ref, score, "")
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "score %d", score)
		assert.Contains(t, verr.Fields, "rating")
	}

	rating, err := svc.RateContent(ctx, user.ID, ref, 5, "masterpiece")
	require.NoError(t, err)
	require.NotNil(t, rating.TVShow)
	assert.Equal(t, "Breaking Bad", rating.TVShow.Title)

	_, err = svc.RateContent(ctx, user.ID, ref, 4, "")
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.RateContent(ctx, user.ID, model.TVShowRef(9999), 4, "")
	assert.ErrorIs(t, err, ErrNotFound)

	review := "still great"
	updated, err := svc.UpdateRating(ctx, user.ID, rating.ID, nil, &review)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)
	assert.Equal(t, review, updated.Review)

	bad := 9
	_, err = svc.UpdateRating(ctx, user.ID, rating.ID, &bad, nil)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	list, err := svc.ListRatings(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, review, list[0].Review)

	require.NoError(t, svc.DeleteRating(ctx, user.ID, rating.ID))
	_, err = svc.GetRating(ctx, user.ID, rating.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
