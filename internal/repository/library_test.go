package repository_test

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

func TestWatchlistCreateDuplicate(t *testing.T) {
	repos, cat := setup(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, repos, "alice", "")

	item := &model.UserWatchlist{UserID: user.ID}
	item.SetContent(model.MovieRef(cat.Movies["Inception"].ID))
	require.NoError(t, repos.Watchlist.Create(ctx, item))
	assert.NotZero(t, item.ID)

	dup := &model.UserWatchlist{UserID: user.ID}
	dup.SetContent(model.MovieRef(cat.Movies["Inception"].ID))
	assert.ErrorIs(t, repos.Watchlist.Create(ctx, dup), repository.ErrDuplicateEntry)

	show := &model.UserWatchlist{UserID: user.ID}
	show.SetContent(model.TVShowRef(cat.TVShows["Dark"].ID))
	require.NoError(t, repos.Watchlist.Create(ctx, show))
}

func TestWatchlistScopedToUser(t *testing.T) {
	repos, cat := setup(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, repos, "alice", "")
	bob := testutil.CreateUser(t, repos, "bob", "")

	item := &model.UserWatchlist{UserID: alice.ID}
	item.SetContent(model.TVShowRef(cat.TVShows["Dark"].ID))
	require.NoError(t, repos.Watchlist.Create(ctx, item))

	got, err := repos.Watchlist.FindByID(ctx, alice.ID, item.ID)
	require.NoError(t, err)
	require.NotNil(t, got.TVShow)
	assert.Equal(t, "Dark", got.TVShow.Title)
	assert.Len(t, got.TVShow.Genres, 3)
	assert.Nil(t, got.Movie)
	assert.Equal(t, model.TVShowRef(cat.TVShows["Dark"].ID), got.Content())

	_, err = repos.Watchlist.FindByID(ctx, bob.ID, item.ID)
	assert.ErrorIs(t, err, repository.ErrRecordNotFound)
	assert.ErrorIs(t, repos.Watchlist.Delete(ctx, bob.ID, item.ID), repository.ErrRecordNotFound)

	list, err := repos.Watchlist.ListByUser(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, repos.Watchlist.Delete(ctx, alice.ID, item.ID))
	list, err = repos.Watchlist.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestWatchlistHistory(t *testing.T) {
	repos, cat := setup(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, repos, "alice", "")

	for _, title := range []string{"The Shawshank Redemption", "The Hangover"} {
		item := &model.UserWatchlist{UserID: user.ID}
		item.SetContent(model.MovieRef(cat.Movies[title].ID))
		require.NoError(t, repos.Watchlist.Create(ctx, item))
	}

	ids, err := repos.Watchlist.ContentIDs(ctx, user.ID, model.KindMovie)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{cat.Movies["The Shawshank Redemption"].ID, cat.Movies["The Hangover"].ID}, ids)

	genreIDs, err := repos.Watchlist.GenreIDs(ctx, user.ID, model.KindMovie)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{cat.Genres["Drama"].ID, cat.Genres["Comedy"].ID}, genreIDs)

	showIDs, err := repos.Watchlist.ContentIDs(ctx, user.ID, model.KindTVShow)
	require.NoError(t, err)
	assert.Empty(t, showIDs)
}

func TestWatchlistUpdateWatched(t *testing.T) {
	repos, cat := setup(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, repos, "alice", "")

	item := &model.UserWatchlist{UserID: user.ID}
	item.SetContent(model.MovieRef(cat.Movies["Iron Man"].ID))
	require.NoError(t, repos.Watchlist.Create(ctx, item))

	now := time.Now().UTC().Truncate(time.Second)
	item.IsWatched = true
	item.WatchedAt = &now
	require.NoError(t, repos.Watchlist.UpdateWatched(ctx, item))

	got, err := repos.Watchlist.FindByID(ctx, user.ID, item.ID)
	require.NoError(t, err)
	assert.True(t, got.IsWatched)
	require.NotNil(t, got.WatchedAt)
	assert.True(t, now.Equal(*got.WatchedAt))
}

func TestRatingLifecycle(t *testing.T) {
	repos, cat := setup(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, repos, "alice", "")

	rating := &model.UserRating{UserID: user.ID, Rating: 4, Review: "great"}
	rating.SetContent(model.MovieRef(cat.Movies["Inception"].ID))
	require.NoError(t, repos.Rating.Create(ctx, rating))

	again := &model.UserRating{UserID: user.ID, Rating: 2}
	again.SetContent(model.MovieRef(cat.Movies["Inception"].ID))
	assert.ErrorIs(t, repos.Rating.Create(ctx, again), repository.ErrDuplicateEntry)

	rating.Rating = 5
	rating.Review = "even better"
	require.NoError(t, repos.Rating.Update(ctx, rating))

	got, err := repos.Rating.FindByID(ctx, user.ID, rating.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Rating)
	assert.Equal(t, "even better", got.Review)
	require.NotNil(t, got.Movie)
	assert.Equal(t, "Inception", got.Movie.Title)

	list, err := repos.Rating.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repos.Rating.Delete(ctx, user.ID, rating.ID))
	assert.ErrorIs(t, repos.Rating.Delete(ctx, user.ID, rating.ID), repository.ErrRecordNotFound)
}
