package users

import (
	"context"
	"errors"
	"testing"

	"cinerate/proj/internal/domain/fields"
	"cinerate/proj/internal/domain/models"
	"cinerate/proj/internal/lib/logger"
	"cinerate/proj/internal/storage/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats(t *testing.T) {
	ctx := context.Background()
	store := memory.New(memory.NewDB())
	const userID = 3
	for i, rating := range []int{5, 4, 4} {
		movie, err := store.Movie.Insert(ctx, &models.Movie{Title: "Movie"})
		require.NoError(t, err)
		_, err = store.Review.Insert(ctx, &models.Review{UserID: userID, MovieID: movie.ID, Rating: rating, ReviewText: "seeded review"})
		require.NoError(t, err)
		if i < 2 {
			_, err = store.Watchlist.Insert(ctx, userID, movie.ID)
			require.NoError(t, err)
		}
	}
	s := New(logger.Discard(), store.Review, store.Watchlist)

	stats, err := s.Stats(ctx, userID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.TotalReviews)
	assert.EqualValues(t, 2, stats.WatchlistCount)
	assert.Equal(t, fields.AverageRating(4.3), stats.AverageRating)
	assert.Equal(t, map[int]int64{1: 0, 2: 0, 3: 0, 4: 2, 5: 1}, stats.ReviewsByRating)

	empty, err := s.Stats(ctx, 99)
	require.NoError(t, err)
	assert.Zero(t, empty.TotalReviews)
	assert.Equal(t, fields.AverageRating(0), empty.AverageRating)
}

type failingWatchlist struct{}

func (failingWatchlist) Count(context.Context, int64) (int64, error) {
	return 0, errors.New("db down")
}

func TestStats_PropagatesErrors(t *testing.T) {
	store := memory.New(memory.NewDB())
	s := New(logger.Discard(), store.Review, failingWatchlist{})
	_, err := s.Stats(context.Background(), 1)
	assert.EqualError(t, err, "db down")
}
