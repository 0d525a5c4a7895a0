package memory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"cinerate/proj/internal/domain/fields"
	"cinerate/proj/internal/domain/filters"
	"cinerate/proj/internal/domain/models"
	"cinerate/proj/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModels(t *testing.T) *Models {
	t.Helper()
	db := NewDB()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var tick int64
	db.now = func() time.Time {
		return base.Add(time.Duration(atomic.AddInt64(&tick, 1)) * time.Second)
	}
	return New(db)
}

func TestReviewModel_ConcurrentInsertSamePair(t *testing.T) {
	m := newTestModels(t)
	ctx := context.Background()
	movie, err := m.Movie.Insert(ctx, &models.Movie{Title: "Race"})
	require.NoError(t, err)

	const attempts = 50
	var wg sync.WaitGroup
	var created, conflicts atomic.Int32
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.Review.Insert(ctx, &models.Review{UserID: 1, MovieID: movie.ID, Rating: 3, ReviewText: "same user again"})
			switch {
			case err == nil:
				created.Add(1)
			case errors.Is(err, storage.ErrConflict):
				conflicts.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.EqualValues(t, 1, created.Load())
	assert.EqualValues(t, attempts-1, conflicts.Load())

	ratings, err := m.Aggregate.RatingsForMovie(ctx, movie.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, ratings)
}

func TestReviewModel_UnknownMovie(t *testing.T) {
	m := newTestModels(t)
	_, err := m.Review.Insert(context.Background(), &models.Review{UserID: 1, MovieID: 42, Rating: 3})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestReviewModel_DeleteFreesPair(t *testing.T) {
	m := newTestModels(t)
	ctx := context.Background()
	movie, _ := m.Movie.Insert(ctx, &models.Movie{Title: "Again"})
	review, err := m.Review.Insert(ctx, &models.Review{UserID: 1, MovieID: movie.ID, Rating: 2})
	require.NoError(t, err)

	assert.ErrorIs(t, m.Review.Delete(ctx, review.ID, 2), storage.ErrNotFound)
	require.NoError(t, m.Review.Delete(ctx, review.ID, 1))

	_, err = m.Review.Insert(ctx, &models.Review{UserID: 1, MovieID: movie.ID, Rating: 5})
	assert.NoError(t, err)
}

func TestReviewModel_UpdateKeepsCreatedAt(t *testing.T) {
	m := newTestModels(t)
	ctx := context.Background()
	movie, _ := m.Movie.Insert(ctx, &models.Movie{Title: "Edit"})
	review, err := m.Review.Insert(ctx, &models.Review{UserID: 1, MovieID: movie.ID, Rating: 2, ReviewText: "first take"})
	require.NoError(t, err)

	_, err = m.Review.Update(ctx, &models.Review{ID: review.ID, UserID: 9, Rating: 5})
	assert.ErrorIs(t, err, storage.ErrNotFound)

	updated, err := m.Review.Update(ctx, &models.Review{ID: review.ID, UserID: 1, Rating: 5, ReviewText: "second take"})
	require.NoError(t, err)
	assert.Equal(t, review.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(review.UpdatedAt))
	assert.Equal(t, movie.ID, updated.MovieID)
}

func TestWatchlistModel_ListPages(t *testing.T) {
	m := newTestModels(t)
	ctx := context.Background()
	titles := []string{"Delta", "Alpha", "Charlie", "Bravo", "Echo"}
	for _, title := range titles {
		movie, err := m.Movie.Insert(ctx, &models.Movie{Title: title})
		require.NoError(t, err)
		_, err = m.Watchlist.Insert(ctx, 5, movie.ID)
		require.NoError(t, err)
	}
	other, _ := m.Movie.Insert(ctx, &models.Movie{Title: "Other"})
	_, err := m.Watchlist.Insert(ctx, 6, other.ID)
	require.NoError(t, err)
	_, err = m.Watchlist.Insert(ctx, 6, other.ID)
	assert.ErrorIs(t, err, storage.ErrConflict)

	f := filters.New(nil)
	f.SortBy, f.SortOrder, f.PageSize = "title", "asc", 2
	var got []string
	for page := 1; page <= 3; page++ {
		f.Page = page
		items, total, err := m.Watchlist.List(ctx, 5, f)
		require.NoError(t, err)
		assert.Equal(t, 5, total)
		for _, item := range items {
			got = append(got, item.Title)
		}
	}
	assert.Equal(t, []string{"Alpha", "Bravo", "Charlie", "Delta", "Echo"}, got)

	count, err := m.Watchlist.Count(ctx, 5)
	require.NoError(t, err)
	assert.EqualValues(t, 5, count)
}

func TestAggregateModel_SetAggregate(t *testing.T) {
	m := newTestModels(t)
	ctx := context.Background()
	movie, _ := m.Movie.Insert(ctx, &models.Movie{Title: "Agg"})

	require.NoError(t, m.Aggregate.SetAggregate(ctx, models.MovieAggregate{MovieID: movie.ID, AverageRating: 4.5, TotalReviews: 2}))
	stored, err := m.Movie.Get(ctx, movie.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 4.5, stored.AverageRating)
	assert.EqualValues(t, 2, stored.TotalReviews)

	assert.ErrorIs(t, m.Aggregate.SetAggregate(ctx, models.MovieAggregate{MovieID: 999}), storage.ErrNotFound)
}

func TestMovieModel_Featured(t *testing.T) {
	m := newTestModels(t)
	ctx := context.Background()
	ratings := []float64{4.5, 3.0, 4.5, 5.0}
	ids := make([]int64, len(ratings))
	for i, rating := range ratings {
		movie, err := m.Movie.Insert(ctx, &models.Movie{Title: "Featured"})
		require.NoError(t, err)
		ids[i] = movie.ID
		require.NoError(t, m.Aggregate.SetAggregate(ctx, models.MovieAggregate{
			MovieID: movie.ID, AverageRating: fields.AverageRating(rating), TotalReviews: 2,
		}))
	}

	got, err := m.Movie.Featured(ctx, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	// equal ratings: the later insert has the later createdAt and comes first
	assert.Equal(t, []int64{ids[3], ids[2], ids[0]}, []int64{got[0].ID, got[1].ID, got[2].ID})

	got, err = m.Movie.Featured(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, got, 4)
}
