package memory

import (
	"context"
	"slices"

	"cinerate/proj/internal/domain/models"
	"cinerate/proj/internal/storage"
)

type AggregateModel struct {
	db *DB
}

func (m *AggregateModel) RatingsForMovie(_ context.Context, movieID int64) ([]int, error) {
	m.db.mu.RLock()
	defer m.db.mu.RUnlock()
	var ratings []int
	for _, review := range m.db.reviews {
		if review.MovieID == movieID {
			ratings = append(ratings, review.Rating)
		}
	}
	return ratings, nil
}

func (m *AggregateModel) SetAggregate(_ context.Context, agg models.MovieAggregate) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	movie, ok := m.db.movies[agg.MovieID]
	if !ok {
		return storage.ErrNotFound
	}
	movie.AverageRating = agg.AverageRating
	movie.TotalReviews = agg.TotalReviews
	m.db.movies[agg.MovieID] = movie
	return nil
}

func (m *AggregateModel) MovieIDs(_ context.Context) ([]int64, error) {
	m.db.mu.RLock()
	ids := make([]int64, 0, len(m.db.movies))
	for id := range m.db.movies {
		ids = append(ids, id)
	}
	m.db.mu.RUnlock()
	slices.Sort(ids)
	return ids, nil
}
