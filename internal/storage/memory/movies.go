package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"cinerate/proj/internal/domain/filters"
	"cinerate/proj/internal/domain/models"
	"cinerate/proj/internal/storage"
)

var movieComparators = filters.Comparators[models.Movie]{
	"createdAt":     func(a, b models.Movie) int { return a.CreatedAt.Compare(b.CreatedAt) },
	"title":         func(a, b models.Movie) int { return strings.Compare(a.Title, b.Title) },
	"year":          func(a, b models.Movie) int { return cmp.Compare(a.Year, b.Year) },
	"averageRating": func(a, b models.Movie) int { return cmp.Compare(a.AverageRating, b.AverageRating) },
	"totalReviews":  func(a, b models.Movie) int { return cmp.Compare(a.TotalReviews, b.TotalReviews) },
}

type MovieModel struct {
	db *DB
}

func (m *MovieModel) Insert(_ context.Context, movie *models.Movie) (*models.Movie, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	m.db.nextMovieID++
	inserted := *movie
	inserted.ID = m.db.nextMovieID
	inserted.Version = 1
	inserted.AverageRating = 0
	inserted.TotalReviews = 0
	inserted.CreatedAt = m.db.now()
	m.db.movies[inserted.ID] = inserted
	return &inserted, nil
}

func (m *MovieModel) Get(_ context.Context, id int64) (*models.Movie, error) {
	m.db.mu.RLock()
	defer m.db.mu.RUnlock()
	movie, ok := m.db.movies[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &movie, nil
}

func (m *MovieModel) Exists(_ context.Context, id int64) (bool, error) {
	m.db.mu.RLock()
	defer m.db.mu.RUnlock()
	_, ok := m.db.movies[id]
	return ok, nil
}

func (m *MovieModel) List(_ context.Context, f filters.Filters) ([]models.Movie, int, error) {
	m.db.mu.RLock()
	all := make([]models.Movie, 0, len(m.db.movies))
	for _, movie := range m.db.movies {
		all = append(all, movie)
	}
	m.db.mu.RUnlock()
	page, meta := filters.Paginate(all, f, movieComparators, func(movie models.Movie) int64 { return movie.ID })
	return page, meta.TotalItems, nil
}

func (m *MovieModel) Featured(_ context.Context, limit int) ([]models.Movie, error) {
	m.db.mu.RLock()
	all := make([]models.Movie, 0, len(m.db.movies))
	for _, movie := range m.db.movies {
		all = append(all, movie)
	}
	m.db.mu.RUnlock()
	slices.SortFunc(all, func(a, b models.Movie) int {
		if c := cmp.Compare(b.AverageRating, a.AverageRating); c != 0 {
			return c
		}
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return all[:min(limit, len(all))], nil
}
