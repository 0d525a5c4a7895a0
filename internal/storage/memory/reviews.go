package memory

import (
	"cmp"
	"context"

	"cinerate/proj/internal/domain/filters"
	"cinerate/proj/internal/domain/models"
	"cinerate/proj/internal/storage"
)

var reviewComparators = filters.Comparators[models.Review]{
	"createdAt": func(a, b models.Review) int { return a.CreatedAt.Compare(b.CreatedAt) },
	"updatedAt": func(a, b models.Review) int { return a.UpdatedAt.Compare(b.UpdatedAt) },
	"rating":    func(a, b models.Review) int { return cmp.Compare(a.Rating, b.Rating) },
}

type ReviewModel struct {
	db *DB
}

// Insert checks the (user, movie) pair and the movie under one write lock.
func (m *ReviewModel) Insert(_ context.Context, review *models.Review) (*models.Review, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	key := reviewKey{review.UserID, review.MovieID}
	if _, ok := m.db.reviewKeys[key]; ok {
		return nil, storage.ErrConflict
	}
	if _, ok := m.db.movies[review.MovieID]; !ok {
		return nil, storage.ErrNotFound
	}
	m.db.nextReviewID++
	inserted := *review
	inserted.ID = m.db.nextReviewID
	inserted.CreatedAt = m.db.now()
	inserted.UpdatedAt = inserted.CreatedAt
	m.db.reviews[inserted.ID] = inserted
	m.db.reviewKeys[key] = inserted.ID
	return &inserted, nil
}

func (m *ReviewModel) Get(_ context.Context, id int64) (*models.Review, error) {
	m.db.mu.RLock()
	defer m.db.mu.RUnlock()
	review, ok := m.db.reviews[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &review, nil
}

func (m *ReviewModel) Update(_ context.Context, review *models.Review) (*models.Review, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	stored, ok := m.db.reviews[review.ID]
	if !ok || stored.UserID != review.UserID {
		return nil, storage.ErrNotFound
	}
	stored.Rating = review.Rating
	stored.ReviewText = review.ReviewText
	stored.UpdatedAt = m.db.now()
	m.db.reviews[stored.ID] = stored
	return &stored, nil
}

func (m *ReviewModel) Delete(_ context.Context, id int64, userID int64) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	stored, ok := m.db.reviews[id]
	if !ok || stored.UserID != userID {
		return storage.ErrNotFound
	}
	delete(m.db.reviews, id)
	delete(m.db.reviewKeys, reviewKey{stored.UserID, stored.MovieID})
	return nil
}

func (m *ReviewModel) ListForMovie(_ context.Context, movieID int64, f filters.Filters) ([]models.Review, int, error) {
	return m.list(func(r models.Review) bool { return r.MovieID == movieID }, f)
}

func (m *ReviewModel) ListForUser(_ context.Context, userID int64, f filters.Filters) ([]models.Review, int, error) {
	return m.list(func(r models.Review) bool { return r.UserID == userID }, f)
}

func (m *ReviewModel) list(match func(models.Review) bool, f filters.Filters) ([]models.Review, int, error) {
	m.db.mu.RLock()
	var matched []models.Review
	for _, review := range m.db.reviews {
		if match(review) {
			matched = append(matched, review)
		}
	}
	m.db.mu.RUnlock()
	page, meta := filters.Paginate(matched, f, reviewComparators, func(r models.Review) int64 { return r.ID })
	return page, meta.TotalItems, nil
}

func (m *ReviewModel) RatingHistogram(_ context.Context, userID int64) (map[int]int64, error) {
	m.db.mu.RLock()
	defer m.db.mu.RUnlock()
	histogram := make(map[int]int64)
	for _, review := range m.db.reviews {
		if review.UserID == userID {
			histogram[review.Rating]++
		}
	}
	return histogram, nil
}
