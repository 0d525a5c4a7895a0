package memory

import (
	"context"
	"strings"

	"cinerate/proj/internal/domain/filters"
	"cinerate/proj/internal/domain/models"
	"cinerate/proj/internal/storage"
)

var watchlistComparators = filters.Comparators[models.WatchlistItem]{
	"createdAt": func(a, b models.WatchlistItem) int { return a.AddedAt.Compare(b.AddedAt) },
	"title":     func(a, b models.WatchlistItem) int { return strings.Compare(a.Title, b.Title) },
}

type WatchlistModel struct {
	db *DB
}

func (m *WatchlistModel) Insert(_ context.Context, userID, movieID int64) (*models.WatchlistEntry, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	key := reviewKey{userID, movieID}
	if _, ok := m.db.watchlist[key]; ok {
		return nil, storage.ErrConflict
	}
	if _, ok := m.db.movies[movieID]; !ok {
		return nil, storage.ErrNotFound
	}
	m.db.nextEntryID++
	entry := models.WatchlistEntry{
		ID:        m.db.nextEntryID,
		UserID:    userID,
		MovieID:   movieID,
		CreatedAt: m.db.now(),
	}
	m.db.watchlist[key] = entry
	return &entry, nil
}

func (m *WatchlistModel) Get(_ context.Context, userID, movieID int64) (*models.WatchlistEntry, error) {
	m.db.mu.RLock()
	defer m.db.mu.RUnlock()
	entry, ok := m.db.watchlist[reviewKey{userID, movieID}]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &entry, nil
}

func (m *WatchlistModel) Delete(_ context.Context, userID, movieID int64) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	key := reviewKey{userID, movieID}
	if _, ok := m.db.watchlist[key]; !ok {
		return storage.ErrNotFound
	}
	delete(m.db.watchlist, key)
	return nil
}

func (m *WatchlistModel) Count(_ context.Context, userID int64) (int64, error) {
	m.db.mu.RLock()
	defer m.db.mu.RUnlock()
	var count int64
	for key := range m.db.watchlist {
		if key.userID == userID {
			count++
		}
	}
	return count, nil
}

func (m *WatchlistModel) List(_ context.Context, userID int64, f filters.Filters) ([]models.WatchlistItem, int, error) {
	m.db.mu.RLock()
	var items []models.WatchlistItem
	for key, entry := range m.db.watchlist {
		if key.userID != userID {
			continue
		}
		movie, ok := m.db.movies[key.movieID]
		if !ok {
			continue
		}
		items = append(items, models.WatchlistItem{Movie: movie, AddedAt: entry.CreatedAt})
	}
	m.db.mu.RUnlock()
	page, meta := filters.Paginate(items, f, watchlistComparators, func(item models.WatchlistItem) int64 { return item.ID })
	return page, meta.TotalItems, nil
}
