// Package memory keeps the whole catalog, reviews and watchlists in process.
// It backs local runs and tests and mirrors the postgres models method for method.
package memory

import (
	"context"
	"sync"
	"time"

	"cinerate/proj/internal/domain/models"
)

type reviewKey struct {
	userID  int64
	movieID int64
}

// DB is the shared state. Every model locks mu, so a check-and-insert under
// the write lock is atomic across models.
type DB struct {
	mu sync.RWMutex

	movies     map[int64]models.Movie
	reviews    map[int64]models.Review
	reviewKeys map[reviewKey]int64
	watchlist  map[reviewKey]models.WatchlistEntry

	nextMovieID  int64
	nextReviewID int64
	nextEntryID  int64

	now func() time.Time
}

func NewDB() *DB {
	return &DB{
		movies:     make(map[int64]models.Movie),
		reviews:    make(map[int64]models.Review),
		reviewKeys: make(map[reviewKey]int64),
		watchlist:  make(map[reviewKey]models.WatchlistEntry),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

type Models struct {
	Movie     *MovieModel
	Review    *ReviewModel
	Watchlist *WatchlistModel
	Aggregate *AggregateModel
}

func New(db *DB) *Models {
	return &Models{
		Movie:     &MovieModel{db},
		Review:    &ReviewModel{db},
		Watchlist: &WatchlistModel{db},
		Aggregate: &AggregateModel{db},
	}
}

func (db *DB) HealthCheck(context.Context) error {
	return nil
}
