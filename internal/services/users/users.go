package users

import (
	"context"
	"log/slog"

	"cinerate/proj/internal/domain/fields"
	"cinerate/proj/internal/domain/models"

	"golang.org/x/sync/errgroup"
)

type ReviewStats interface {
	RatingHistogram(ctx context.Context, userID int64) (map[int]int64, error)
}

type WatchlistStats interface {
	Count(ctx context.Context, userID int64) (int64, error)
}

type UserService struct {
	log       *slog.Logger
	reviews   ReviewStats
	watchlist WatchlistStats
}

func New(log *slog.Logger, reviews ReviewStats, watchlist WatchlistStats) *UserService {
	return &UserService{
		log:       log,
		reviews:   reviews,
		watchlist: watchlist,
	}
}

// Stats summarises what a user has rated and saved. Every rating 1..5 is
// present in ReviewsByRating, zero counts included.
func (s *UserService) Stats(ctx context.Context, userID int64) (*models.UserStats, error) {
	const op = "users.UserService.Stats"
	log := s.log.With("op", op, "userID", userID)

	var histogram map[int]int64
	var watchlistCount int64
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		histogram, err = s.reviews.RatingHistogram(gCtx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		watchlistCount, err = s.watchlist.Count(gCtx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error("Error collecting user stats", "errMsg", err.Error())
		return nil, err
	}

	stats := &models.UserStats{
		WatchlistCount:  watchlistCount,
		ReviewsByRating: make(map[int]int64, 5),
	}
	var sum int64
	for rating := 1; rating <= 5; rating++ {
		count := histogram[rating]
		stats.ReviewsByRating[rating] = count
		stats.TotalReviews += count
		sum += int64(rating) * count
	}
	stats.AverageRating = fields.AverageOf(sum, stats.TotalReviews)
	return stats, nil
}
