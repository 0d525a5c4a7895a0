package watchlist

import (
	"context"
	"errors"
	"log/slog"

	"cinerate/proj/internal/domain/filters"
	"cinerate/proj/internal/domain/models"
	"cinerate/proj/internal/domain/ownership"
	"cinerate/proj/internal/storage"
)

type WatchlistStorage interface {
	Insert(ctx context.Context, userID, movieID int64) (*models.WatchlistEntry, error)
	Get(ctx context.Context, userID, movieID int64) (*models.WatchlistEntry, error)
	Delete(ctx context.Context, userID, movieID int64) error
	List(ctx context.Context, userID int64, f filters.Filters) ([]models.WatchlistItem, int, error)
}

// WatchlistService manages a user's watchlist. Every operation takes the
// requester and the list owner separately: only owners see or touch their list.
type WatchlistService struct {
	log     *slog.Logger
	storage WatchlistStorage
}

func New(log *slog.Logger, storage WatchlistStorage) *WatchlistService {
	return &WatchlistService{
		log:     log,
		storage: storage,
	}
}

func (s *WatchlistService) Add(ctx context.Context, requesterID, userID, movieID int64) (*models.WatchlistEntry, error) {
	const op = "watchlist.WatchlistService.Add"
	log := s.log.With("op", op, "requesterID", requesterID, "userID", userID, "movieID", movieID)
	if err := ownership.Check(requesterID, userID, "watchlist"); err != nil {
		log.Warn("attempt to modify someone else's watchlist")
		return nil, err
	}
	entry, err := s.storage.Insert(ctx, userID, movieID)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrConflict):
			log.Info("movie already in watchlist")
			return nil, ErrAlreadyInWatchlist
		case errors.Is(err, storage.ErrNotFound):
			log.Info("movie not found")
			return nil, ErrMovieNotFound
		}
		log.Error("Error adding to watchlist", "errMsg", err.Error())
		return nil, err
	}
	return entry, nil
}

func (s *WatchlistService) Remove(ctx context.Context, requesterID, userID, movieID int64) error {
	const op = "watchlist.WatchlistService.Remove"
	log := s.log.With("op", op, "requesterID", requesterID, "userID", userID, "movieID", movieID)
	if err := ownership.Check(requesterID, userID, "watchlist"); err != nil {
		log.Warn("attempt to modify someone else's watchlist")
		return err
	}
	if err := s.storage.Delete(ctx, userID, movieID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("movie not in watchlist")
			return ErrNotInWatchlist
		}
		log.Error("Error removing from watchlist", "errMsg", err.Error())
		return err
	}
	return nil
}

func (s *WatchlistService) Status(ctx context.Context, requesterID, userID, movieID int64) (*models.WatchlistStatus, error) {
	const op = "watchlist.WatchlistService.Status"
	log := s.log.With("op", op, "requesterID", requesterID, "userID", userID, "movieID", movieID)
	if err := ownership.Check(requesterID, userID, "watchlist"); err != nil {
		return nil, err
	}
	entry, err := s.storage.Get(ctx, userID, movieID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return &models.WatchlistStatus{IsInWatchlist: false}, nil
		}
		log.Error(err.Error())
		return nil, err
	}
	addedAt := entry.CreatedAt
	return &models.WatchlistStatus{IsInWatchlist: true, AddedAt: &addedAt}, nil
}

func (s *WatchlistService) List(ctx context.Context, requesterID, userID int64, f filters.Filters) ([]models.WatchlistItem, filters.Metadata, error) {
	const op = "watchlist.WatchlistService.List"
	log := s.log.With("op", op, "requesterID", requesterID, "userID", userID)
	if err := ownership.Check(requesterID, userID, "watchlist"); err != nil {
		return nil, filters.Metadata{}, err
	}
	items, total, err := s.storage.List(ctx, userID, f)
	if err != nil {
		log.Error(err.Error())
		return nil, filters.Metadata{}, err
	}
	return items, filters.CalculateMetadata(total, f.Page, f.PageSize), nil
}
