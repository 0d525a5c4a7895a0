package movies

import (
	"context"
	"errors"
	"log/slog"

	"cinerate/proj/internal/domain/filters"
	"cinerate/proj/internal/domain/models"
	"cinerate/proj/internal/storage"
)

// MoviesStorage is the read side of the movie catalog. Rows carry the
// aggregate columns, so no join with reviews is needed.
type MoviesStorage interface {
	Get(ctx context.Context, id int64) (*models.Movie, error)
	List(ctx context.Context, f filters.Filters) ([]models.Movie, int, error)
	Featured(ctx context.Context, limit int) ([]models.Movie, error)
}

const DefaultFeaturedLimit = 10

type MovieService struct {
	log     *slog.Logger
	storage MoviesStorage
}

func New(log *slog.Logger, storage MoviesStorage) *MovieService {
	return &MovieService{
		log:     log,
		storage: storage,
	}
}

func (s *MovieService) Get(ctx context.Context, id int64) (*models.Movie, error) {
	const op = "movies.MovieService.Get"
	log := s.log.With("op", op, "id", id)
	movie, err := s.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("movie not found")
			return nil, ErrMovieNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return movie, nil
}

func (s *MovieService) List(ctx context.Context, f filters.Filters) ([]models.Movie, filters.Metadata, error) {
	const op = "movies.MovieService.List"
	log := s.log.With("op", op)
	movies, total, err := s.storage.List(ctx, f)
	if err != nil {
		log.Error(err.Error())
		return nil, filters.Metadata{}, err
	}
	return movies, filters.CalculateMetadata(total, f.Page, f.PageSize), nil
}

// Featured lists up to limit movies by average rating, newest first on ties.
// A limit outside 1..filters.MaxPageSize falls back to DefaultFeaturedLimit.
func (s *MovieService) Featured(ctx context.Context, limit int) ([]models.Movie, error) {
	const op = "movies.MovieService.Featured"
	log := s.log.With("op", op)
	if limit < 1 || limit > filters.MaxPageSize {
		limit = DefaultFeaturedLimit
	}
	movies, err := s.storage.Featured(ctx, limit)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	return movies, nil
}
