package reviews

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"cinerate/proj/internal/domain/errs"
	"cinerate/proj/internal/domain/filters"
	"cinerate/proj/internal/domain/models"
	"cinerate/proj/internal/domain/ownership"
	"cinerate/proj/internal/lib/validator"
	"cinerate/proj/internal/storage"

	govalidator "github.com/go-playground/validator/v10"
)

type ReviewStorage interface {
	Insert(ctx context.Context, review *models.Review) (*models.Review, error)
	Get(ctx context.Context, id int64) (*models.Review, error)
	Update(ctx context.Context, review *models.Review) (*models.Review, error)
	Delete(ctx context.Context, id int64, userID int64) error
	ListForMovie(ctx context.Context, movieID int64, f filters.Filters) ([]models.Review, int, error)
	ListForUser(ctx context.Context, userID int64, f filters.Filters) ([]models.Review, int, error)
}

type MovieCatalog interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type RatingAggregator interface {
	Recompute(ctx context.Context, movieID int64) (*models.MovieAggregate, error)
}

// ReviewInput is the author-editable part of a review.
type ReviewInput struct {
	Rating     int    `json:"rating" validate:"required,gte=1,lte=5"`
	ReviewText string `json:"reviewText" validate:"required,min=10,max=1000"`
}

type ReviewService struct {
	log        *slog.Logger
	storage    ReviewStorage
	movies     MovieCatalog
	aggregator RatingAggregator
	validator  *govalidator.Validate
}

func New(
	log *slog.Logger,
	storage ReviewStorage,
	movies MovieCatalog,
	aggregator RatingAggregator,
	validator *govalidator.Validate,
) *ReviewService {
	return &ReviewService{
		log:        log,
		storage:    storage,
		movies:     movies,
		aggregator: aggregator,
		validator:  validator,
	}
}

func (s *ReviewService) validate(input *ReviewInput) error {
	input.ReviewText = strings.TrimSpace(input.ReviewText)
	if fieldErrs := validator.ValidateStruct(s.validator, *input); fieldErrs != nil {
		return errs.NewValidationError(fieldErrs)
	}
	return nil
}

// Create stores the requester's review of movieID and returns it with the refreshed movie aggregate.
func (s *ReviewService) Create(ctx context.Context, userID, movieID int64, input ReviewInput) (*models.Review, *models.MovieAggregate, error) {
	const op = "reviews.ReviewService.Create"
	log := s.log.With("op", op, "userID", userID, "movieID", movieID)
	if err := s.validate(&input); err != nil {
		return nil, nil, err
	}
	if err := s.ensureMovie(ctx, movieID); err != nil {
		return nil, nil, err
	}
	review, err := s.storage.Insert(ctx, &models.Review{
		UserID:     userID,
		MovieID:    movieID,
		Rating:     input.Rating,
		ReviewText: input.ReviewText,
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrConflict):
			log.Info("review already exists")
			return nil, nil, ErrReviewAlreadyExists
		case errors.Is(err, storage.ErrNotFound):
			log.Info("movie not found")
			return nil, nil, ErrMovieNotFound
		}
		log.Error("Error inserting review", "errMsg", err.Error())
		return nil, nil, err
	}
	agg, err := s.aggregator.Recompute(ctx, movieID)
	if err != nil {
		return review, nil, err
	}
	return review, agg, nil
}

func (s *ReviewService) Get(ctx context.Context, id int64) (*models.Review, error) {
	const op = "reviews.ReviewService.Get"
	log := s.log.With("op", op, "id", id)
	review, err := s.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("review not found")
			return nil, ErrReviewNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return review, nil
}

// Update replaces rating and text of a review the requester wrote.
func (s *ReviewService) Update(ctx context.Context, id, requesterID int64, input ReviewInput) (*models.Review, *models.MovieAggregate, error) {
	const op = "reviews.ReviewService.Update"
	log := s.log.With("op", op, "id", id, "requesterID", requesterID)
	if err := s.validate(&input); err != nil {
		return nil, nil, err
	}
	review, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if err := ownership.Check(requesterID, review.UserID, "reviews"); err != nil {
		log.Warn("attempt to update someone else's review", "ownerID", review.UserID)
		return nil, nil, err
	}
	review.Rating = input.Rating
	review.ReviewText = input.ReviewText
	updated, err := s.storage.Update(ctx, review)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("review removed concurrently")
			return nil, nil, ErrReviewNotFound
		}
		log.Error("Error updating review", "errMsg", err.Error())
		return nil, nil, err
	}
	agg, err := s.aggregator.Recompute(ctx, updated.MovieID)
	if err != nil {
		return updated, nil, err
	}
	return updated, agg, nil
}

func (s *ReviewService) Delete(ctx context.Context, id, requesterID int64) (*models.MovieAggregate, error) {
	const op = "reviews.ReviewService.Delete"
	log := s.log.With("op", op, "id", id, "requesterID", requesterID)
	review, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ownership.Check(requesterID, review.UserID, "reviews"); err != nil {
		log.Warn("attempt to delete someone else's review", "ownerID", review.UserID)
		return nil, err
	}
	if err := s.storage.Delete(ctx, id, requesterID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("review removed concurrently")
			return nil, ErrReviewNotFound
		}
		log.Error("Error deleting review", "errMsg", err.Error())
		return nil, err
	}
	return s.aggregator.Recompute(ctx, review.MovieID)
}

func (s *ReviewService) ListByMovie(ctx context.Context, movieID int64, f filters.Filters) ([]models.Review, filters.Metadata, error) {
	const op = "reviews.ReviewService.ListByMovie"
	log := s.log.With("op", op, "movieID", movieID)
	if err := s.ensureMovie(ctx, movieID); err != nil {
		return nil, filters.Metadata{}, err
	}
	reviews, total, err := s.storage.ListForMovie(ctx, movieID, f)
	if err != nil {
		log.Error(err.Error())
		return nil, filters.Metadata{}, err
	}
	return reviews, filters.CalculateMetadata(total, f.Page, f.PageSize), nil
}

func (s *ReviewService) ListByUser(ctx context.Context, userID int64, f filters.Filters) ([]models.Review, filters.Metadata, error) {
	const op = "reviews.ReviewService.ListByUser"
	log := s.log.With("op", op, "userID", userID)
	reviews, total, err := s.storage.ListForUser(ctx, userID, f)
	if err != nil {
		log.Error(err.Error())
		return nil, filters.Metadata{}, err
	}
	return reviews, filters.CalculateMetadata(total, f.Page, f.PageSize), nil
}

func (s *ReviewService) ensureMovie(ctx context.Context, movieID int64) error {
	exists, err := s.movies.Exists(ctx, movieID)
	if err != nil {
		s.log.Error("Error checking movie", "movieID", movieID, "errMsg", err.Error())
		return err
	}
	if !exists {
		return ErrMovieNotFound
	}
	return nil
}
