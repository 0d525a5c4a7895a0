package reviews

import (
	"fmt"

	"cinerate/proj/internal/domain/errs"
)

var (
	ErrReviewNotFound      = fmt.Errorf("review %w", errs.ErrNotFound)
	ErrMovieNotFound       = fmt.Errorf("movie %w", errs.ErrNotFound)
	ErrReviewAlreadyExists = fmt.Errorf("you have already reviewed this movie: %w", errs.ErrConflict)
)
