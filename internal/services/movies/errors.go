package movies

import (
	"fmt"

	"cinerate/proj/internal/domain/errs"
)

var ErrMovieNotFound = fmt.Errorf("movie %w", errs.ErrNotFound)
