package watchlist

import (
	"fmt"

	"cinerate/proj/internal/domain/errs"
)

var (
	ErrMovieNotFound      = fmt.Errorf("movie %w", errs.ErrNotFound)
	ErrNotInWatchlist     = fmt.Errorf("movie not in watchlist: %w", errs.ErrNotFound)
	ErrAlreadyInWatchlist = fmt.Errorf("movie already in watchlist: %w", errs.ErrConflict)
)
