package auth

import (
	"fmt"

	"cinerate/proj/internal/domain/errs"
)

var (
	ErrInvalidToken = fmt.Errorf("invalid or expired token: %w", errs.ErrUnauthenticated)
	ErrUserNotFound = fmt.Errorf("user not found or inactive: %w", errs.ErrUnauthenticated)
)
