// Package ownership decides whether a principal may mutate a record it points at.
package ownership

import (
	"cinerate/proj/internal/domain/errs"
	"fmt"
)

// Allow reports whether requesterID owns the record owned by ownerID.
func Allow(requesterID, ownerID int64) bool {
	return requesterID == ownerID
}

// Check is Allow in error form. It must run before any write.
func Check(requesterID, ownerID int64, resource string) error {
	if !Allow(requesterID, ownerID) {
		return fmt.Errorf("you can only modify your own %s: %w", resource, errs.ErrForbidden)
	}
	return nil
}
