package database

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingID rejects an update whose entity has no primary key.
	ErrMissingID = errors.New("database: entity id is required")
	// ErrMissingMedia rejects a library item created without a wrapped
	// book or podcast.
	ErrMissingMedia = errors.New("database: library item has no media")
)

// BulkError reports a bulk operation that stopped at its first failing
// item. Items applied before the failure remain applied.
type BulkError struct {
	Applied int // Items durably applied before the failure
	Err     error
}

func (e *BulkError) Error() string {
	return fmt.Sprintf("database: bulk operation failed after %d items applied: %v", e.Applied, e.Err)
}

func (e *BulkError) Unwrap() error {
	return e.Err
}
