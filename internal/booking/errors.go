// Package booking implements the seat-reservation concurrency core: the
// booking transaction manager, the optimistic-concurrency conflict
// resolver, the cancellation/release flow and the administrative user
// cascade.  All mutations run inside a single unit of work obtained from
// a DB implementation; the core itself holds no locks and relies on the
// store's transactions plus per-row version tokens for correctness.
package booking

import (
	"errors"
	"fmt"
)

// Failure kinds reported by the manager.  Each kind maps to a distinct
// caller-facing message; callers distinguish them with errors.Is.
var (
	// ErrNotFound means the referenced screening, booking or user does
	// not exist.
	ErrNotFound = errors.New("not found")
	// ErrNotAuthorized means the entity exists but belongs to a
	// different user.
	ErrNotAuthorized = errors.New("not authorized")
	// ErrInvalidSelection means the requested seat ids are empty,
	// unknown or belong to a different screening.
	ErrInvalidSelection = errors.New("invalid seat selection")
	// ErrSeatConflict means one or more requested seats were not
	// AVAILABLE at validation time or were taken by a concurrent
	// booking before commit.
	ErrSeatConflict = errors.New("one or more seats are no longer available")
	// ErrStaleWrite means the caller's version token no longer matches
	// the stored row; the caller must reload before retrying.
	ErrStaleWrite = errors.New("record was modified by another writer")
	// ErrTransactionFailed covers store-level failures unrelated to the
	// kinds above (connectivity, constraint violations).  Nothing is
	// persisted when it is returned.
	ErrTransactionFailed = errors.New("transaction failed")
)

// Sentinels returned by Store implementations.  The manager translates
// them into the caller-facing kinds above depending on the operation.
var (
	// ErrNoRow is returned by store loads that match no row.
	ErrNoRow = errors.New("no matching row")
	// ErrVersionMismatch is returned by store mutations whose
	// compare-and-swap on the version token affected no row.
	ErrVersionMismatch = errors.New("version mismatch")
)

// StaleWriteError is returned by the conflict resolver when an update
// carries a stale version token.  Current holds the authoritative row
// as stored, so the caller can re-render it to the end user instead of
// guessing intent.  It unwraps to ErrStaleWrite.
type StaleWriteError struct {
	Current any
}

func (e *StaleWriteError) Error() string { return ErrStaleWrite.Error() }

func (e *StaleWriteError) Unwrap() error { return ErrStaleWrite }

// classify passes known failure kinds through unchanged and wraps
// anything else as ErrTransactionFailed so callers always observe a
// member of the taxonomy.
func classify(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range []error{
		ErrNotFound, ErrNotAuthorized, ErrInvalidSelection,
		ErrSeatConflict, ErrStaleWrite,
	} {
		if errors.Is(err, kind) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", ErrTransactionFailed, err)
}
