package booking

import (
	"context"
	"errors"
	"fmt"
)

// DeleteUser removes a user and everything they own as one unit of
// work: every booking's seats are released first, then the bookings are
// deleted, then the user row itself.  The sequence is an explicit
// ordered cascade rather than a store-side cascade rule so the same
// logic holds on any backend.
//
// expectedVersion must match the user's stored version token; if
// another admin edited the user since it was loaded, the whole cascade
// aborts with ErrStaleWrite and no seat, booking or user row is
// touched.
func (m *Manager) DeleteUser(ctx context.Context, userID, expectedVersion uint64) error {
	err := m.db.InTx(ctx, func(tx Store) error {
		u, err := tx.GetUser(ctx, userID)
		if err != nil {
			if errors.Is(err, ErrNoRow) {
				return fmt.Errorf("%w: user %d", ErrNotFound, userID)
			}
			return err
		}
		// Fail fast on an obviously stale token; the delete below
		// re-checks it under the same transaction.
		if u.Version != expectedVersion {
			return ErrStaleWrite
		}
		bookings, err := tx.BookingsByUser(ctx, userID)
		if err != nil {
			return err
		}
		for _, b := range bookings {
			seats, err := tx.SeatsByBooking(ctx, b.ID)
			if err != nil {
				return err
			}
			if err := tx.ReleaseSeats(ctx, seats); err != nil {
				if errors.Is(err, ErrVersionMismatch) {
					return ErrStaleWrite
				}
				return err
			}
			if err := tx.DeleteBooking(ctx, b.ID, b.Version); err != nil {
				if errors.Is(err, ErrVersionMismatch) {
					return ErrStaleWrite
				}
				return err
			}
		}
		if err := tx.DeleteUser(ctx, userID, expectedVersion); err != nil {
			if errors.Is(err, ErrVersionMismatch) {
				return ErrStaleWrite
			}
			if errors.Is(err, ErrNoRow) {
				return fmt.Errorf("%w: user %d", ErrNotFound, userID)
			}
			return err
		}
		return nil
	})
	return classify(err)
}
