package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cinematix/cinema-ticket-system/internal/model"
)

// Manager orchestrates all seat mutations.  It is safe for concurrent
// use: each operation opens its own unit of work and correctness under
// racing requests comes from the store's transactions and version
// tokens, not from in-process locking.
type Manager struct {
	db  DB
	now func() time.Time
}

// NewManager returns a Manager backed by the given store.
func NewManager(db DB) *Manager {
	if db == nil {
		panic("nil store passed to NewManager")
	}
	return &Manager{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// CreateBooking atomically books the requested seats of a screening for
// a user and returns the new booking's id.  The whole operation is one
// unit of work: either the booking row and every seat flip persist
// together, or nothing does.
//
// Failure kinds: ErrNotFound (screening absent or inactive),
// ErrInvalidSelection (empty set, a zero id, unknown ids or ids of
// another screening), ErrSeatConflict (a seat was not AVAILABLE at validation
// time, or a concurrent booking took it before commit) and
// ErrTransactionFailed for anything else.  The manager never retries; a
// conflicted caller must re-fetch seat state and let the user reselect.
func (m *Manager) CreateBooking(ctx context.Context, userID, screeningID uint64, seatIDs []uint64) (uint64, error) {
	// A zero id can never name a seat; it poisons the whole selection
	// rather than being filtered out.
	for _, id := range seatIDs {
		if id == 0 {
			return 0, fmt.Errorf("%w: seat id 0", ErrInvalidSelection)
		}
	}
	ids := dedupe(seatIDs)
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: no seats selected", ErrInvalidSelection)
	}
	var bookingID uint64
	err := m.db.InTx(ctx, func(tx Store) error {
		screening, err := tx.GetScreening(ctx, screeningID)
		if err != nil {
			if errors.Is(err, ErrNoRow) {
				return fmt.Errorf("%w: screening %d", ErrNotFound, screeningID)
			}
			return err
		}
		if !screening.IsActive {
			return fmt.Errorf("%w: screening %d", ErrNotFound, screeningID)
		}
		seats, err := tx.SeatsByScreeningAndIDs(ctx, screeningID, ids)
		if err != nil {
			return err
		}
		// A shorter result means some id does not exist or belongs to a
		// different screening.
		if len(seats) != len(ids) {
			return fmt.Errorf("%w: %d of %d seats not part of screening %d",
				ErrInvalidSelection, len(ids)-len(seats), len(ids), screeningID)
		}
		for _, s := range seats {
			if s.Status != model.SeatAvailable {
				return ErrSeatConflict
			}
		}
		b := &model.Booking{
			UserID:      userID,
			ScreeningID: screeningID,
			TotalCents:  uint32(len(seats)) * screening.PriceCents,
			Status:      model.BookingConfirmed,
			CreatedAt:   m.now(),
		}
		if err := tx.InsertBooking(ctx, b); err != nil {
			return err
		}
		// The version tokens carried by the loaded seats guard the flip:
		// a writer that snuck in since the load makes the CAS miss and
		// the whole unit of work rolls back.
		if err := tx.MarkSeatsBooked(ctx, b.ID, seats); err != nil {
			if errors.Is(err, ErrVersionMismatch) {
				return ErrSeatConflict
			}
			return err
		}
		bookingID = b.ID
		return nil
	})
	if err != nil {
		return 0, classify(err)
	}
	return bookingID, nil
}

// CancelBooking reverses a booking: every linked seat goes back to
// AVAILABLE with its booking reference cleared, and the booking row is
// deleted, all in one unit of work.  expectedVersion must match the
// booking's stored version token.
//
// Failure kinds: ErrNotFound when the booking does not exist,
// ErrNotAuthorized when it belongs to a different user, ErrStaleWrite
// when expectedVersion is stale or a seat changed concurrently; in
// every failure case the booking and its seats remain untouched.
func (m *Manager) CancelBooking(ctx context.Context, userID, bookingID, expectedVersion uint64) error {
	err := m.db.InTx(ctx, func(tx Store) error {
		b, err := tx.GetBooking(ctx, bookingID)
		if err != nil {
			if errors.Is(err, ErrNoRow) {
				return fmt.Errorf("%w: booking %d", ErrNotFound, bookingID)
			}
			return err
		}
		if b.UserID != userID {
			return ErrNotAuthorized
		}
		seats, err := tx.SeatsByBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		if err := tx.ReleaseSeats(ctx, seats); err != nil {
			if errors.Is(err, ErrVersionMismatch) {
				return ErrStaleWrite
			}
			return err
		}
		if err := tx.DeleteBooking(ctx, bookingID, expectedVersion); err != nil {
			if errors.Is(err, ErrVersionMismatch) {
				return ErrStaleWrite
			}
			return err
		}
		return nil
	})
	return classify(err)
}

// dedupe drops repeated ids while preserving order.
func dedupe(ids []uint64) []uint64 {
	out := make([]uint64, 0, len(ids))
	seen := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
