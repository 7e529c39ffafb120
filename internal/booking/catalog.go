package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/cinematix/cinema-ticket-system/internal/model"
)

// maxSeatsPerScreening bounds the generated seat grid.  Real halls top
// out in the hundreds; the cap keeps one bad admin request from
// inserting millions of seat rows.
const maxSeatsPerScreening = 2000

// CreateMovie stores a new movie.
func (m *Manager) CreateMovie(ctx context.Context, mv *model.Movie) error {
	mv.CreatedAt = m.now()
	return classify(m.db.InsertMovie(ctx, mv))
}

// CreateScreening schedules a screening and generates its full seat
// grid (SeatRows × SeatsPerRow, all AVAILABLE, version 1) in the same
// unit of work, so a screening can never exist with a partial seat map.
func (m *Manager) CreateScreening(ctx context.Context, s *model.Screening) error {
	if s.SeatRows == 0 || s.SeatsPerRow == 0 {
		return fmt.Errorf("%w: screening needs at least one row and one seat per row", ErrInvalidSelection)
	}
	// Multiply in uint64 so oversized dimensions cannot wrap around the
	// uint32 total before the cap check.
	if total := uint64(s.SeatRows) * uint64(s.SeatsPerRow); total > maxSeatsPerScreening {
		return fmt.Errorf("%w: seat grid %dx%d exceeds %d seats",
			ErrInvalidSelection, s.SeatRows, s.SeatsPerRow, maxSeatsPerScreening)
	}
	err := m.db.InTx(ctx, func(tx Store) error {
		if _, err := tx.GetMovie(ctx, s.MovieID); err != nil {
			if errors.Is(err, ErrNoRow) {
				return fmt.Errorf("%w: movie %d", ErrNotFound, s.MovieID)
			}
			return err
		}
		s.TotalSeats = s.SeatRows * s.SeatsPerRow
		s.IsActive = true
		s.CreatedAt = m.now()
		s.UpdatedAt = s.CreatedAt
		if err := tx.InsertScreening(ctx, s); err != nil {
			return err
		}
		seats := make([]model.Seat, 0, s.TotalSeats)
		for row := uint32(1); row <= s.SeatRows; row++ {
			for num := uint32(1); num <= s.SeatsPerRow; num++ {
				seats = append(seats, model.Seat{
					ScreeningID: s.ID,
					Row:         row,
					Number:      num,
					Status:      model.SeatAvailable,
					Version:     1,
				})
			}
		}
		return tx.InsertSeats(ctx, seats)
	})
	return classify(err)
}

// DeactivateScreening withdraws a screening from booking.  Existing
// bookings are left alone; new ones are rejected as ErrNotFound.
func (m *Manager) DeactivateScreening(ctx context.Context, screeningID uint64) error {
	err := m.db.DeactivateScreening(ctx, screeningID)
	if errors.Is(err, ErrNoRow) {
		return fmt.Errorf("%w: screening %d", ErrNotFound, screeningID)
	}
	return classify(err)
}

// ListScreenings returns screenings offered for booking.
func (m *Manager) ListScreenings(ctx context.Context) ([]model.Screening, error) {
	list, err := m.db.ListScreenings(ctx, true)
	return list, classify(err)
}

// GetScreening loads a single screening regardless of active state.
func (m *Manager) GetScreening(ctx context.Context, screeningID uint64) (*model.Screening, error) {
	s, err := m.db.GetScreening(ctx, screeningID)
	if err != nil {
		if errors.Is(err, ErrNoRow) {
			return nil, fmt.Errorf("%w: screening %d", ErrNotFound, screeningID)
		}
		return nil, classify(err)
	}
	return s, nil
}

// SeatMap bundles a screening with its seats for display.
type SeatMap struct {
	Screening model.Screening
	Seats     []model.Seat
}

// GetSeatMap loads a screening and its seats ordered by row and number.
// This is an unversioned read for rendering only: the map may be stale
// by the time a booking is attempted, and staleness is resolved at
// write time by the version checks, not prevented here.
func (m *Manager) GetSeatMap(ctx context.Context, screeningID uint64) (*SeatMap, error) {
	screening, err := m.db.GetScreening(ctx, screeningID)
	if err != nil {
		if errors.Is(err, ErrNoRow) {
			return nil, fmt.Errorf("%w: screening %d", ErrNotFound, screeningID)
		}
		return nil, classify(err)
	}
	seats, err := m.db.SeatsByScreening(ctx, screeningID)
	if err != nil {
		return nil, classify(err)
	}
	return &SeatMap{Screening: *screening, Seats: seats}, nil
}

// BookingDetail is a booking together with the seats it owns, for
// booking-history rendering.
type BookingDetail struct {
	Booking model.Booking
	Seats   []model.Seat
}

// BookingsForUser returns the user's bookings with their seats, newest
// first as returned by the store.
func (m *Manager) BookingsForUser(ctx context.Context, userID uint64) ([]BookingDetail, error) {
	bookings, err := m.db.BookingsByUser(ctx, userID)
	if err != nil {
		return nil, classify(err)
	}
	details := make([]BookingDetail, 0, len(bookings))
	for _, b := range bookings {
		seats, err := m.db.SeatsByBooking(ctx, b.ID)
		if err != nil {
			return nil, classify(err)
		}
		details = append(details, BookingDetail{Booking: b, Seats: seats})
	}
	return details, nil
}

// GetBookingForUser loads one booking with its seats, enforcing
// ownership: another user's booking id yields ErrNotAuthorized, an
// unknown id ErrNotFound.
func (m *Manager) GetBookingForUser(ctx context.Context, userID, bookingID uint64) (*BookingDetail, error) {
	b, err := m.db.GetBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, ErrNoRow) {
			return nil, fmt.Errorf("%w: booking %d", ErrNotFound, bookingID)
		}
		return nil, classify(err)
	}
	if b.UserID != userID {
		return nil, ErrNotAuthorized
	}
	seats, err := m.db.SeatsByBooking(ctx, bookingID)
	if err != nil {
		return nil, classify(err)
	}
	return &BookingDetail{Booking: *b, Seats: seats}, nil
}
