package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/cinematix/cinema-ticket-system/internal/booking"
	"github.com/cinematix/cinema-ticket-system/internal/model"
)

const seatCols = `id, screening_id, seat_row, seat_number, status, booking_id, version`

// InsertSeats bulk-inserts a screening's seat grid in one statement.
func (s *Store) InsertSeats(ctx context.Context, seats []model.Seat) error {
	if len(seats) == 0 {
		return nil
	}
	query := `INSERT INTO seats (screening_id, seat_row, seat_number, status, version) VALUES `
	args := make([]any, 0, len(seats)*5)
	for i, st := range seats {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?)"
		args = append(args, st.ScreeningID, st.Row, st.Number, string(st.Status), st.Version)
	}
	_, err := s.q.ExecContext(ctx, query, args...)
	return err
}

func (s *Store) querySeats(ctx context.Context, query string, args ...any) ([]model.Seat, error) {
	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make([]model.Seat, 0)
	for rows.Next() {
		var st model.Seat
		var bookingID sql.NullInt64
		if err := rows.Scan(&st.ID, &st.ScreeningID, &st.Row, &st.Number, &st.Status, &bookingID, &st.Version); err != nil {
			return nil, err
		}
		if bookingID.Valid {
			id := uint64(bookingID.Int64)
			st.BookingID = &id
		}
		result = append(result, st)
	}
	return result, rows.Err()
}

// SeatsByScreening returns every seat of a screening ordered by row and
// number, for seat-map rendering.
func (s *Store) SeatsByScreening(ctx context.Context, screeningID uint64) ([]model.Seat, error) {
	const q = `SELECT ` + seatCols + ` FROM seats WHERE screening_id = ? ORDER BY seat_row, seat_number`
	return s.querySeats(ctx, q, screeningID)
}

// SeatsByScreeningAndIDs loads the requested seats scoped to the
// screening.  Ids that do not exist or belong to another screening are
// simply absent from the result; the caller compares counts.
func (s *Store) SeatsByScreeningAndIDs(ctx context.Context, screeningID uint64, seatIDs []uint64) ([]model.Seat, error) {
	if len(seatIDs) == 0 {
		return []model.Seat{}, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(seatIDs)), ",")
	q := `SELECT ` + seatCols + ` FROM seats WHERE screening_id = ? AND id IN (` + placeholders + `) ORDER BY seat_row, seat_number`
	args := make([]any, 0, len(seatIDs)+1)
	args = append(args, screeningID)
	for _, id := range seatIDs {
		args = append(args, id)
	}
	return s.querySeats(ctx, q, args...)
}

// SeatsByBooking returns the seats owned by a booking.
func (s *Store) SeatsByBooking(ctx context.Context, bookingID uint64) ([]model.Seat, error) {
	const q = `SELECT ` + seatCols + ` FROM seats WHERE booking_id = ? ORDER BY seat_row, seat_number`
	return s.querySeats(ctx, q, bookingID)
}

// MarkSeatsBooked flips each seat to BOOKED and attaches it to the
// booking, compare-and-swapping on the version token the caller loaded.
// A statement that affects zero rows means another writer got there
// first; booking.ErrVersionMismatch then aborts the unit of work.
func (s *Store) MarkSeatsBooked(ctx context.Context, bookingID uint64, seats []model.Seat) error {
	const q = `UPDATE seats
	           SET status = ?, booking_id = ?, version = version + 1
	           WHERE id = ? AND version = ? AND status = ?`
	for _, st := range seats {
		res, err := s.q.ExecContext(ctx, q,
			string(model.SeatBooked), bookingID, st.ID, st.Version, string(model.SeatAvailable))
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return booking.ErrVersionMismatch
		}
	}
	return nil
}

// ReleaseSeats returns each seat to AVAILABLE and clears its booking
// reference, with the same version compare-and-swap as MarkSeatsBooked.
func (s *Store) ReleaseSeats(ctx context.Context, seats []model.Seat) error {
	const q = `UPDATE seats
	           SET status = ?, booking_id = NULL, version = version + 1
	           WHERE id = ? AND version = ?`
	for _, st := range seats {
		res, err := s.q.ExecContext(ctx, q, string(model.SeatAvailable), st.ID, st.Version)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return booking.ErrVersionMismatch
		}
	}
	return nil
}
