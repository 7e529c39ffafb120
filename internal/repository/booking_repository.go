package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cinematix/cinema-ticket-system/internal/booking"
	"github.com/cinematix/cinema-ticket-system/internal/model"
)

const bookingCols = `id, user_id, screening_id, total_cents, status, version, created_at`

// InsertBooking stores a booking with version 1 and populates the
// generated ID and version on the struct.
func (s *Store) InsertBooking(ctx context.Context, b *model.Booking) error {
	const q = `INSERT INTO bookings (user_id, screening_id, total_cents, status, version, created_at)
	           VALUES (?, ?, ?, ?, 1, ?)`
	res, err := s.q.ExecContext(ctx, q, b.UserID, b.ScreeningID, b.TotalCents, b.Status, b.CreatedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	b.Version = 1
	return nil
}

// GetBooking fetches a booking by id.
func (s *Store) GetBooking(ctx context.Context, id uint64) (*model.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings WHERE id = ?`
	var b model.Booking
	err := s.q.QueryRowContext(ctx, q, id).Scan(
		&b.ID, &b.UserID, &b.ScreeningID, &b.TotalCents, &b.Status, &b.Version, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, booking.ErrNoRow
		}
		return nil, err
	}
	return &b, nil
}

// DeleteBooking removes a booking, compare-and-swapping on its version
// token.  The caller has already established existence inside the same
// transaction, so zero affected rows means the version went stale.
func (s *Store) DeleteBooking(ctx context.Context, id, expectedVersion uint64) error {
	const q = `DELETE FROM bookings WHERE id = ? AND version = ?`
	res, err := s.q.ExecContext(ctx, q, id, expectedVersion)
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
	return nil
}

// BookingsByUser returns a user's bookings, newest first.
func (s *Store) BookingsByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings WHERE user_id = ? ORDER BY created_at DESC, id DESC`
	rows, err := s.q.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make([]model.Booking, 0)
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ID, &b.UserID, &b.ScreeningID, &b.TotalCents, &b.Status, &b.Version, &b.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	return result, rows.Err()
}
