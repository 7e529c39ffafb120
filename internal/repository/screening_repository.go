package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cinematix/cinema-ticket-system/internal/booking"
	"github.com/cinematix/cinema-ticket-system/internal/model"
)

const screeningCols = `id, movie_id, theater, starts_at, seat_rows, seats_per_row,
	total_seats, price_cents, is_active, created_at, updated_at`

func scanScreening(row interface{ Scan(...any) error }, sc *model.Screening) error {
	return row.Scan(
		&sc.ID, &sc.MovieID, &sc.Theater, &sc.StartsAt, &sc.SeatRows, &sc.SeatsPerRow,
		&sc.TotalSeats, &sc.PriceCents, &sc.IsActive, &sc.CreatedAt, &sc.UpdatedAt,
	)
}

// InsertScreening stores a screening and populates the generated ID.
// Seat generation happens separately, inside the same unit of work.
func (s *Store) InsertScreening(ctx context.Context, sc *model.Screening) error {
	const q = `INSERT INTO screenings
	           (movie_id, theater, starts_at, seat_rows, seats_per_row, total_seats, price_cents, is_active, created_at, updated_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := s.q.ExecContext(ctx, q,
		sc.MovieID, sc.Theater, sc.StartsAt, sc.SeatRows, sc.SeatsPerRow,
		sc.TotalSeats, sc.PriceCents, sc.IsActive, sc.CreatedAt, sc.UpdatedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	sc.ID = uint64(id)
	return nil
}

// GetScreening fetches a screening by id.
func (s *Store) GetScreening(ctx context.Context, id uint64) (*model.Screening, error) {
	const q = `SELECT ` + screeningCols + ` FROM screenings WHERE id = ?`
	var sc model.Screening
	if err := scanScreening(s.q.QueryRowContext(ctx, q, id), &sc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, booking.ErrNoRow
		}
		return nil, err
	}
	return &sc, nil
}

// ListScreenings returns screenings ordered by start time ascending.
func (s *Store) ListScreenings(ctx context.Context, activeOnly bool) ([]model.Screening, error) {
	q := `SELECT ` + screeningCols + ` FROM screenings`
	if activeOnly {
		q += ` WHERE is_active = 1`
	}
	q += ` ORDER BY starts_at ASC`
	rows, err := s.q.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make([]model.Screening, 0)
	for rows.Next() {
		var sc model.Screening
		if err := scanScreening(rows, &sc); err != nil {
			return nil, err
		}
		result = append(result, sc)
	}
	return result, rows.Err()
}

// DeactivateScreening withdraws a screening from booking.  Touching
// updated_at keeps the statement a real write even when the screening
// was already inactive.
func (s *Store) DeactivateScreening(ctx context.Context, id uint64) error {
	const q = `UPDATE screenings SET is_active = 0, updated_at = UTC_TIMESTAMP() WHERE id = ?`
	res, err := s.q.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return booking.ErrNoRow
	}
	return nil
}
