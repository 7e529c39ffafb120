package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cinematix/cinema-ticket-system/internal/booking"
	"github.com/cinematix/cinema-ticket-system/internal/model"
)

// InsertMovie stores a movie and populates the generated ID.
func (s *Store) InsertMovie(ctx context.Context, m *model.Movie) error {
	const q = `INSERT INTO movies (title, duration_min, created_at) VALUES (?, ?, ?)`
	res, err := s.q.ExecContext(ctx, q, m.Title, m.DurationMin, m.CreatedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

// GetMovie fetches a movie by id.
func (s *Store) GetMovie(ctx context.Context, id uint64) (*model.Movie, error) {
	const q = `SELECT id, title, duration_min, created_at FROM movies WHERE id = ?`
	var m model.Movie
	err := s.q.QueryRowContext(ctx, q, id).Scan(&m.ID, &m.Title, &m.DurationMin, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, booking.ErrNoRow
		}
		return nil, err
	}
	return &m, nil
}
