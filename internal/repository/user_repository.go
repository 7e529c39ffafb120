package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/cinematix/cinema-ticket-system/internal/booking"
	"github.com/cinematix/cinema-ticket-system/internal/model"
)

// ErrEmailExists is returned when registration hits the unique email
// constraint.
var ErrEmailExists = errors.New("email already exists")

const userCols = `id, email, password_hash, role, first_name, last_name, phone,
	date_of_birth, is_active, version, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	var u model.User
	var dob sql.NullTime
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.FirstName, &u.LastName, &u.Phone,
		&dob, &u.IsActive, &u.Version, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if dob.Valid {
		t := dob.Time
		u.DateOfBirth = &t
	}
	return &u, nil
}

// InsertUser stores a user with version 1 and populates the generated
// ID and version.  The email is normalized to lower case.
func (s *Store) InsertUser(ctx context.Context, u *model.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	const q = `INSERT INTO users (email, password_hash, role, first_name, last_name, phone, date_of_birth, is_active, version, created_at, updated_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?, 1, 1, UTC_TIMESTAMP(), UTC_TIMESTAMP())`
	res, err := s.q.ExecContext(ctx, q, u.Email, u.PasswordHash, u.Role, u.FirstName, u.LastName, u.Phone, u.DateOfBirth)
	if err != nil {
		// MySQL duplicate-key error code.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrEmailExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(id)
	u.Version = 1
	u.IsActive = true
	return nil
}

// GetUser fetches a user by id.
func (s *Store) GetUser(ctx context.Context, id uint64) (*model.User, error) {
	const q = `SELECT ` + userCols + ` FROM users WHERE id = ?`
	u, err := scanUser(s.q.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, booking.ErrNoRow
		}
		return nil, err
	}
	return u, nil
}

// GetUserByEmail fetches a user by normalized email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	const q = `SELECT ` + userCols + ` FROM users WHERE email = ? LIMIT 1`
	u, err := scanUser(s.q.QueryRowContext(ctx, q, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, booking.ErrNoRow
		}
		return nil, err
	}
	return u, nil
}

// UpdateUserProfile writes the profile fields, compare-and-swapping on
// the version token.  On success the struct's Version is advanced to
// the new stored value.
func (s *Store) UpdateUserProfile(ctx context.Context, u *model.User, expectedVersion uint64) error {
	const q = `UPDATE users
	           SET first_name = ?, last_name = ?, phone = ?, date_of_birth = ?,
	               version = version + 1, updated_at = UTC_TIMESTAMP()
	           WHERE id = ? AND version = ?`
	res, err := s.q.ExecContext(ctx, q, u.FirstName, u.LastName, u.Phone, u.DateOfBirth, u.ID, expectedVersion)
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
	u.Version = expectedVersion + 1
	return nil
}

// DeleteUser removes a user row, compare-and-swapping on the version
// token.  The caller has already established existence inside the same
// transaction, so zero affected rows means the version went stale.
func (s *Store) DeleteUser(ctx context.Context, id, expectedVersion uint64) error {
	const q = `DELETE FROM users WHERE id = ? AND version = ?`
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
