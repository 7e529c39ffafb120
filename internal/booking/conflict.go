package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cinematix/cinema-ticket-system/internal/model"
)

// ProfileUpdate holds the field mutations of a profile edit.  Nil
// pointers leave the stored value unchanged.
type ProfileUpdate struct {
	FirstName   *string
	LastName    *string
	Phone       *string
	DateOfBirth *time.Time
}

// UpdateProfile applies a profile edit to a user only if the stored
// version token still equals expectedVersion.  On success it returns
// the row as persisted, carrying the new version token.  On a version
// mismatch it returns a *StaleWriteError whose Current field holds the
// authoritative row, so the caller can show the end user what changed
// instead of guessing; stored data is never mutated in that case.
//
// This is the single mechanism guarding profile and administrative user
// edits against concurrent writers; seat and booking mutations apply
// the same version-token rule inside the manager's units of work.
func (m *Manager) UpdateProfile(ctx context.Context, userID, expectedVersion uint64, upd ProfileUpdate) (*model.User, error) {
	var out *model.User
	err := m.db.InTx(ctx, func(tx Store) error {
		u, err := tx.GetUser(ctx, userID)
		if err != nil {
			if errors.Is(err, ErrNoRow) {
				return fmt.Errorf("%w: user %d", ErrNotFound, userID)
			}
			return err
		}
		if upd.FirstName != nil {
			u.FirstName = *upd.FirstName
		}
		if upd.LastName != nil {
			u.LastName = *upd.LastName
		}
		if upd.Phone != nil {
			u.Phone = *upd.Phone
		}
		if upd.DateOfBirth != nil {
			dob := *upd.DateOfBirth
			u.DateOfBirth = &dob
		}
		if err := tx.UpdateUserProfile(ctx, u, expectedVersion); err != nil {
			return err
		}
		out = u
		return nil
	})
	if err == nil {
		return out, nil
	}
	if errors.Is(err, ErrVersionMismatch) {
		// Reload outside the aborted unit of work so the caller sees
		// what is actually stored now.
		current, loadErr := m.db.GetUser(ctx, userID)
		if loadErr != nil {
			return nil, classify(loadErr)
		}
		return nil, &StaleWriteError{Current: current}
	}
	return nil, classify(err)
}
