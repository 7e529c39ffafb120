package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinematix/cinema-ticket-system/internal/model"
)

func seedUser(t *testing.T, db *memDB, email string) *model.User {
	t.Helper()
	u := &model.User{
		Email:        email,
		PasswordHash: "x",
		Role:         model.RoleCustomer,
		FirstName:    "Ada",
		LastName:     "Lovelace",
		IsActive:     true,
	}
	require.NoError(t, db.InsertUser(context.Background(), u))
	return u
}

func strp(s string) *string { return &s }

func TestUpdateProfileAppliesOnlyPresentFields(t *testing.T) {
	db := newMemDB()
	m := NewManager(db)
	ctx := context.Background()
	u := seedUser(t, db, "ada@example.com")

	dob := time.Date(1990, 3, 14, 0, 0, 0, 0, time.UTC)
	updated, err := m.UpdateProfile(ctx, u.ID, u.Version, ProfileUpdate{
		Phone:       strp("+49 30 1234567"),
		DateOfBirth: &dob,
	})
	require.NoError(t, err)

	assert.Equal(t, "Ada", updated.FirstName, "absent field keeps stored value")
	assert.Equal(t, "Lovelace", updated.LastName)
	assert.Equal(t, "+49 30 1234567", updated.Phone)
	require.NotNil(t, updated.DateOfBirth)
	assert.True(t, updated.DateOfBirth.Equal(dob))
	assert.Equal(t, u.Version+1, updated.Version, "successful write bumps the version token")

	stored, err := db.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.Version, stored.Version)
	assert.Equal(t, "+49 30 1234567", stored.Phone)
}

func TestUpdateProfileStaleVersionReturnsCurrentValues(t *testing.T) {
	db := newMemDB()
	m := NewManager(db)
	ctx := context.Background()
	u := seedUser(t, db, "ada@example.com")

	// Someone else edits first; the token the second editor holds is
	// now stale.
	_, err := m.UpdateProfile(ctx, u.ID, u.Version, ProfileUpdate{Phone: strp("first-writer")})
	require.NoError(t, err)

	_, err = m.UpdateProfile(ctx, u.ID, u.Version, ProfileUpdate{Phone: strp("second-writer")})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStaleWrite)

	var stale *StaleWriteError
	require.ErrorAs(t, err, &stale)
	current, ok := stale.Current.(*model.User)
	require.True(t, ok)
	assert.Equal(t, "first-writer", current.Phone, "conflict carries the authoritative row")
	assert.Equal(t, u.Version+1, current.Version)

	stored, err := db.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "first-writer", stored.Phone, "stale write must not persist anything")
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	db := newMemDB()
	m := NewManager(db)

	_, err := m.UpdateProfile(context.Background(), 999, 1, ProfileUpdate{Phone: strp("x")})
	assert.ErrorIs(t, err, ErrNotFound)
}
