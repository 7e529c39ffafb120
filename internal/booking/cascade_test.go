package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinematix/cinema-ticket-system/internal/model"
)

func TestDeleteUserCascadesBookingsAndSeats(t *testing.T) {
	db := newMemDB()
	m := NewManager(db)
	ctx := context.Background()
	sc, seats := seedScreening(t, m, 2, 2, 1000)
	victim := seedUser(t, db, "victim@example.com")
	bystander := seedUser(t, db, "bystander@example.com")

	b1, err := m.CreateBooking(ctx, victim.ID, sc.ID, seatIDs(seats, 0))
	require.NoError(t, err)
	b2, err := m.CreateBooking(ctx, victim.ID, sc.ID, seatIDs(seats, 1, 2))
	require.NoError(t, err)
	keep, err := m.CreateBooking(ctx, bystander.ID, sc.ID, seatIDs(seats, 3))
	require.NoError(t, err)

	require.NoError(t, m.DeleteUser(ctx, victim.ID, victim.Version))

	_, err = db.GetUser(ctx, victim.ID)
	assert.ErrorIs(t, err, ErrNoRow)
	_, err = db.GetBooking(ctx, b1)
	assert.ErrorIs(t, err, ErrNoRow)
	_, err = db.GetBooking(ctx, b2)
	assert.ErrorIs(t, err, ErrNoRow)

	// The victim's three seats are free again; the bystander's booking
	// and seat are untouched.
	all, err := db.SeatsByScreening(ctx, sc.ID)
	require.NoError(t, err)
	free := 0
	for _, s := range all {
		if s.Status == model.SeatAvailable {
			free++
		}
	}
	assert.Equal(t, 3, free)
	kept, err := db.SeatsByBooking(ctx, keep)
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.Equal(t, model.SeatBooked, kept[0].Status)
	_, err = db.GetBooking(ctx, keep)
	require.NoError(t, err)
	_, err = db.GetUser(ctx, bystander.ID)
	require.NoError(t, err)
}

func TestDeleteUserStaleVersionAbortsWholeCascade(t *testing.T) {
	db := newMemDB()
	m := NewManager(db)
	ctx := context.Background()
	sc, seats := seedScreening(t, m, 1, 2, 1000)
	u := seedUser(t, db, "ada@example.com")

	bookingID, err := m.CreateBooking(ctx, u.ID, sc.ID, seatIDs(seats, 0))
	require.NoError(t, err)

	err = m.DeleteUser(ctx, u.ID, u.Version+5)
	assert.ErrorIs(t, err, ErrStaleWrite)

	// User, booking and seats all survive.
	_, err = db.GetUser(ctx, u.ID)
	require.NoError(t, err)
	_, err = db.GetBooking(ctx, bookingID)
	require.NoError(t, err)
	owned, err := db.SeatsByBooking(ctx, bookingID)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, model.SeatBooked, owned[0].Status)
}

func TestDeleteUserUnknown(t *testing.T) {
	db := newMemDB()
	m := NewManager(db)

	err := m.DeleteUser(context.Background(), 12345, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}
