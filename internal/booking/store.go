package booking

import (
	"context"

	"github.com/cinematix/cinema-ticket-system/internal/model"
)

// Store is the persistence contract the core operates against.  Loads
// return ErrNoRow when nothing matches.  Mutating methods that take an
// expected version perform a compare-and-swap against the stored
// version token and return ErrVersionMismatch when it no longer
// matches; every successful write bumps the token.
type Store interface {
	// Catalog.
	InsertMovie(ctx context.Context, m *model.Movie) error
	GetMovie(ctx context.Context, id uint64) (*model.Movie, error)
	InsertScreening(ctx context.Context, s *model.Screening) error
	GetScreening(ctx context.Context, id uint64) (*model.Screening, error)
	ListScreenings(ctx context.Context, activeOnly bool) ([]model.Screening, error)
	DeactivateScreening(ctx context.Context, id uint64) error

	// Seat registry.
	InsertSeats(ctx context.Context, seats []model.Seat) error
	SeatsByScreening(ctx context.Context, screeningID uint64) ([]model.Seat, error)
	SeatsByScreeningAndIDs(ctx context.Context, screeningID uint64, seatIDs []uint64) ([]model.Seat, error)
	SeatsByBooking(ctx context.Context, bookingID uint64) ([]model.Seat, error)
	// MarkSeatsBooked flips every seat to BOOKED and points it at
	// bookingID, comparing each seat's Version as loaded by the caller.
	MarkSeatsBooked(ctx context.Context, bookingID uint64, seats []model.Seat) error
	// ReleaseSeats flips every seat back to AVAILABLE and clears its
	// booking reference, again comparing each seat's Version.
	ReleaseSeats(ctx context.Context, seats []model.Seat) error

	// Bookings.
	InsertBooking(ctx context.Context, b *model.Booking) error
	GetBooking(ctx context.Context, id uint64) (*model.Booking, error)
	DeleteBooking(ctx context.Context, id, expectedVersion uint64) error
	BookingsByUser(ctx context.Context, userID uint64) ([]model.Booking, error)

	// Users.
	InsertUser(ctx context.Context, u *model.User) error
	GetUser(ctx context.Context, id uint64) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateUserProfile(ctx context.Context, u *model.User, expectedVersion uint64) error
	DeleteUser(ctx context.Context, id, expectedVersion uint64) error
}

// DB is a Store that can additionally open a unit of work.  InTx runs
// fn against a transactional Store: if fn returns an error, or the
// commit itself fails, every mutation made through that Store is rolled
// back and the error is returned.  InTx is the only mutation boundary
// the core uses; partial commits cannot occur by construction.
type DB interface {
	Store
	InTx(ctx context.Context, fn func(Store) error) error
}
