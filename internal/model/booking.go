package model

import "time"

// BookingConfirmed is the only booking status the system models.  A
// booking is created CONFIRMED and destroyed by cancellation; it is
// never otherwise mutated.
const BookingConfirmed = "CONFIRMED"

// Booking records a successful multi-seat reservation.  It links a user
// to a screening and owns the seats whose BookingID references it.
// Deleting a booking detaches its seats (sets them back to AVAILABLE)
// rather than deleting them.  Version is the optimistic-concurrency
// token checked when the booking is cancelled.
//
// Fields:
//  ID          – primary key identifier.
//  UserID      – user who made the booking.
//  ScreeningID – screening the seats belong to.
//  TotalCents  – seat count × screening price, in cents.
//  Status      – always CONFIRMED.
//  Version     – optimistic-concurrency version token.
//  CreatedAt   – when the booking was committed.
type Booking struct {
	ID          uint64    // bookings.id
	UserID      uint64    // bookings.user_id
	ScreeningID uint64    // bookings.screening_id
	TotalCents  uint32    // bookings.total_cents
	Status      string    // bookings.status
	Version     uint64    // bookings.version
	CreatedAt   time.Time // bookings.created_at
}
