package model

import "time"

// Screening represents a scheduled showing of a movie in a theater.
// Once its seats have been generated a screening is immutable except
// for deactivation.  Each screening owns TotalSeats seat rows in the
// `seats` table, laid out as SeatRows × SeatsPerRow.
//
// Fields:
//  ID          – primary key identifier.
//  MovieID     – movie being shown.
//  Theater     – name of the theater/venue.
//  StartsAt    – when the screening begins (UTC).
//  SeatRows    – number of seating rows.
//  SeatsPerRow – number of seats per row.
//  TotalSeats  – SeatRows × SeatsPerRow, denormalized for display.
//  PriceCents  – flat per-seat ticket price in cents.
//  IsActive    – whether the screening is offered for booking.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Screening struct {
	ID          uint64    // screenings.id
	MovieID     uint64    // screenings.movie_id
	Theater     string    // screenings.theater
	StartsAt    time.Time // screenings.starts_at
	SeatRows    uint32    // screenings.seat_rows
	SeatsPerRow uint32    // screenings.seats_per_row
	TotalSeats  uint32    // screenings.total_seats
	PriceCents  uint32    // screenings.price_cents
	IsActive    bool      // screenings.is_active
	CreatedAt   time.Time // screenings.created_at
	UpdatedAt   time.Time // screenings.updated_at
}
