package model

// SeatStatus enumerates the reservation states a seat can occupy.
type SeatStatus string

const (
	// SeatAvailable means the seat can be included in a new booking.
	SeatAvailable SeatStatus = "AVAILABLE"
	// SeatLocked is a transient hold state reserved for a future
	// checkout-hold phase.  The current booking protocol moves seats
	// straight from AVAILABLE to BOOKED inside one transaction and
	// never persists LOCKED across transaction boundaries.
	SeatLocked SeatStatus = "LOCKED"
	// SeatBooked means the seat belongs to a confirmed booking.
	SeatBooked SeatStatus = "BOOKED"
)

// Seat is a single seat of a screening, identified by its (Row, Number)
// pair which is unique within the screening.  BookingID is non-nil iff
// Status is BOOKED.  Version is a counter bumped on every write and is
// the optimistic-concurrency token compared by all seat mutations.
//
// Fields:
//  ID          – primary key identifier.
//  ScreeningID – screening this seat belongs to.
//  Row         – row number (1-based).
//  Number      – seat number within the row (1-based).
//  Status      – AVAILABLE, LOCKED or BOOKED.
//  BookingID   – owning booking when BOOKED, nil otherwise.
//  Version     – optimistic-concurrency version token.
type Seat struct {
	ID          uint64     // seats.id
	ScreeningID uint64     // seats.screening_id
	Row         uint32     // seats.seat_row
	Number      uint32     // seats.seat_number
	Status      SeatStatus // seats.status
	BookingID   *uint64    // seats.booking_id (nullable)
	Version     uint64     // seats.version
}
