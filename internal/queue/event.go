// Package queue defines message payloads exchanged over the message
// broker and the background consumer that records them.
package queue

// Event kinds carried in BookingEvent.Kind.
const (
	KindBookingConfirmed = "booking.confirmed"
	KindBookingCancelled = "booking.cancelled"
)

// BookingEvent is published after a booking transaction commits.  It
// carries enough for downstream consumers to log or trigger analytics
// without querying the primary database.  Publication is best-effort
// and happens strictly after commit, so a lost event can never imply a
// lost booking.
type BookingEvent struct {
	Kind        string   `json:"kind"`
	BookingID   uint64   `json:"booking_id"`
	UserID      uint64   `json:"user_id"`
	ScreeningID uint64   `json:"screening_id"`
	Theater     string   `json:"theater"`
	SeatLabels  []string `json:"seats"`
	TotalCents  uint32   `json:"total_cents"`
	OccurredAt  string   `json:"occurred_at"`
}
