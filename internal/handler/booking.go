package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cinematix/cinema-ticket-system/internal/booking"
	"github.com/cinematix/cinema-ticket-system/internal/cache"
	"github.com/cinematix/cinema-ticket-system/internal/model"
	"github.com/cinematix/cinema-ticket-system/internal/queue"
	queue_publisher "github.com/cinematix/cinema-ticket-system/internal/service"
)

// BookingHandler exposes booking creation, cancellation and history.
// Event publication and cache invalidation both happen strictly after
// the core's unit of work committed; neither can fail a booking.
type BookingHandler struct {
	Manager *booking.Manager
	Cache   *cache.SeatMapCache
}

// NewBookingHandler constructs a BookingHandler.  Cache may be nil.
func NewBookingHandler(m *booking.Manager, seatCache *cache.SeatMapCache) *BookingHandler {
	if m == nil {
		panic("nil manager passed to NewBookingHandler")
	}
	return &BookingHandler{Manager: m, Cache: seatCache}
}

// Create handles POST /v1/screenings/:id/bookings.  The request body
// carries the selected seat ids; the response carries the new booking
// id and total, or a failure kind mapped by coreError.
func (h *BookingHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	screeningID, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid screening id"})
	}
	var body struct {
		SeatIDs []uint64 `json:"seat_ids"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ctx := c.Request().Context()
	bookingID, err := h.Manager.CreateBooking(ctx, userID, screeningID, body.SeatIDs)
	if err != nil {
		return coreError(c, err)
	}
	h.Cache.Invalidate(ctx, screeningID)

	detail, err := h.Manager.GetBookingForUser(ctx, userID, bookingID)
	if err != nil {
		// The booking committed; respond with what we have.
		return c.JSON(http.StatusCreated, echo.Map{"booking_id": bookingID})
	}
	h.publish(c, queue.KindBookingConfirmed, detail)
	return c.JSON(http.StatusCreated, echo.Map{
		"booking_id":  bookingID,
		"total_cents": detail.Booking.TotalCents,
		"version":     detail.Booking.Version,
		"seats":       seatViews(detail.Seats),
	})
}

// Cancel handles DELETE /v1/bookings/:id.  The expected version token
// comes from the If-Match-Version header or the `version` query
// parameter; a stale token yields 409 and leaves the booking untouched.
func (h *BookingHandler) Cancel(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	version, ok := expectedVersion(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "expected version is required"})
	}
	ctx := c.Request().Context()
	// Snapshot before the cancel so the event can name the released
	// seats; the core re-reads everything inside its unit of work.
	detail, derr := h.Manager.GetBookingForUser(ctx, userID, bookingID)

	if err := h.Manager.CancelBooking(ctx, userID, bookingID, version); err != nil {
		return coreError(c, err)
	}
	if derr == nil {
		h.Cache.Invalidate(ctx, detail.Booking.ScreeningID)
		h.publish(c, queue.KindBookingCancelled, detail)
	}
	return c.NoContent(http.StatusNoContent)
}

// List handles GET /v1/bookings and returns the user's booking history.
func (h *BookingHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	details, err := h.Manager.BookingsForUser(c.Request().Context(), userID)
	if err != nil {
		return coreError(c, err)
	}
	items := make([]echo.Map, 0, len(details))
	for _, d := range details {
		items = append(items, bookingView(d))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/bookings/:id for the authenticated user.
func (h *BookingHandler) Get(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	detail, err := h.Manager.GetBookingForUser(c.Request().Context(), userID, bookingID)
	if err != nil {
		return coreError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": bookingView(*detail)})
}

func (h *BookingHandler) publish(c echo.Context, kind string, d *booking.BookingDetail) {
	labels := make([]string, 0, len(d.Seats))
	for _, s := range d.Seats {
		labels = append(labels, fmt.Sprintf("%d-%d", s.Row, s.Number))
	}
	theater := ""
	if sc, err := h.Manager.GetScreening(c.Request().Context(), d.Booking.ScreeningID); err == nil {
		theater = sc.Theater
	}
	ev := queue.BookingEvent{
		Kind:        kind,
		BookingID:   d.Booking.ID,
		UserID:      d.Booking.UserID,
		ScreeningID: d.Booking.ScreeningID,
		Theater:     theater,
		SeatLabels:  labels,
		TotalCents:  d.Booking.TotalCents,
		OccurredAt:  time.Now().UTC().Format(time.RFC3339),
	}
	// Best-effort; the booking already committed.
	_ = queue_publisher.PublishBookingEvent(c.Request().Context(), ev)
}

func bookingView(d booking.BookingDetail) echo.Map {
	return echo.Map{
		"id":           d.Booking.ID,
		"screening_id": d.Booking.ScreeningID,
		"total_cents":  d.Booking.TotalCents,
		"status":       d.Booking.Status,
		"version":      d.Booking.Version,
		"created_at":   d.Booking.CreatedAt.Format(time.RFC3339),
		"seats":        seatViews(d.Seats),
	}
}

func seatViews(seats []model.Seat) []echo.Map {
	out := make([]echo.Map, 0, len(seats))
	for _, s := range seats {
		out = append(out, seatView(s))
	}
	return out
}
