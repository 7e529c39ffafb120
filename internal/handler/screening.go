package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cinematix/cinema-ticket-system/internal/booking"
	"github.com/cinematix/cinema-ticket-system/internal/cache"
	"github.com/cinematix/cinema-ticket-system/internal/model"
)

// ScreeningHandler serves the public catalog (screenings and seat maps)
// and the admin endpoints that manage it.
type ScreeningHandler struct {
	Manager *booking.Manager
	Cache   *cache.SeatMapCache
}

// NewScreeningHandler constructs a ScreeningHandler.  Cache may be nil.
func NewScreeningHandler(m *booking.Manager, seatCache *cache.SeatMapCache) *ScreeningHandler {
	if m == nil {
		panic("nil manager passed to NewScreeningHandler")
	}
	return &ScreeningHandler{Manager: m, Cache: seatCache}
}

// List handles GET /v1/screenings and returns active screenings.
func (h *ScreeningHandler) List(c echo.Context) error {
	screenings, err := h.Manager.ListScreenings(c.Request().Context())
	if err != nil {
		return coreError(c, err)
	}
	items := make([]echo.Map, 0, len(screenings))
	for _, s := range screenings {
		items = append(items, screeningView(s))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// SeatMap handles GET /v1/screenings/:id/seats.  The rendered map is
// served from the Redis cache when present; a miss falls through to the
// store and repopulates the cache.  The map is advisory only: whether a
// seat can actually be taken is decided by the version-checked write.
func (h *ScreeningHandler) SeatMap(c echo.Context) error {
	screeningID, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid screening id"})
	}
	ctx := c.Request().Context()
	if cached, ok := h.Cache.Get(ctx, screeningID); ok {
		return c.JSONBlob(http.StatusOK, cached)
	}
	sm, err := h.Manager.GetSeatMap(ctx, screeningID)
	if err != nil {
		return coreError(c, err)
	}
	payload, err := json.Marshal(echo.Map{
		"screening": screeningView(sm.Screening),
		"seats":     seatViews(sm.Seats),
	})
	if err != nil {
		return coreError(c, err)
	}
	h.Cache.Set(ctx, screeningID, payload)
	return c.JSONBlob(http.StatusOK, payload)
}

// CreateMovie handles POST /v1/admin/movies.
func (h *ScreeningHandler) CreateMovie(c echo.Context) error {
	var body struct {
		Title       string `json:"title"`
		DurationMin uint32 `json:"duration_min"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.Title = strings.TrimSpace(body.Title)
	if body.Title == "" || body.DurationMin == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and duration_min are required"})
	}
	mv := &model.Movie{Title: body.Title, DurationMin: body.DurationMin}
	if err := h.Manager.CreateMovie(c.Request().Context(), mv); err != nil {
		return coreError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": mv.ID})
}

// CreateScreening handles POST /v1/admin/screenings.  The seat grid is
// generated together with the screening in one unit of work.
func (h *ScreeningHandler) CreateScreening(c echo.Context) error {
	var body struct {
		MovieID     uint64 `json:"movie_id"`
		Theater     string `json:"theater"`
		StartsAt    string `json:"starts_at"`
		SeatRows    uint32 `json:"seat_rows"`
		SeatsPerRow uint32 `json:"seats_per_row"`
		PriceCents  uint32 `json:"price_cents"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	startsAt, err := time.Parse(time.RFC3339, body.StartsAt)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "starts_at must be RFC3339"})
	}
	s := &model.Screening{
		MovieID:     body.MovieID,
		Theater:     strings.TrimSpace(body.Theater),
		StartsAt:    startsAt.UTC(),
		SeatRows:    body.SeatRows,
		SeatsPerRow: body.SeatsPerRow,
		PriceCents:  body.PriceCents,
	}
	if s.Theater == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "theater is required"})
	}
	if err := h.Manager.CreateScreening(c.Request().Context(), s); err != nil {
		return coreError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": s.ID, "total_seats": s.TotalSeats})
}

// Deactivate handles DELETE /v1/admin/screenings/:id.  Existing
// bookings survive; the screening just stops accepting new ones.
func (h *ScreeningHandler) Deactivate(c echo.Context) error {
	screeningID, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid screening id"})
	}
	ctx := c.Request().Context()
	if err := h.Manager.DeactivateScreening(ctx, screeningID); err != nil {
		return coreError(c, err)
	}
	h.Cache.Invalidate(ctx, screeningID)
	return c.NoContent(http.StatusNoContent)
}

func screeningView(s model.Screening) echo.Map {
	return echo.Map{
		"id":            s.ID,
		"movie_id":      s.MovieID,
		"theater":       s.Theater,
		"starts_at":     s.StartsAt.Format(time.RFC3339),
		"seat_rows":     s.SeatRows,
		"seats_per_row": s.SeatsPerRow,
		"total_seats":   s.TotalSeats,
		"price_cents":   s.PriceCents,
	}
}
