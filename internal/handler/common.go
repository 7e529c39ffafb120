// Package handler exposes the booking core over HTTP.  Handlers do
// request parsing, identity extraction and error-to-status mapping; all
// seat and booking mutations happen inside the core's units of work.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/cinematix/cinema-ticket-system/internal/booking"
	"github.com/cinematix/cinema-ticket-system/internal/model"
)

// getUserID extracts the user_id placed in the context by JWTAuth and
// converts it to uint64.  JWT numeric claims round-trip as float64.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return id, err == nil && id != 0
}

// coreError translates a failure kind from the booking core into an
// HTTP response.  Every kind gets its own actionable message; stale
// writes additionally carry the authoritative current values when the
// core supplied them.
func coreError(c echo.Context, err error) error {
	var stale *booking.StaleWriteError
	switch {
	case errors.As(err, &stale):
		body := echo.Map{"error": "record changed by someone else, please review the current values"}
		if u, ok := stale.Current.(*model.User); ok {
			body["current"] = userView(u)
		}
		return c.JSON(http.StatusConflict, body)
	case errors.Is(err, booking.ErrStaleWrite):
		return c.JSON(http.StatusConflict, echo.Map{"error": "record changed by someone else, please refresh and try again"})
	case errors.Is(err, booking.ErrSeatConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "one or more selected seats were just taken, please pick different seats"})
	case errors.Is(err, booking.ErrInvalidSelection):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat selection"})
	case errors.Is(err, booking.ErrNotFound), errors.Is(err, booking.ErrNoRow):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, booking.ErrNotAuthorized):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not allowed"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "the operation could not be completed, nothing was changed"})
	}
}

// expectedVersion reads the optimistic-concurrency token a client must
// present with conditional writes.  The If-Match-Version header wins;
// the `version` query parameter is the fallback for plain clients.
func expectedVersion(c echo.Context) (uint64, bool) {
	raw := c.Request().Header.Get("If-Match-Version")
	if raw == "" {
		raw = c.QueryParam("version")
	}
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// userView is the JSON shape for user rows; the password hash never
// leaves the server.
func userView(u *model.User) echo.Map {
	view := echo.Map{
		"id":         u.ID,
		"email":      u.Email,
		"role":       u.Role,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"phone":      u.Phone,
		"version":    u.Version,
	}
	if u.DateOfBirth != nil {
		view["date_of_birth"] = u.DateOfBirth.Format("2006-01-02")
	}
	return view
}

// seatView is the JSON shape for seats in seat maps and bookings.
func seatView(s model.Seat) echo.Map {
	return echo.Map{
		"id":      s.ID,
		"row":     s.Row,
		"number":  s.Number,
		"status":  s.Status,
		"version": s.Version,
	}
}
