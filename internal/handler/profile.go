package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cinematix/cinema-ticket-system/internal/booking"
)

// ProfileHandler lets an authenticated user edit their own profile with
// optimistic concurrency: the client presents the version it last read,
// and a stale version yields 409 with the current values so the client
// can merge and retry.
type ProfileHandler struct {
	Manager *booking.Manager
}

// NewProfileHandler constructs a ProfileHandler.
func NewProfileHandler(m *booking.Manager) *ProfileHandler {
	if m == nil {
		panic("nil manager passed to NewProfileHandler")
	}
	return &ProfileHandler{Manager: m}
}

// Update handles PATCH /v1/auth/me.  Only fields present in the body
// are changed; absent fields keep their stored values.
func (h *ProfileHandler) Update(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	version, ok := expectedVersion(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "expected version is required"})
	}
	var body struct {
		FirstName   *string `json:"first_name"`
		LastName    *string `json:"last_name"`
		Phone       *string `json:"phone"`
		DateOfBirth *string `json:"date_of_birth"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	upd := booking.ProfileUpdate{
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Phone:     body.Phone,
	}
	if body.DateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *body.DateOfBirth)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "date_of_birth must be YYYY-MM-DD"})
		}
		upd.DateOfBirth = &dob
	}
	updated, err := h.Manager.UpdateProfile(c.Request().Context(), userID, version, upd)
	if err != nil {
		return coreError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": userView(updated)})
}
