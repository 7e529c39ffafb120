package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cinematix/cinema-ticket-system/internal/booking"
)

// AdminUserHandler is the admin-only user surface: editing any user's
// profile and deleting a user together with everything they own.
type AdminUserHandler struct {
	Manager *booking.Manager
	Store   booking.Store
}

// NewAdminUserHandler constructs an AdminUserHandler.
func NewAdminUserHandler(m *booking.Manager, store booking.Store) *AdminUserHandler {
	if m == nil || store == nil {
		panic("nil dependency passed to NewAdminUserHandler")
	}
	return &AdminUserHandler{Manager: m, Store: store}
}

// Get handles GET /v1/admin/users/:id.
func (h *AdminUserHandler) Get(c echo.Context) error {
	userID, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	u, err := h.Store.GetUser(c.Request().Context(), userID)
	if err != nil {
		return coreError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": userView(u)})
}

// Update handles PATCH /v1/admin/users/:id.  Same conditional-write
// contract as self-service profile edits: a stale version yields 409
// with the current row.
func (h *AdminUserHandler) Update(c echo.Context) error {
	userID, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
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

// Delete handles DELETE /v1/admin/users/:id.  The cascade releases the
// user's booked seats, removes their bookings and finally the user row,
// all in one unit of work.  A stale version leaves everything in place.
func (h *AdminUserHandler) Delete(c echo.Context) error {
	userID, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	version, ok := expectedVersion(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "expected version is required"})
	}
	if err := h.Manager.DeleteUser(c.Request().Context(), userID, version); err != nil {
		return coreError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
