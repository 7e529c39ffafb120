package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cinematix/cinema-ticket-system/internal/booking"
	"github.com/cinematix/cinema-ticket-system/internal/model"
	"github.com/cinematix/cinema-ticket-system/internal/repository"
	"github.com/cinematix/cinema-ticket-system/internal/utils"
)

// AuthHandler implements the authentication boundary: it registers
// customers and exchanges credentials for access tokens.  The booking
// core never sees credentials, only the numeric user id carried in the
// token's subject claim.
type AuthHandler struct {
	Store      booking.Store
	JWTSecret  string
	AccessTTL  int // minutes
	BcryptCost int
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(store booking.Store, jwtSecret string, accessTTLMin, bcryptCost int) *AuthHandler {
	if store == nil {
		panic("nil store passed to NewAuthHandler")
	}
	return &AuthHandler{Store: store, JWTSecret: jwtSecret, AccessTTL: accessTTLMin, BcryptCost: bcryptCost}
}

// Register handles POST /v1/auth/register.  New accounts always get the
// CUSTOMER role; admins are provisioned out of band.
func (h *AuthHandler) Register(c echo.Context) error {
	var body struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Phone     string `json:"phone"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	email := strings.ToLower(strings.TrimSpace(body.Email))
	if email == "" || !strings.Contains(email, "@") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "valid email is required"})
	}
	if len(body.Password) < 8 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be at least 8 characters"})
	}
	hash, err := utils.HashPassword(body.Password, h.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}
	u := &model.User{
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleCustomer,
		FirstName:    strings.TrimSpace(body.FirstName),
		LastName:     strings.TrimSpace(body.LastName),
		Phone:        strings.TrimSpace(body.Phone),
	}
	if err := h.Store.InsertUser(c.Request().Context(), u); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"user": userView(u)})
}

// Login handles POST /v1/auth/login and returns a signed access token.
func (h *AuthHandler) Login(c echo.Context) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	u, err := h.Store.GetUserByEmail(c.Request().Context(), body.Email)
	if err != nil {
		if errors.Is(err, booking.ErrNoRow) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}
	if !u.IsActive || !utils.VerifyPassword(u.PasswordHash, body.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	tok, err := utils.NewAccessToken(h.JWTSecret, u.ID, u.Role, h.AccessTTL)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"access_token": tok.Token,
		"expires_at":   tok.Exp.Format(time.RFC3339),
	})
}

// Me handles GET /v1/auth/me and returns the authenticated user's profile,
// including the version token profile edits must present.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	u, err := h.Store.GetUser(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, booking.ErrNoRow) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load profile"})
	}
	return c.JSON(http.StatusOK, echo.Map{"user": userView(u)})
}
