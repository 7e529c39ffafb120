package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinematix/cinema-ticket-system/internal/booking"
	"github.com/cinematix/cinema-ticket-system/internal/model"
)

func testContext(t *testing.T, req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func TestCoreErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{booking.ErrNotFound, http.StatusNotFound},
		{booking.ErrNoRow, http.StatusNotFound},
		{booking.ErrNotAuthorized, http.StatusForbidden},
		{booking.ErrInvalidSelection, http.StatusBadRequest},
		{booking.ErrSeatConflict, http.StatusConflict},
		{booking.ErrStaleWrite, http.StatusConflict},
		{booking.ErrTransactionFailed, http.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", booking.ErrSeatConflict), http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			c, rec := testContext(t, httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, coreError(c, tc.err))
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestCoreErrorStaleWriteCarriesCurrentUser(t *testing.T) {
	c, rec := testContext(t, httptest.NewRequest(http.MethodPatch, "/", nil))
	err := coreError(c, &booking.StaleWriteError{Current: &model.User{
		ID:      9,
		Email:   "ada@example.com",
		Role:    model.RoleCustomer,
		Version: 4,
	}})
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), `"current"`)
	assert.Contains(t, rec.Body.String(), `"ada@example.com"`)
	assert.NotContains(t, rec.Body.String(), "password", "password hash never leaves the server")
}

func TestExpectedVersionSources(t *testing.T) {
	req := httptest.NewRequest(http.MethodDelete, "/?version=7", nil)
	c, _ := testContext(t, req)
	v, ok := expectedVersion(c)
	require.True(t, ok)
	assert.Equal(t, uint64(7), v)

	req = httptest.NewRequest(http.MethodDelete, "/", nil)
	req.Header.Set("If-Match-Version", "12")
	c, _ = testContext(t, req)
	v, ok = expectedVersion(c)
	require.True(t, ok)
	assert.Equal(t, uint64(12), v)

	req = httptest.NewRequest(http.MethodDelete, "/?version=abc", nil)
	c, _ = testContext(t, req)
	_, ok = expectedVersion(c)
	assert.False(t, ok)

	req = httptest.NewRequest(http.MethodDelete, "/", nil)
	c, _ = testContext(t, req)
	_, ok = expectedVersion(c)
	assert.False(t, ok)
}

func TestGetUserIDAcceptsJWTClaimTypes(t *testing.T) {
	c, _ := testContext(t, httptest.NewRequest(http.MethodGet, "/", nil))
	c.Set("user_id", float64(31))
	id, err := getUserID(c)
	require.NoError(t, err)
	assert.Equal(t, uint64(31), id)

	c, _ = testContext(t, httptest.NewRequest(http.MethodGet, "/", nil))
	c.Set("user_id", uint64(8))
	id, err = getUserID(c)
	require.NoError(t, err)
	assert.Equal(t, uint64(8), id)

	c, _ = testContext(t, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err = getUserID(c)
	assert.Error(t, err)
}
