package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yashwin-Sudarshan/BookingWebsiteProject/internal/service"
	"github.com/Yashwin-Sudarshan/BookingWebsiteProject/pkg/auth"
)

const testSecret = "test-secret"

func callWithAuth(t *testing.T, header string) (int, service.Actor, bool) {
	t.Helper()
	e := echo.New()

	var actor service.Actor
	var found bool
	next := func(c echo.Context) error {
		actor, found = ActorFromContext(c)
		return c.NoContent(http.StatusOK)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := JWTAuth(testSecret)(next)(c)
	if err != nil {
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		return he.Code, actor, found
	}
	return rec.Code, actor, found
}

func TestJWTAuth_ValidToken(t *testing.T) {
	token, err := auth.CreateAccessToken(testSecret, 42, false, true, time.Hour)
	require.NoError(t, err)

	code, actor, found := callWithAuth(t, "Bearer "+token)

	assert.Equal(t, http.StatusOK, code)
	require.True(t, found)
	assert.Equal(t, uint(42), actor.UserID)
	assert.False(t, actor.Admin)
	assert.True(t, actor.Worker)
}

func TestJWTAuth_AdminClaims(t *testing.T) {
	token, err := auth.CreateAccessToken(testSecret, 1, true, false, time.Hour)
	require.NoError(t, err)

	code, actor, _ := callWithAuth(t, "Bearer "+token)

	assert.Equal(t, http.StatusOK, code)
	assert.True(t, actor.Admin)
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	code, _, found := callWithAuth(t, "")

	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, found)
}

func TestJWTAuth_NotBearer(t *testing.T) {
	code, _, _ := callWithAuth(t, "Basic dXNlcjpwYXNz")

	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestJWTAuth_GarbageToken(t *testing.T) {
	code, _, _ := callWithAuth(t, "Bearer not.a.jwt")

	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestJWTAuth_WrongSecret(t *testing.T) {
	token, err := auth.CreateAccessToken("other-secret", 42, false, false, time.Hour)
	require.NoError(t, err)

	code, _, _ := callWithAuth(t, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	token, err := auth.CreateAccessToken(testSecret, 42, false, false, -time.Minute)
	require.NoError(t, err)

	code, _, _ := callWithAuth(t, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, code)
}
