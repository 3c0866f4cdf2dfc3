package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signTestToken(t *testing.T, secret string, sub uint, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  sub,
		"name": "Tester",
		"exp":  exp.Unix(),
		"iat":  time.Now().Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func callWithAuth(t *testing.T, header string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error {
		uid, _ := c.Get("user_id").(uint)
		return c.JSON(http.StatusOK, map[string]any{"uid": uid})
	}
	err := RequireAuth(testSecret)(next)(c)
	return rec, err
}

func TestRequireAuthValidToken(t *testing.T) {
	tok := signTestToken(t, testSecret, 42, time.Now().Add(time.Hour))
	rec, err := callWithAuth(t, "Bearer "+tok)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "42")
}

func TestRequireAuthMissingHeader(t *testing.T) {
	_, err := callWithAuth(t, "")
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireAuthBadScheme(t *testing.T) {
	_, err := callWithAuth(t, "Basic abc")
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireAuthWrongSecret(t *testing.T) {
	tok := signTestToken(t, "other-secret", 42, time.Now().Add(time.Hour))
	_, err := callWithAuth(t, "Bearer "+tok)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireAuthExpiredToken(t *testing.T) {
	tok := signTestToken(t, testSecret, 42, time.Now().Add(-time.Hour))
	_, err := callWithAuth(t, "Bearer "+tok)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}
