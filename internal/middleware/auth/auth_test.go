package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/JavierAQR/backend-luaspets/internal/models"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, secret []byte, userID uint, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  float64(userID),
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}

func doRequest(token string, mw echo.MiddlewareFunc) (*httptest.ResponseRecorder, echo.Context, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: token})
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	return rec, c, handler(c)
}

func requireStatus(t *testing.T, err error, code int) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError, got %v", err)
	require.Equal(t, code, he.Code)
}

func TestRequireUser(t *testing.T) {
	mw := &JWT{Secret: testSecret}

	token := signToken(t, testSecret, 42, models.RoleUser)
	rec, c, err := doRequest(token, mw.RequireUser)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, uint(42), c.Get("user_id"))
	require.Equal(t, models.RoleUser, c.Get("role"))
}

func TestRequireUser_Rejections(t *testing.T) {
	mw := &JWT{Secret: testSecret}

	_, _, err := doRequest("", mw.RequireUser)
	requireStatus(t, err, http.StatusUnauthorized)

	_, _, err = doRequest("not-a-token", mw.RequireUser)
	requireStatus(t, err, http.StatusUnauthorized)

	forged := signToken(t, []byte("other-secret"), 42, models.RoleUser)
	_, _, err = doRequest(forged, mw.RequireUser)
	requireStatus(t, err, http.StatusUnauthorized)
}

func TestRequireAdmin(t *testing.T) {
	mw := &JWT{Secret: testSecret}

	user := signToken(t, testSecret, 42, models.RoleUser)
	_, _, err := doRequest(user, mw.RequireAdmin)
	requireStatus(t, err, http.StatusForbidden)

	admin := signToken(t, testSecret, 1, models.RoleAdmin)
	rec, _, err := doRequest(admin, mw.RequireAdmin)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)
}
