package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/store-rating/internal/middleware"
	"github.com/iliyamo/store-rating/internal/model"
	"github.com/iliyamo/store-rating/internal/utils"
)

const testSecret = "unit-test-secret"

// runChain executes the given middleware chain against a GET request with
// the given Authorization header and returns the recorder plus whether the
// innermost handler ran.
func runChain(t *testing.T, authHeader string, mws ...echo.MiddlewareFunc) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	h := echo.HandlerFunc(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	require.NoError(t, h(c))
	return rec, reached
}

func TestJWTAuthMissingHeader(t *testing.T) {
	rec, reached := runChain(t, "", middleware.JWTAuth(testSecret))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestJWTAuthMalformedHeader(t *testing.T) {
	for _, h := range []string{"Token abc", "Bearer", "bearer x.y.z"} {
		rec, reached := runChain(t, h, middleware.JWTAuth(testSecret))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header=%q", h)
		assert.False(t, reached)
	}
}

func TestJWTAuthTamperedToken(t *testing.T) {
	tok, err := utils.NewAccessToken("some-other-secret", 1, model.RoleAdmin, 8)
	require.NoError(t, err)

	rec, reached := runChain(t, "Bearer "+tok.Token, middleware.JWTAuth(testSecret))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestJWTAuthResolvesIdentity(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 77, model.RoleStoreOwner, 8)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := middleware.JWTAuth(testSecret)(func(c echo.Context) error {
		id, ok := middleware.CurrentUserID(c)
		assert.True(t, ok)
		assert.Equal(t, uint64(77), id)

		role, ok := middleware.CurrentRole(c)
		assert.True(t, ok)
		assert.Equal(t, model.RoleStoreOwner, role)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCurrentUserIDAbsent(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	_, ok := middleware.CurrentUserID(c)
	assert.False(t, ok)
	_, ok = middleware.CurrentRole(c)
	assert.False(t, ok)
}
