package middleware_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/store-rating/internal/middleware"
	"github.com/iliyamo/store-rating/internal/model"
	"github.com/iliyamo/store-rating/internal/utils"
)

// bearerFor issues a valid token for the given role under the test secret.
func bearerFor(t *testing.T, role model.Role) string {
	t.Helper()
	tok, err := utils.NewAccessToken(testSecret, 10, role, 8)
	require.NoError(t, err)
	return "Bearer " + tok.Token
}

func TestRequireRoleAllows(t *testing.T) {
	rec, reached := runChain(t, bearerFor(t, model.RoleAdmin),
		middleware.JWTAuth(testSecret),
		middleware.RequireRole(model.RoleAdmin))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)
}

func TestRequireRoleForbids(t *testing.T) {
	rec, reached := runChain(t, bearerFor(t, model.RoleNormalUser),
		middleware.JWTAuth(testSecret),
		middleware.RequireRole(model.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, reached)
}

func TestRequireRoleMultipleAllowed(t *testing.T) {
	gate := middleware.RequireRole(model.RoleAdmin, model.RoleStoreOwner)

	rec, reached := runChain(t, bearerFor(t, model.RoleStoreOwner),
		middleware.JWTAuth(testSecret), gate)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)

	rec, reached = runChain(t, bearerFor(t, model.RoleNormalUser),
		middleware.JWTAuth(testSecret), gate)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, reached)
}

// A role gate with no identity resolution in front of it must fail
// closed, never treat the absent role as unrestricted.
func TestRequireRoleFailsClosedWithoutIdentity(t *testing.T) {
	rec, reached := runChain(t, "", middleware.RequireRole(model.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, reached)

	// Even an empty restriction list lets nobody through.
	rec, reached = runChain(t, bearerFor(t, model.RoleAdmin),
		middleware.JWTAuth(testSecret), middleware.RequireRole())
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, reached)
}
