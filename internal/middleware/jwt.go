package middleware // middleware contains reusable HTTP middleware functions

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/store-rating/internal/model"
	"github.com/iliyamo/store-rating/internal/utils"
)

// Context keys under which JWTAuth stores the resolved identity.  Handlers
// read them back via CurrentUserID / CurrentRole rather than touching the
// raw context values.
const (
	ctxUserID = "user_id"
	ctxRole   = "role"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the token's subject and role into the request context.  The
// provided secret must match the one used when issuing tokens.  Any request
// without a well-formed, correctly signed, unexpired token is rejected with
// 401 before the handler runs; the middleware never distinguishes between
// a missing header, a tampered signature and an elapsed expiry.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			id, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			// Store the typed identity for downstream guards and handlers.
			c.Set(ctxUserID, id.UserID)
			c.Set(ctxRole, id.Role)
			return next(c)
		}
	}
}

// CurrentUserID returns the authenticated user's ID from the context.  The
// second return is false when no identity was resolved, which means the
// route was registered without JWTAuth; callers must treat that as an
// authorization failure, not as an anonymous caller.
func CurrentUserID(c echo.Context) (uint64, bool) {
	id, ok := c.Get(ctxUserID).(uint64)
	return id, ok
}

// CurrentRole returns the authenticated user's role from the context.
func CurrentRole(c echo.Context) (model.Role, bool) {
	role, ok := c.Get(ctxRole).(model.Role)
	return role, ok
}
