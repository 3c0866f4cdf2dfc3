package middlewares

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Ujwol1086/school-attendance-system/database"
	"github.com/Ujwol1086/school-attendance-system/services"
)

// RequireAdmin passes only identities that resolve to neither a teacher nor a
// student record, i.e. staff accounts. Must run after RequireAuth.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid, _ := c.Get("user_id").(uint)
			ident, err := services.Resolve(database.DB, uid)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "ROLE_LOOKUP_FAILED"})
			}
			if ident.Role != services.RoleAdmin {
				return echo.NewHTTPError(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
			}
			return next(c)
		}
	}
}
