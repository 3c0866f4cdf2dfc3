package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Ujwol1086/school-attendance-system/database"
	"github.com/Ujwol1086/school-attendance-system/services"
)

// string -> int with a fallback for empty/bad input
func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// currentIdentity resolves the authenticated user's role for this request.
func currentIdentity(c echo.Context) (services.Identity, error) {
	uid, _ := c.Get("user_id").(uint)
	if uid == 0 {
		return services.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "NOT_AUTHENTICATED"})
	}
	ident, err := services.Resolve(database.DB, uid)
	if err != nil {
		return services.Identity{}, echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "ROLE_LOOKUP_FAILED"})
	}
	return ident, nil
}

// serviceError maps service sentinel errors onto HTTP responses.
func serviceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidDate):
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_DATE"})
	case errors.Is(err, services.ErrFutureDate):
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "FUTURE_DATE_NOT_ALLOWED"})
	case errors.Is(err, services.ErrNotPermitted):
		return c.JSON(http.StatusForbidden, map[string]any{"error": "NOT_COURSE_OWNER"})
	case errors.Is(err, services.ErrCourseNotFound):
		return c.JSON(http.StatusNotFound, map[string]any{"error": "COURSE_NOT_FOUND"})
	case errors.Is(err, services.ErrNotEnrolled):
		return c.JSON(http.StatusNotFound, map[string]any{"error": "STUDENT_NOT_ENROLLED"})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": err.Error()})
	}
}
