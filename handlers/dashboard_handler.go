package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Ujwol1086/school-attendance-system/database"
	"github.com/Ujwol1086/school-attendance-system/services"
)

type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler { return &DashboardHandler{} }

// GET /dashboard
// Dispatches on the resolved role: teachers and students get a redirect target
// to their own dashboard, everyone else gets the school-wide counts. Nothing
// is cached; the role is recomputed on every visit.
func (h *DashboardHandler) Home(c echo.Context) error {
	ident, err := currentIdentity(c)
	if err != nil {
		return err
	}

	switch ident.Role {
	case services.RoleTeacher:
		return c.JSON(http.StatusOK, map[string]any{
			"role":     ident.Role,
			"redirect": "/teacher/dashboard",
		})
	case services.RoleStudent:
		return c.JSON(http.StatusOK, map[string]any{
			"role":     ident.Role,
			"redirect": "/student/dashboard",
		})
	}

	stats, err := services.GlobalStats(database.DB)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"role":  ident.Role,
		"stats": stats,
		"today": time.Now().Format("2006-01-02"),
	})
}

// GET /teacher/dashboard
func (h *DashboardHandler) TeacherDashboard(c echo.Context) error {
	ident, err := currentIdentity(c)
	if err != nil {
		return err
	}
	if ident.Role != services.RoleTeacher {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "NO_TEACHER_PROFILE"})
	}

	summary, err := services.TeacherSummary(database.DB, ident.Teacher)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"teacher": ident.Teacher,
		"courses": summary,
	})
}

// GET /student/dashboard
func (h *DashboardHandler) StudentDashboard(c echo.Context) error {
	ident, err := currentIdentity(c)
	if err != nil {
		return err
	}
	if ident.Role != services.RoleStudent {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "NO_STUDENT_PROFILE"})
	}

	report, err := services.StudentSummary(database.DB, ident.Student)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"student": ident.Student,
		"report":  report,
	})
}
