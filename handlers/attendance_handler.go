package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Ujwol1086/school-attendance-system/database"
	"github.com/Ujwol1086/school-attendance-system/models"
	"github.com/Ujwol1086/school-attendance-system/services"
)

type AttendanceHandler struct{}

func NewAttendanceHandler() *AttendanceHandler { return &AttendanceHandler{} }

// GET /attendance/bulk?course=ID
// Backs the marking form: the courses this identity may mark (owned set for
// teachers, all courses otherwise) plus, when a course is preselected, its
// enrolled students. A bad or non-owned course id is reported as an explicit
// empty selection, not as an error.
func (h *AttendanceHandler) BulkForm(c echo.Context) error {
	ident, err := currentIdentity(c)
	if err != nil {
		return err
	}

	tx := database.DB.Model(&models.Course{}).Order("code")
	if ident.Role == services.RoleTeacher {
		tx = tx.Where("teacher_id = ?", ident.Teacher.ID)
	}
	var courses []models.Course
	if err := tx.Find(&courses).Error; err != nil {
		return serviceError(c, err)
	}

	selection := "none"
	var selected *models.Course
	var students []models.Student

	if raw := strings.TrimSpace(c.QueryParam("course")); raw != "" {
		selection = "invalid"
		if id := atoiOr(raw, 0); id > 0 {
			var course models.Course
			if err := database.DB.First(&course, id).Error; err == nil && ident.CanManageCourse(&course) {
				if err := database.DB.Model(&course).Association("Students").Find(&students); err != nil {
					return serviceError(c, err)
				}
				selected = &course
				selection = "selected"
			}
		}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"courses":         courses,
		"selected_course": selected,
		"students":        students,
		"selection":       selection,
		"today":           time.Now().Format("2006-01-02"),
	})
}

// POST /attendance/bulk
// Body: {"course_id": 1, "date": "2026-08-26", "statuses": {"12": true}}.
// Enrolled students missing from statuses are recorded as absent.
func (h *AttendanceHandler) BulkMark(c echo.Context) error {
	var req struct {
		CourseID uint          `json:"course_id"`
		Date     string        `json:"date"`
		Statuses map[uint]bool `json:"statuses"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if req.CourseID == 0 || req.Date == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	ident, err := currentIdentity(c)
	if err != nil {
		return err
	}
	if err := services.MarkBulk(database.DB, ident, req.CourseID, req.Date, req.Statuses); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"course_id": req.CourseID,
		"date":      req.Date,
		"marked":    true,
	})
}

// POST /attendance/mark — single-record form.
func (h *AttendanceHandler) Mark(c echo.Context) error {
	var req struct {
		StudentID uint   `json:"student_id"`
		CourseID  uint   `json:"course_id"`
		Date      string `json:"date"`
		Status    bool   `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if req.StudentID == 0 || req.CourseID == 0 || req.Date == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	ident, err := currentIdentity(c)
	if err != nil {
		return err
	}
	if err := services.MarkOne(database.DB, ident, req.StudentID, req.CourseID, req.Date, req.Status); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"student_id": req.StudentID,
		"course_id":  req.CourseID,
		"date":       req.Date,
		"status":     req.Status,
	})
}

// GET /attendance?course=&student=&start=&end=&status=
// Review listing. Teachers only see records of courses they own.
func (h *AttendanceHandler) List(c echo.Context) error {
	ident, err := currentIdentity(c)
	if err != nil {
		return err
	}

	tx := database.DB.Model(&models.Attendance{})
	if ident.Role == services.RoleTeacher {
		tx = tx.Where("course_id IN (?)",
			database.DB.Model(&models.Course{}).Select("id").Where("teacher_id = ?", ident.Teacher.ID))
	}

	if v := atoiOr(c.QueryParam("course"), 0); v > 0 {
		tx = tx.Where("course_id = ?", v)
	}
	if v := atoiOr(c.QueryParam("student"), 0); v > 0 {
		tx = tx.Where("student_id = ?", v)
	}
	start := strings.TrimSpace(c.QueryParam("start"))
	end := strings.TrimSpace(c.QueryParam("end"))
	if start != "" && end != "" {
		tx = tx.Where("date >= ? AND date <= ?", start, end)
	}
	switch strings.TrimSpace(c.QueryParam("status")) {
	case "present":
		tx = tx.Where("status = ?", true)
	case "absent":
		tx = tx.Where("status = ?", false)
	}

	limit := atoiOr(c.QueryParam("limit"), 200)
	if limit <= 0 || limit > 1000 {
		limit = 200
	}

	var rows []models.Attendance
	if err := tx.Order("date ASC, course_id ASC, student_id ASC").Limit(limit).Find(&rows).Error; err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}
