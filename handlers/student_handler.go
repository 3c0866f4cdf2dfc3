package handlers

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Ujwol1086/school-attendance-system/database"
	"github.com/Ujwol1086/school-attendance-system/models"
)

var stdReCode = regexp.MustCompile(`^[A-Za-z0-9\-]{1,20}$`)

type StudentHandler struct{}

func NewStudentHandler() *StudentHandler { return &StudentHandler{} }

type studentPayload struct {
	UserID    uint   `json:"user_id"`
	StudentID string `json:"student_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (p *studentPayload) norm() {
	p.StudentID = strings.TrimSpace(p.StudentID)
	p.FirstName = strings.Join(strings.Fields(p.FirstName), " ")
	p.LastName = strings.Join(strings.Fields(p.LastName), " ")
}

func (p *studentPayload) validate() map[string]string {
	errs := map[string]string{}
	if p.UserID == 0 {
		errs["user_id"] = "user_id is required"
	}
	if !stdReCode.MatchString(p.StudentID) {
		errs["student_id"] = "roll number must be alphanumeric (max 20 chars)"
	}
	if p.FirstName == "" || len(p.FirstName) > 50 {
		errs["first_name"] = "first name is required (max 50 chars)"
	}
	if p.LastName == "" || len(p.LastName) > 50 {
		errs["last_name"] = "last name is required (max 50 chars)"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// GET /admin/students?q=&page=&size=
func (h *StudentHandler) List(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	page := atoiOr(c.QueryParam("page"), 1)
	if page < 1 {
		page = 1
	}
	size := atoiOr(c.QueryParam("size"), 20)
	if size < 1 {
		size = 1
	} else if size > 100 {
		size = 100
	}

	tx := database.DB.Model(&models.Student{})
	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(student_id) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?", like, like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	var items []models.Student
	if err := tx.Order("student_id").Offset((page - 1) * size).Limit(size).Find(&items).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items, "total": total, "page": page, "size": size})
}

// POST /admin/students
func (h *StudentHandler) Create(c echo.Context) error {
	var p studentPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	p.norm()
	if errs := p.validate(); errs != nil {
		return c.JSON(http.StatusUnprocessableEntity, map[string]any{"error": "VALIDATION_FAILED", "fields": errs})
	}

	var user models.User
	if err := database.DB.First(&user, p.UserID).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "USER_NOT_FOUND"})
	}

	rec := models.Student{
		UserID:    p.UserID,
		StudentID: p.StudentID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
	}
	if err := database.DB.Create(&rec).Error; err != nil {
		return c.JSON(http.StatusConflict, map[string]any{"error": "STUDENT_EXISTS"})
	}
	return c.JSON(http.StatusCreated, rec)
}

// PUT /admin/students/:id
func (h *StudentHandler) Update(c echo.Context) error {
	id := atoiOr(c.Param("id"), 0)
	var rec models.Student
	if err := database.DB.First(&rec, id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "STUDENT_NOT_FOUND"})
	}

	var p studentPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	p.UserID = rec.UserID // owning account is immutable
	p.norm()
	if errs := p.validate(); errs != nil {
		return c.JSON(http.StatusUnprocessableEntity, map[string]any{"error": "VALIDATION_FAILED", "fields": errs})
	}

	rec.StudentID = p.StudentID
	rec.FirstName = p.FirstName
	rec.LastName = p.LastName
	if err := database.DB.Save(&rec).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rec)
}

// DELETE /admin/students/:id
// Attendance history stays; old records remain meaningful for past terms.
func (h *StudentHandler) Delete(c echo.Context) error {
	id := atoiOr(c.Param("id"), 0)
	var rec models.Student
	if err := database.DB.First(&rec, id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "STUDENT_NOT_FOUND"})
	}
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM course_students WHERE student_id = ?", rec.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&rec).Error
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"deleted": rec.ID})
}
