package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Ujwol1086/school-attendance-system/database"
	"github.com/Ujwol1086/school-attendance-system/models"
)

type TeacherHandler struct{}

func NewTeacherHandler() *TeacherHandler { return &TeacherHandler{} }

type teacherPayload struct {
	UserID    uint   `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

func (p *teacherPayload) norm() {
	p.FirstName = strings.Join(strings.Fields(p.FirstName), " ")
	p.LastName = strings.Join(strings.Fields(p.LastName), " ")
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	p.Phone = strings.TrimSpace(p.Phone)
}

func (p *teacherPayload) validate() map[string]string {
	errs := map[string]string{}
	if p.UserID == 0 {
		errs["user_id"] = "user_id is required"
	}
	if p.FirstName == "" || len(p.FirstName) > 50 {
		errs["first_name"] = "first name is required (max 50 chars)"
	}
	if p.LastName == "" || len(p.LastName) > 50 {
		errs["last_name"] = "last name is required (max 50 chars)"
	}
	if len(p.Email) > 50 {
		errs["email"] = "email too long (max 50 chars)"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// GET /admin/teachers?q=&page=&size=
func (h *TeacherHandler) List(c echo.Context) error {
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

	tx := database.DB.Model(&models.Teacher{})
	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?", like, like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	var items []models.Teacher
	if err := tx.Order("last_name, first_name").Offset((page - 1) * size).Limit(size).Find(&items).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items, "total": total, "page": page, "size": size})
}

// POST /admin/teachers
func (h *TeacherHandler) Create(c echo.Context) error {
	var p teacherPayload
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

	rec := models.Teacher{
		UserID:    p.UserID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		Phone:     p.Phone,
	}
	if err := database.DB.Create(&rec).Error; err != nil {
		return c.JSON(http.StatusConflict, map[string]any{"error": "TEACHER_EXISTS_FOR_USER"})
	}
	return c.JSON(http.StatusCreated, rec)
}

// PUT /admin/teachers/:id
func (h *TeacherHandler) Update(c echo.Context) error {
	id := atoiOr(c.Param("id"), 0)
	var rec models.Teacher
	if err := database.DB.First(&rec, id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "TEACHER_NOT_FOUND"})
	}

	var p teacherPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	p.UserID = rec.UserID // owning account is immutable
	p.norm()
	if errs := p.validate(); errs != nil {
		return c.JSON(http.StatusUnprocessableEntity, map[string]any{"error": "VALIDATION_FAILED", "fields": errs})
	}

	rec.FirstName = p.FirstName
	rec.LastName = p.LastName
	rec.Email = p.Email
	rec.Phone = p.Phone
	if err := database.DB.Save(&rec).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rec)
}

// DELETE /admin/teachers/:id
// Courses keep existing by design; they fall back to having no teacher.
func (h *TeacherHandler) Delete(c echo.Context) error {
	id := atoiOr(c.Param("id"), 0)
	var rec models.Teacher
	if err := database.DB.First(&rec, id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "TEACHER_NOT_FOUND"})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Course{}).Where("teacher_id = ?", rec.ID).Update("teacher_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&rec).Error
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"deleted": rec.ID})
}
