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

var crsReCode = regexp.MustCompile(`^[A-Za-z0-9\-]{1,20}$`)

type CourseHandler struct{}

func NewCourseHandler() *CourseHandler { return &CourseHandler{} }

type coursePayload struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	TeacherID *uint  `json:"teacher_id"`
}

func (p *coursePayload) norm() {
	p.Code = strings.ToUpper(strings.TrimSpace(p.Code))
	p.Name = strings.Join(strings.Fields(p.Name), " ")
}

func (p *coursePayload) validate() map[string]string {
	errs := map[string]string{}
	if !crsReCode.MatchString(p.Code) {
		errs["code"] = "course code must be alphanumeric (max 20 chars)"
	}
	if p.Name == "" || len(p.Name) > 100 {
		errs["name"] = "course name is required (max 100 chars)"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// GET /courses?q=
// Readable by any authenticated user; preloads the owning teacher.
func (h *CourseHandler) List(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))

	tx := database.DB.Model(&models.Course{}).Preload("Teacher")
	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(code) LIKE ? OR LOWER(name) LIKE ?", like, like)
	}
	var items []models.Course
	if err := tx.Order("code").Find(&items).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, items)
}

// GET /courses/:id — course detail with teacher and enrolled students.
func (h *CourseHandler) Get(c echo.Context) error {
	id := atoiOr(c.Param("id"), 0)
	var rec models.Course
	if err := database.DB.Preload("Teacher").Preload("Students").First(&rec, id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "COURSE_NOT_FOUND"})
	}
	return c.JSON(http.StatusOK, rec)
}

// POST /admin/courses
func (h *CourseHandler) Create(c echo.Context) error {
	var p coursePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	p.norm()
	if errs := p.validate(); errs != nil {
		return c.JSON(http.StatusUnprocessableEntity, map[string]any{"error": "VALIDATION_FAILED", "fields": errs})
	}
	if p.TeacherID != nil {
		var t models.Teacher
		if err := database.DB.First(&t, *p.TeacherID).Error; err != nil {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "TEACHER_NOT_FOUND"})
		}
	}

	rec := models.Course{Code: p.Code, Name: p.Name, TeacherID: p.TeacherID}
	if err := database.DB.Create(&rec).Error; err != nil {
		return c.JSON(http.StatusConflict, map[string]any{"error": "COURSE_CODE_EXISTS"})
	}
	return c.JSON(http.StatusCreated, rec)
}

// PUT /admin/courses/:id
func (h *CourseHandler) Update(c echo.Context) error {
	id := atoiOr(c.Param("id"), 0)
	var rec models.Course
	if err := database.DB.First(&rec, id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "COURSE_NOT_FOUND"})
	}

	var p coursePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	p.norm()
	if errs := p.validate(); errs != nil {
		return c.JSON(http.StatusUnprocessableEntity, map[string]any{"error": "VALIDATION_FAILED", "fields": errs})
	}
	if p.TeacherID != nil {
		var t models.Teacher
		if err := database.DB.First(&t, *p.TeacherID).Error; err != nil {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "TEACHER_NOT_FOUND"})
		}
	}

	rec.Code = p.Code
	rec.Name = p.Name
	rec.TeacherID = p.TeacherID
	if err := database.DB.Save(&rec).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rec)
}

// DELETE /admin/courses/:id
func (h *CourseHandler) Delete(c echo.Context) error {
	id := atoiOr(c.Param("id"), 0)
	var rec models.Course
	if err := database.DB.First(&rec, id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "COURSE_NOT_FOUND"})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM course_students WHERE course_id = ?", rec.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&rec).Error
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"deleted": rec.ID})
}

// POST /admin/courses/:id/students/:studentID — enroll.
func (h *CourseHandler) Enroll(c echo.Context) error {
	courseID := atoiOr(c.Param("id"), 0)
	studentID := atoiOr(c.Param("studentID"), 0)

	var course models.Course
	if err := database.DB.First(&course, courseID).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "COURSE_NOT_FOUND"})
	}
	var student models.Student
	if err := database.DB.First(&student, studentID).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "STUDENT_NOT_FOUND"})
	}

	if err := database.DB.Model(&course).Association("Students").Append(&student); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"course_id": course.ID, "student_id": student.ID, "enrolled": true})
}

// DELETE /admin/courses/:id/students/:studentID — unenroll.
// Past attendance records are kept untouched; only future marking stops.
func (h *CourseHandler) Unenroll(c echo.Context) error {
	courseID := atoiOr(c.Param("id"), 0)
	studentID := atoiOr(c.Param("studentID"), 0)

	var course models.Course
	if err := database.DB.First(&course, courseID).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "COURSE_NOT_FOUND"})
	}
	var student models.Student
	if err := database.DB.First(&student, studentID).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "STUDENT_NOT_FOUND"})
	}

	if err := database.DB.Model(&course).Association("Students").Delete(&student); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"course_id": course.ID, "student_id": student.ID, "enrolled": false})
}
