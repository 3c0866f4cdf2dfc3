package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Ujwol1086/school-attendance-system/models"
)

type Role string

const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// Identity is a user id tagged with the role it resolved to. Exactly one of
// Teacher/Student is set for those roles; both are nil for RoleAdmin.
type Identity struct {
	UserID  uint
	Role    Role
	Teacher *models.Teacher
	Student *models.Student
}

// Resolve classifies a user: teacher record wins over student record, and a
// user matching neither is treated as admin/staff. The teacher-first order is
// the documented precedence should a user ever hold both records.
func Resolve(db *gorm.DB, userID uint) (Identity, error) {
	ident := Identity{UserID: userID, Role: RoleAdmin}

	var t models.Teacher
	err := db.Where("user_id = ?", userID).First(&t).Error
	if err == nil {
		ident.Role = RoleTeacher
		ident.Teacher = &t
		return ident, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return ident, err
	}

	var s models.Student
	err = db.Where("user_id = ?", userID).First(&s).Error
	if err == nil {
		ident.Role = RoleStudent
		ident.Student = &s
		return ident, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return ident, err
	}

	return ident, nil
}

// CanManageCourse reports whether the identity may mark attendance for the
// course. Teachers are limited to courses they own; everyone else is not.
func (id Identity) CanManageCourse(course *models.Course) bool {
	if id.Role != RoleTeacher {
		return true
	}
	return course.TeacherID != nil && *course.TeacherID == id.Teacher.ID
}
