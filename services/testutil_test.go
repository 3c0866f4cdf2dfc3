package services

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Ujwol1086/school-attendance-system/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Teacher{},
		&models.Student{},
		&models.Course{},
		&models.Attendance{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	u := models.User{Username: username, PasswordHash: "x", Name: username}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func seedTeacher(t *testing.T, db *gorm.DB, username string) models.Teacher {
	t.Helper()
	u := seedUser(t, db, username)
	tc := models.Teacher{UserID: u.ID, FirstName: "T", LastName: username}
	require.NoError(t, db.Create(&tc).Error)
	return tc
}

func seedStudent(t *testing.T, db *gorm.DB, username string) models.Student {
	t.Helper()
	u := seedUser(t, db, username)
	s := models.Student{UserID: u.ID, StudentID: "R-" + username, FirstName: "S", LastName: username}
	require.NoError(t, db.Create(&s).Error)
	return s
}

func seedCourse(t *testing.T, db *gorm.DB, code string, teacher *models.Teacher) models.Course {
	t.Helper()
	c := models.Course{Code: code, Name: "Course " + code}
	if teacher != nil {
		c.TeacherID = &teacher.ID
	}
	require.NoError(t, db.Create(&c).Error)
	return c
}

func enroll(t *testing.T, db *gorm.DB, course *models.Course, students ...*models.Student) {
	t.Helper()
	for _, s := range students {
		require.NoError(t, db.Model(course).Association("Students").Append(s))
	}
}

// daysAgo returns a date string n days before today, so fixtures never trip
// the future-date check.
func daysAgo(n int) string {
	return time.Now().AddDate(0, 0, -n).Format("2006-01-02")
}

func seedAttendance(t *testing.T, db *gorm.DB, studentID, courseID uint, date string, present bool) {
	t.Helper()
	row := models.Attendance{StudentID: studentID, CourseID: courseID, Date: date, Status: present}
	require.NoError(t, db.Create(&row).Error)
}

func countAttendance(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Attendance{}).Count(&n).Error)
	return n
}

func teacherIdentity(tc *models.Teacher) Identity {
	return Identity{UserID: tc.UserID, Role: RoleTeacher, Teacher: tc}
}

func adminIdentity() Identity {
	return Identity{UserID: 9999, Role: RoleAdmin}
}
