package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Ujwol1086/school-attendance-system/database"
	"github.com/Ujwol1086/school-attendance-system/models"
)

// setupDB swaps the package-global DB for an in-memory one for this test.
func setupDB(t *testing.T) *gorm.DB {
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
	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })
	return db
}

// newRequest builds an echo context for a handler call, authenticated as uid.
func newRequest(e *echo.Echo, method, path string, uid uint, body any) (echo.Context, *httptest.ResponseRecorder) {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	if uid != 0 {
		ctx.Set("user_id", uid)
	}
	return ctx, rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
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
