package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ujwol1086/school-attendance-system/models"
)

func TestResolveTeacher(t *testing.T) {
	db := newTestDB(t)
	tc := seedTeacher(t, db, "mr-green")

	ident, err := Resolve(db, tc.UserID)
	require.NoError(t, err)
	assert.Equal(t, RoleTeacher, ident.Role)
	require.NotNil(t, ident.Teacher)
	assert.Equal(t, tc.ID, ident.Teacher.ID)
	assert.Nil(t, ident.Student)
}

func TestResolveStudent(t *testing.T) {
	db := newTestDB(t)
	s := seedStudent(t, db, "alice")

	ident, err := Resolve(db, s.UserID)
	require.NoError(t, err)
	assert.Equal(t, RoleStudent, ident.Role)
	require.NotNil(t, ident.Student)
	assert.Equal(t, s.ID, ident.Student.ID)
	assert.Nil(t, ident.Teacher)
}

func TestResolveAdminFallback(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db, "registrar")

	ident, err := Resolve(db, u.ID)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, ident.Role)
	assert.Nil(t, ident.Teacher)
	assert.Nil(t, ident.Student)
}

// A user holding both a teacher and a student record resolves to teacher.
// This locks the documented precedence order.
func TestResolvePrecedenceTeacherWins(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db, "both")
	tc := models.Teacher{UserID: u.ID, FirstName: "T", LastName: "Both"}
	require.NoError(t, db.Create(&tc).Error)
	s := models.Student{UserID: u.ID, StudentID: "R-both", FirstName: "S", LastName: "Both"}
	require.NoError(t, db.Create(&s).Error)

	ident, err := Resolve(db, u.ID)
	require.NoError(t, err)
	assert.Equal(t, RoleTeacher, ident.Role)
	require.NotNil(t, ident.Teacher)
	assert.Nil(t, ident.Student)
}

func TestCanManageCourse(t *testing.T) {
	db := newTestDB(t)
	t1 := seedTeacher(t, db, "owner")
	t2 := seedTeacher(t, db, "other")
	owned := seedCourse(t, db, "GO101", &t1)
	orphan := seedCourse(t, db, "GO102", nil)

	assert.True(t, teacherIdentity(&t1).CanManageCourse(&owned))
	assert.False(t, teacherIdentity(&t2).CanManageCourse(&owned))
	assert.False(t, teacherIdentity(&t1).CanManageCourse(&orphan))

	// non-teacher identities are unrestricted
	assert.True(t, adminIdentity().CanManageCourse(&owned))
	assert.True(t, adminIdentity().CanManageCourse(&orphan))

	st := seedStudent(t, db, "casey")
	studentIdent := Identity{UserID: st.UserID, Role: RoleStudent, Student: &st}
	assert.True(t, studentIdent.CanManageCourse(&owned))
}
