package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Ujwol1086/school-attendance-system/models"
)

const dateLayout = "2006-01-02"

var (
	ErrInvalidDate    = errors.New("date must be YYYY-MM-DD")
	ErrFutureDate     = errors.New("future attendance not allowed")
	ErrCourseNotFound = errors.New("course not found")
	ErrNotPermitted   = errors.New("not permitted for this course")
	ErrNotEnrolled    = errors.New("student not enrolled in course")
)

var attendanceKey = []clause.Column{
	{Name: "student_id"},
	{Name: "course_id"},
	{Name: "date"},
}

// validateDate canonicalizes the date string and rejects dates after today.
func validateDate(date string) (string, error) {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return "", ErrInvalidDate
	}
	canonical := d.Format(dateLayout)
	if canonical > time.Now().Format(dateLayout) {
		return "", ErrFutureDate
	}
	return canonical, nil
}

func loadCourse(db *gorm.DB, ident Identity, courseID uint) (*models.Course, error) {
	var course models.Course
	if err := db.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	if !ident.CanManageCourse(&course) {
		return nil, ErrNotPermitted
	}
	return &course, nil
}

// MarkBulk records one attendance row per currently enrolled student of the
// course for the given date, inside a single transaction. A student missing
// from statuses is marked absent; submitted ids that are not enrolled are
// skipped. Re-running with the same input overwrites rather than duplicates.
func MarkBulk(db *gorm.DB, ident Identity, courseID uint, date string, statuses map[uint]bool) error {
	date, err := validateDate(date)
	if err != nil {
		return err
	}
	course, err := loadCourse(db, ident, courseID)
	if err != nil {
		return err
	}

	var enrolled []models.Student
	if err := db.Model(course).Association("Students").Find(&enrolled); err != nil {
		return err
	}
	if len(enrolled) == 0 {
		return nil
	}

	rows := make([]models.Attendance, 0, len(enrolled))
	for _, s := range enrolled {
		rows = append(rows, models.Attendance{
			StudentID: s.ID,
			CourseID:  course.ID,
			Date:      date,
			Status:    statuses[s.ID],
		})
	}

	return db.Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   attendanceKey,
			DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
		}).CreateInBatches(rows, 100).Error
	})
}

// MarkOne upserts a single attendance record. The student must be enrolled in
// the course; otherwise nothing is written.
func MarkOne(db *gorm.DB, ident Identity, studentID, courseID uint, date string, status bool) error {
	date, err := validateDate(date)
	if err != nil {
		return err
	}
	course, err := loadCourse(db, ident, courseID)
	if err != nil {
		return err
	}

	var enrolled int64
	err = db.Table("course_students").
		Where("course_id = ? AND student_id = ?", course.ID, studentID).
		Count(&enrolled).Error
	if err != nil {
		return err
	}
	if enrolled == 0 {
		return ErrNotEnrolled
	}

	row := models.Attendance{
		StudentID: studentID,
		CourseID:  course.ID,
		Date:      date,
		Status:    status,
	}
	return db.Clauses(clause.OnConflict{
		Columns:   attendanceKey,
		DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
	}).Create(&row).Error
}
