package services

import (
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/Ujwol1086/school-attendance-system/models"
)

// CourseSummary is one row of the teacher dashboard.
type CourseSummary struct {
	CourseID       uint   `json:"course_id"`
	CourseCode     string `json:"course_code"`
	CourseName     string `json:"course_name"`
	TotalClassDays int64  `json:"total_class_days"`
	TotalRecords   int64  `json:"total_records"`
	PresentCount   int64  `json:"present_count"`
	AbsentCount    int64  `json:"absent_count"`
	EnrolledCount  int64  `json:"enrolled_count"`
}

// CourseReport is one row of the student dashboard.
type CourseReport struct {
	CourseID      uint                `json:"course_id"`
	CourseCode    string              `json:"course_code"`
	CourseName    string              `json:"course_name"`
	TeacherName   string              `json:"teacher_name"`
	PresentCount  int64               `json:"present_count"`
	AbsentCount   int64               `json:"absent_count"`
	TotalRecords  int64               `json:"total_records"`
	Percentage    float64             `json:"percentage"`
	RecentRecords []models.Attendance `json:"recent_records"`
}

type OverallStats struct {
	TotalPresent int64   `json:"total_present"`
	TotalAbsent  int64   `json:"total_absent"`
	TotalClasses int64   `json:"total_classes"`
	Percentage   float64 `json:"percentage"`
}

type StudentReport struct {
	Courses []CourseReport `json:"courses"`
	Overall OverallStats   `json:"overall"`
}

// GeneralStats backs the dashboard shown to users who are neither teacher
// nor student.
type GeneralStats struct {
	TotalStudents   int64 `json:"total_students"`
	TotalTeachers   int64 `json:"total_teachers"`
	TotalCourses    int64 `json:"total_courses"`
	AttendanceToday int64 `json:"attendance_today"`
}

// percent rounds present/total to one decimal; 0 when there are no records.
func percent(present, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(present)/float64(total)*1000) / 10
}

// TeacherSummary aggregates attendance counts per course the teacher owns.
func TeacherSummary(db *gorm.DB, teacher *models.Teacher) ([]CourseSummary, error) {
	var courses []models.Course
	if err := db.Where("teacher_id = ?", teacher.ID).Order("code").Find(&courses).Error; err != nil {
		return nil, err
	}

	out := make([]CourseSummary, 0, len(courses))
	for i := range courses {
		course := courses[i]
		row := CourseSummary{CourseID: course.ID, CourseCode: course.Code, CourseName: course.Name}

		err := db.Model(&models.Attendance{}).
			Where("course_id = ?", course.ID).
			Count(&row.TotalRecords).Error
		if err != nil {
			return nil, err
		}
		err = db.Model(&models.Attendance{}).
			Where("course_id = ? AND status = ?", course.ID, true).
			Count(&row.PresentCount).Error
		if err != nil {
			return nil, err
		}
		row.AbsentCount = row.TotalRecords - row.PresentCount

		err = db.Model(&models.Attendance{}).
			Where("course_id = ?", course.ID).
			Distinct("date").
			Count(&row.TotalClassDays).Error
		if err != nil {
			return nil, err
		}

		row.EnrolledCount = db.Model(&course).Association("Students").Count()
		out = append(out, row)
	}
	return out, nil
}

// StudentSummary aggregates per enrolled course plus an overall figure. The
// overall percentage weights by record count: it is computed over the summed
// present/total, not by averaging the per-course percentages.
func StudentSummary(db *gorm.DB, student *models.Student) (*StudentReport, error) {
	var courses []models.Course
	err := db.Preload("Teacher").
		Joins("JOIN course_students cs ON cs.course_id = courses.id").
		Where("cs.student_id = ?", student.ID).
		Order("courses.code").
		Find(&courses).Error
	if err != nil {
		return nil, err
	}

	report := &StudentReport{Courses: make([]CourseReport, 0, len(courses))}
	for i := range courses {
		course := courses[i]
		row := CourseReport{CourseID: course.ID, CourseCode: course.Code, CourseName: course.Name}
		if course.Teacher != nil {
			row.TeacherName = course.Teacher.FullName()
		}

		err = db.Model(&models.Attendance{}).
			Where("student_id = ? AND course_id = ?", student.ID, course.ID).
			Count(&row.TotalRecords).Error
		if err != nil {
			return nil, err
		}
		err = db.Model(&models.Attendance{}).
			Where("student_id = ? AND course_id = ? AND status = ?", student.ID, course.ID, true).
			Count(&row.PresentCount).Error
		if err != nil {
			return nil, err
		}
		row.AbsentCount = row.TotalRecords - row.PresentCount
		row.Percentage = percent(row.PresentCount, row.TotalRecords)

		err = db.Where("student_id = ? AND course_id = ?", student.ID, course.ID).
			Order("date DESC").
			Limit(5).
			Find(&row.RecentRecords).Error
		if err != nil {
			return nil, err
		}

		report.Overall.TotalPresent += row.PresentCount
		report.Overall.TotalAbsent += row.AbsentCount
		report.Overall.TotalClasses += row.TotalRecords
		report.Courses = append(report.Courses, row)
	}
	report.Overall.Percentage = percent(report.Overall.TotalPresent, report.Overall.TotalClasses)
	return report, nil
}

// GlobalStats counts the whole school for the general dashboard.
func GlobalStats(db *gorm.DB) (*GeneralStats, error) {
	var stats GeneralStats
	if err := db.Model(&models.Student{}).Count(&stats.TotalStudents).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Teacher{}).Count(&stats.TotalTeachers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Course{}).Count(&stats.TotalCourses).Error; err != nil {
		return nil, err
	}
	today := time.Now().Format(dateLayout)
	err := db.Model(&models.Attendance{}).Where("date = ?", today).Count(&stats.AttendanceToday).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
