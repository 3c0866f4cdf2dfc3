package models

import "time"

// Attendance is one fact per (student, course, date). The composite unique
// index makes re-marking an overwrite instead of a duplicate row.
type Attendance struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	StudentID uint   `json:"student_id" gorm:"uniqueIndex:idx_attendance_key;not null"`
	CourseID  uint   `json:"course_id" gorm:"uniqueIndex:idx_attendance_key;not null"`
	// Date is YYYY-MM-DD; Status true means present.
	Date   string `json:"date" gorm:"uniqueIndex:idx_attendance_key;size:10;not null"`
	Status bool   `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
