package models

import "time"

// Course is taught by exactly one teacher (nullable until assigned) and has a
// set of enrolled students. Enrollment decides who can be marked on a given day.
type Course struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Code      string    `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	TeacherID *uint     `gorm:"index" json:"teacher_id"`
	Teacher   *Teacher  `json:"teacher,omitempty"`
	Students  []Student `gorm:"many2many:course_students" json:"students,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
