package models

import "time"

type Student struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	StudentID string    `gorm:"size:20;uniqueIndex;not null" json:"student_id"` // roll / registration number
	FirstName string    `gorm:"size:50;not null" json:"first_name"`
	LastName  string    `gorm:"size:50;not null" json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
