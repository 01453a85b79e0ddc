package models

import "time"

// Enrollment links a user to a course module. Re-enrolling only refreshes
// EnrolledAt.
type Enrollment struct {
	ID       string `json:"id" gorm:"primaryKey;size:255"`
	UserID   string `json:"user_id" gorm:"not null;size:255;uniqueIndex:idx_enrollment_user_course"`
	CourseID string `json:"course_id" gorm:"not null;size:255;uniqueIndex:idx_enrollment_user_course"`

	EnrolledAt time.Time `json:"enrolled_at"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
