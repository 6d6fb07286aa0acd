package course

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment tracks a student's membership in a course. One row per
// (student, course); enroll/unenroll toggle existence, not status.
type Enrollment struct {
	gorm.Model
	StudentID  uint      `json:"student_id" gorm:"index;not null"`
	CourseID   uint      `json:"course_id" gorm:"index;not null"`
	EnrolledAt time.Time `json:"enrolled_at"`
	IsDeleted  bool      `gorm:"default:false"`
}
