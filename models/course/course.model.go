package course

import "gorm.io/gorm"

// Course represents a course taught by one instructor. Ownership is held
// as a plain foreign key; quizzes, contents and enrollments point back at
// the course by id and are looked up with explicit queries.
type Course struct {
	gorm.Model
	Title        string `json:"title" gorm:"not null"`
	Description  string `json:"description" gorm:"type:text"`
	InstructorID uint   `json:"instructor_id" gorm:"index;not null"`
	IsDeleted    bool   `gorm:"default:false"`
}
