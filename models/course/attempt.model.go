package course

import (
	"time"

	"gorm.io/gorm"
)

// Attempt is one student's pass at a quiz. Grading is synchronous with
// submission, so CompletedAt and Score are set in the same transaction
// that creates the row. Students may attempt the same quiz repeatedly.
type Attempt struct {
	gorm.Model
	QuizID      uint       `json:"quiz_id" gorm:"index;not null"`
	StudentID   uint       `json:"student_id" gorm:"index;not null"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
	Score       *float64   `json:"score"` // percentage, 0-100
	IsDeleted   bool       `gorm:"default:false"`
}

// AttemptAnswer records which choice a student selected for one question.
// ChoiceID is the raw submitted id and may dangle if the choice is edited
// away later; readers tolerate that.
type AttemptAnswer struct {
	gorm.Model
	AttemptID  uint `json:"attempt_id" gorm:"index;not null"`
	QuestionID uint `json:"question_id" gorm:"index;not null"`
	ChoiceID   uint `json:"choice_id" gorm:"not null"`
	IsDeleted  bool `gorm:"default:false"`
}
