package course

import "gorm.io/gorm"

// Quiz belongs to one course. Its questions and choices form a strict
// containment tree; deleting a quiz cascades down to answers.
type Quiz struct {
	gorm.Model
	CourseID uint   `json:"course_id" gorm:"index;not null"`
	Title    string `json:"title" gorm:"not null"`
	// Derived stats refreshed by the background scheduler, never read by
	// the grading path.
	AttemptCount int     `json:"attempt_count" gorm:"default:0"`
	AverageScore float64 `json:"average_score" gorm:"default:0"`
	IsDeleted    bool    `gorm:"default:false"`
}

// Question belongs to exactly one quiz. Choice count is not capped by the
// model; the authoring UI sends 2-4.
type Question struct {
	gorm.Model
	QuizID    uint   `json:"quiz_id" gorm:"index;not null"`
	Text      string `json:"text" gorm:"type:text;not null"`
	IsDeleted bool   `gorm:"default:false"`
}

// Choice belongs to exactly one question. At most one choice per question
// should carry IsCorrect; the storage layer does not enforce it, the
// authoring and editing flows do.
type Choice struct {
	gorm.Model
	QuestionID uint   `json:"question_id" gorm:"index;not null"`
	Text       string `json:"text" gorm:"not null"`
	IsCorrect  bool   `json:"is_correct" gorm:"default:false"`
	IsDeleted  bool   `gorm:"default:false"`
}
