package quiz

import "lms/models"

// Actor is the authenticated identity an operation runs under.
type Actor struct {
	ID   uint
	Role models.Role
}

// ChoiceInput is one authored choice.
type ChoiceInput struct {
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

// QuestionInput is one authored question with its ordered choices. The
// HTTP layer builds these; the service never sees positional form keys.
type QuestionInput struct {
	Text    string        `json:"text"`
	Choices []ChoiceInput `json:"choices"`
}

// QuizEdit addresses existing rows by their own ids. Empty text values
// mean "keep"; CorrectChoice re-derives every choice's correctness flag
// for that question from scratch.
type QuizEdit struct {
	Title         string          `json:"title"`
	QuestionText  map[uint]string `json:"question_text"`
	ChoiceText    map[uint]string `json:"choice_text"`
	CorrectChoice map[uint]uint   `json:"correct_choice"`
}
