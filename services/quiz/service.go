package quiz

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"lms/models"
	courseModels "lms/models/course"

	"gorm.io/gorm"
)

// Service holds the quiz authoring, attempt and result operations. Every
// operation checks the access policy first and runs its writes inside a
// single transaction, so no partially graded attempt or half-built quiz
// is ever visible.
type Service struct {
	DB *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// QuizView bundles a quiz with its question tree for rendering.
type QuizView struct {
	Quiz      courseModels.Quiz              `json:"quiz"`
	Questions []courseModels.Question        `json:"questions"`
	Choices   map[uint][]courseModels.Choice `json:"choices"` // question id -> choices
}

// AttemptResult is everything the result page needs. StudentChoice omits
// questions whose stored choice id no longer resolves.
type AttemptResult struct {
	Attempt       courseModels.Attempt                `json:"attempt"`
	Quiz          courseModels.Quiz                   `json:"quiz"`
	Questions     []courseModels.Question             `json:"questions"`
	Choices       map[uint][]courseModels.Choice      `json:"choices"`
	Answers       map[uint]courseModels.AttemptAnswer `json:"answers"`        // question id -> submitted answer
	Correct       map[uint]courseModels.Choice        `json:"correct"`        // question id -> choice flagged correct
	StudentChoice map[uint]courseModels.Choice        `json:"student_choice"` // question id -> choice the student picked
}

// CreateQuiz creates a quiz with its question tree under the given course.
// Questions and choices with empty text are skipped; a question with text
// but no surviving choices is still created (permissive authoring).
func (s *Service) CreateQuiz(actor Actor, courseID uint, title string, questions []QuestionInput) (*courseModels.Quiz, error) {
	var crs courseModels.Course
	if err := s.DB.Where("id = ? AND is_deleted = ?", courseID, false).First(&crs).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: course %d", ErrNotFound, courseID)
		}
		return nil, err
	}

	if !OwnsCourse(actor, &crs) {
		return nil, fmt.Errorf("%w: only the course instructor can create quizzes", ErrPermissionDenied)
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: quiz title is required", ErrValidation)
	}

	q := courseModels.Quiz{CourseID: crs.ID, Title: title}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&q).Error; err != nil {
			return err
		}

		for _, qi := range questions {
			text := strings.TrimSpace(qi.Text)
			if text == "" {
				continue
			}
			question := courseModels.Question{QuizID: q.ID, Text: text}
			if err := tx.Create(&question).Error; err != nil {
				return err
			}

			for _, ci := range qi.Choices {
				cText := strings.TrimSpace(ci.Text)
				if cText == "" {
					continue
				}
				choice := courseModels.Choice{
					QuestionID: question.ID,
					Text:       cText,
					IsCorrect:  ci.Correct,
				}
				if err := tx.Create(&choice).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &q, nil
}

// GetQuiz loads a quiz with questions and choices in creation order.
func (s *Service) GetQuiz(quizID uint) (*QuizView, error) {
	var qz courseModels.Quiz
	if err := s.DB.Where("id = ? AND is_deleted = ?", quizID, false).First(&qz).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: quiz %d", ErrNotFound, quizID)
		}
		return nil, err
	}

	questions, choices, err := s.loadQuestionTree(qz.ID)
	if err != nil {
		return nil, err
	}

	return &QuizView{Quiz: qz, Questions: questions, Choices: choices}, nil
}

// EditQuiz applies in-place edits to an existing quiz. Correctness flags
// are recomputed from scratch for every question that submitted a correct
// choice id, so at most one choice per question ends up marked correct.
func (s *Service) EditQuiz(actor Actor, quizID uint, edit QuizEdit) (*courseModels.Quiz, error) {
	qz, crs, err := s.loadQuizWithCourse(quizID)
	if err != nil {
		return nil, err
	}

	if !OwnsCourse(actor, crs) {
		return nil, fmt.Errorf("%w: only the course instructor can edit this quiz", ErrPermissionDenied)
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if title := strings.TrimSpace(edit.Title); title != "" {
			qz.Title = title
			if err := tx.Model(&courseModels.Quiz{}).Where("id = ?", qz.ID).Update("title", title).Error; err != nil {
				return err
			}
		}

		var questions []courseModels.Question
		if err := tx.Where("quiz_id = ? AND is_deleted = ?", qz.ID, false).Order("id asc").Find(&questions).Error; err != nil {
			return err
		}

		for _, question := range questions {
			if text := strings.TrimSpace(edit.QuestionText[question.ID]); text != "" {
				if err := tx.Model(&courseModels.Question{}).Where("id = ?", question.ID).Update("text", text).Error; err != nil {
					return err
				}
			}

			correctID := edit.CorrectChoice[question.ID]

			var choices []courseModels.Choice
			if err := tx.Where("question_id = ? AND is_deleted = ?", question.ID, false).Order("id asc").Find(&choices).Error; err != nil {
				return err
			}

			for _, choice := range choices {
				updates := map[string]interface{}{
					"is_correct": correctID != 0 && choice.ID == correctID,
				}
				if text := strings.TrimSpace(edit.ChoiceText[choice.ID]); text != "" {
					updates["text"] = text
				}
				if err := tx.Model(&courseModels.Choice{}).Where("id = ?", choice.ID).Updates(updates).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return qz, nil
}

// DeleteQuiz removes a quiz and everything under it: questions, choices,
// attempts and attempt answers.
func (s *Service) DeleteQuiz(actor Actor, quizID uint) error {
	qz, crs, err := s.loadQuizWithCourse(quizID)
	if err != nil {
		return err
	}

	if !OwnsCourse(actor, crs) {
		return fmt.Errorf("%w: only the course instructor can delete this quiz", ErrPermissionDenied)
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		return CascadeDeleteTx(tx, []uint{qz.ID})
	})
}

// CascadeDeleteTx soft-deletes the given quizzes and their question,
// choice, attempt and answer rows inside the caller's transaction. The
// course delete flow reuses it.
func CascadeDeleteTx(tx *gorm.DB, quizIDs []uint) error {
	if len(quizIDs) == 0 {
		return nil
	}

	var questionIDs []uint
	if err := tx.Model(&courseModels.Question{}).Where("quiz_id IN ?", quizIDs).Pluck("id", &questionIDs).Error; err != nil {
		return err
	}

	var attemptIDs []uint
	if err := tx.Model(&courseModels.Attempt{}).Where("quiz_id IN ?", quizIDs).Pluck("id", &attemptIDs).Error; err != nil {
		return err
	}

	if len(attemptIDs) > 0 {
		if err := tx.Model(&courseModels.AttemptAnswer{}).Where("attempt_id IN ?", attemptIDs).Update("is_deleted", true).Error; err != nil {
			return err
		}
		if err := tx.Model(&courseModels.Attempt{}).Where("id IN ?", attemptIDs).Update("is_deleted", true).Error; err != nil {
			return err
		}
	}

	if len(questionIDs) > 0 {
		if err := tx.Model(&courseModels.Choice{}).Where("question_id IN ?", questionIDs).Update("is_deleted", true).Error; err != nil {
			return err
		}
		if err := tx.Model(&courseModels.Question{}).Where("id IN ?", questionIDs).Update("is_deleted", true).Error; err != nil {
			return err
		}
	}

	return tx.Model(&courseModels.Quiz{}).Where("id IN ?", quizIDs).Update("is_deleted", true).Error
}

// SubmitAttempt creates, grades and completes an attempt in one
// transaction. selections maps question id to the submitted choice id.
// Unanswered questions get no answer row; a submitted id that resolves to
// no live choice is still recorded and scores zero. A quiz with zero
// questions scores 0.
func (s *Service) SubmitAttempt(actor Actor, quizID uint, selections map[uint]uint) (*courseModels.Attempt, error) {
	var qz courseModels.Quiz
	if err := s.DB.Where("id = ? AND is_deleted = ?", quizID, false).First(&qz).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: quiz %d", ErrNotFound, quizID)
		}
		return nil, err
	}

	switch actor.Role {
	case models.RoleInstructor:
		return nil, fmt.Errorf("%w: instructors cannot take quizzes", ErrPermissionDenied)
	case models.RoleStudent:
		// allowed
	default:
		return nil, fmt.Errorf("%w: unknown role", ErrPermissionDenied)
	}

	attempt := courseModels.Attempt{
		QuizID:    qz.ID,
		StudentID: actor.ID,
		StartedAt: time.Now().UTC(),
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&attempt).Error; err != nil {
			return err
		}

		var questions []courseModels.Question
		if err := tx.Where("quiz_id = ? AND is_deleted = ?", qz.ID, false).Order("id asc").Find(&questions).Error; err != nil {
			return err
		}

		correctCount := 0
		for _, question := range questions {
			choiceID, ok := selections[question.ID]
			if !ok || choiceID == 0 {
				continue
			}

			var choice courseModels.Choice
			err := tx.Where("id = ? AND is_deleted = ?", choiceID, false).First(&choice).Error
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if err == nil && choice.IsCorrect {
				correctCount++
			}

			answer := courseModels.AttemptAnswer{
				AttemptID:  attempt.ID,
				QuestionID: question.ID,
				ChoiceID:   choiceID,
			}
			if err := tx.Create(&answer).Error; err != nil {
				return err
			}
		}

		score := 0.0
		if len(questions) > 0 {
			score = float64(correctCount) / float64(len(questions)) * 100
		}
		now := time.Now().UTC()
		attempt.Score = &score
		attempt.CompletedAt = &now

		return tx.Model(&courseModels.Attempt{}).Where("id = ?", attempt.ID).
			Updates(map[string]interface{}{"score": score, "completed_at": now}).Error
	})
	if err != nil {
		return nil, err
	}

	return &attempt, nil
}

// AttemptResult reconstructs the result page data for a completed attempt.
// Only the student who owns the attempt may view it.
func (s *Service) AttemptResult(actor Actor, attemptID uint) (*AttemptResult, error) {
	var attempt courseModels.Attempt
	if err := s.DB.Where("id = ? AND is_deleted = ?", attemptID, false).First(&attempt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: attempt %d", ErrNotFound, attemptID)
		}
		return nil, err
	}

	if !OwnsAttempt(actor, &attempt) {
		return nil, fmt.Errorf("%w: you are not allowed to view this result", ErrPermissionDenied)
	}

	var qz courseModels.Quiz
	if err := s.DB.Where("id = ?", attempt.QuizID).First(&qz).Error; err != nil {
		return nil, err
	}

	questions, choices, err := s.loadQuestionTree(qz.ID)
	if err != nil {
		return nil, err
	}

	var answers []courseModels.AttemptAnswer
	if err := s.DB.Where("attempt_id = ? AND is_deleted = ?", attempt.ID, false).Order("id asc").Find(&answers).Error; err != nil {
		return nil, err
	}

	result := &AttemptResult{
		Attempt:       attempt,
		Quiz:          qz,
		Questions:     questions,
		Choices:       choices,
		Answers:       make(map[uint]courseModels.AttemptAnswer),
		Correct:       make(map[uint]courseModels.Choice),
		StudentChoice: make(map[uint]courseModels.Choice),
	}

	for _, answer := range answers {
		result.Answers[answer.QuestionID] = answer
	}

	for _, question := range questions {
		for _, choice := range choices[question.ID] {
			if choice.IsCorrect {
				result.Correct[question.ID] = choice
				break
			}
		}

		answer, ok := result.Answers[question.ID]
		if !ok {
			continue
		}
		// Resolve within the question's own choices; dangling ids drop out.
		for _, choice := range choices[question.ID] {
			if choice.ID == answer.ChoiceID {
				result.StudentChoice[question.ID] = choice
				break
			}
		}
	}

	return result, nil
}

// RefreshStats recomputes attempt counts and average scores for every live
// quiz. Called from the cron scheduler; derived data only.
func (s *Service) RefreshStats() error {
	var quizzes []courseModels.Quiz
	if err := s.DB.Where("is_deleted = ?", false).Find(&quizzes).Error; err != nil {
		return err
	}

	for _, qz := range quizzes {
		var count int64
		var avg sql.NullFloat64
		if err := s.DB.Model(&courseModels.Attempt{}).
			Where("quiz_id = ? AND is_deleted = ? AND score IS NOT NULL", qz.ID, false).
			Count(&count).Error; err != nil {
			return err
		}
		if err := s.DB.Model(&courseModels.Attempt{}).
			Where("quiz_id = ? AND is_deleted = ? AND score IS NOT NULL", qz.ID, false).
			Select("AVG(score)").Scan(&avg).Error; err != nil {
			return err
		}

		average := 0.0
		if avg.Valid {
			average = avg.Float64
		}

		if err := s.DB.Model(&courseModels.Quiz{}).Where("id = ?", qz.ID).
			Updates(map[string]interface{}{"attempt_count": count, "average_score": average}).Error; err != nil {
			return err
		}
	}

	return nil
}

func (s *Service) loadQuizWithCourse(quizID uint) (*courseModels.Quiz, *courseModels.Course, error) {
	var qz courseModels.Quiz
	if err := s.DB.Where("id = ? AND is_deleted = ?", quizID, false).First(&qz).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: quiz %d", ErrNotFound, quizID)
		}
		return nil, nil, err
	}

	var crs courseModels.Course
	if err := s.DB.Where("id = ? AND is_deleted = ?", qz.CourseID, false).First(&crs).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: course %d", ErrNotFound, qz.CourseID)
		}
		return nil, nil, err
	}

	return &qz, &crs, nil
}

func (s *Service) loadQuestionTree(quizID uint) ([]courseModels.Question, map[uint][]courseModels.Choice, error) {
	var questions []courseModels.Question
	if err := s.DB.Where("quiz_id = ? AND is_deleted = ?", quizID, false).Order("id asc").Find(&questions).Error; err != nil {
		return nil, nil, err
	}

	choices := make(map[uint][]courseModels.Choice)
	if len(questions) > 0 {
		questionIDs := make([]uint, len(questions))
		for i, q := range questions {
			questionIDs[i] = q.ID
		}

		var all []courseModels.Choice
		if err := s.DB.Where("question_id IN ? AND is_deleted = ?", questionIDs, false).Order("id asc").Find(&all).Error; err != nil {
			return nil, nil, err
		}
		for _, c := range all {
			choices[c.QuestionID] = append(choices[c.QuestionID], c)
		}
	}

	return questions, choices, nil
}
