package quizController

import (
	"errors"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/services/quiz"
	quizValidator "lms/validators/quiz"

	"github.com/gofiber/fiber/v2"
)

func service() *quiz.Service {
	return quiz.NewService(database.Database.Db)
}

func actor(c *fiber.Ctx) (quiz.Actor, bool) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return quiz.Actor{}, false
	}
	role, _ := c.Locals("role").(models.Role)
	return quiz.Actor{ID: userID, Role: role}, true
}

// respondError maps core errors onto the response envelope.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, quiz.ErrNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, err.Error(), nil)
	case errors.Is(err, quiz.ErrPermissionDenied):
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, err.Error(), nil)
	case errors.Is(err, quiz.ErrValidation):
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, err.Error(), nil)
	default:
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
	}
}

// CreateQuiz creates a quiz with its questions under a course.
func CreateQuiz(c *fiber.Ctx) error {
	act, ok := actor(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(uint)

	reqData, ok := c.Locals("validatedQuiz").(*quizValidator.CreateQuizRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	created, err := service().CreateQuiz(act, courseID, reqData.Title, reqData.Questions)
	if err != nil {
		return respondError(c, err)
	}

	view, err := service().GetQuiz(created.ID)
	if err != nil {
		return respondError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz created!", view)
}

// GetQuiz returns a quiz with its questions and choices. Correctness flags
// are only exposed to the owning instructor.
func GetQuiz(c *fiber.Ctx) error {
	act, ok := actor(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	quizID := c.Locals("quizID").(uint)

	view, err := service().GetQuiz(quizID)
	if err != nil {
		return respondError(c, err)
	}

	questions := make([]fiber.Map, len(view.Questions))
	for i, question := range view.Questions {
		choices := make([]fiber.Map, len(view.Choices[question.ID]))
		for j, choice := range view.Choices[question.ID] {
			entry := fiber.Map{
				"id":   choice.ID,
				"text": choice.Text,
			}
			// Students taking the quiz must not see the answer key.
			if quiz.IsInstructor(act) {
				entry["is_correct"] = choice.IsCorrect
			}
			choices[j] = entry
		}
		questions[i] = fiber.Map{
			"id":      question.ID,
			"text":    question.Text,
			"choices": choices,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz fetched successfully!", fiber.Map{
		"quiz":      view.Quiz,
		"questions": questions,
	})
}

// EditQuiz applies in-place edits to a quiz.
func EditQuiz(c *fiber.Ctx) error {
	act, ok := actor(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	quizID := c.Locals("quizID").(uint)

	edit, ok := c.Locals("validatedEdit").(quiz.QuizEdit)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if _, err := service().EditQuiz(act, quizID, edit); err != nil {
		return respondError(c, err)
	}

	view, err := service().GetQuiz(quizID)
	if err != nil {
		return respondError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz updated!", view)
}

// DeleteQuiz removes a quiz and its questions, choices, attempts and
// answers.
func DeleteQuiz(c *fiber.Ctx) error {
	act, ok := actor(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	quizID := c.Locals("quizID").(uint)

	if err := service().DeleteQuiz(act, quizID); err != nil {
		return respondError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz deleted!", nil)
}

// SubmitAttempt grades a quiz submission and returns the stored attempt.
func SubmitAttempt(c *fiber.Ctx) error {
	act, ok := actor(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	quizID := c.Locals("quizID").(uint)

	selections, ok := c.Locals("validatedAnswers").(map[uint]uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	attempt, err := service().SubmitAttempt(act, quizID, selections)
	if err != nil {
		return respondError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz submitted!", attempt)
}

// AttemptResult returns the detailed result view for a completed attempt.
func AttemptResult(c *fiber.Ctx) error {
	act, ok := actor(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	attemptID := c.Locals("attemptID").(uint)

	result, err := service().AttemptResult(act, attemptID)
	if err != nil {
		return respondError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Result fetched successfully!", result)
}
