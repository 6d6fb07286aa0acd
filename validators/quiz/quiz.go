package quizValidator

import (
	"strconv"
	"strings"

	"lms/middleware"
	"lms/services/quiz"

	"github.com/gofiber/fiber/v2"
)

// CreateQuizRequest is the structured authoring payload. JSON clients send
// it directly; form clients are translated by ParseQuestionForm.
type CreateQuizRequest struct {
	Title     string               `json:"title"`
	Questions []quiz.QuestionInput `json:"questions"`
}

// EditQuizRequest mirrors quiz.QuizEdit for JSON clients.
type EditQuizRequest struct {
	Title         string          `json:"title"`
	QuestionText  map[uint]string `json:"question_text"`
	ChoiceText    map[uint]string `json:"choice_text"`
	CorrectChoice map[uint]uint   `json:"correct_choice"`
}

// SubmitAttemptRequest maps question id -> selected choice id.
type SubmitAttemptRequest struct {
	Answers map[uint]uint `json:"answers"`
}

func isForm(c *fiber.Ctx) bool {
	ct := c.Get("Content-Type")
	return strings.HasPrefix(ct, fiber.MIMEApplicationForm) || strings.HasPrefix(ct, fiber.MIMEMultipartForm)
}

// formFields collects every posted form field into a plain map so the
// parsers in this package stay independent of fiber.
func formFields(c *fiber.Ctx) map[string]string {
	fields := make(map[string]string)
	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		fields[string(key)] = string(value)
	})
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for key, values := range form.Value {
			if len(values) > 0 {
				fields[key] = values[0]
			}
		}
	}
	return fields
}

// QuizIDParam parses the :id route parameter and stores it in Locals.
func QuizIDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz ID!", nil)
		}
		c.Locals("quizID", uint(id))
		return c.Next()
	}
}

// AttemptIDParam parses the :id route parameter and stores it in Locals.
func AttemptIDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid attempt ID!", nil)
		}
		c.Locals("attemptID", uint(id))
		return c.Next()
	}
}

// CreateQuiz accepts either a JSON payload with a questions array or a
// classic flat form post (q1_text, q1_choice1, q1_correct, ...).
func CreateQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
		}

		reqData := new(CreateQuizRequest)
		if isForm(c) {
			fields := formFields(c)
			reqData.Title = fields["title"]
			reqData.Questions = ParseQuestionForm(func(key string) string { return fields[key] })
		} else if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if strings.TrimSpace(reqData.Title) == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"title": "Quiz title is required!"})
		}

		c.Locals("courseID", uint(id))
		c.Locals("validatedQuiz", reqData)
		return c.Next()
	}
}

// EditQuiz accepts either a JSON payload of id-keyed maps or a flat form
// post addressing rows by id (q{question_id}_text, choice{choice_id}_text,
// q{question_id}_correct).
func EditQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz ID!", nil)
		}

		var edit quiz.QuizEdit
		if isForm(c) {
			edit = ParseEditForm(formFields(c))
		} else {
			reqData := new(EditQuizRequest)
			if err := c.BodyParser(reqData); err != nil {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
			}
			edit = quiz.QuizEdit{
				Title:         reqData.Title,
				QuestionText:  reqData.QuestionText,
				ChoiceText:    reqData.ChoiceText,
				CorrectChoice: reqData.CorrectChoice,
			}
		}

		if edit.QuestionText == nil {
			edit.QuestionText = make(map[uint]string)
		}
		if edit.ChoiceText == nil {
			edit.ChoiceText = make(map[uint]string)
		}
		if edit.CorrectChoice == nil {
			edit.CorrectChoice = make(map[uint]uint)
		}

		c.Locals("quizID", uint(id))
		c.Locals("validatedEdit", edit)
		return c.Next()
	}
}

// SubmitAttempt accepts either a JSON answers map or a flat form post
// (question_{question_id} = choice id).
func SubmitAttempt() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz ID!", nil)
		}

		var selections map[uint]uint
		if isForm(c) {
			selections = ParseAnswersForm(formFields(c))
		} else {
			reqData := new(SubmitAttemptRequest)
			if err := c.BodyParser(reqData); err != nil {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
			}
			selections = reqData.Answers
		}
		if selections == nil {
			selections = make(map[uint]uint)
		}

		c.Locals("quizID", uint(id))
		c.Locals("validatedAnswers", selections)
		return c.Next()
	}
}
