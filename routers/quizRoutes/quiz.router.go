package quizRoutes

import (
	controllers "lms/controllers/quiz"
	"lms/middleware"
	validators "lms/validators/quiz"

	"github.com/gofiber/fiber/v2"
)

// SetupQuizRoutes sets up quiz authoring, attempt and result routes.
// Role and ownership checks live in the quiz service's access policy.
func SetupQuizRoutes(app *fiber.App) {
	app.Post("/course/:id/quiz/create", middleware.JWTMiddleware, validators.CreateQuiz(), controllers.CreateQuiz)

	quizGroup := app.Group("/quiz")
	quizGroup.Get("/:id", middleware.JWTMiddleware, validators.QuizIDParam(), controllers.GetQuiz)
	quizGroup.Put("/:id", middleware.JWTMiddleware, validators.EditQuiz(), controllers.EditQuiz)
	quizGroup.Delete("/:id", middleware.JWTMiddleware, validators.QuizIDParam(), controllers.DeleteQuiz)
	quizGroup.Post("/:id/submit", middleware.JWTMiddleware, validators.SubmitAttempt(), controllers.SubmitAttempt)

	app.Get("/attempt/:id/result", middleware.JWTMiddleware, validators.AttemptIDParam(), controllers.AttemptResult)
}
