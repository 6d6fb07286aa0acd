package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	"lms/models"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up course, enrollment, content and dashboard routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Course listing and details
	courseGroup.Get("/list", middleware.JWTMiddleware, controllers.GetAllCourses)
	courseGroup.Post("/create", middleware.JWTMiddleware, middleware.RequireRole(models.RoleInstructor), validators.CreateCourse(), controllers.CreateCourse)
	courseGroup.Get("/:id", middleware.JWTMiddleware, validators.CourseIDParam(), controllers.GetCourseDetails)
	courseGroup.Delete("/:id", middleware.JWTMiddleware, middleware.RequireRole(models.RoleInstructor), validators.CourseIDParam(), controllers.DeleteCourse)

	// Enrollment
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, validators.CourseIDParam(), controllers.EnrollInCourse)
	courseGroup.Post("/:id/unenroll", middleware.JWTMiddleware, validators.CourseIDParam(), controllers.UnenrollFromCourse)

	// Content upload and viewing
	courseGroup.Post("/:id/content", middleware.JWTMiddleware, middleware.RequireRole(models.RoleInstructor), validators.UploadContent(), controllers.UploadContent)
	courseGroup.Get("/:id/content", middleware.JWTMiddleware, validators.CourseIDParam(), controllers.GetCourseContent)

	// Dashboard
	app.Get("/dashboard", middleware.JWTMiddleware, controllers.Dashboard)
}
