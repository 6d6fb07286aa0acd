package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// Dashboard returns the role-specific landing data: instructors get their
// courses and quizzes, students get enrollments and past attempts.
func Dashboard(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	role, _ := c.Locals("role").(models.Role)

	db := database.Database.Db

	switch role {
	case models.RoleInstructor:
		var courses []courseModels.Course
		if err := db.Where("instructor_id = ? AND is_deleted = ?", userID, false).Order("created_at desc").Find(&courses).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch dashboard!", nil)
		}

		var quizzes []courseModels.Quiz
		if len(courses) > 0 {
			courseIDs := make([]uint, len(courses))
			for i, crs := range courses {
				courseIDs[i] = crs.ID
			}
			if err := db.Where("course_id IN ? AND is_deleted = ?", courseIDs, false).Order("id asc").Find(&quizzes).Error; err != nil {
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch dashboard!", nil)
			}
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
			"courses": courses,
			"quizzes": quizzes,
		})

	case models.RoleStudent:
		var enrollments []courseModels.Enrollment
		if err := db.Where("student_id = ? AND is_deleted = ?", userID, false).Order("enrolled_at desc").Find(&enrollments).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch dashboard!", nil)
		}

		var attempts []courseModels.Attempt
		if err := db.Where("student_id = ? AND is_deleted = ?", userID, false).Order("started_at desc").Find(&attempts).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch dashboard!", nil)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
			"enrollments": enrollments,
			"attempts":    attempts,
		})

	default:
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Unknown role!", nil)
	}
}
