package controllers

import (
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// EnrollInCourse enrolls the calling student. Enrolling twice is a no-op.
func EnrollInCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	role, _ := c.Locals("role").(models.Role)
	courseID := c.Locals("courseID").(uint)

	switch role {
	case models.RoleStudent:
		// allowed
	case models.RoleInstructor:
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only students can enroll in courses!", nil)
	default:
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Unknown role!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var existing courseModels.Enrollment
	if err := database.Database.Db.Where("student_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "You are already enrolled.", existing)
	}

	enrollment := courseModels.Enrollment{
		StudentID:  userID,
		CourseID:   courseID,
		EnrolledAt: time.Now(),
	}

	if err := database.Database.Db.Create(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled in course!", enrollment)
}

// UnenrollFromCourse removes the calling student's enrollment.
func UnenrollFromCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	role, _ := c.Locals("role").(models.Role)
	courseID := c.Locals("courseID").(uint)

	switch role {
	case models.RoleStudent:
		// allowed
	case models.RoleInstructor:
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only students can unenroll from courses!", nil)
	default:
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Unknown role!", nil)
	}

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("student_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "You are not enrolled in this course!", nil)
	}

	if err := database.Database.Db.Model(&enrollment).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to unenroll!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "You have been unenrolled from the course.", nil)
}
