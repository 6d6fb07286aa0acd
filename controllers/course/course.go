package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/services/quiz"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateCourse creates a course owned by the calling instructor.
func CreateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CreateCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := courseModels.Course{
		Title:        reqData.Title,
		Description:  reqData.Description,
		InstructorID: userID,
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created!", course)
}

// GetAllCourses lists courses: instructors see their own, students see all.
func GetAllCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	role, _ := c.Locals("role").(models.Role)

	db := database.Database.Db.Model(&courseModels.Course{}).Where("is_deleted = ?", false)

	switch role {
	case models.RoleInstructor:
		db = db.Where("instructor_id = ?", userID)
	case models.RoleStudent:
		// students browse the full catalogue
	default:
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Unknown role!", nil)
	}

	var courses []courseModels.Course
	if err := db.Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
	})
}

// GetCourseDetails returns a course with its contents, quizzes and, for
// students, an enrollment flag.
func GetCourseDetails(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	role, _ := c.Locals("role").(models.Role)
	courseID := c.Locals("courseID").(uint)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var contents []courseModels.Content
	database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("id asc").Find(&contents)

	var quizzes []courseModels.Quiz
	database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("id asc").Find(&quizzes)

	enrolled := false
	if role == models.RoleStudent {
		var enrollment courseModels.Enrollment
		if err := database.Database.Db.Where("student_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err == nil {
			enrolled = true
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"course":   course,
		"contents": contents,
		"quizzes":  quizzes,
		"enrolled": enrolled,
	})
}

// DeleteCourse removes a course and everything under it: contents,
// enrollments and the full quiz trees.
func DeleteCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(uint)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.InstructorID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not the instructor for this course!", nil)
	}

	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		var quizIDs []uint
		if err := tx.Model(&courseModels.Quiz{}).Where("course_id = ?", course.ID).Pluck("id", &quizIDs).Error; err != nil {
			return err
		}
		if err := quiz.CascadeDeleteTx(tx, quizIDs); err != nil {
			return err
		}
		if err := tx.Model(&courseModels.Content{}).Where("course_id = ?", course.ID).Update("is_deleted", true).Error; err != nil {
			return err
		}
		if err := tx.Model(&courseModels.Enrollment{}).Where("course_id = ?", course.ID).Update("is_deleted", true).Error; err != nil {
			return err
		}
		return tx.Model(&courseModels.Course{}).Where("id = ?", course.ID).Update("is_deleted", true).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted!", nil)
}
