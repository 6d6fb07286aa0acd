package controllers

import (
	"time"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// UploadContent stores an uploaded file as course material. Only the
// owning instructor may upload.
func UploadContent(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(uint)

	reqData, ok := c.Locals("validatedContent").(*courseValidator.UploadContentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.InstructorID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not the instructor for this course!", nil)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "File is required!", nil)
	}

	filePath, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save file!", nil)
	}

	content := courseModels.Content{
		CourseID:    courseID,
		Title:       reqData.Title,
		Description: reqData.Description,
		ContentType: reqData.ContentType,
		FilePath:    filePath,
		UploadedAt:  time.Now(),
	}

	if err := database.Database.Db.Create(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save content!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Content uploaded!", fiber.Map{
		"content":  content,
		"file_url": utils.GetFileURL(filePath),
	})
}

// GetCourseContent lists a course's materials. Students must be enrolled;
// the owning instructor always has access.
func GetCourseContent(c *fiber.Ctx) error {
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

	switch role {
	case models.RoleInstructor:
		if course.InstructorID != userID {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not the instructor for this course!", nil)
		}
	case models.RoleStudent:
		var enrollment courseModels.Enrollment
		if err := database.Database.Db.Where("student_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You must be enrolled in this course to view its content!", nil)
		}
	default:
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Unknown role!", nil)
	}

	var contents []courseModels.Content
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("id asc").Find(&contents).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch content!", nil)
	}

	items := make([]fiber.Map, len(contents))
	for i, content := range contents {
		items[i] = fiber.Map{
			"content":  content,
			"file_url": utils.GetFileURL(content.FilePath),
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content fetched successfully!", fiber.Map{
		"contents": items,
	})
}
