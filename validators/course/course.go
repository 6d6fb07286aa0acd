package courseValidator

import (
	"lms/middleware"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CreateCourseRequest is the expected create-course payload.
type CreateCourseRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=150"`
	Description string `json:"description" validate:"max=2000"`
}

// UploadContentRequest carries the multipart form fields next to the file.
type UploadContentRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=150"`
	Description string `json:"description" validate:"max=2000"`
	ContentType string `json:"content_type" validate:"omitempty,oneof=video pdf other"`
}

// CourseIDParam parses the :id route parameter and stores it in Locals.
func CourseIDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
		}
		c.Locals("courseID", uint(id))
		return c.Next()
	}
}

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateCourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Description = strings.TrimSpace(reqData.Description)

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			if verrs, ok := err.(validator.ValidationErrors); ok {
				for _, fe := range verrs {
					errors[strings.ToLower(fe.Field())] = "Invalid value for " + strings.ToLower(fe.Field()) + " (" + fe.Tag() + ")!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UploadContent validates the multipart form for a content upload. The
// file itself is checked by the controller.
func UploadContent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
		}

		reqData := &UploadContentRequest{
			Title:       strings.TrimSpace(c.FormValue("title")),
			Description: strings.TrimSpace(c.FormValue("description")),
			ContentType: strings.TrimSpace(c.FormValue("content_type")),
		}
		if reqData.ContentType == "" {
			reqData.ContentType = "other"
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			if verrs, ok := err.(validator.ValidationErrors); ok {
				for _, fe := range verrs {
					errors[strings.ToLower(fe.Field())] = "Invalid value for " + strings.ToLower(fe.Field()) + " (" + fe.Tag() + ")!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", uint(id))
		c.Locals("validatedContent", reqData)
		return c.Next()
	}
}
