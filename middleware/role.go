package middleware

import (
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// RequireRole returns a middleware that lets only the given role through.
// The role comes from the verified JWT, so no DB round trip is needed here;
// handlers that care about ownership still re-check against the database.
func RequireRole(required models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(models.Role)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: role not found", nil)
		}

		switch role {
		case required:
			return c.Next()
		case models.RoleStudent, models.RoleInstructor:
			return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
		default:
			return JsonResponse(c, fiber.StatusForbidden, false, "Unknown role!", nil)
		}
	}
}
