package quiz

import (
	"lms/models"
	courseModels "lms/models/course"
)

// Access policy predicates. Every switch lists both role variants so an
// unknown role always falls through to a denial.

// IsInstructor reports whether the actor holds the instructor role.
func IsInstructor(a Actor) bool {
	switch a.Role {
	case models.RoleInstructor:
		return true
	case models.RoleStudent:
		return false
	default:
		return false
	}
}

// IsStudent reports whether the actor holds the student role.
func IsStudent(a Actor) bool {
	switch a.Role {
	case models.RoleStudent:
		return true
	case models.RoleInstructor:
		return false
	default:
		return false
	}
}

// OwnsCourse reports whether the actor is the instructor who owns c.
func OwnsCourse(a Actor, c *courseModels.Course) bool {
	return IsInstructor(a) && c.InstructorID == a.ID
}

// OwnsAttempt reports whether the actor is the student who made at.
func OwnsAttempt(a Actor, at *courseModels.Attempt) bool {
	return IsStudent(a) && at.StudentID == a.ID
}
