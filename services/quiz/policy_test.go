package quiz

import (
	"testing"

	"lms/models"
	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
)

func TestRolePredicates(t *testing.T) {
	student := Actor{ID: 1, Role: models.RoleStudent}
	instructor := Actor{ID: 2, Role: models.RoleInstructor}
	unknown := Actor{ID: 3, Role: "ADMIN"}

	assert.True(t, IsStudent(student))
	assert.False(t, IsStudent(instructor))
	assert.False(t, IsStudent(unknown))

	assert.True(t, IsInstructor(instructor))
	assert.False(t, IsInstructor(student))
	assert.False(t, IsInstructor(unknown))
}

func TestOwnsCourse(t *testing.T) {
	crs := &courseModels.Course{InstructorID: 2}

	assert.True(t, OwnsCourse(Actor{ID: 2, Role: models.RoleInstructor}, crs))
	assert.False(t, OwnsCourse(Actor{ID: 5, Role: models.RoleInstructor}, crs))
	// A student with a matching id still doesn't own the course
	assert.False(t, OwnsCourse(Actor{ID: 2, Role: models.RoleStudent}, crs))
	assert.False(t, OwnsCourse(Actor{ID: 2, Role: "ADMIN"}, crs))
}

func TestOwnsAttempt(t *testing.T) {
	attempt := &courseModels.Attempt{StudentID: 7}

	assert.True(t, OwnsAttempt(Actor{ID: 7, Role: models.RoleStudent}, attempt))
	assert.False(t, OwnsAttempt(Actor{ID: 8, Role: models.RoleStudent}, attempt))
	// An instructor never owns an attempt, even with a matching id
	assert.False(t, OwnsAttempt(Actor{ID: 7, Role: models.RoleInstructor}, attempt))
	assert.False(t, OwnsAttempt(Actor{ID: 7, Role: ""}, attempt))
}
