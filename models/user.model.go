package models

import (
	"time"

	"gorm.io/gorm"
)

// Role is the closed set of account roles. Permission checks switch over
// both variants; anything else is rejected.
type Role string

const (
	RoleStudent    Role = "STUDENT"
	RoleInstructor Role = "INSTRUCTOR"
)

// ValidRole reports whether r is one of the two known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleStudent, RoleInstructor:
		return true
	default:
		return false
	}
}

type User struct {
	gorm.Model
	Username  string     `json:"username" gorm:"unique;not null"`
	Email     string     `json:"email" gorm:"unique;not null"`
	Password  string     `json:"-" gorm:"not null"`
	Role      Role       `json:"role" gorm:"type:varchar(20);default:'STUDENT'"`
	LastLogin *time.Time `json:"last_login"`
	IsDeleted bool       `gorm:"default:false"`
}
