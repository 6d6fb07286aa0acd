package models

import (
	"time"

	"gorm.io/gorm"
)

// LoginHistory records one successful login per row.
type LoginHistory struct {
	gorm.Model
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	IPAddress string    `json:"ip_address"`
	UserAgent string    `json:"user_agent"`
	LoginTime time.Time `json:"login_time"`
	IsDeleted bool      `gorm:"default:false"`
}
