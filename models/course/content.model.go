package course

import (
	"time"

	"gorm.io/gorm"
)

// Content is an uploaded course material (video, pdf or other file).
type Content struct {
	gorm.Model
	CourseID    uint      `json:"course_id" gorm:"index;not null"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	ContentType string    `json:"content_type" gorm:"default:'other'"` // video, pdf, other
	FilePath    string    `json:"file_path" gorm:"not null"`
	UploadedAt  time.Time `json:"uploaded_at"`
	IsDeleted   bool      `gorm:"default:false"`
}
