package models

import (
	"time"

	"github.com/google/uuid"
)

// Resume stores the extracted text of an uploaded resume. Records are
// immutable once created; re-uploading identical text for the same user
// resolves to the existing row via the (user_id, content_hash) unique index.
type Resume struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_user_resume_hash" json:"user_id"`
	Filename    string    `gorm:"type:text" json:"filename"`
	ContentHash string    `gorm:"type:text;not null;uniqueIndex:idx_user_resume_hash" json:"content_hash"`
	Content     string    `gorm:"type:text;not null" json:"-"`
	CreatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Resume) TableName() string {
	return "user_resumes"
}
