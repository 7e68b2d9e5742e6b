package models

import "time"

type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Username     string     `gorm:"type:text;uniqueIndex;not null" json:"username"`
	PasswordHash string     `gorm:"type:text;not null" json:"-"`
	CreatedAt    time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// UserSettings holds per-user LLM provider preferences. One row per user,
// written with upsert semantics.
type UserSettings struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Provider  string    `gorm:"type:text" json:"provider"`
	APIKey    string    `gorm:"type:text" json:"api_key,omitempty"`
	Model     string    `gorm:"type:text" json:"model,omitempty"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (UserSettings) TableName() string {
	return "user_settings"
}
