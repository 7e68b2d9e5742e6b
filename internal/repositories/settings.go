package repositories

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"resumate/backend/internal/models"
)

type SettingsRepository interface {
	FindByUser(userID uint) (*models.UserSettings, error)
	Upsert(settings *models.UserSettings) error
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) FindByUser(userID uint) (*models.UserSettings, error) {
	var settings models.UserSettings
	if err := r.db.Where("user_id = ?", userID).First(&settings).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("settings for user %d: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find settings: %w", err)
	}
	return &settings, nil
}

func (r *settingsRepository) Upsert(settings *models.UserSettings) error {
	settings.UpdatedAt = time.Now()

	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"provider", "api_key", "model", "updated_at"}),
	}).Create(settings).Error
	if err != nil {
		return fmt.Errorf("failed to upsert settings: %w", err)
	}
	return nil
}
