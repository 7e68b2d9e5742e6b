package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"resumate/backend/internal/models"
)

type AnalysisRepository interface {
	// Lookup returns the cached entry for the exact key, or nil when no
	// entry exists. Keys must be normalized before they reach here.
	Lookup(userID uint, resumeHash, jdHash, provider, model, intensity string) (*models.AnalysisCacheEntry, error)
	// Store upserts: an existing entry under the same key gets its payload
	// and timestamp replaced.
	Store(entry *models.AnalysisCacheEntry) error
}

type analysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

func (r *analysisRepository) Lookup(userID uint, resumeHash, jdHash, provider, model, intensity string) (*models.AnalysisCacheEntry, error) {
	var entry models.AnalysisCacheEntry
	err := r.db.Where(
		"user_id = ? AND resume_hash = ? AND jd_hash = ? AND provider = ? AND model = ? AND intensity = ?",
		userID, resumeHash, jdHash, provider, model, intensity,
	).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to lookup cached analysis: %w", err)
	}
	return &entry, nil
}

func (r *analysisRepository) Store(entry *models.AnalysisCacheEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.CreatedAt = time.Now()

	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"},
			{Name: "resume_hash"},
			{Name: "jd_hash"},
			{Name: "provider"},
			{Name: "model"},
			{Name: "intensity"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"result", "created_at"}),
	}).Create(entry).Error
	if err != nil {
		return fmt.Errorf("failed to store cached analysis: %w", err)
	}
	return nil
}
