package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"resumate/backend/internal/models"
)

type ResumeRepository interface {
	// CreateOrGet inserts a resume, or returns the existing record when the
	// user already uploaded text with the same content hash.
	CreateOrGet(resume *models.Resume) (*models.Resume, bool, error)
	FindByID(userID uint, id uuid.UUID) (*models.Resume, error)
	FindLatest(userID uint) (*models.Resume, error)
	ListByUser(userID uint) ([]models.Resume, error)
}

type resumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) ResumeRepository {
	return &resumeRepository{db: db}
}

func (r *resumeRepository) CreateOrGet(resume *models.Resume) (*models.Resume, bool, error) {
	var existing models.Resume
	err := r.db.Where("user_id = ? AND content_hash = ?", resume.UserID, resume.ContentHash).
		First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to check existing resume: %w", err)
	}

	if resume.ID == uuid.Nil {
		resume.ID = uuid.New()
	}
	if err := r.db.Create(resume).Error; err != nil {
		// Unique index backstop: a concurrent upload of the same text may
		// have won the insert race, so resolve to the stored row.
		var dup models.Resume
		lookupErr := r.db.Where("user_id = ? AND content_hash = ?", resume.UserID, resume.ContentHash).
			First(&dup).Error
		if lookupErr == nil {
			return &dup, false, nil
		}
		return nil, false, fmt.Errorf("failed to create resume: %w", err)
	}

	return resume, true, nil
}

func (r *resumeRepository) FindByID(userID uint, id uuid.UUID) (*models.Resume, error) {
	var resume models.Resume
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&resume).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("resume %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find resume: %w", err)
	}
	return &resume, nil
}

func (r *resumeRepository) FindLatest(userID uint) (*models.Resume, error) {
	var resume models.Resume
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&resume).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no resume for user %d: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find latest resume: %w", err)
	}
	return &resume, nil
}

func (r *resumeRepository) ListByUser(userID uint) ([]models.Resume, error) {
	var resumes []models.Resume
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&resumes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	return resumes, nil
}
