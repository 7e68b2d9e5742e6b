package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AnalysisCacheEntry persists one analysis result under its full composite
// key. The unique index over the six key columns gives store its upsert
// semantics; the payload is kept opaque as JSON.
type AnalysisCacheEntry struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID     uint           `gorm:"not null;uniqueIndex:idx_analysis_cache_key" json:"user_id"`
	ResumeHash string         `gorm:"type:text;not null;uniqueIndex:idx_analysis_cache_key" json:"resume_hash"`
	JDHash     string         `gorm:"type:text;not null;uniqueIndex:idx_analysis_cache_key" json:"jd_hash"`
	Provider   string         `gorm:"type:text;not null;default:'';uniqueIndex:idx_analysis_cache_key" json:"provider"`
	Model      string         `gorm:"type:text;not null;default:'';uniqueIndex:idx_analysis_cache_key" json:"model"`
	Intensity  string         `gorm:"type:text;not null;default:'full';uniqueIndex:idx_analysis_cache_key" json:"intensity"`
	Result     datatypes.JSON `gorm:"type:jsonb" json:"result"`
	CreatedAt  time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (AnalysisCacheEntry) TableName() string {
	return "user_analysis"
}

// AnalysisResult is the typed contract of the analysis collaborator.
// Upstream responses are validated into this shape at the boundary.
type AnalysisResult struct {
	OverallScore    float64            `json:"overall_score"`
	MatchingSkills  []string           `json:"matching_skills"`
	MissingSkills   []string           `json:"missing_skills"`
	SkillScores     map[string]float64 `json:"skill_scores"`
	Strengths       []string           `json:"strengths"`
	Weaknesses      []string           `json:"weaknesses"`
	Recommendations []string           `json:"recommendations"`
	Role            string             `json:"role"`
	CutoffScore     float64            `json:"cutoff_score"`
	ResumeHash      string             `json:"resume_hash"`
}

// ImprovementResult is the typed contract of the improvement collaborator.
type ImprovementResult struct {
	ImprovedSections    map[string]string `json:"improved_sections"`
	Suggestions         []string          `json:"suggestions"`
	OverallImprovements string            `json:"overall_improvements"`
}

// AnswerScore is one scored interview answer. All numeric fields are on a
// fixed 0-10 scale and never mutated after creation.
type AnswerScore struct {
	Communication      float64 `json:"communication"`
	TechnicalKnowledge float64 `json:"technical_knowledge"`
	ProblemSolving     float64 `json:"problem_solving"`
	Overall            float64 `json:"overall"`
	Feedback           string  `json:"feedback"`
}
