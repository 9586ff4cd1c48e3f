package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AIFeatureType string

const (
	FeaturePortfolioGeneration AIFeatureType = "PORTFOLIO_GENERATION"
	FeatureInterviewGuide      AIFeatureType = "INTERVIEW_GUIDE"
	FeatureTestGeneration      AIFeatureType = "TEST_GENERATION"
	FeatureFeasibilityAnalysis AIFeatureType = "FEASIBILITY_ANALYSIS"
	FeatureTimelineGeneration  AIFeatureType = "TIMELINE_GENERATION"
	FeatureLearningRoadmap     AIFeatureType = "LEARNING_ROADMAP"
	FeatureMeetingSummary      AIFeatureType = "MEETING_SUMMARY"
	FeatureProjectMonitoring   AIFeatureType = "PROJECT_MONITORING"
)

// AIFeatureUsage counts how many times a user has used a metered AI
// feature for a given project. One row per (project, user, feature).
type AIFeatureUsage struct {
	ID          string        `gorm:"type:varchar(36);primaryKey" json:"id"`
	ProjectID   string        `gorm:"type:varchar(36);index;not null" json:"project_id"`
	UserID      string        `gorm:"type:varchar(36);index;not null" json:"user_id"`
	FeatureType AIFeatureType `gorm:"size:40;not null" json:"feature_type"`
	Count       int           `gorm:"default:0" json:"count"`
	LastUsedAt  *time.Time    `json:"last_used_at"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (AIFeatureUsage) TableName() string { return "ai_feature_usages" }

func (u *AIFeatureUsage) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// CanUseFeature reports whether the counter is still below the ceiling.
func (u *AIFeatureUsage) CanUseFeature(limit int) bool {
	return u.Count < limit
}

// IncrementUsage bumps the counter and stamps last use. Callers persist
// the row themselves so that the increment only lands after a
// successful generation.
func (u *AIFeatureUsage) IncrementUsage() {
	u.Count++
	now := time.Now()
	u.LastUsedAt = &now
}

// AIUsageLog records one LLM call for auditing. Rows older than the
// configured retention window are pruned by a scheduled job.
type AIUsageLog struct {
	ID           string        `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID       string        `gorm:"type:varchar(36);index" json:"user_id"`
	ProjectID    *string       `gorm:"type:varchar(36);index" json:"project_id"`
	FeatureType  AIFeatureType `gorm:"size:40;not null" json:"feature_type"`
	Provider     string        `gorm:"size:30" json:"provider"`
	Model        string        `gorm:"size:60" json:"model"`
	LatencyMs    int64         `json:"latency_ms"`
	Success      bool          `json:"success"`
	ErrorMessage string        `gorm:"type:text" json:"error_message"`
	CreatedAt    time.Time     `gorm:"index" json:"created_at"`
}

func (AIUsageLog) TableName() string { return "ai_usage_logs" }

func (l *AIUsageLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
