package services

import (
	"testing"
	"time"

	"github.com/projectmate/backend/internal/models"
)

func TestUsageCleanup_CleanupBefore(t *testing.T) {
	db := newTestDB(t)
	svc := NewUsageCleanupService(db, 30)

	now := time.Now()
	logs := []models.AIUsageLog{
		{UserID: "user-1", FeatureType: models.FeatureFeasibilityAnalysis, Provider: "openai", Model: "gpt-4", Success: true, CreatedAt: now.AddDate(0, 0, -40)},
		{UserID: "user-1", FeatureType: models.FeatureTimelineGeneration, Provider: "openai", Model: "gpt-4", Success: true, CreatedAt: now.AddDate(0, 0, -31)},
		{UserID: "user-2", FeatureType: models.FeatureProjectMonitoring, Provider: "openai", Model: "gpt-4", Success: false, CreatedAt: now.AddDate(0, 0, -5)},
		{UserID: "user-2", FeatureType: models.FeaturePortfolioGeneration, Provider: "openai", Model: "gpt-4", Success: true, CreatedAt: now},
	}
	for i := range logs {
		if err := db.Create(&logs[i]).Error; err != nil {
			t.Fatalf("failed to seed log %d: %v", i, err)
		}
	}

	deleted, err := svc.CleanupBefore(now.AddDate(0, 0, -30))
	if err != nil {
		t.Fatalf("CleanupBefore() error = %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, expected 2", deleted)
	}

	var remaining int64
	db.Model(&models.AIUsageLog{}).Count(&remaining)
	if remaining != 2 {
		t.Errorf("remaining = %d, expected 2", remaining)
	}
}

func TestUsageCleanup_EmptyTable(t *testing.T) {
	db := newTestDB(t)
	svc := NewUsageCleanupService(db, 30)

	deleted, err := svc.CleanupBefore(time.Now())
	if err != nil {
		t.Fatalf("CleanupBefore() error = %v", err)
	}
	if deleted != 0 {
		t.Errorf("deleted = %d, expected 0", deleted)
	}
}

func TestUsageCleanup_SchedulerStartStop(t *testing.T) {
	db := newTestDB(t)
	svc := NewUsageCleanupService(db, 30)

	svc.StartScheduler()
	svc.StopScheduler()
}
