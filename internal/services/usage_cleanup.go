package services

import (
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/projectmate/backend/internal/models"
	"github.com/projectmate/backend/pkg/logger"
)

// UsageCleanupService prunes old AI usage logs on a daily schedule.
type UsageCleanupService struct {
	db            *gorm.DB
	retentionDays int
	scheduler     *cron.Cron
}

func NewUsageCleanupService(db *gorm.DB, retentionDays int) *UsageCleanupService {
	return &UsageCleanupService{db: db, retentionDays: retentionDays}
}

// StartScheduler runs the retention cleanup every day at 03:00.
func (s *UsageCleanupService) StartScheduler() {
	s.scheduler = cron.New()
	if _, err := s.scheduler.AddFunc("0 3 * * *", func() {
		if err := s.Cleanup(); err != nil {
			logger.Errorf("[UsageCleanup] scheduled cleanup failed: %v", err)
		}
	}); err != nil {
		logger.Errorf("[UsageCleanup] failed to schedule cleanup job: %v", err)
		return
	}
	s.scheduler.Start()
	logger.Infof("[UsageCleanup] retention cleanup scheduled (keep %d days)", s.retentionDays)
}

// StopScheduler stops the cron scheduler.
func (s *UsageCleanupService) StopScheduler() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

// Cleanup deletes usage logs older than the retention window.
func (s *UsageCleanupService) Cleanup() error {
	before := time.Now().AddDate(0, 0, -s.retentionDays)
	deleted, err := s.CleanupBefore(before)
	if err != nil {
		return err
	}
	if deleted > 0 {
		logger.Infof("[UsageCleanup] deleted %d usage logs older than %s", deleted, before.Format("2006-01-02"))
	}
	return nil
}

// CleanupBefore deletes usage logs older than the given time.
func (s *UsageCleanupService) CleanupBefore(before time.Time) (int64, error) {
	result := s.db.Where("created_at < ?", before).Delete(&models.AIUsageLog{})
	return result.RowsAffected, result.Error
}
