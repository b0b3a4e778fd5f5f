package services

import (
	"context"
	"os"
	"time"

	"pcbtrack/config"
	"pcbtrack/logger"
	"pcbtrack/repositories"
	"pcbtrack/utils"
)

// CleanupService reaps upload sessions that were started but never completed
// or cancelled. It removes both the session rows and their staging
// directories, so a crash mid-upload cannot leak disk space.
type CleanupService interface {
	SweepExpiredSessions(ctx context.Context) (int, error)
	// Run sweeps once immediately and then on every tick until ctx ends.
	Run(ctx context.Context, interval time.Duration)
}

type cleanupService struct {
	sessions repositories.UploadSessionRepository
}

func NewCleanupService(sessions repositories.UploadSessionRepository) CleanupService {
	return &cleanupService{sessions: sessions}
}

func (s *cleanupService) SweepExpiredSessions(ctx context.Context) (int, error) {
	retention := time.Duration(config.AppConfig.Storage.SessionRetentionHours) * time.Hour
	cutoff := utils.Now().Add(-retention)

	expired, err := s.sessions.ListCreatedBefore(ctx, nil, cutoff)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, session := range expired {
		if err := os.RemoveAll(session.TempDir); err != nil {
			logger.Errorf("failed to remove staging dir %s: %v", session.TempDir, err)
			continue
		}
		if err := s.sessions.DeleteByID(ctx, nil, session.ID); err != nil {
			logger.Errorf("failed to delete upload session %s: %v", session.ID, err)
			continue
		}
		removed++
	}
	if removed > 0 {
		logger.Infof("cleaned up %d expired upload sessions", removed)
	}
	return removed, nil
}

func (s *cleanupService) Run(ctx context.Context, interval time.Duration) {
	if _, err := s.SweepExpiredSessions(ctx); err != nil {
		logger.Errorf("upload session sweep failed: %v", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.SweepExpiredSessions(ctx); err != nil {
				logger.Errorf("upload session sweep failed: %v", err)
			}
		}
	}
}
