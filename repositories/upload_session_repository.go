package repositories

import (
	"context"
	"time"

	"pcbtrack/models"

	"gorm.io/gorm"
)

type gormUploadSessionRepository struct {
	db *gorm.DB
}

func NewGormUploadSessionRepository(db *gorm.DB) UploadSessionRepository {
	return &gormUploadSessionRepository{db: db}
}

func (r *gormUploadSessionRepository) Create(ctx context.Context, tx *gorm.DB, session *models.UploadSession) error {
	return useTx(r.db, tx).WithContext(ctx).Create(session).Error
}

func (r *gormUploadSessionRepository) GetByID(ctx context.Context, tx *gorm.DB, sessionID string) (models.UploadSession, error) {
	var session models.UploadSession
	err := useTx(r.db, tx).WithContext(ctx).Where("id = ?", sessionID).First(&session).Error
	return session, err
}

func (r *gormUploadSessionRepository) UpdateProgress(ctx context.Context, tx *gorm.DB, sessionID string, uploadedFiles int, fileList string) error {
	return useTx(r.db, tx).WithContext(ctx).
		Model(&models.UploadSession{}).
		Where("id = ?", sessionID).
		Updates(map[string]interface{}{
			"uploaded_files": uploadedFiles,
			"file_list":      fileList,
		}).Error
}

func (r *gormUploadSessionRepository) DeleteByID(ctx context.Context, tx *gorm.DB, sessionID string) error {
	return useTx(r.db, tx).WithContext(ctx).Where("id = ?", sessionID).Delete(&models.UploadSession{}).Error
}

func (r *gormUploadSessionRepository) ListByProject(ctx context.Context, tx *gorm.DB, projectID uint) ([]models.UploadSession, error) {
	var sessions []models.UploadSession
	err := useTx(r.db, tx).WithContext(ctx).Where("project_id = ?", projectID).Find(&sessions).Error
	return sessions, err
}

func (r *gormUploadSessionRepository) DeleteByProject(ctx context.Context, tx *gorm.DB, projectID uint) error {
	return useTx(r.db, tx).WithContext(ctx).Where("project_id = ?", projectID).Delete(&models.UploadSession{}).Error
}

func (r *gormUploadSessionRepository) ListCreatedBefore(ctx context.Context, tx *gorm.DB, cutoff time.Time) ([]models.UploadSession, error) {
	var sessions []models.UploadSession
	err := useTx(r.db, tx).WithContext(ctx).Where("created_at < ?", cutoff).Find(&sessions).Error
	return sessions, err
}
