package repositories

import (
	"context"

	"pcbtrack/models"

	"gorm.io/gorm"
)

type gormShareRepository struct {
	db *gorm.DB
}

func NewGormShareRepository(db *gorm.DB) ShareRepository {
	return &gormShareRepository{db: db}
}

func (r *gormShareRepository) Create(ctx context.Context, tx *gorm.DB, share *models.Share) error {
	return useTx(r.db, tx).WithContext(ctx).Create(share).Error
}

func (r *gormShareRepository) GetByID(ctx context.Context, tx *gorm.DB, shareID string) (models.Share, error) {
	var share models.Share
	err := useTx(r.db, tx).WithContext(ctx).Where("id = ?", shareID).First(&share).Error
	return share, err
}

func (r *gormShareRepository) GetByProjectID(ctx context.Context, tx *gorm.DB, projectID uint) (models.Share, error) {
	var share models.Share
	err := useTx(r.db, tx).WithContext(ctx).Where("project_id = ?", projectID).First(&share).Error
	return share, err
}

func (r *gormShareRepository) DeleteByID(ctx context.Context, tx *gorm.DB, shareID string) (int64, error) {
	result := useTx(r.db, tx).WithContext(ctx).Where("id = ?", shareID).Delete(&models.Share{})
	return result.RowsAffected, result.Error
}

func (r *gormShareRepository) DeleteByProject(ctx context.Context, tx *gorm.DB, projectID uint) error {
	return useTx(r.db, tx).WithContext(ctx).Where("project_id = ?", projectID).Delete(&models.Share{}).Error
}

func (r *gormShareRepository) IncrementAccessCount(ctx context.Context, tx *gorm.DB, shareID string) error {
	return useTx(r.db, tx).WithContext(ctx).
		Model(&models.Share{}).
		Where("id = ?", shareID).
		UpdateColumn("access_count", gorm.Expr("access_count + 1")).Error
}

func (r *gormShareRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Share{}).Count(&count).Error
	return count, err
}
