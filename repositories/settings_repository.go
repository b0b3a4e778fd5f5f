package repositories

import (
	"context"

	"pcbtrack/models"

	"gorm.io/gorm"
)

type gormSettingsRepository struct {
	db *gorm.DB
}

func NewGormSettingsRepository(db *gorm.DB) SettingsRepository {
	return &gormSettingsRepository{db: db}
}

func (r *gormSettingsRepository) GetByUser(ctx context.Context, tx *gorm.DB, userID uint) (models.UserSetting, error) {
	var setting models.UserSetting
	err := useTx(r.db, tx).WithContext(ctx).Where("user_id = ?", userID).First(&setting).Error
	return setting, err
}

func (r *gormSettingsRepository) Create(ctx context.Context, tx *gorm.DB, setting *models.UserSetting) error {
	return useTx(r.db, tx).WithContext(ctx).Create(setting).Error
}

func (r *gormSettingsRepository) UpdateByUser(ctx context.Context, tx *gorm.DB, userID uint, updates map[string]interface{}) error {
	return useTx(r.db, tx).WithContext(ctx).
		Model(&models.UserSetting{}).
		Where("user_id = ?", userID).
		Updates(updates).Error
}

func (r *gormSettingsRepository) DeleteByUser(ctx context.Context, tx *gorm.DB, userID uint) error {
	return useTx(r.db, tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.UserSetting{}).Error
}
