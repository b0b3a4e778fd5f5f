package repositories

import (
	"context"

	"pcbtrack/models"

	"gorm.io/gorm"
)

type gormCatalogRepository struct {
	db *gorm.DB
}

func NewGormCatalogRepository(db *gorm.DB) CatalogRepository {
	return &gormCatalogRepository{db: db}
}

func (r *gormCatalogRepository) ListStatus(ctx context.Context) ([]models.StatusOption, error) {
	var options []models.StatusOption
	err := r.db.WithContext(ctx).Order("sort_order ASC, id ASC").Find(&options).Error
	return options, err
}

func (r *gormCatalogRepository) GetStatusByID(ctx context.Context, tx *gorm.DB, id uint) (models.StatusOption, error) {
	var option models.StatusOption
	err := useTx(r.db, tx).WithContext(ctx).First(&option, id).Error
	return option, err
}

func (r *gormCatalogRepository) CreateStatus(ctx context.Context, tx *gorm.DB, option *models.StatusOption) error {
	return useTx(r.db, tx).WithContext(ctx).Create(option).Error
}

func (r *gormCatalogRepository) UpdateStatusByID(ctx context.Context, tx *gorm.DB, id uint, updates map[string]interface{}) error {
	return useTx(r.db, tx).WithContext(ctx).
		Model(&models.StatusOption{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *gormCatalogRepository) DeleteStatusByID(ctx context.Context, tx *gorm.DB, id uint) error {
	return useTx(r.db, tx).WithContext(ctx).Delete(&models.StatusOption{}, id).Error
}

func (r *gormCatalogRepository) HasStatusValue(ctx context.Context, value string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.StatusOption{}).Where("value = ?", value).Count(&count).Error
	return count > 0, err
}

func (r *gormCatalogRepository) ListSource(ctx context.Context) ([]models.SourceOption, error) {
	var options []models.SourceOption
	err := r.db.WithContext(ctx).Order("sort_order ASC, id ASC").Find(&options).Error
	return options, err
}

func (r *gormCatalogRepository) GetSourceByID(ctx context.Context, tx *gorm.DB, id uint) (models.SourceOption, error) {
	var option models.SourceOption
	err := useTx(r.db, tx).WithContext(ctx).First(&option, id).Error
	return option, err
}

func (r *gormCatalogRepository) CreateSource(ctx context.Context, tx *gorm.DB, option *models.SourceOption) error {
	return useTx(r.db, tx).WithContext(ctx).Create(option).Error
}

func (r *gormCatalogRepository) UpdateSourceByID(ctx context.Context, tx *gorm.DB, id uint, updates map[string]interface{}) error {
	return useTx(r.db, tx).WithContext(ctx).
		Model(&models.SourceOption{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *gormCatalogRepository) DeleteSourceByID(ctx context.Context, tx *gorm.DB, id uint) error {
	return useTx(r.db, tx).WithContext(ctx).Delete(&models.SourceOption{}, id).Error
}

func (r *gormCatalogRepository) HasSourceName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SourceOption{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func (r *gormCatalogRepository) ListBoardType(ctx context.Context) ([]models.BoardTypeOption, error) {
	var options []models.BoardTypeOption
	err := r.db.WithContext(ctx).Order("sort_order ASC, id ASC").Find(&options).Error
	return options, err
}

func (r *gormCatalogRepository) GetBoardTypeByID(ctx context.Context, tx *gorm.DB, id uint) (models.BoardTypeOption, error) {
	var option models.BoardTypeOption
	err := useTx(r.db, tx).WithContext(ctx).First(&option, id).Error
	return option, err
}

func (r *gormCatalogRepository) CreateBoardType(ctx context.Context, tx *gorm.DB, option *models.BoardTypeOption) error {
	return useTx(r.db, tx).WithContext(ctx).Create(option).Error
}

func (r *gormCatalogRepository) UpdateBoardTypeByID(ctx context.Context, tx *gorm.DB, id uint, updates map[string]interface{}) error {
	return useTx(r.db, tx).WithContext(ctx).
		Model(&models.BoardTypeOption{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *gormCatalogRepository) DeleteBoardTypeByID(ctx context.Context, tx *gorm.DB, id uint) error {
	return useTx(r.db, tx).WithContext(ctx).Delete(&models.BoardTypeOption{}, id).Error
}

func (r *gormCatalogRepository) HasBoardTypeName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.BoardTypeOption{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}
