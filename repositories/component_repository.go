package repositories

import (
	"context"

	"pcbtrack/models"

	"gorm.io/gorm"
)

type gormComponentRepository struct {
	db *gorm.DB
}

func NewGormComponentRepository(db *gorm.DB) ComponentRepository {
	return &gormComponentRepository{db: db}
}

func (r *gormComponentRepository) List(ctx context.Context) ([]models.Component, error) {
	var components []models.Component
	err := r.db.WithContext(ctx).Order("name ASC").Find(&components).Error
	return components, err
}

func (r *gormComponentRepository) GetByID(ctx context.Context, tx *gorm.DB, componentID uint) (models.Component, error) {
	var component models.Component
	err := useTx(r.db, tx).WithContext(ctx).First(&component, componentID).Error
	return component, err
}

func (r *gormComponentRepository) Create(ctx context.Context, tx *gorm.DB, component *models.Component) error {
	return useTx(r.db, tx).WithContext(ctx).Create(component).Error
}

func (r *gormComponentRepository) UpdateByID(ctx context.Context, tx *gorm.DB, componentID uint, updates map[string]interface{}) error {
	return useTx(r.db, tx).WithContext(ctx).
		Model(&models.Component{}).
		Where("id = ?", componentID).
		Updates(updates).Error
}

func (r *gormComponentRepository) DeleteByID(ctx context.Context, tx *gorm.DB, componentID uint) error {
	return useTx(r.db, tx).WithContext(ctx).Delete(&models.Component{}, componentID).Error
}

func (r *gormComponentRepository) CountUsage(ctx context.Context, componentID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ProjectComponent{}).
		Where("component_id = ?", componentID).
		Count(&count).Error
	return count, err
}
