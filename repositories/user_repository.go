package repositories

import (
	"context"

	"pcbtrack/models"

	"gorm.io/gorm"
)

type gormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

func (r *gormUserRepository) CountByUsername(ctx context.Context, username string, excludeID uint) (int64, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count, err
}

func (r *gormUserRepository) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	return useTx(r.db, tx).WithContext(ctx).Create(user).Error
}

func (r *gormUserRepository) GetByUsername(ctx context.Context, tx *gorm.DB, username string) (models.User, error) {
	var user models.User
	err := useTx(r.db, tx).WithContext(ctx).Where("username = ?", username).First(&user).Error
	return user, err
}

func (r *gormUserRepository) GetByID(ctx context.Context, tx *gorm.DB, userID uint) (models.User, error) {
	var user models.User
	err := useTx(r.db, tx).WithContext(ctx).First(&user, userID).Error
	return user, err
}

func (r *gormUserRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error
	return users, err
}

func (r *gormUserRepository) ListCollaboratorCandidates(ctx context.Context, excludeUserID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Where("id <> ?", excludeUserID).
		Order("username ASC").
		Find(&users).Error
	return users, err
}

func (r *gormUserRepository) UpdateByID(ctx context.Context, tx *gorm.DB, userID uint, updates map[string]interface{}) error {
	return useTx(r.db, tx).WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error
}

func (r *gormUserRepository) DeleteByID(ctx context.Context, tx *gorm.DB, userID uint) error {
	return useTx(r.db, tx).WithContext(ctx).Delete(&models.User{}, userID).Error
}

func (r *gormUserRepository) CountAll(ctx context.Context) (int64, int64, error) {
	var total, admins int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("is_admin = ?", true).Count(&admins).Error; err != nil {
		return 0, 0, err
	}
	return total, admins, nil
}
