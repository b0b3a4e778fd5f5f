package repositories

import (
	"context"

	"pcbtrack/models"

	"gorm.io/gorm"
)

type gormCollaborationRepository struct {
	db *gorm.DB
}

func NewGormCollaborationRepository(db *gorm.DB) CollaborationRepository {
	return &gormCollaborationRepository{db: db}
}

func (r *gormCollaborationRepository) Create(ctx context.Context, tx *gorm.DB, collab *models.Collaboration) error {
	return useTx(r.db, tx).WithContext(ctx).Create(collab).Error
}

func (r *gormCollaborationRepository) GetByID(ctx context.Context, tx *gorm.DB, collaborationID uint) (models.Collaboration, error) {
	var collab models.Collaboration
	err := useTx(r.db, tx).WithContext(ctx).First(&collab, collaborationID).Error
	return collab, err
}

func (r *gormCollaborationRepository) GetByProjectAndCollaborator(ctx context.Context, tx *gorm.DB, projectID uint, collaboratorID uint) (models.Collaboration, error) {
	var collab models.Collaboration
	err := useTx(r.db, tx).WithContext(ctx).
		Where("project_id = ? AND collaborator_id = ?", projectID, collaboratorID).
		First(&collab).Error
	return collab, err
}

func (r *gormCollaborationRepository) ListByProject(ctx context.Context, projectID uint) ([]CollaborationEntry, error) {
	var entries []CollaborationEntry
	err := r.db.WithContext(ctx).
		Model(&models.Collaboration{}).
		Select("collaborations.id, collaborations.collaborator_id, users.username, collaborations.permission, collaborations.created_at").
		Joins("JOIN users ON users.id = collaborations.collaborator_id").
		Where("collaborations.project_id = ?", projectID).
		Order("collaborations.created_at ASC").
		Scan(&entries).Error
	return entries, err
}

func (r *gormCollaborationRepository) ListByCollaborator(ctx context.Context, collaboratorID uint) ([]models.Collaboration, error) {
	var collabs []models.Collaboration
	err := r.db.WithContext(ctx).
		Where("collaborator_id = ?", collaboratorID).
		Find(&collabs).Error
	return collabs, err
}

func (r *gormCollaborationRepository) CountByProjectAndOwner(ctx context.Context, projectID uint, ownerID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Collaboration{}).
		Where("project_id = ? AND owner_id = ?", projectID, ownerID).
		Count(&count).Error
	return count, err
}

func (r *gormCollaborationRepository) UpdatePermission(ctx context.Context, tx *gorm.DB, collaborationID uint, permission string) error {
	return useTx(r.db, tx).WithContext(ctx).
		Model(&models.Collaboration{}).
		Where("id = ?", collaborationID).
		Update("permission", permission).Error
}

func (r *gormCollaborationRepository) DeleteByProjectAndCollaborator(ctx context.Context, tx *gorm.DB, projectID uint, collaboratorID uint) (int64, error) {
	result := useTx(r.db, tx).WithContext(ctx).
		Where("project_id = ? AND collaborator_id = ?", projectID, collaboratorID).
		Delete(&models.Collaboration{})
	return result.RowsAffected, result.Error
}

func (r *gormCollaborationRepository) DeleteByProject(ctx context.Context, tx *gorm.DB, projectID uint) error {
	return useTx(r.db, tx).WithContext(ctx).
		Where("project_id = ?", projectID).
		Delete(&models.Collaboration{}).Error
}

func (r *gormCollaborationRepository) DeleteByCollaborator(ctx context.Context, tx *gorm.DB, collaboratorID uint) error {
	return useTx(r.db, tx).WithContext(ctx).
		Where("collaborator_id = ?", collaboratorID).
		Delete(&models.Collaboration{}).Error
}
