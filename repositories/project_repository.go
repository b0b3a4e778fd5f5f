package repositories

import (
	"context"

	"pcbtrack/models"

	"gorm.io/gorm"
)

type gormProjectRepository struct {
	db *gorm.DB
}

func NewGormProjectRepository(db *gorm.DB) ProjectRepository {
	return &gormProjectRepository{db: db}
}

func (r *gormProjectRepository) Create(ctx context.Context, tx *gorm.DB, project *models.Project) error {
	return useTx(r.db, tx).WithContext(ctx).Create(project).Error
}

func (r *gormProjectRepository) GetByID(ctx context.Context, tx *gorm.DB, projectID uint) (models.Project, error) {
	var project models.Project
	err := useTx(r.db, tx).WithContext(ctx).First(&project, projectID).Error
	return project, err
}

func (r *gormProjectRepository) GetByIDAndOwner(ctx context.Context, tx *gorm.DB, projectID uint, ownerID uint) (models.Project, error) {
	var project models.Project
	err := useTx(r.db, tx).WithContext(ctx).
		Where("id = ? AND user_id = ?", projectID, ownerID).
		First(&project).Error
	return project, err
}

func (r *gormProjectRepository) ListByOwner(ctx context.Context, ownerID uint) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

func (r *gormProjectRepository) ListIDsByOwner(ctx context.Context, tx *gorm.DB, ownerID uint) ([]uint, error) {
	var ids []uint
	err := useTx(r.db, tx).WithContext(ctx).
		Model(&models.Project{}).
		Where("user_id = ?", ownerID).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *gormProjectRepository) UpdateByIDAndOwner(ctx context.Context, tx *gorm.DB, projectID uint, ownerID uint, updates map[string]interface{}) error {
	return useTx(r.db, tx).WithContext(ctx).
		Model(&models.Project{}).
		Where("id = ? AND user_id = ?", projectID, ownerID).
		Updates(updates).Error
}

func (r *gormProjectRepository) DeleteByID(ctx context.Context, tx *gorm.DB, projectID uint) error {
	return useTx(r.db, tx).WithContext(ctx).Delete(&models.Project{}, projectID).Error
}

func (r *gormProjectRepository) CountByOwner(ctx context.Context, ownerID uint, statusNot string) (int64, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Project{}).Where("user_id = ?", ownerID)
	if statusNot != "" {
		q = q.Where("status <> ?", statusNot)
	}
	err := q.Count(&count).Error
	return count, err
}

func (r *gormProjectRepository) SumPriceByOwner(ctx context.Context, ownerID uint, statusNot string) (float64, error) {
	var total float64
	q := r.db.WithContext(ctx).Model(&models.Project{}).Where("user_id = ?", ownerID)
	if statusNot != "" {
		q = q.Where("status <> ?", statusNot)
	}
	err := q.Select("COALESCE(SUM(price), 0)").Scan(&total).Error
	return total, err
}

func (r *gormProjectRepository) SumComponentCostByOwner(ctx context.Context, ownerID uint) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&models.ProjectComponent{}).
		Select("COALESCE(SUM(components.price * project_components.quantity), 0)").
		Joins("JOIN components ON components.id = project_components.component_id").
		Joins("JOIN projects ON projects.id = project_components.project_id").
		Where("projects.user_id = ?", ownerID).
		Scan(&total).Error
	return total, err
}

func (r *gormProjectRepository) CountTotal(ctx context.Context) (int64, int64, error) {
	var total, active int64
	if err := r.db.WithContext(ctx).Model(&models.Project{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	err := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("status <> ?", "completed").
		Count(&active).Error
	return total, active, err
}

func (r *gormProjectRepository) CountByStatusValue(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Project{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *gormProjectRepository) CountBySourceValue(ctx context.Context, source string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Project{}).Where("source = ?", source).Count(&count).Error
	return count, err
}

func (r *gormProjectRepository) CountByBoardTypeValue(ctx context.Context, boardType string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Project{}).Where("board_type = ?", boardType).Count(&count).Error
	return count, err
}

func (r *gormProjectRepository) ReplaceComponents(ctx context.Context, tx *gorm.DB, projectID uint, lines []models.ProjectComponent) error {
	db := useTx(r.db, tx).WithContext(ctx)
	if err := db.Where("project_id = ?", projectID).Delete(&models.ProjectComponent{}).Error; err != nil {
		return err
	}
	if len(lines) == 0 {
		return nil
	}
	return db.Create(&lines).Error
}

func (r *gormProjectRepository) ReplaceRequirements(ctx context.Context, tx *gorm.DB, projectID uint, lines []models.ProjectRequirement) error {
	db := useTx(r.db, tx).WithContext(ctx)
	if err := db.Where("project_id = ?", projectID).Delete(&models.ProjectRequirement{}).Error; err != nil {
		return err
	}
	if len(lines) == 0 {
		return nil
	}
	return db.Create(&lines).Error
}

func (r *gormProjectRepository) ListComponents(ctx context.Context, projectID uint) ([]BOMLine, error) {
	var lines []BOMLine
	err := r.db.WithContext(ctx).
		Model(&models.ProjectComponent{}).
		Select("components.id AS component_id, components.name, components.model, components.price, project_components.quantity").
		Joins("JOIN components ON components.id = project_components.component_id").
		Where("project_components.project_id = ?", projectID).
		Order("components.name ASC").
		Scan(&lines).Error
	return lines, err
}

func (r *gormProjectRepository) ListRequirements(ctx context.Context, projectID uint) ([]models.ProjectRequirement, error) {
	var reqs []models.ProjectRequirement
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("id ASC").
		Find(&reqs).Error
	return reqs, err
}

func (r *gormProjectRepository) DeleteRelated(ctx context.Context, tx *gorm.DB, projectID uint) error {
	db := useTx(r.db, tx).WithContext(ctx)
	if err := db.Where("project_id = ?", projectID).Delete(&models.ProjectComponent{}).Error; err != nil {
		return err
	}
	return db.Where("project_id = ?", projectID).Delete(&models.ProjectRequirement{}).Error
}
