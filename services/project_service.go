package services

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"

	"pcbtrack/logger"
	"pcbtrack/models"
	"pcbtrack/repositories"

	"gorm.io/gorm"
)

type BOMLineInput struct {
	ComponentID uint `json:"component_id" binding:"required"`
	Quantity    int  `json:"quantity"`
}

type RequirementInput struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
	Color   string `json:"color"`
}

type ProjectInput struct {
	Name         string             `json:"name" binding:"required"`
	Source       string             `json:"source"`
	Price        float64            `json:"price"`
	BoardType    string             `json:"board_type"`
	Status       string             `json:"status"`
	Remark       string             `json:"remark"`
	Components   []BOMLineInput     `json:"components"`
	Requirements []RequirementInput `json:"requirements"`
}

type ProjectView struct {
	models.Project
	Permission    string `json:"permission"`
	OwnerUsername string `json:"owner_username"`
	HasShare      bool   `json:"has_share"`
}

type ProjectDetail struct {
	ProjectView
	Components   []repositories.BOMLine      `json:"components"`
	Requirements []models.ProjectRequirement `json:"requirements"`
	HidePrices   bool                        `json:"hide_prices"`
}

type UserStats struct {
	TotalProjects  int64   `json:"total_projects"`
	ActiveProjects int64   `json:"active_projects"`
	TotalSpend     float64 `json:"total_spend"`
	ComponentCost  float64 `json:"component_cost"`
}

type ProjectService interface {
	List(ctx context.Context, userID uint) ([]ProjectView, error)
	Get(ctx context.Context, projectID uint, userID uint) (ProjectDetail, error)
	Create(ctx context.Context, ownerID uint, input ProjectInput) (models.Project, error)
	Update(ctx context.Context, projectID uint, userID uint, input ProjectInput) (models.Project, error)
	Delete(ctx context.Context, projectID uint, userID uint) error
	Stats(ctx context.Context, userID uint) (UserStats, error)
}

type projectService struct {
	txManager      repositories.TxManager
	users          repositories.UserRepository
	projects       repositories.ProjectRepository
	collaborations repositories.CollaborationRepository
	shares         repositories.ShareRepository
	sessions       repositories.UploadSessionRepository
	settings       repositories.SettingsRepository
	access         AccessService
}

func NewProjectService(
	txManager repositories.TxManager,
	users repositories.UserRepository,
	projects repositories.ProjectRepository,
	collaborations repositories.CollaborationRepository,
	shares repositories.ShareRepository,
	sessions repositories.UploadSessionRepository,
	settings repositories.SettingsRepository,
	access AccessService,
) ProjectService {
	return &projectService{
		txManager:      txManager,
		users:          users,
		projects:       projects,
		collaborations: collaborations,
		shares:         shares,
		sessions:       sessions,
		settings:       settings,
		access:         access,
	}
}

func (s *projectService) List(ctx context.Context, userID uint) ([]ProjectView, error) {
	user, err := s.users.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, wrapAppError(http.StatusInternalServerError, "failed to load user", err)
	}

	own, err := s.projects.ListByOwner(ctx, userID)
	if err != nil {
		return nil, wrapAppError(http.StatusInternalServerError, "failed to list projects", err)
	}

	views := make([]ProjectView, 0, len(own))
	for _, p := range own {
		hasShare := false
		if _, err := s.shares.GetByProjectID(ctx, nil, p.ID); err == nil {
			hasShare = true
		}
		views = append(views, ProjectView{
			Project:       p,
			Permission:    models.PermissionOwner,
			OwnerUsername: user.Username,
			HasShare:      hasShare,
		})
	}

	collabs, err := s.collaborations.ListByCollaborator(ctx, userID)
	if err != nil {
		return nil, wrapAppError(http.StatusInternalServerError, "failed to list collaborations", err)
	}
	for _, c := range collabs {
		project, err := s.projects.GetByID(ctx, nil, c.ProjectID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, wrapAppError(http.StatusInternalServerError, "failed to load shared project", err)
		}
		owner, err := s.users.GetByID(ctx, nil, project.UserID)
		if err != nil {
			return nil, wrapAppError(http.StatusInternalServerError, "failed to load project owner", err)
		}
		views = append(views, ProjectView{
			Project:       project,
			Permission:    c.Permission,
			OwnerUsername: owner.Username,
		})
	}
	return views, nil
}

func (s *projectService) Get(ctx context.Context, projectID uint, userID uint) (ProjectDetail, error) {
	project, permission, err := s.access.Resolve(ctx, projectID, userID)
	if err != nil {
		return ProjectDetail{}, err
	}

	owner, err := s.users.GetByID(ctx, nil, project.UserID)
	if err != nil {
		return ProjectDetail{}, wrapAppError(http.StatusInternalServerError, "failed to load project owner", err)
	}

	components, err := s.projects.ListComponents(ctx, projectID)
	if err != nil {
		return ProjectDetail{}, wrapAppError(http.StatusInternalServerError, "failed to load components", err)
	}
	requirements, err := s.projects.ListRequirements(ctx, projectID)
	if err != nil {
		return ProjectDetail{}, wrapAppError(http.StatusInternalServerError, "failed to load requirements", err)
	}

	hidePrices := false
	if settings, err := s.settings.GetByUser(ctx, nil, userID); err == nil {
		hidePrices = settings.HidePrices
	}
	if hidePrices {
		project.Price = 0
		for i := range components {
			components[i].Price = 0
		}
	}

	hasShare := false
	if _, err := s.shares.GetByProjectID(ctx, nil, projectID); err == nil {
		hasShare = true
	}

	return ProjectDetail{
		ProjectView: ProjectView{
			Project:       project,
			Permission:    permission,
			OwnerUsername: owner.Username,
			HasShare:      hasShare,
		},
		Components:   components,
		Requirements: requirements,
		HidePrices:   hidePrices,
	}, nil
}

func (s *projectService) Create(ctx context.Context, ownerID uint, input ProjectInput) (models.Project, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return models.Project{}, newAppError(http.StatusBadRequest, "project name is required")
	}

	owner, err := s.users.GetByID(ctx, nil, ownerID)
	if err != nil {
		return models.Project{}, wrapAppError(http.StatusInternalServerError, "failed to load user", err)
	}

	status := input.Status
	if status == "" {
		status = "planning"
	}

	project := models.Project{
		UserID:     ownerID,
		Name:       name,
		Source:     input.Source,
		Price:      input.Price,
		BoardType:  input.BoardType,
		Status:     status,
		Remark:     input.Remark,
		StorageKey: owner.Username + "-" + sanitizeStorageName(name),
	}

	err = s.txManager.WithTransaction(ctx, func(tx *gorm.DB) error {
		if err := s.projects.Create(ctx, tx, &project); err != nil {
			return err
		}
		if err := s.projects.ReplaceComponents(ctx, tx, project.ID, bomLines(project.ID, input.Components)); err != nil {
			return err
		}
		return s.projects.ReplaceRequirements(ctx, tx, project.ID, requirementLines(project.ID, input.Requirements))
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Project{}, newAppError(http.StatusConflict, "a project with this name already exists")
		}
		return models.Project{}, wrapAppError(http.StatusInternalServerError, "failed to create project", err)
	}
	return project, nil
}

func (s *projectService) Update(ctx context.Context, projectID uint, userID uint, input ProjectInput) (models.Project, error) {
	project, err := s.access.RequireWrite(ctx, projectID, userID)
	if err != nil {
		return models.Project{}, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return models.Project{}, newAppError(http.StatusBadRequest, "project name is required")
	}

	// The storage key is deliberately absent here: renaming a project must
	// not move its files.
	updates := map[string]interface{}{
		"name":       name,
		"source":     input.Source,
		"price":      input.Price,
		"board_type": input.BoardType,
		"status":     input.Status,
		"remark":     input.Remark,
	}

	err = s.txManager.WithTransaction(ctx, func(tx *gorm.DB) error {
		if err := s.projects.UpdateByIDAndOwner(ctx, tx, projectID, project.UserID, updates); err != nil {
			return err
		}
		if input.Components != nil {
			if err := s.projects.ReplaceComponents(ctx, tx, projectID, bomLines(projectID, input.Components)); err != nil {
				return err
			}
		}
		if input.Requirements != nil {
			if err := s.projects.ReplaceRequirements(ctx, tx, projectID, requirementLines(projectID, input.Requirements)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.Project{}, wrapAppError(http.StatusInternalServerError, "failed to update project", err)
	}

	return s.projects.GetByID(ctx, nil, projectID)
}

// Delete removes the project row, its BOM and requirements, collaborations,
// share link and upload sessions in one transaction, then clears the
// directories on disk.
func (s *projectService) Delete(ctx context.Context, projectID uint, userID uint) error {
	project, err := s.access.RequireOwner(ctx, projectID, userID)
	if err != nil {
		return err
	}
	owner, err := s.users.GetByID(ctx, nil, project.UserID)
	if err != nil {
		return wrapAppError(http.StatusInternalServerError, "failed to load project owner", err)
	}

	var tempDirs []string
	err = s.txManager.WithTransaction(ctx, func(tx *gorm.DB) error {
		sessions, err := s.sessions.ListByProject(ctx, tx, projectID)
		if err != nil {
			return err
		}
		for _, session := range sessions {
			tempDirs = append(tempDirs, session.TempDir)
		}
		if err := s.sessions.DeleteByProject(ctx, tx, projectID); err != nil {
			return err
		}
		if err := s.shares.DeleteByProject(ctx, tx, projectID); err != nil {
			return err
		}
		if err := s.collaborations.DeleteByProject(ctx, tx, projectID); err != nil {
			return err
		}
		if err := s.projects.DeleteRelated(ctx, tx, projectID); err != nil {
			return err
		}
		return s.projects.DeleteByID(ctx, tx, projectID)
	})
	if err != nil {
		return wrapAppError(http.StatusInternalServerError, "failed to delete project", err)
	}

	for _, dir := range tempDirs {
		if err := os.RemoveAll(dir); err != nil {
			logger.Errorf("failed to remove staging dir %s: %v", dir, err)
		}
	}
	if err := os.RemoveAll(projectDir(owner.Username, project.StorageKey)); err != nil {
		logger.Errorf("failed to remove project dir for %s: %v", project.StorageKey, err)
	}
	if err := os.RemoveAll(thumbnailDir(project.StorageKey)); err != nil {
		logger.Errorf("failed to remove thumbnail dir for %s: %v", project.StorageKey, err)
	}
	return nil
}

func (s *projectService) Stats(ctx context.Context, userID uint) (UserStats, error) {
	total, err := s.projects.CountByOwner(ctx, userID, "")
	if err != nil {
		return UserStats{}, wrapAppError(http.StatusInternalServerError, "failed to count projects", err)
	}
	active, err := s.projects.CountByOwner(ctx, userID, "completed")
	if err != nil {
		return UserStats{}, wrapAppError(http.StatusInternalServerError, "failed to count active projects", err)
	}
	spend, err := s.projects.SumPriceByOwner(ctx, userID, "")
	if err != nil {
		return UserStats{}, wrapAppError(http.StatusInternalServerError, "failed to sum project prices", err)
	}
	componentCost, err := s.projects.SumComponentCostByOwner(ctx, userID)
	if err != nil {
		return UserStats{}, wrapAppError(http.StatusInternalServerError, "failed to sum component cost", err)
	}
	return UserStats{
		TotalProjects:  total,
		ActiveProjects: active,
		TotalSpend:     spend,
		ComponentCost:  componentCost,
	}, nil
}

func bomLines(projectID uint, inputs []BOMLineInput) []models.ProjectComponent {
	lines := make([]models.ProjectComponent, 0, len(inputs))
	for _, in := range inputs {
		quantity := in.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		lines = append(lines, models.ProjectComponent{
			ProjectID:   projectID,
			ComponentID: in.ComponentID,
			Quantity:    quantity,
		})
	}
	return lines
}

func requirementLines(projectID uint, inputs []RequirementInput) []models.ProjectRequirement {
	lines := make([]models.ProjectRequirement, 0, len(inputs))
	for _, in := range inputs {
		line := models.ProjectRequirement{
			ProjectID: projectID,
			Title:     in.Title,
			Content:   in.Content,
			Color:     in.Color,
		}
		if line.Color == "" {
			line.Color = "#2196F3"
		}
		lines = append(lines, line)
	}
	return lines
}
