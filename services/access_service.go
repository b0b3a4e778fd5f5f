package services

import (
	"context"
	"errors"
	"net/http"

	"pcbtrack/models"
	"pcbtrack/repositories"

	"gorm.io/gorm"
)

// AccessService answers the single question every project operation asks
// first: what may this user do with this project.
type AccessService interface {
	// Resolve returns the project and the caller's effective permission.
	// Owners resolve to PermissionOwner, collaborators to their recorded
	// permission. Anyone else gets a forbidden error; a missing project is
	// not found regardless of caller.
	Resolve(ctx context.Context, projectID uint, userID uint) (models.Project, string, error)
	RequireOwner(ctx context.Context, projectID uint, userID uint) (models.Project, error)
	RequireWrite(ctx context.Context, projectID uint, userID uint) (models.Project, error)
}

type accessService struct {
	projects       repositories.ProjectRepository
	collaborations repositories.CollaborationRepository
}

func NewAccessService(projects repositories.ProjectRepository, collaborations repositories.CollaborationRepository) AccessService {
	return &accessService{projects: projects, collaborations: collaborations}
}

func CanWrite(permission string) bool {
	return permission == models.PermissionOwner || permission == models.PermissionWrite
}

func (s *accessService) Resolve(ctx context.Context, projectID uint, userID uint) (models.Project, string, error) {
	project, err := s.projects.GetByID(ctx, nil, projectID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Project{}, "", newAppError(http.StatusNotFound, "project not found")
	}
	if err != nil {
		return models.Project{}, "", wrapAppError(http.StatusInternalServerError, "failed to load project", err)
	}

	if project.UserID == userID {
		return project, models.PermissionOwner, nil
	}

	collab, err := s.collaborations.GetByProjectAndCollaborator(ctx, nil, projectID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Project{}, "", newAppError(http.StatusForbidden, "no access to this project")
	}
	if err != nil {
		return models.Project{}, "", wrapAppError(http.StatusInternalServerError, "failed to load collaboration", err)
	}
	return project, collab.Permission, nil
}

func (s *accessService) RequireOwner(ctx context.Context, projectID uint, userID uint) (models.Project, error) {
	project, permission, err := s.Resolve(ctx, projectID, userID)
	if err != nil {
		return models.Project{}, err
	}
	if permission != models.PermissionOwner {
		return models.Project{}, newAppError(http.StatusForbidden, "only the project owner can do this")
	}
	return project, nil
}

func (s *accessService) RequireWrite(ctx context.Context, projectID uint, userID uint) (models.Project, error) {
	project, permission, err := s.Resolve(ctx, projectID, userID)
	if err != nil {
		return models.Project{}, err
	}
	if !CanWrite(permission) {
		return models.Project{}, newAppError(http.StatusForbidden, "write permission required")
	}
	return project, nil
}
