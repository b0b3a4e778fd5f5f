package services

import (
	"context"
	"errors"
	"net/http"

	"pcbtrack/models"
	"pcbtrack/repositories"

	"gorm.io/gorm"
)

type CollaborationService interface {
	// Add registers a collaborator on an owned project. The owner cannot be
	// added to their own project and a user can appear at most once.
	Add(ctx context.Context, projectID uint, ownerID uint, collaboratorID uint, permission string) (models.Collaboration, error)
	List(ctx context.Context, projectID uint, ownerID uint) ([]repositories.CollaborationEntry, error)
	UpdatePermission(ctx context.Context, projectID uint, ownerID uint, collaborationID uint, permission string) error
	// Remove deletes a collaboration. The owner can remove anyone; a
	// collaborator can remove only themselves.
	Remove(ctx context.Context, projectID uint, requesterID uint, collaboratorID uint) error
	AvailableCollaborators(ctx context.Context, projectID uint, ownerID uint) ([]models.User, error)
}

type collaborationService struct {
	users          repositories.UserRepository
	collaborations repositories.CollaborationRepository
	access         AccessService
}

func NewCollaborationService(users repositories.UserRepository, collaborations repositories.CollaborationRepository, access AccessService) CollaborationService {
	return &collaborationService{users: users, collaborations: collaborations, access: access}
}

func (s *collaborationService) Add(ctx context.Context, projectID uint, ownerID uint, collaboratorID uint, permission string) (models.Collaboration, error) {
	project, err := s.access.RequireOwner(ctx, projectID, ownerID)
	if err != nil {
		return models.Collaboration{}, err
	}
	if !models.ValidPermission(permission) {
		return models.Collaboration{}, newAppError(http.StatusBadRequest, "permission must be read or write")
	}
	if collaboratorID == project.UserID {
		return models.Collaboration{}, newAppError(http.StatusBadRequest, "owner is already a member of the project")
	}

	if _, err := s.users.GetByID(ctx, nil, collaboratorID); errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Collaboration{}, newAppError(http.StatusNotFound, "user not found")
	} else if err != nil {
		return models.Collaboration{}, wrapAppError(http.StatusInternalServerError, "failed to load user", err)
	}

	collab := models.Collaboration{
		ProjectID:      projectID,
		OwnerID:        project.UserID,
		CollaboratorID: collaboratorID,
		Permission:     permission,
	}
	if err := s.collaborations.Create(ctx, nil, &collab); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Collaboration{}, newAppError(http.StatusConflict, "user is already a collaborator on this project")
		}
		return models.Collaboration{}, wrapAppError(http.StatusInternalServerError, "failed to add collaborator", err)
	}
	return collab, nil
}

func (s *collaborationService) List(ctx context.Context, projectID uint, ownerID uint) ([]repositories.CollaborationEntry, error) {
	if _, err := s.access.RequireOwner(ctx, projectID, ownerID); err != nil {
		return nil, err
	}
	entries, err := s.collaborations.ListByProject(ctx, projectID)
	if err != nil {
		return nil, wrapAppError(http.StatusInternalServerError, "failed to list collaborators", err)
	}
	return entries, nil
}

func (s *collaborationService) UpdatePermission(ctx context.Context, projectID uint, ownerID uint, collaborationID uint, permission string) error {
	if _, err := s.access.RequireOwner(ctx, projectID, ownerID); err != nil {
		return err
	}
	if !models.ValidPermission(permission) {
		return newAppError(http.StatusBadRequest, "permission must be read or write")
	}

	collab, err := s.collaborations.GetByID(ctx, nil, collaborationID)
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && collab.ProjectID != projectID) {
		return newAppError(http.StatusNotFound, "collaboration not found")
	}
	if err != nil {
		return wrapAppError(http.StatusInternalServerError, "failed to load collaboration", err)
	}

	if err := s.collaborations.UpdatePermission(ctx, nil, collaborationID, permission); err != nil {
		return wrapAppError(http.StatusInternalServerError, "failed to update permission", err)
	}
	return nil
}

func (s *collaborationService) Remove(ctx context.Context, projectID uint, requesterID uint, collaboratorID uint) error {
	project, _, err := s.access.Resolve(ctx, projectID, requesterID)
	if err != nil {
		return err
	}
	if requesterID != project.UserID && requesterID != collaboratorID {
		return newAppError(http.StatusForbidden, "only the owner can remove other collaborators")
	}

	rows, err := s.collaborations.DeleteByProjectAndCollaborator(ctx, nil, projectID, collaboratorID)
	if err != nil {
		return wrapAppError(http.StatusInternalServerError, "failed to remove collaborator", err)
	}
	if rows == 0 {
		return newAppError(http.StatusNotFound, "collaboration not found")
	}
	return nil
}

func (s *collaborationService) AvailableCollaborators(ctx context.Context, projectID uint, ownerID uint) ([]models.User, error) {
	project, err := s.access.RequireOwner(ctx, projectID, ownerID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.users.ListCollaboratorCandidates(ctx, project.UserID)
	if err != nil {
		return nil, wrapAppError(http.StatusInternalServerError, "failed to list users", err)
	}
	existing, err := s.collaborations.ListByProject(ctx, projectID)
	if err != nil {
		return nil, wrapAppError(http.StatusInternalServerError, "failed to list collaborators", err)
	}

	taken := make(map[uint]bool, len(existing))
	for _, e := range existing {
		taken[e.CollaboratorID] = true
	}

	available := make([]models.User, 0, len(candidates))
	for _, u := range candidates {
		if !taken[u.ID] {
			available = append(available, u)
		}
	}
	return available, nil
}
