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
	"pcbtrack/utils"

	"gorm.io/gorm"
)

type AdminUserInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"is_admin"`
}

type SystemStats struct {
	TotalUsers     int64 `json:"total_users"`
	AdminUsers     int64 `json:"admin_users"`
	TotalProjects  int64 `json:"total_projects"`
	ActiveProjects int64 `json:"active_projects"`
	ActiveShares   int64 `json:"active_shares"`
}

type AdminService interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, input AdminUserInput) (models.User, error)
	// UpdateUser renames an account and toggles its admin flag. A rename
	// moves the user's upload directory so existing projects stay reachable.
	UpdateUser(ctx context.Context, userID uint, input AdminUserInput) (models.User, error)
	ResetPassword(ctx context.Context, userID uint, newPassword string) error
	// DeleteUser removes the account and everything it owns, including
	// files on disk.
	DeleteUser(ctx context.Context, userID uint, actingAdminID uint) error
	Stats(ctx context.Context) (SystemStats, error)
}

type adminService struct {
	txManager      repositories.TxManager
	users          repositories.UserRepository
	projects       repositories.ProjectRepository
	collaborations repositories.CollaborationRepository
	shares         repositories.ShareRepository
	sessions       repositories.UploadSessionRepository
	settings       repositories.SettingsRepository
}

func NewAdminService(
	txManager repositories.TxManager,
	users repositories.UserRepository,
	projects repositories.ProjectRepository,
	collaborations repositories.CollaborationRepository,
	shares repositories.ShareRepository,
	sessions repositories.UploadSessionRepository,
	settings repositories.SettingsRepository,
) AdminService {
	return &adminService{
		txManager:      txManager,
		users:          users,
		projects:       projects,
		collaborations: collaborations,
		shares:         shares,
		sessions:       sessions,
		settings:       settings,
	}
}

func (s *adminService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, wrapAppError(http.StatusInternalServerError, "failed to list users", err)
	}
	return users, nil
}

func (s *adminService) CreateUser(ctx context.Context, input AdminUserInput) (models.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return models.User{}, newAppError(http.StatusBadRequest, "username and password are required")
	}

	count, err := s.users.CountByUsername(ctx, username, 0)
	if err != nil {
		return models.User{}, wrapAppError(http.StatusInternalServerError, "failed to check username", err)
	}
	if count > 0 {
		return models.User{}, newAppError(http.StatusConflict, "username already taken")
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return models.User{}, wrapAppError(http.StatusInternalServerError, "failed to hash password", err)
	}

	user := models.User{Username: username, PasswordHash: hash, IsAdmin: input.IsAdmin}
	err = s.txManager.WithTransaction(ctx, func(tx *gorm.DB) error {
		if err := s.users.Create(ctx, tx, &user); err != nil {
			return err
		}
		return s.settings.Create(ctx, tx, &models.UserSetting{UserID: user.ID})
	})
	if err != nil {
		return models.User{}, wrapAppError(http.StatusInternalServerError, "failed to create user", err)
	}
	return user, nil
}

func (s *adminService) UpdateUser(ctx context.Context, userID uint, input AdminUserInput) (models.User, error) {
	user, err := s.users.GetByID(ctx, nil, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, newAppError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return models.User{}, wrapAppError(http.StatusInternalServerError, "failed to load user", err)
	}

	username := strings.TrimSpace(input.Username)
	if username == "" {
		return models.User{}, newAppError(http.StatusBadRequest, "username is required")
	}
	if username != user.Username {
		count, err := s.users.CountByUsername(ctx, username, userID)
		if err != nil {
			return models.User{}, wrapAppError(http.StatusInternalServerError, "failed to check username", err)
		}
		if count > 0 {
			return models.User{}, newAppError(http.StatusConflict, "username already taken")
		}
	}

	updates := map[string]interface{}{
		"username": username,
		"is_admin": input.IsAdmin,
	}
	if err := s.users.UpdateByID(ctx, nil, userID, updates); err != nil {
		return models.User{}, wrapAppError(http.StatusInternalServerError, "failed to update user", err)
	}

	// Project paths embed the username, so a rename moves the whole user
	// directory. Storage keys inside it are opaque and stay as they are.
	if username != user.Username {
		oldDir := userDir(user.Username)
		if _, err := os.Stat(oldDir); err == nil {
			if err := os.Rename(oldDir, userDir(username)); err != nil {
				logger.Errorf("failed to move upload dir for renamed user %s: %v", user.Username, err)
			}
		}
	}

	return s.users.GetByID(ctx, nil, userID)
}

func (s *adminService) ResetPassword(ctx context.Context, userID uint, newPassword string) error {
	if len(newPassword) < 6 {
		return newAppError(http.StatusBadRequest, "password must be at least 6 characters")
	}
	if _, err := s.users.GetByID(ctx, nil, userID); errors.Is(err, gorm.ErrRecordNotFound) {
		return newAppError(http.StatusNotFound, "user not found")
	} else if err != nil {
		return wrapAppError(http.StatusInternalServerError, "failed to load user", err)
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return wrapAppError(http.StatusInternalServerError, "failed to hash password", err)
	}
	if err := s.users.UpdateByID(ctx, nil, userID, map[string]interface{}{"password_hash": hash}); err != nil {
		return wrapAppError(http.StatusInternalServerError, "failed to reset password", err)
	}
	return nil
}

func (s *adminService) DeleteUser(ctx context.Context, userID uint, actingAdminID uint) error {
	if userID == actingAdminID {
		return newAppError(http.StatusBadRequest, "cannot delete your own account")
	}

	user, err := s.users.GetByID(ctx, nil, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return newAppError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return wrapAppError(http.StatusInternalServerError, "failed to load user", err)
	}

	var tempDirs []string
	err = s.txManager.WithTransaction(ctx, func(tx *gorm.DB) error {
		projectIDs, err := s.projects.ListIDsByOwner(ctx, tx, userID)
		if err != nil {
			return err
		}
		for _, projectID := range projectIDs {
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
			if err := s.projects.DeleteByID(ctx, tx, projectID); err != nil {
				return err
			}
		}
		if err := s.collaborations.DeleteByCollaborator(ctx, tx, userID); err != nil {
			return err
		}
		if err := s.settings.DeleteByUser(ctx, tx, userID); err != nil {
			return err
		}
		return s.users.DeleteByID(ctx, tx, userID)
	})
	if err != nil {
		return wrapAppError(http.StatusInternalServerError, "failed to delete user", err)
	}

	for _, dir := range tempDirs {
		if err := os.RemoveAll(dir); err != nil {
			logger.Errorf("failed to remove staging dir %s: %v", dir, err)
		}
	}
	if err := os.RemoveAll(userDir(user.Username)); err != nil {
		logger.Errorf("failed to remove upload dir for deleted user %s: %v", user.Username, err)
	}
	logger.Infof("user %s deleted by admin %d", user.Username, actingAdminID)
	return nil
}

func (s *adminService) Stats(ctx context.Context) (SystemStats, error) {
	totalUsers, adminUsers, err := s.users.CountAll(ctx)
	if err != nil {
		return SystemStats{}, wrapAppError(http.StatusInternalServerError, "failed to count users", err)
	}
	totalProjects, activeProjects, err := s.projects.CountTotal(ctx)
	if err != nil {
		return SystemStats{}, wrapAppError(http.StatusInternalServerError, "failed to count projects", err)
	}
	activeShares, err := s.shares.CountAll(ctx)
	if err != nil {
		return SystemStats{}, wrapAppError(http.StatusInternalServerError, "failed to count shares", err)
	}
	return SystemStats{
		TotalUsers:     totalUsers,
		AdminUsers:     adminUsers,
		TotalProjects:  totalProjects,
		ActiveProjects: activeProjects,
		ActiveShares:   activeShares,
	}, nil
}
