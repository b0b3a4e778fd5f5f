package services

import (
	"context"
	"errors"
	"net/http"

	"pcbtrack/models"
	"pcbtrack/repositories"
	"pcbtrack/utils"

	"gorm.io/gorm"
)

type Profile struct {
	User     models.User        `json:"user"`
	Settings models.UserSetting `json:"settings"`
}

type UserService interface {
	GetProfile(ctx context.Context, userID uint) (Profile, error)
	ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error
	GetSettings(ctx context.Context, userID uint) (models.UserSetting, error)
	UpdateSettings(ctx context.Context, userID uint, hidePrices bool) (models.UserSetting, error)
}

type userService struct {
	users    repositories.UserRepository
	settings repositories.SettingsRepository
}

func NewUserService(users repositories.UserRepository, settings repositories.SettingsRepository) UserService {
	return &userService{users: users, settings: settings}
}

func (s *userService) GetProfile(ctx context.Context, userID uint) (Profile, error) {
	user, err := s.users.GetByID(ctx, nil, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Profile{}, newAppError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return Profile{}, wrapAppError(http.StatusInternalServerError, "failed to load user", err)
	}

	settings, err := s.GetSettings(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	return Profile{User: user, Settings: settings}, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	if len(newPassword) < 6 {
		return newAppError(http.StatusBadRequest, "password must be at least 6 characters")
	}

	user, err := s.users.GetByID(ctx, nil, userID)
	if err != nil {
		return wrapAppError(http.StatusInternalServerError, "failed to load user", err)
	}
	if !utils.CheckPassword(oldPassword, user.PasswordHash) {
		return newAppError(http.StatusForbidden, "current password is incorrect")
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return wrapAppError(http.StatusInternalServerError, "failed to hash password", err)
	}
	if err := s.users.UpdateByID(ctx, nil, userID, map[string]interface{}{"password_hash": hash}); err != nil {
		return wrapAppError(http.StatusInternalServerError, "failed to update password", err)
	}
	return nil
}

// GetSettings creates the default row on first read so callers never see a
// missing settings record.
func (s *userService) GetSettings(ctx context.Context, userID uint) (models.UserSetting, error) {
	settings, err := s.settings.GetByUser(ctx, nil, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.UserSetting{UserID: userID}
		if err := s.settings.Create(ctx, nil, &settings); err != nil {
			return models.UserSetting{}, wrapAppError(http.StatusInternalServerError, "failed to create settings", err)
		}
		return settings, nil
	}
	if err != nil {
		return models.UserSetting{}, wrapAppError(http.StatusInternalServerError, "failed to load settings", err)
	}
	return settings, nil
}

func (s *userService) UpdateSettings(ctx context.Context, userID uint, hidePrices bool) (models.UserSetting, error) {
	if _, err := s.GetSettings(ctx, userID); err != nil {
		return models.UserSetting{}, err
	}
	if err := s.settings.UpdateByUser(ctx, nil, userID, map[string]interface{}{"hide_prices": hidePrices}); err != nil {
		return models.UserSetting{}, wrapAppError(http.StatusInternalServerError, "failed to update settings", err)
	}
	return s.settings.GetByUser(ctx, nil, userID)
}
