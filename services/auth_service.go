package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"pcbtrack/logger"
	"pcbtrack/models"
	"pcbtrack/repositories"
	"pcbtrack/utils"

	"gorm.io/gorm"
)

type LoginResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type AuthService interface {
	Register(ctx context.Context, username, password string) (models.User, error)
	Login(ctx context.Context, username, password string) (LoginResult, error)
}

type authService struct {
	txManager repositories.TxManager
	users     repositories.UserRepository
	settings  repositories.SettingsRepository
}

func NewAuthService(txManager repositories.TxManager, users repositories.UserRepository, settings repositories.SettingsRepository) AuthService {
	return &authService{txManager: txManager, users: users, settings: settings}
}

func (s *authService) Register(ctx context.Context, username, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return models.User{}, newAppError(http.StatusBadRequest, "username and password are required")
	}
	if len(password) < 6 {
		return models.User{}, newAppError(http.StatusBadRequest, "password must be at least 6 characters")
	}

	count, err := s.users.CountByUsername(ctx, username, 0)
	if err != nil {
		return models.User{}, wrapAppError(http.StatusInternalServerError, "failed to check username", err)
	}
	if count > 0 {
		return models.User{}, newAppError(http.StatusConflict, "username already taken")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return models.User{}, wrapAppError(http.StatusInternalServerError, "failed to hash password", err)
	}

	user := models.User{Username: username, PasswordHash: hash}
	err = s.txManager.WithTransaction(ctx, func(tx *gorm.DB) error {
		if err := s.users.Create(ctx, tx, &user); err != nil {
			return err
		}
		return s.settings.Create(ctx, tx, &models.UserSetting{UserID: user.ID})
	})
	if err != nil {
		return models.User{}, wrapAppError(http.StatusInternalServerError, "failed to create user", err)
	}

	logger.Infof("user registered: %s", username)
	return user, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	user, err := s.users.GetByUsername(ctx, nil, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return LoginResult{}, newAppError(http.StatusUnauthorized, "invalid username or password")
	}
	if err != nil {
		return LoginResult{}, wrapAppError(http.StatusInternalServerError, "failed to load user", err)
	}
	if !utils.CheckPassword(password, user.PasswordHash) {
		return LoginResult{}, newAppError(http.StatusUnauthorized, "invalid username or password")
	}

	token, err := utils.GenerateToken(user.ID, user.IsAdmin)
	if err != nil {
		return LoginResult{}, wrapAppError(http.StatusInternalServerError, "failed to issue token", err)
	}
	return LoginResult{Token: token, User: user}, nil
}
