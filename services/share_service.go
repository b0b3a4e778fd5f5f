package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"pcbtrack/config"
	"pcbtrack/logger"
	"pcbtrack/models"
	"pcbtrack/repositories"
	"pcbtrack/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShareInput struct {
	Password       string `json:"password"`
	ExpireHours    *int   `json:"expire_hours"`
	MaxAccessCount *int   `json:"max_access_count"`
}

type ShareInfo struct {
	ID             string     `json:"id"`
	URL            string     `json:"url"`
	HasPassword    bool       `json:"has_password"`
	ExpireTime     *time.Time `json:"expire_time"`
	AccessCount    int        `json:"access_count"`
	MaxAccessCount *int       `json:"max_access_count"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ShareMeta is what an anonymous viewer sees before the password gate.
type ShareMeta struct {
	ID            string     `json:"id"`
	ProjectName   string     `json:"project_name"`
	OwnerUsername string     `json:"owner_username"`
	HasPassword   bool       `json:"has_password"`
	Verified      bool       `json:"verified"`
	ExpireTime    *time.Time `json:"expire_time"`
}

type ShareContent struct {
	ProjectName   string                      `json:"project_name"`
	OwnerUsername string                      `json:"owner_username"`
	Source        string                      `json:"source"`
	BoardType     string                      `json:"board_type"`
	Status        string                      `json:"status"`
	Remark        string                      `json:"remark"`
	Components    []repositories.BOMLine      `json:"components"`
	Requirements  []models.ProjectRequirement `json:"requirements"`
	HidePrices    bool                        `json:"hide_prices"`
	Tree          FileTree                    `json:"tree"`
}

type ShareService interface {
	// Create issues the single share link a project may have. Owners and
	// collaborators alike may create it; a second create while one exists
	// is a conflict no matter who asks.
	Create(ctx context.Context, projectID uint, userID uint, input ShareInput) (ShareInfo, error)
	GetForProject(ctx context.Context, projectID uint, userID uint) (ShareInfo, error)
	// Resolve is the viewer's probe: it reports whether the link is alive
	// and whether this viewer still needs a password. Expired links are
	// deleted on sight; exhausted links are refused but kept.
	Resolve(ctx context.Context, shareID string, viewerToken string) (ShareMeta, error)
	VerifyPassword(ctx context.Context, shareID string, viewerToken string, password string) error
	// RegisterView returns the shared content and counts one access.
	// Only content views consume quota; file downloads do not.
	RegisterView(ctx context.Context, shareID string, viewerToken string) (ShareContent, error)
	ResolveFile(ctx context.Context, shareID string, viewerToken string, relPath string) (string, error)
	WriteZip(ctx context.Context, shareID string, viewerToken string, w io.Writer) (string, error)
	// Cancel is open to anyone with access to the shared project.
	Cancel(ctx context.Context, shareID string, userID uint) error
}

type shareService struct {
	users       repositories.UserRepository
	projects    repositories.ProjectRepository
	shares      repositories.ShareRepository
	settings    repositories.SettingsRepository
	shareAccess repositories.ShareAccessRepository
	access      AccessService
}

func NewShareService(
	users repositories.UserRepository,
	projects repositories.ProjectRepository,
	shares repositories.ShareRepository,
	settings repositories.SettingsRepository,
	shareAccess repositories.ShareAccessRepository,
	access AccessService,
) ShareService {
	return &shareService{
		users:       users,
		projects:    projects,
		shares:      shares,
		settings:    settings,
		shareAccess: shareAccess,
		access:      access,
	}
}

func shareInfo(share models.Share) ShareInfo {
	return ShareInfo{
		ID:             share.ID,
		URL:            "/share/" + share.ID,
		HasPassword:    share.HasPassword(),
		ExpireTime:     share.ExpireTime,
		AccessCount:    share.AccessCount,
		MaxAccessCount: share.MaxAccessCount,
		CreatedAt:      share.CreatedAt,
	}
}

func (s *shareService) Create(ctx context.Context, projectID uint, userID uint, input ShareInput) (ShareInfo, error) {
	project, _, err := s.access.Resolve(ctx, projectID, userID)
	if err != nil {
		return ShareInfo{}, err
	}

	if _, err := s.shares.GetByProjectID(ctx, nil, projectID); err == nil {
		return ShareInfo{}, newAppError(http.StatusConflict, "project already has a share link")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return ShareInfo{}, wrapAppError(http.StatusInternalServerError, "failed to check existing share", err)
	}

	expireHours := config.AppConfig.Share.DefaultExpireHours
	if input.ExpireHours != nil {
		expireHours = *input.ExpireHours
	}
	var expireTime *time.Time
	if expireHours != -1 {
		if expireHours <= 0 {
			return ShareInfo{}, newAppError(http.StatusBadRequest, "expire_hours must be positive or -1")
		}
		t := utils.Now().Add(time.Duration(expireHours) * time.Hour)
		expireTime = &t
	}

	var maxAccess *int
	if input.MaxAccessCount != nil && *input.MaxAccessCount > 0 {
		maxAccess = input.MaxAccessCount
	}

	passwordHash := ""
	if input.Password != "" {
		passwordHash = utils.HashSharePassword(input.Password)
	}

	share := models.Share{
		ID:             uuid.NewString(),
		ProjectID:      projectID,
		OwnerID:        project.UserID,
		PasswordHash:   passwordHash,
		ExpireTime:     expireTime,
		MaxAccessCount: maxAccess,
		CreatedAt:      utils.Now(),
	}
	if err := s.shares.Create(ctx, nil, &share); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ShareInfo{}, newAppError(http.StatusConflict, "project already has a share link")
		}
		return ShareInfo{}, wrapAppError(http.StatusInternalServerError, "failed to create share link", err)
	}

	logger.Infof("share %s created for project %d", share.ID, projectID)
	return shareInfo(share), nil
}

func (s *shareService) GetForProject(ctx context.Context, projectID uint, userID uint) (ShareInfo, error) {
	if _, _, err := s.access.Resolve(ctx, projectID, userID); err != nil {
		return ShareInfo{}, err
	}
	share, err := s.shares.GetByProjectID(ctx, nil, projectID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ShareInfo{}, newAppError(http.StatusNotFound, "project has no share link")
	}
	if err != nil {
		return ShareInfo{}, wrapAppError(http.StatusInternalServerError, "failed to load share link", err)
	}
	// An expired link reads the same as no link, and dies on this read.
	if share.Expired(utils.Now()) {
		if _, err := s.shares.DeleteByID(ctx, nil, share.ID); err != nil {
			logger.Errorf("failed to delete expired share %s: %v", share.ID, err)
		}
		return ShareInfo{}, newAppError(http.StatusNotFound, "project has no share link")
	}
	return shareInfo(share), nil
}

// loadLiveShare fetches a share and applies the expiry rule: an expired link
// is deleted on first touch and reported as missing.
func (s *shareService) loadLiveShare(ctx context.Context, shareID string) (models.Share, error) {
	share, err := s.shares.GetByID(ctx, nil, shareID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Share{}, newAppError(http.StatusNotFound, "share link not found")
	}
	if err != nil {
		return models.Share{}, wrapAppError(http.StatusInternalServerError, "failed to load share link", err)
	}

	if share.Expired(utils.Now()) {
		if _, err := s.shares.DeleteByID(ctx, nil, shareID); err != nil {
			logger.Errorf("failed to delete expired share %s: %v", shareID, err)
		}
		return models.Share{}, newAppError(http.StatusNotFound, "share link has expired")
	}
	return share, nil
}

func (s *shareService) Resolve(ctx context.Context, shareID string, viewerToken string) (ShareMeta, error) {
	share, err := s.loadLiveShare(ctx, shareID)
	if err != nil {
		return ShareMeta{}, err
	}
	if share.QuotaExhausted() {
		return ShareMeta{}, newAppError(http.StatusForbidden, "share link access limit reached")
	}

	project, err := s.projects.GetByID(ctx, nil, share.ProjectID)
	if err != nil {
		return ShareMeta{}, wrapAppError(http.StatusInternalServerError, "failed to load shared project", err)
	}
	owner, err := s.users.GetByID(ctx, nil, share.OwnerID)
	if err != nil {
		return ShareMeta{}, wrapAppError(http.StatusInternalServerError, "failed to load share owner", err)
	}

	verified := !share.HasPassword()
	if !verified && viewerToken != "" {
		ok, err := s.shareAccess.IsVerified(ctx, viewerToken, shareID)
		if err != nil {
			return ShareMeta{}, wrapAppError(http.StatusInternalServerError, "failed to check verification", err)
		}
		verified = ok
	}

	return ShareMeta{
		ID:            share.ID,
		ProjectName:   project.Name,
		OwnerUsername: owner.Username,
		HasPassword:   share.HasPassword(),
		Verified:      verified,
		ExpireTime:    share.ExpireTime,
	}, nil
}

func (s *shareService) VerifyPassword(ctx context.Context, shareID string, viewerToken string, password string) error {
	share, err := s.loadLiveShare(ctx, shareID)
	if err != nil {
		return err
	}
	if share.QuotaExhausted() {
		return newAppError(http.StatusForbidden, "share link access limit reached")
	}
	if !share.HasPassword() {
		return nil
	}
	if utils.HashSharePassword(password) != share.PasswordHash {
		return newAppError(http.StatusForbidden, "incorrect password")
	}

	ttl := time.Duration(config.AppConfig.Share.VerifiedTTLHours) * time.Hour
	if err := s.shareAccess.MarkVerified(ctx, viewerToken, shareID, ttl); err != nil {
		return wrapAppError(http.StatusInternalServerError, "failed to record verification", err)
	}
	return nil
}

// gate enforces the full viewer pipeline: live link, password verified for
// this viewer, quota not exhausted.
func (s *shareService) gate(ctx context.Context, shareID string, viewerToken string) (models.Share, error) {
	share, err := s.loadLiveShare(ctx, shareID)
	if err != nil {
		return models.Share{}, err
	}
	if share.HasPassword() {
		if viewerToken == "" {
			return models.Share{}, newAppError(http.StatusUnauthorized, "password verification required")
		}
		ok, err := s.shareAccess.IsVerified(ctx, viewerToken, shareID)
		if err != nil {
			return models.Share{}, wrapAppError(http.StatusInternalServerError, "failed to check verification", err)
		}
		if !ok {
			return models.Share{}, newAppError(http.StatusUnauthorized, "password verification required")
		}
	}
	if share.QuotaExhausted() {
		return models.Share{}, newAppError(http.StatusForbidden, "share link access limit reached")
	}
	return share, nil
}

func (s *shareService) RegisterView(ctx context.Context, shareID string, viewerToken string) (ShareContent, error) {
	share, err := s.gate(ctx, shareID, viewerToken)
	if err != nil {
		return ShareContent{}, err
	}

	project, err := s.projects.GetByID(ctx, nil, share.ProjectID)
	if err != nil {
		return ShareContent{}, wrapAppError(http.StatusInternalServerError, "failed to load shared project", err)
	}
	owner, err := s.users.GetByID(ctx, nil, share.OwnerID)
	if err != nil {
		return ShareContent{}, wrapAppError(http.StatusInternalServerError, "failed to load share owner", err)
	}

	components, err := s.projects.ListComponents(ctx, share.ProjectID)
	if err != nil {
		return ShareContent{}, wrapAppError(http.StatusInternalServerError, "failed to load components", err)
	}
	requirements, err := s.projects.ListRequirements(ctx, share.ProjectID)
	if err != nil {
		return ShareContent{}, wrapAppError(http.StatusInternalServerError, "failed to load requirements", err)
	}

	// Anonymous viewers inherit the owner's price visibility choice.
	hidePrices := false
	if settings, err := s.settings.GetByUser(ctx, nil, share.OwnerID); err == nil {
		hidePrices = settings.HidePrices
	}
	if hidePrices {
		for i := range components {
			components[i].Price = 0
		}
	}

	tree, err := BuildFileTree(projectDir(owner.Username, project.StorageKey))
	if err != nil {
		return ShareContent{}, wrapAppError(http.StatusInternalServerError, "failed to read project files", err)
	}

	if err := s.shares.IncrementAccessCount(ctx, nil, shareID); err != nil {
		return ShareContent{}, wrapAppError(http.StatusInternalServerError, "failed to count access", err)
	}

	return ShareContent{
		ProjectName:   project.Name,
		OwnerUsername: owner.Username,
		Source:        project.Source,
		BoardType:     project.BoardType,
		Status:        project.Status,
		Remark:        project.Remark,
		Components:    components,
		Requirements:  requirements,
		HidePrices:    hidePrices,
		Tree:          tree,
	}, nil
}

func (s *shareService) sharedProjectDir(ctx context.Context, share models.Share) (string, error) {
	project, err := s.projects.GetByID(ctx, nil, share.ProjectID)
	if err != nil {
		return "", wrapAppError(http.StatusInternalServerError, "failed to load shared project", err)
	}
	owner, err := s.users.GetByID(ctx, nil, share.OwnerID)
	if err != nil {
		return "", wrapAppError(http.StatusInternalServerError, "failed to load share owner", err)
	}
	return projectDir(owner.Username, project.StorageKey), nil
}

func (s *shareService) ResolveFile(ctx context.Context, shareID string, viewerToken string, relPath string) (string, error) {
	share, err := s.gate(ctx, shareID, viewerToken)
	if err != nil {
		return "", err
	}
	dir, err := s.sharedProjectDir(ctx, share)
	if err != nil {
		return "", err
	}
	return resolveFileIn(dir, relPath)
}

func (s *shareService) WriteZip(ctx context.Context, shareID string, viewerToken string, w io.Writer) (string, error) {
	share, err := s.gate(ctx, shareID, viewerToken)
	if err != nil {
		return "", err
	}
	dir, err := s.sharedProjectDir(ctx, share)
	if err != nil {
		return "", err
	}
	project, err := s.projects.GetByID(ctx, nil, share.ProjectID)
	if err != nil {
		return "", wrapAppError(http.StatusInternalServerError, "failed to load shared project", err)
	}
	if err := writeDirZip(dir, w); err != nil {
		return "", wrapAppError(http.StatusInternalServerError, "failed to build archive", err)
	}
	return sanitizeStorageName(project.Name) + ".zip", nil
}

func (s *shareService) Cancel(ctx context.Context, shareID string, userID uint) error {
	share, err := s.shares.GetByID(ctx, nil, shareID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return newAppError(http.StatusNotFound, "share link not found")
	}
	if err != nil {
		return wrapAppError(http.StatusInternalServerError, "failed to load share link", err)
	}
	if _, _, err := s.access.Resolve(ctx, share.ProjectID, userID); err != nil {
		return err
	}

	rows, err := s.shares.DeleteByID(ctx, nil, shareID)
	if err != nil {
		return wrapAppError(http.StatusInternalServerError, "failed to cancel share link", err)
	}
	if rows == 0 {
		return newAppError(http.StatusNotFound, "share link not found")
	}
	return nil
}
