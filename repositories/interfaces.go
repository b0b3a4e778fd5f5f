package repositories

import (
	"context"
	"time"

	"pcbtrack/models"

	"gorm.io/gorm"
)

type TxManager interface {
	WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type UserRepository interface {
	CountByUsername(ctx context.Context, username string, excludeID uint) (int64, error)
	Create(ctx context.Context, tx *gorm.DB, user *models.User) error
	GetByUsername(ctx context.Context, tx *gorm.DB, username string) (models.User, error)
	GetByID(ctx context.Context, tx *gorm.DB, userID uint) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	ListCollaboratorCandidates(ctx context.Context, excludeUserID uint) ([]models.User, error)
	UpdateByID(ctx context.Context, tx *gorm.DB, userID uint, updates map[string]interface{}) error
	DeleteByID(ctx context.Context, tx *gorm.DB, userID uint) error
	CountAll(ctx context.Context) (total int64, admins int64, err error)
}

type BOMLine struct {
	ComponentID uint    `json:"id"`
	Name        string  `json:"name"`
	Model       string  `json:"model"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

type ProjectRepository interface {
	Create(ctx context.Context, tx *gorm.DB, project *models.Project) error
	GetByID(ctx context.Context, tx *gorm.DB, projectID uint) (models.Project, error)
	GetByIDAndOwner(ctx context.Context, tx *gorm.DB, projectID uint, ownerID uint) (models.Project, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]models.Project, error)
	ListIDsByOwner(ctx context.Context, tx *gorm.DB, ownerID uint) ([]uint, error)
	UpdateByIDAndOwner(ctx context.Context, tx *gorm.DB, projectID uint, ownerID uint, updates map[string]interface{}) error
	DeleteByID(ctx context.Context, tx *gorm.DB, projectID uint) error
	CountByOwner(ctx context.Context, ownerID uint, statusNot string) (int64, error)
	SumPriceByOwner(ctx context.Context, ownerID uint, statusNot string) (float64, error)
	SumComponentCostByOwner(ctx context.Context, ownerID uint) (float64, error)
	CountTotal(ctx context.Context) (total int64, active int64, err error)
	CountByStatusValue(ctx context.Context, status string) (int64, error)
	CountBySourceValue(ctx context.Context, source string) (int64, error)
	CountByBoardTypeValue(ctx context.Context, boardType string) (int64, error)
	ReplaceComponents(ctx context.Context, tx *gorm.DB, projectID uint, lines []models.ProjectComponent) error
	ReplaceRequirements(ctx context.Context, tx *gorm.DB, projectID uint, lines []models.ProjectRequirement) error
	ListComponents(ctx context.Context, projectID uint) ([]BOMLine, error)
	ListRequirements(ctx context.Context, projectID uint) ([]models.ProjectRequirement, error)
	DeleteRelated(ctx context.Context, tx *gorm.DB, projectID uint) error
}

type CollaborationEntry struct {
	ID             uint      `json:"id"`
	CollaboratorID uint      `json:"collaborator_id"`
	Username       string    `json:"username"`
	Permission     string    `json:"permission"`
	CreatedAt      time.Time `json:"created_at"`
}

type CollaborationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, collab *models.Collaboration) error
	GetByID(ctx context.Context, tx *gorm.DB, collaborationID uint) (models.Collaboration, error)
	GetByProjectAndCollaborator(ctx context.Context, tx *gorm.DB, projectID uint, collaboratorID uint) (models.Collaboration, error)
	ListByProject(ctx context.Context, projectID uint) ([]CollaborationEntry, error)
	ListByCollaborator(ctx context.Context, collaboratorID uint) ([]models.Collaboration, error)
	CountByProjectAndOwner(ctx context.Context, projectID uint, ownerID uint) (int64, error)
	UpdatePermission(ctx context.Context, tx *gorm.DB, collaborationID uint, permission string) error
	DeleteByProjectAndCollaborator(ctx context.Context, tx *gorm.DB, projectID uint, collaboratorID uint) (int64, error)
	DeleteByProject(ctx context.Context, tx *gorm.DB, projectID uint) error
	DeleteByCollaborator(ctx context.Context, tx *gorm.DB, collaboratorID uint) error
}

type ShareRepository interface {
	Create(ctx context.Context, tx *gorm.DB, share *models.Share) error
	GetByID(ctx context.Context, tx *gorm.DB, shareID string) (models.Share, error)
	GetByProjectID(ctx context.Context, tx *gorm.DB, projectID uint) (models.Share, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, shareID string) (int64, error)
	DeleteByProject(ctx context.Context, tx *gorm.DB, projectID uint) error
	IncrementAccessCount(ctx context.Context, tx *gorm.DB, shareID string) error
	CountAll(ctx context.Context) (int64, error)
}

type UploadSessionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, session *models.UploadSession) error
	GetByID(ctx context.Context, tx *gorm.DB, sessionID string) (models.UploadSession, error)
	UpdateProgress(ctx context.Context, tx *gorm.DB, sessionID string, uploadedFiles int, fileList string) error
	DeleteByID(ctx context.Context, tx *gorm.DB, sessionID string) error
	ListByProject(ctx context.Context, tx *gorm.DB, projectID uint) ([]models.UploadSession, error)
	DeleteByProject(ctx context.Context, tx *gorm.DB, projectID uint) error
	ListCreatedBefore(ctx context.Context, tx *gorm.DB, cutoff time.Time) ([]models.UploadSession, error)
}

type ComponentRepository interface {
	List(ctx context.Context) ([]models.Component, error)
	GetByID(ctx context.Context, tx *gorm.DB, componentID uint) (models.Component, error)
	Create(ctx context.Context, tx *gorm.DB, component *models.Component) error
	UpdateByID(ctx context.Context, tx *gorm.DB, componentID uint, updates map[string]interface{}) error
	DeleteByID(ctx context.Context, tx *gorm.DB, componentID uint) error
	CountUsage(ctx context.Context, componentID uint) (int64, error)
}

type CatalogRepository interface {
	ListStatus(ctx context.Context) ([]models.StatusOption, error)
	GetStatusByID(ctx context.Context, tx *gorm.DB, id uint) (models.StatusOption, error)
	CreateStatus(ctx context.Context, tx *gorm.DB, option *models.StatusOption) error
	UpdateStatusByID(ctx context.Context, tx *gorm.DB, id uint, updates map[string]interface{}) error
	DeleteStatusByID(ctx context.Context, tx *gorm.DB, id uint) error
	HasStatusValue(ctx context.Context, value string) (bool, error)

	ListSource(ctx context.Context) ([]models.SourceOption, error)
	GetSourceByID(ctx context.Context, tx *gorm.DB, id uint) (models.SourceOption, error)
	CreateSource(ctx context.Context, tx *gorm.DB, option *models.SourceOption) error
	UpdateSourceByID(ctx context.Context, tx *gorm.DB, id uint, updates map[string]interface{}) error
	DeleteSourceByID(ctx context.Context, tx *gorm.DB, id uint) error
	HasSourceName(ctx context.Context, name string) (bool, error)

	ListBoardType(ctx context.Context) ([]models.BoardTypeOption, error)
	GetBoardTypeByID(ctx context.Context, tx *gorm.DB, id uint) (models.BoardTypeOption, error)
	CreateBoardType(ctx context.Context, tx *gorm.DB, option *models.BoardTypeOption) error
	UpdateBoardTypeByID(ctx context.Context, tx *gorm.DB, id uint, updates map[string]interface{}) error
	DeleteBoardTypeByID(ctx context.Context, tx *gorm.DB, id uint) error
	HasBoardTypeName(ctx context.Context, name string) (bool, error)
}

type SettingsRepository interface {
	GetByUser(ctx context.Context, tx *gorm.DB, userID uint) (models.UserSetting, error)
	Create(ctx context.Context, tx *gorm.DB, setting *models.UserSetting) error
	UpdateByUser(ctx context.Context, tx *gorm.DB, userID uint, updates map[string]interface{}) error
	DeleteByUser(ctx context.Context, tx *gorm.DB, userID uint) error
}

// ShareAccessRepository records which shares an anonymous viewer session has
// passed the password gate for. Membership is per viewer token, so two
// simultaneous viewers of the same share verify independently.
type ShareAccessRepository interface {
	MarkVerified(ctx context.Context, viewerToken string, shareID string, ttl time.Duration) error
	IsVerified(ctx context.Context, viewerToken string, shareID string) (bool, error)
	Clear(ctx context.Context, viewerToken string) error
}

type Container struct {
	TxManager      TxManager
	Users          UserRepository
	Projects       ProjectRepository
	Collaborations CollaborationRepository
	Shares         ShareRepository
	UploadSessions UploadSessionRepository
	Components     ComponentRepository
	Catalog        CatalogRepository
	Settings       SettingsRepository
	ShareAccess    ShareAccessRepository
}
