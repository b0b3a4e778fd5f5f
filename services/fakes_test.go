package services

import (
	"context"
	"sort"
	"time"

	"pcbtrack/models"
	"pcbtrack/repositories"

	"gorm.io/gorm"
)

type fakeTxManager struct{}

func (f *fakeTxManager) WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type fakeUserRepo struct {
	users  map[uint]models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]models.User), nextID: 1}
}

func (f *fakeUserRepo) add(user models.User) models.User {
	if user.ID == 0 {
		user.ID = f.nextID
	}
	if user.ID >= f.nextID {
		f.nextID = user.ID + 1
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeUserRepo) CountByUsername(ctx context.Context, username string, excludeID uint) (int64, error) {
	var count int64
	for _, u := range f.users {
		if u.Username == username && u.ID != excludeID {
			count++
		}
	}
	return count, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	*user = f.add(*user)
	return nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, tx *gorm.DB, username string) (models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, tx *gorm.DB, userID uint) (models.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) List(ctx context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUserRepo) ListCollaboratorCandidates(ctx context.Context, excludeUserID uint) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		if u.ID != excludeUserID {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUserRepo) UpdateByID(ctx context.Context, tx *gorm.DB, userID uint, updates map[string]interface{}) error {
	u, ok := f.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := updates["username"]; ok {
		u.Username = v.(string)
	}
	if v, ok := updates["password_hash"]; ok {
		u.PasswordHash = v.(string)
	}
	if v, ok := updates["is_admin"]; ok {
		u.IsAdmin = v.(bool)
	}
	f.users[userID] = u
	return nil
}

func (f *fakeUserRepo) DeleteByID(ctx context.Context, tx *gorm.DB, userID uint) error {
	delete(f.users, userID)
	return nil
}

func (f *fakeUserRepo) CountAll(ctx context.Context) (int64, int64, error) {
	var total, admins int64
	for _, u := range f.users {
		total++
		if u.IsAdmin {
			admins++
		}
	}
	return total, admins, nil
}

type fakeProjectRepo struct {
	projects     map[uint]models.Project
	components   map[uint][]models.ProjectComponent
	requirements map[uint][]models.ProjectRequirement
	bom          map[uint][]repositories.BOMLine
	nextID       uint
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{
		projects:     make(map[uint]models.Project),
		components:   make(map[uint][]models.ProjectComponent),
		requirements: make(map[uint][]models.ProjectRequirement),
		bom:          make(map[uint][]repositories.BOMLine),
		nextID:       1,
	}
}

func (f *fakeProjectRepo) add(project models.Project) models.Project {
	if project.ID == 0 {
		project.ID = f.nextID
	}
	if project.ID >= f.nextID {
		f.nextID = project.ID + 1
	}
	f.projects[project.ID] = project
	return project
}

func (f *fakeProjectRepo) Create(ctx context.Context, tx *gorm.DB, project *models.Project) error {
	for _, p := range f.projects {
		if p.StorageKey == project.StorageKey {
			return gorm.ErrDuplicatedKey
		}
	}
	*project = f.add(*project)
	return nil
}

func (f *fakeProjectRepo) GetByID(ctx context.Context, tx *gorm.DB, projectID uint) (models.Project, error) {
	p, ok := f.projects[projectID]
	if !ok {
		return models.Project{}, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakeProjectRepo) GetByIDAndOwner(ctx context.Context, tx *gorm.DB, projectID uint, ownerID uint) (models.Project, error) {
	p, ok := f.projects[projectID]
	if !ok || p.UserID != ownerID {
		return models.Project{}, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakeProjectRepo) ListByOwner(ctx context.Context, ownerID uint) ([]models.Project, error) {
	var out []models.Project
	for _, p := range f.projects {
		if p.UserID == ownerID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeProjectRepo) ListIDsByOwner(ctx context.Context, tx *gorm.DB, ownerID uint) ([]uint, error) {
	var ids []uint
	for _, p := range f.projects {
		if p.UserID == ownerID {
			ids = append(ids, p.ID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (f *fakeProjectRepo) UpdateByIDAndOwner(ctx context.Context, tx *gorm.DB, projectID uint, ownerID uint, updates map[string]interface{}) error {
	p, ok := f.projects[projectID]
	if !ok || p.UserID != ownerID {
		return gorm.ErrRecordNotFound
	}
	if v, ok := updates["name"]; ok {
		p.Name = v.(string)
	}
	if v, ok := updates["status"]; ok {
		p.Status = v.(string)
	}
	if v, ok := updates["source"]; ok {
		p.Source = v.(string)
	}
	if v, ok := updates["board_type"]; ok {
		p.BoardType = v.(string)
	}
	if v, ok := updates["remark"]; ok {
		p.Remark = v.(string)
	}
	if v, ok := updates["price"]; ok {
		p.Price = v.(float64)
	}
	f.projects[projectID] = p
	return nil
}

func (f *fakeProjectRepo) DeleteByID(ctx context.Context, tx *gorm.DB, projectID uint) error {
	delete(f.projects, projectID)
	return nil
}

func (f *fakeProjectRepo) CountByOwner(ctx context.Context, ownerID uint, statusNot string) (int64, error) {
	var count int64
	for _, p := range f.projects {
		if p.UserID == ownerID && (statusNot == "" || p.Status != statusNot) {
			count++
		}
	}
	return count, nil
}

func (f *fakeProjectRepo) SumPriceByOwner(ctx context.Context, ownerID uint, statusNot string) (float64, error) {
	var total float64
	for _, p := range f.projects {
		if p.UserID == ownerID && (statusNot == "" || p.Status != statusNot) {
			total += p.Price
		}
	}
	return total, nil
}

func (f *fakeProjectRepo) SumComponentCostByOwner(ctx context.Context, ownerID uint) (float64, error) {
	return 0, nil
}

func (f *fakeProjectRepo) CountTotal(ctx context.Context) (int64, int64, error) {
	var total, active int64
	for _, p := range f.projects {
		total++
		if p.Status != "completed" {
			active++
		}
	}
	return total, active, nil
}

func (f *fakeProjectRepo) CountByStatusValue(ctx context.Context, status string) (int64, error) {
	var count int64
	for _, p := range f.projects {
		if p.Status == status {
			count++
		}
	}
	return count, nil
}

func (f *fakeProjectRepo) CountBySourceValue(ctx context.Context, source string) (int64, error) {
	var count int64
	for _, p := range f.projects {
		if p.Source == source {
			count++
		}
	}
	return count, nil
}

func (f *fakeProjectRepo) CountByBoardTypeValue(ctx context.Context, boardType string) (int64, error) {
	var count int64
	for _, p := range f.projects {
		if p.BoardType == boardType {
			count++
		}
	}
	return count, nil
}

func (f *fakeProjectRepo) ReplaceComponents(ctx context.Context, tx *gorm.DB, projectID uint, lines []models.ProjectComponent) error {
	f.components[projectID] = lines
	return nil
}

func (f *fakeProjectRepo) ReplaceRequirements(ctx context.Context, tx *gorm.DB, projectID uint, lines []models.ProjectRequirement) error {
	f.requirements[projectID] = lines
	return nil
}

func (f *fakeProjectRepo) ListComponents(ctx context.Context, projectID uint) ([]repositories.BOMLine, error) {
	return f.bom[projectID], nil
}

func (f *fakeProjectRepo) ListRequirements(ctx context.Context, projectID uint) ([]models.ProjectRequirement, error) {
	return f.requirements[projectID], nil
}

func (f *fakeProjectRepo) DeleteRelated(ctx context.Context, tx *gorm.DB, projectID uint) error {
	delete(f.components, projectID)
	delete(f.requirements, projectID)
	return nil
}

type fakeCollabRepo struct {
	rows   map[uint]models.Collaboration
	nextID uint
}

func newFakeCollabRepo() *fakeCollabRepo {
	return &fakeCollabRepo{rows: make(map[uint]models.Collaboration), nextID: 1}
}

func (f *fakeCollabRepo) Create(ctx context.Context, tx *gorm.DB, collab *models.Collaboration) error {
	for _, c := range f.rows {
		if c.ProjectID == collab.ProjectID && c.CollaboratorID == collab.CollaboratorID {
			return gorm.ErrDuplicatedKey
		}
	}
	collab.ID = f.nextID
	f.nextID++
	f.rows[collab.ID] = *collab
	return nil
}

func (f *fakeCollabRepo) GetByID(ctx context.Context, tx *gorm.DB, collaborationID uint) (models.Collaboration, error) {
	c, ok := f.rows[collaborationID]
	if !ok {
		return models.Collaboration{}, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (f *fakeCollabRepo) GetByProjectAndCollaborator(ctx context.Context, tx *gorm.DB, projectID uint, collaboratorID uint) (models.Collaboration, error) {
	for _, c := range f.rows {
		if c.ProjectID == projectID && c.CollaboratorID == collaboratorID {
			return c, nil
		}
	}
	return models.Collaboration{}, gorm.ErrRecordNotFound
}

func (f *fakeCollabRepo) ListByProject(ctx context.Context, projectID uint) ([]repositories.CollaborationEntry, error) {
	var out []repositories.CollaborationEntry
	for _, c := range f.rows {
		if c.ProjectID == projectID {
			out = append(out, repositories.CollaborationEntry{
				ID:             c.ID,
				CollaboratorID: c.CollaboratorID,
				Permission:     c.Permission,
				CreatedAt:      c.CreatedAt,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeCollabRepo) ListByCollaborator(ctx context.Context, collaboratorID uint) ([]models.Collaboration, error) {
	var out []models.Collaboration
	for _, c := range f.rows {
		if c.CollaboratorID == collaboratorID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeCollabRepo) CountByProjectAndOwner(ctx context.Context, projectID uint, ownerID uint) (int64, error) {
	var count int64
	for _, c := range f.rows {
		if c.ProjectID == projectID && c.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

func (f *fakeCollabRepo) UpdatePermission(ctx context.Context, tx *gorm.DB, collaborationID uint, permission string) error {
	c, ok := f.rows[collaborationID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Permission = permission
	f.rows[collaborationID] = c
	return nil
}

func (f *fakeCollabRepo) DeleteByProjectAndCollaborator(ctx context.Context, tx *gorm.DB, projectID uint, collaboratorID uint) (int64, error) {
	for id, c := range f.rows {
		if c.ProjectID == projectID && c.CollaboratorID == collaboratorID {
			delete(f.rows, id)
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeCollabRepo) DeleteByProject(ctx context.Context, tx *gorm.DB, projectID uint) error {
	for id, c := range f.rows {
		if c.ProjectID == projectID {
			delete(f.rows, id)
		}
	}
	return nil
}

func (f *fakeCollabRepo) DeleteByCollaborator(ctx context.Context, tx *gorm.DB, collaboratorID uint) error {
	for id, c := range f.rows {
		if c.CollaboratorID == collaboratorID {
			delete(f.rows, id)
		}
	}
	return nil
}

type fakeShareRepo struct {
	shares map[string]models.Share
}

func newFakeShareRepo() *fakeShareRepo {
	return &fakeShareRepo{shares: make(map[string]models.Share)}
}

func (f *fakeShareRepo) Create(ctx context.Context, tx *gorm.DB, share *models.Share) error {
	for _, s := range f.shares {
		if s.ProjectID == share.ProjectID {
			return gorm.ErrDuplicatedKey
		}
	}
	f.shares[share.ID] = *share
	return nil
}

func (f *fakeShareRepo) GetByID(ctx context.Context, tx *gorm.DB, shareID string) (models.Share, error) {
	s, ok := f.shares[shareID]
	if !ok {
		return models.Share{}, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (f *fakeShareRepo) GetByProjectID(ctx context.Context, tx *gorm.DB, projectID uint) (models.Share, error) {
	for _, s := range f.shares {
		if s.ProjectID == projectID {
			return s, nil
		}
	}
	return models.Share{}, gorm.ErrRecordNotFound
}

func (f *fakeShareRepo) DeleteByID(ctx context.Context, tx *gorm.DB, shareID string) (int64, error) {
	if _, ok := f.shares[shareID]; !ok {
		return 0, nil
	}
	delete(f.shares, shareID)
	return 1, nil
}

func (f *fakeShareRepo) DeleteByProject(ctx context.Context, tx *gorm.DB, projectID uint) error {
	for id, s := range f.shares {
		if s.ProjectID == projectID {
			delete(f.shares, id)
		}
	}
	return nil
}

func (f *fakeShareRepo) IncrementAccessCount(ctx context.Context, tx *gorm.DB, shareID string) error {
	s, ok := f.shares[shareID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.AccessCount++
	f.shares[shareID] = s
	return nil
}

func (f *fakeShareRepo) CountAll(ctx context.Context) (int64, error) {
	return int64(len(f.shares)), nil
}

type fakeSessionRepo struct {
	sessions map[string]models.UploadSession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]models.UploadSession)}
}

func (f *fakeSessionRepo) Create(ctx context.Context, tx *gorm.DB, session *models.UploadSession) error {
	f.sessions[session.ID] = *session
	return nil
}

func (f *fakeSessionRepo) GetByID(ctx context.Context, tx *gorm.DB, sessionID string) (models.UploadSession, error) {
	s, ok := f.sessions[sessionID]
	if !ok {
		return models.UploadSession{}, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (f *fakeSessionRepo) UpdateProgress(ctx context.Context, tx *gorm.DB, sessionID string, uploadedFiles int, fileList string) error {
	s, ok := f.sessions[sessionID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.UploadedFiles = uploadedFiles
	s.FileList = fileList
	f.sessions[sessionID] = s
	return nil
}

func (f *fakeSessionRepo) DeleteByID(ctx context.Context, tx *gorm.DB, sessionID string) error {
	delete(f.sessions, sessionID)
	return nil
}

func (f *fakeSessionRepo) ListByProject(ctx context.Context, tx *gorm.DB, projectID uint) ([]models.UploadSession, error) {
	var out []models.UploadSession
	for _, s := range f.sessions {
		if s.ProjectID == projectID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) DeleteByProject(ctx context.Context, tx *gorm.DB, projectID uint) error {
	for id, s := range f.sessions {
		if s.ProjectID == projectID {
			delete(f.sessions, id)
		}
	}
	return nil
}

func (f *fakeSessionRepo) ListCreatedBefore(ctx context.Context, tx *gorm.DB, cutoff time.Time) ([]models.UploadSession, error) {
	var out []models.UploadSession
	for _, s := range f.sessions {
		if s.CreatedAt.Before(cutoff) {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeSettingsRepo struct {
	rows map[uint]models.UserSetting
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{rows: make(map[uint]models.UserSetting)}
}

func (f *fakeSettingsRepo) GetByUser(ctx context.Context, tx *gorm.DB, userID uint) (models.UserSetting, error) {
	s, ok := f.rows[userID]
	if !ok {
		return models.UserSetting{}, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (f *fakeSettingsRepo) Create(ctx context.Context, tx *gorm.DB, setting *models.UserSetting) error {
	f.rows[setting.UserID] = *setting
	return nil
}

func (f *fakeSettingsRepo) UpdateByUser(ctx context.Context, tx *gorm.DB, userID uint, updates map[string]interface{}) error {
	s, ok := f.rows[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := updates["hide_prices"]; ok {
		s.HidePrices = v.(bool)
	}
	f.rows[userID] = s
	return nil
}

func (f *fakeSettingsRepo) DeleteByUser(ctx context.Context, tx *gorm.DB, userID uint) error {
	delete(f.rows, userID)
	return nil
}

type fakeShareAccessRepo struct {
	verified map[string]map[string]bool
}

func newFakeShareAccessRepo() *fakeShareAccessRepo {
	return &fakeShareAccessRepo{verified: make(map[string]map[string]bool)}
}

func (f *fakeShareAccessRepo) MarkVerified(ctx context.Context, viewerToken string, shareID string, ttl time.Duration) error {
	if f.verified[viewerToken] == nil {
		f.verified[viewerToken] = make(map[string]bool)
	}
	f.verified[viewerToken][shareID] = true
	return nil
}

func (f *fakeShareAccessRepo) IsVerified(ctx context.Context, viewerToken string, shareID string) (bool, error) {
	return f.verified[viewerToken][shareID], nil
}

func (f *fakeShareAccessRepo) Clear(ctx context.Context, viewerToken string) error {
	delete(f.verified, viewerToken)
	return nil
}
