package services

import (
	"context"
	"net/http"
	"testing"

	"pcbtrack/models"

	"gorm.io/gorm"
)

type fakeCatalogRepo struct {
	statuses   map[uint]models.StatusOption
	sources    map[uint]models.SourceOption
	boardTypes map[uint]models.BoardTypeOption
	nextID     uint
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		statuses:   make(map[uint]models.StatusOption),
		sources:    make(map[uint]models.SourceOption),
		boardTypes: make(map[uint]models.BoardTypeOption),
		nextID:     1,
	}
}

func (f *fakeCatalogRepo) ListStatus(ctx context.Context) ([]models.StatusOption, error) {
	var out []models.StatusOption
	for _, o := range f.statuses {
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeCatalogRepo) GetStatusByID(ctx context.Context, tx *gorm.DB, id uint) (models.StatusOption, error) {
	o, ok := f.statuses[id]
	if !ok {
		return models.StatusOption{}, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (f *fakeCatalogRepo) CreateStatus(ctx context.Context, tx *gorm.DB, option *models.StatusOption) error {
	option.ID = f.nextID
	f.nextID++
	f.statuses[option.ID] = *option
	return nil
}

func (f *fakeCatalogRepo) UpdateStatusByID(ctx context.Context, tx *gorm.DB, id uint, updates map[string]interface{}) error {
	o, ok := f.statuses[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := updates["label"]; ok {
		o.Label = v.(string)
	}
	if v, ok := updates["color"]; ok {
		o.Color = v.(string)
	}
	if v, ok := updates["sort_order"]; ok {
		o.SortOrder = v.(int)
	}
	f.statuses[id] = o
	return nil
}

func (f *fakeCatalogRepo) DeleteStatusByID(ctx context.Context, tx *gorm.DB, id uint) error {
	delete(f.statuses, id)
	return nil
}

func (f *fakeCatalogRepo) HasStatusValue(ctx context.Context, value string) (bool, error) {
	for _, o := range f.statuses {
		if o.Value == value {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCatalogRepo) ListSource(ctx context.Context) ([]models.SourceOption, error) {
	var out []models.SourceOption
	for _, o := range f.sources {
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeCatalogRepo) GetSourceByID(ctx context.Context, tx *gorm.DB, id uint) (models.SourceOption, error) {
	o, ok := f.sources[id]
	if !ok {
		return models.SourceOption{}, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (f *fakeCatalogRepo) CreateSource(ctx context.Context, tx *gorm.DB, option *models.SourceOption) error {
	option.ID = f.nextID
	f.nextID++
	f.sources[option.ID] = *option
	return nil
}

func (f *fakeCatalogRepo) UpdateSourceByID(ctx context.Context, tx *gorm.DB, id uint, updates map[string]interface{}) error {
	o, ok := f.sources[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := updates["name"]; ok {
		o.Name = v.(string)
	}
	if v, ok := updates["sort_order"]; ok {
		o.SortOrder = v.(int)
	}
	f.sources[id] = o
	return nil
}

func (f *fakeCatalogRepo) DeleteSourceByID(ctx context.Context, tx *gorm.DB, id uint) error {
	delete(f.sources, id)
	return nil
}

func (f *fakeCatalogRepo) HasSourceName(ctx context.Context, name string) (bool, error) {
	for _, o := range f.sources {
		if o.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCatalogRepo) ListBoardType(ctx context.Context) ([]models.BoardTypeOption, error) {
	var out []models.BoardTypeOption
	for _, o := range f.boardTypes {
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeCatalogRepo) GetBoardTypeByID(ctx context.Context, tx *gorm.DB, id uint) (models.BoardTypeOption, error) {
	o, ok := f.boardTypes[id]
	if !ok {
		return models.BoardTypeOption{}, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (f *fakeCatalogRepo) CreateBoardType(ctx context.Context, tx *gorm.DB, option *models.BoardTypeOption) error {
	option.ID = f.nextID
	f.nextID++
	f.boardTypes[option.ID] = *option
	return nil
}

func (f *fakeCatalogRepo) UpdateBoardTypeByID(ctx context.Context, tx *gorm.DB, id uint, updates map[string]interface{}) error {
	o, ok := f.boardTypes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := updates["name"]; ok {
		o.Name = v.(string)
	}
	if v, ok := updates["sort_order"]; ok {
		o.SortOrder = v.(int)
	}
	f.boardTypes[id] = o
	return nil
}

func (f *fakeCatalogRepo) DeleteBoardTypeByID(ctx context.Context, tx *gorm.DB, id uint) error {
	delete(f.boardTypes, id)
	return nil
}

func (f *fakeCatalogRepo) HasBoardTypeName(ctx context.Context, name string) (bool, error) {
	for _, o := range f.boardTypes {
		if o.Name == name {
			return true, nil
		}
	}
	return false, nil
}

type fakeComponentRepo struct {
	components map[uint]models.Component
	usage      map[uint]int64
	nextID     uint
}

func newFakeComponentRepo() *fakeComponentRepo {
	return &fakeComponentRepo{
		components: make(map[uint]models.Component),
		usage:      make(map[uint]int64),
		nextID:     1,
	}
}

func (f *fakeComponentRepo) List(ctx context.Context) ([]models.Component, error) {
	var out []models.Component
	for _, c := range f.components {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeComponentRepo) GetByID(ctx context.Context, tx *gorm.DB, componentID uint) (models.Component, error) {
	c, ok := f.components[componentID]
	if !ok {
		return models.Component{}, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (f *fakeComponentRepo) Create(ctx context.Context, tx *gorm.DB, component *models.Component) error {
	component.ID = f.nextID
	f.nextID++
	f.components[component.ID] = *component
	return nil
}

func (f *fakeComponentRepo) UpdateByID(ctx context.Context, tx *gorm.DB, componentID uint, updates map[string]interface{}) error {
	c, ok := f.components[componentID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := updates["name"]; ok {
		c.Name = v.(string)
	}
	if v, ok := updates["model"]; ok {
		c.Model = v.(string)
	}
	if v, ok := updates["price"]; ok {
		c.Price = v.(float64)
	}
	f.components[componentID] = c
	return nil
}

func (f *fakeComponentRepo) DeleteByID(ctx context.Context, tx *gorm.DB, componentID uint) error {
	delete(f.components, componentID)
	return nil
}

func (f *fakeComponentRepo) CountUsage(ctx context.Context, componentID uint) (int64, error) {
	return f.usage[componentID], nil
}

func TestStatusOptionLifecycle(t *testing.T) {
	catalog := newFakeCatalogRepo()
	projects := newFakeProjectRepo()
	svc := NewCatalogService(catalog, newFakeComponentRepo(), projects)
	ctx := context.Background()

	option, err := svc.CreateStatus(ctx, StatusOptionInput{Value: "testing", Label: "Testing", Color: "#ff0"})
	if err != nil {
		t.Fatalf("CreateStatus failed: %v", err)
	}

	_, err = svc.CreateStatus(ctx, StatusOptionInput{Value: "testing", Label: "Again"})
	expectAppError(t, err, http.StatusConflict)

	// In-use statuses cannot be removed.
	projects.add(models.Project{UserID: 1, Name: "amp", Status: "testing", StorageKey: "a-amp"})
	err = svc.DeleteStatus(ctx, option.ID)
	expectAppError(t, err, http.StatusConflict)

	delete(projects.projects, 1)
	if err := svc.DeleteStatus(ctx, option.ID); err != nil {
		t.Fatalf("DeleteStatus failed: %v", err)
	}
}

func TestComponentDeleteGuardedByUsage(t *testing.T) {
	components := newFakeComponentRepo()
	svc := NewCatalogService(newFakeCatalogRepo(), components, newFakeProjectRepo())
	ctx := context.Background()

	component, err := svc.CreateComponent(ctx, ComponentInput{Name: "op-amp", Model: "NE5532", Price: 1.2})
	if err != nil {
		t.Fatalf("CreateComponent failed: %v", err)
	}

	components.usage[component.ID] = 2
	err = svc.DeleteComponent(ctx, component.ID)
	expectAppError(t, err, http.StatusConflict)

	components.usage[component.ID] = 0
	if err := svc.DeleteComponent(ctx, component.ID); err != nil {
		t.Fatalf("DeleteComponent failed: %v", err)
	}
}

func TestSourceAndBoardTypeGuards(t *testing.T) {
	catalog := newFakeCatalogRepo()
	projects := newFakeProjectRepo()
	svc := NewCatalogService(catalog, newFakeComponentRepo(), projects)
	ctx := context.Background()

	source, err := svc.CreateSource(ctx, NamedOptionInput{Name: "jlcpcb"})
	if err != nil {
		t.Fatalf("CreateSource failed: %v", err)
	}
	board, err := svc.CreateBoardType(ctx, NamedOptionInput{Name: "4-layer"})
	if err != nil {
		t.Fatalf("CreateBoardType failed: %v", err)
	}

	projects.add(models.Project{UserID: 1, Name: "amp", Source: "jlcpcb", BoardType: "4-layer", StorageKey: "a-amp"})

	err = svc.DeleteSource(ctx, source.ID)
	expectAppError(t, err, http.StatusConflict)
	err = svc.DeleteBoardType(ctx, board.ID)
	expectAppError(t, err, http.StatusConflict)
}
