package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"pcbtrack/models"
	"pcbtrack/repositories"

	"gorm.io/gorm"
)

type CatalogOptions struct {
	Statuses   []models.StatusOption    `json:"statuses"`
	Sources    []models.SourceOption    `json:"sources"`
	BoardTypes []models.BoardTypeOption `json:"board_types"`
}

type StatusOptionInput struct {
	Value     string `json:"value" binding:"required"`
	Label     string `json:"label" binding:"required"`
	Color     string `json:"color"`
	SortOrder int    `json:"sort_order"`
}

type NamedOptionInput struct {
	Name      string `json:"name" binding:"required"`
	SortOrder int    `json:"sort_order"`
}

type ComponentInput struct {
	Name  string  `json:"name" binding:"required"`
	Model string  `json:"model"`
	Price float64 `json:"price"`
}

// CatalogService manages the dropdown vocabularies and the shared component
// library. An entry still referenced by a project cannot be deleted.
type CatalogService interface {
	Options(ctx context.Context) (CatalogOptions, error)

	CreateStatus(ctx context.Context, input StatusOptionInput) (models.StatusOption, error)
	UpdateStatus(ctx context.Context, id uint, input StatusOptionInput) error
	DeleteStatus(ctx context.Context, id uint) error

	CreateSource(ctx context.Context, input NamedOptionInput) (models.SourceOption, error)
	UpdateSource(ctx context.Context, id uint, input NamedOptionInput) error
	DeleteSource(ctx context.Context, id uint) error

	CreateBoardType(ctx context.Context, input NamedOptionInput) (models.BoardTypeOption, error)
	UpdateBoardType(ctx context.Context, id uint, input NamedOptionInput) error
	DeleteBoardType(ctx context.Context, id uint) error

	ListComponents(ctx context.Context) ([]models.Component, error)
	CreateComponent(ctx context.Context, input ComponentInput) (models.Component, error)
	UpdateComponent(ctx context.Context, id uint, input ComponentInput) error
	DeleteComponent(ctx context.Context, id uint) error
}

type catalogService struct {
	catalog    repositories.CatalogRepository
	components repositories.ComponentRepository
	projects   repositories.ProjectRepository
}

func NewCatalogService(catalog repositories.CatalogRepository, components repositories.ComponentRepository, projects repositories.ProjectRepository) CatalogService {
	return &catalogService{catalog: catalog, components: components, projects: projects}
}

func (s *catalogService) Options(ctx context.Context) (CatalogOptions, error) {
	statuses, err := s.catalog.ListStatus(ctx)
	if err != nil {
		return CatalogOptions{}, wrapAppError(http.StatusInternalServerError, "failed to list statuses", err)
	}
	sources, err := s.catalog.ListSource(ctx)
	if err != nil {
		return CatalogOptions{}, wrapAppError(http.StatusInternalServerError, "failed to list sources", err)
	}
	boardTypes, err := s.catalog.ListBoardType(ctx)
	if err != nil {
		return CatalogOptions{}, wrapAppError(http.StatusInternalServerError, "failed to list board types", err)
	}
	return CatalogOptions{Statuses: statuses, Sources: sources, BoardTypes: boardTypes}, nil
}

func (s *catalogService) CreateStatus(ctx context.Context, input StatusOptionInput) (models.StatusOption, error) {
	value := strings.TrimSpace(input.Value)
	if value == "" {
		return models.StatusOption{}, newAppError(http.StatusBadRequest, "status value is required")
	}
	exists, err := s.catalog.HasStatusValue(ctx, value)
	if err != nil {
		return models.StatusOption{}, wrapAppError(http.StatusInternalServerError, "failed to check status value", err)
	}
	if exists {
		return models.StatusOption{}, newAppError(http.StatusConflict, "status value already exists")
	}

	option := models.StatusOption{
		Value:     value,
		Label:     input.Label,
		Color:     input.Color,
		SortOrder: input.SortOrder,
	}
	if err := s.catalog.CreateStatus(ctx, nil, &option); err != nil {
		return models.StatusOption{}, wrapAppError(http.StatusInternalServerError, "failed to create status", err)
	}
	return option, nil
}

func (s *catalogService) UpdateStatus(ctx context.Context, id uint, input StatusOptionInput) error {
	if _, err := s.catalog.GetStatusByID(ctx, nil, id); errors.Is(err, gorm.ErrRecordNotFound) {
		return newAppError(http.StatusNotFound, "status not found")
	} else if err != nil {
		return wrapAppError(http.StatusInternalServerError, "failed to load status", err)
	}
	// The value is the key projects reference; only presentation fields move.
	updates := map[string]interface{}{
		"label":      input.Label,
		"color":      input.Color,
		"sort_order": input.SortOrder,
	}
	if err := s.catalog.UpdateStatusByID(ctx, nil, id, updates); err != nil {
		return wrapAppError(http.StatusInternalServerError, "failed to update status", err)
	}
	return nil
}

func (s *catalogService) DeleteStatus(ctx context.Context, id uint) error {
	option, err := s.catalog.GetStatusByID(ctx, nil, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return newAppError(http.StatusNotFound, "status not found")
	}
	if err != nil {
		return wrapAppError(http.StatusInternalServerError, "failed to load status", err)
	}

	inUse, err := s.projects.CountByStatusValue(ctx, option.Value)
	if err != nil {
		return wrapAppError(http.StatusInternalServerError, "failed to check status usage", err)
	}
	if inUse > 0 {
		return newAppErrorWithData(http.StatusConflict, "status is used by existing projects",
			map[string]interface{}{"projects": inUse})
	}
	if err := s.catalog.DeleteStatusByID(ctx, nil, id); err != nil {
		return wrapAppError(http.StatusInternalServerError, "failed to delete status", err)
	}
	return nil
}

func (s *catalogService) CreateSource(ctx context.Context, input NamedOptionInput) (models.SourceOption, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return models.SourceOption{}, newAppError(http.StatusBadRequest, "source name is required")
	}
	exists, err := s.catalog.HasSourceName(ctx, name)
	if err != nil {
		return models.SourceOption{}, wrapAppError(http.StatusInternalServerError, "failed to check source name", err)
	}
	if exists {
		return models.SourceOption{}, newAppError(http.StatusConflict, "source already exists")
	}

	option := models.SourceOption{Name: name, SortOrder: input.SortOrder}
	if err := s.catalog.CreateSource(ctx, nil, &option); err != nil {
		return models.SourceOption{}, wrapAppError(http.StatusInternalServerError, "failed to create source", err)
	}
	return option, nil
}

func (s *catalogService) UpdateSource(ctx context.Context, id uint, input NamedOptionInput) error {
	if _, err := s.catalog.GetSourceByID(ctx, nil, id); errors.Is(err, gorm.ErrRecordNotFound) {
		return newAppError(http.StatusNotFound, "source not found")
	} else if err != nil {
		return wrapAppError(http.StatusInternalServerError, "failed to load source", err)
	}
	updates := map[string]interface{}{
		"name":       strings.TrimSpace(input.Name),
		"sort_order": input.SortOrder,
	}
	if err := s.catalog.UpdateSourceByID(ctx, nil, id, updates); err != nil {
		return wrapAppError(http.StatusInternalServerError, "failed to update source", err)
	}
	return nil
}

func (s *catalogService) DeleteSource(ctx context.Context, id uint) error {
	option, err := s.catalog.GetSourceByID(ctx, nil, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return newAppError(http.StatusNotFound, "source not found")
	}
	if err != nil {
		return wrapAppError(http.StatusInternalServerError, "failed to load source", err)
	}

	inUse, err := s.projects.CountBySourceValue(ctx, option.Name)
	if err != nil {
		return wrapAppError(http.StatusInternalServerError, "failed to check source usage", err)
	}
	if inUse > 0 {
		return newAppErrorWithData(http.StatusConflict, "source is used by existing projects",
			map[string]interface{}{"projects": inUse})
	}
	if err := s.catalog.DeleteSourceByID(ctx, nil, id); err != nil {
		return wrapAppError(http.StatusInternalServerError, "failed to delete source", err)
	}
	return nil
}

func (s *catalogService) CreateBoardType(ctx context.Context, input NamedOptionInput) (models.BoardTypeOption, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return models.BoardTypeOption{}, newAppError(http.StatusBadRequest, "board type name is required")
	}
	exists, err := s.catalog.HasBoardTypeName(ctx, name)
	if err != nil {
		return models.BoardTypeOption{}, wrapAppError(http.StatusInternalServerError, "failed to check board type name", err)
	}
	if exists {
		return models.BoardTypeOption{}, newAppError(http.StatusConflict, "board type already exists")
	}

	option := models.BoardTypeOption{Name: name, SortOrder: input.SortOrder}
	if err := s.catalog.CreateBoardType(ctx, nil, &option); err != nil {
		return models.BoardTypeOption{}, wrapAppError(http.StatusInternalServerError, "failed to create board type", err)
	}
	return option, nil
}

func (s *catalogService) UpdateBoardType(ctx context.Context, id uint, input NamedOptionInput) error {
	if _, err := s.catalog.GetBoardTypeByID(ctx, nil, id); errors.Is(err, gorm.ErrRecordNotFound) {
		return newAppError(http.StatusNotFound, "board type not found")
	} else if err != nil {
		return wrapAppError(http.StatusInternalServerError, "failed to load board type", err)
	}
	updates := map[string]interface{}{
		"name":       strings.TrimSpace(input.Name),
		"sort_order": input.SortOrder,
	}
	if err := s.catalog.UpdateBoardTypeByID(ctx, nil, id, updates); err != nil {
		return wrapAppError(http.StatusInternalServerError, "failed to update board type", err)
	}
	return nil
}

func (s *catalogService) DeleteBoardType(ctx context.Context, id uint) error {
	option, err := s.catalog.GetBoardTypeByID(ctx, nil, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return newAppError(http.StatusNotFound, "board type not found")
	}
	if err != nil {
		return wrapAppError(http.StatusInternalServerError, "failed to load board type", err)
	}

	inUse, err := s.projects.CountByBoardTypeValue(ctx, option.Name)
	if err != nil {
		return wrapAppError(http.StatusInternalServerError, "failed to check board type usage", err)
	}
	if inUse > 0 {
		return newAppErrorWithData(http.StatusConflict, "board type is used by existing projects",
			map[string]interface{}{"projects": inUse})
	}
	if err := s.catalog.DeleteBoardTypeByID(ctx, nil, id); err != nil {
		return wrapAppError(http.StatusInternalServerError, "failed to delete board type", err)
	}
	return nil
}

func (s *catalogService) ListComponents(ctx context.Context) ([]models.Component, error) {
	components, err := s.components.List(ctx)
	if err != nil {
		return nil, wrapAppError(http.StatusInternalServerError, "failed to list components", err)
	}
	return components, nil
}

func (s *catalogService) CreateComponent(ctx context.Context, input ComponentInput) (models.Component, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return models.Component{}, newAppError(http.StatusBadRequest, "component name is required")
	}
	component := models.Component{Name: name, Model: input.Model, Price: input.Price}
	if err := s.components.Create(ctx, nil, &component); err != nil {
		return models.Component{}, wrapAppError(http.StatusInternalServerError, "failed to create component", err)
	}
	return component, nil
}

func (s *catalogService) UpdateComponent(ctx context.Context, id uint, input ComponentInput) error {
	if _, err := s.components.GetByID(ctx, nil, id); errors.Is(err, gorm.ErrRecordNotFound) {
		return newAppError(http.StatusNotFound, "component not found")
	} else if err != nil {
		return wrapAppError(http.StatusInternalServerError, "failed to load component", err)
	}
	updates := map[string]interface{}{
		"name":  strings.TrimSpace(input.Name),
		"model": input.Model,
		"price": input.Price,
	}
	if err := s.components.UpdateByID(ctx, nil, id, updates); err != nil {
		return wrapAppError(http.StatusInternalServerError, "failed to update component", err)
	}
	return nil
}

func (s *catalogService) DeleteComponent(ctx context.Context, id uint) error {
	if _, err := s.components.GetByID(ctx, nil, id); errors.Is(err, gorm.ErrRecordNotFound) {
		return newAppError(http.StatusNotFound, "component not found")
	} else if err != nil {
		return wrapAppError(http.StatusInternalServerError, "failed to load component", err)
	}

	inUse, err := s.components.CountUsage(ctx, id)
	if err != nil {
		return wrapAppError(http.StatusInternalServerError, "failed to check component usage", err)
	}
	if inUse > 0 {
		return newAppErrorWithData(http.StatusConflict, "component is used by existing projects",
			map[string]interface{}{"projects": inUse})
	}
	if err := s.components.DeleteByID(ctx, nil, id); err != nil {
		return wrapAppError(http.StatusInternalServerError, "failed to delete component", err)
	}
	return nil
}
