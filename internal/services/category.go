package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"
	"gearguard/pkg/utils"
)

type CategoryServiceInterface interface {
	GetCategories(ctx context.Context, filter types.Filter) ([]entities.EquipmentCategory, uint64, error)
	FindCategory(ctx context.Context, id string) (*entities.EquipmentCategory, error)
	CreateCategory(ctx context.Context, payload dto.CreateCategoryDTO) (*entities.EquipmentCategory, error)
	UpdateCategory(ctx context.Context, id string, payload dto.UpdateCategoryDTO) (*entities.EquipmentCategory, error)
	DeleteCategory(ctx context.Context, id string) error
}

type CategoryService struct {
	*BaseService
	categoryRepository  repositories.CategoryRepositoryInterface
	equipmentRepository repositories.EquipmentRepositoryInterface
	requestRepository   repositories.MaintenanceRequestRepositoryInterface
}

func NewCategoryService(
	base *BaseService,
	categoryRepository repositories.CategoryRepositoryInterface,
	equipmentRepository repositories.EquipmentRepositoryInterface,
	requestRepository repositories.MaintenanceRequestRepositoryInterface,
) *CategoryService {
	return &CategoryService{
		BaseService:         base,
		categoryRepository:  categoryRepository,
		equipmentRepository: equipmentRepository,
		requestRepository:   requestRepository,
	}
}

func (s *CategoryService) GetCategories(ctx context.Context, filter types.Filter) ([]entities.EquipmentCategory, uint64, error) {
	return s.categoryRepository.List(ctx, filter)
}

func (s *CategoryService) FindCategory(ctx context.Context, id string) (*entities.EquipmentCategory, error) {
	return s.categoryRepository.FindByID(ctx, id)
}

func (s *CategoryService) CreateCategory(ctx context.Context, payload dto.CreateCategoryDTO) (*entities.EquipmentCategory, error) {
	name := strings.TrimSpace(payload.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name", "name is required")
	}
	c := &entities.EquipmentCategory{ID: s.newID(), Name: name, CreatedAt: s.now()}
	c.Description, _ = utils.NullStringPatch(payload.Description)
	c.Responsible, _ = utils.NullStringPatch(payload.Responsible)
	if err := s.categoryRepository.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id string, payload dto.UpdateCategoryDTO) (*entities.EquipmentCategory, error) {
	c, err := s.categoryRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payload.Name != nil {
		if strings.TrimSpace(*payload.Name) == "" {
			return nil, apperrors.NewValidationError("name", "name is required")
		}
		c.Name = strings.TrimSpace(*payload.Name)
	}
	if v, ok := utils.NullStringPatch(payload.Description); ok {
		c.Description = v
	}
	if v, ok := utils.NullStringPatch(payload.Responsible); ok {
		c.Responsible = v
	}
	if err := s.categoryRepository.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCategory blanks the category on equipment and requests, then deletes it.
func (s *CategoryService) DeleteCategory(ctx context.Context, id string) error {
	if _, err := s.categoryRepository.FindByID(ctx, id); err != nil {
		return err
	}
	equipment, err := s.equipmentRepository.ClearCategory(ctx, id)
	if err != nil {
		return err
	}
	requests, err := s.requestRepository.ClearCategory(ctx, id)
	if err != nil {
		return err
	}
	if err := s.categoryRepository.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("category deleted",
		zap.String("categoryId", id),
		zap.Int64("equipment", equipment),
		zap.Int64("requests", requests),
	)
	return nil
}
