package services

import (
	"context"
	"strings"

	"github.com/aarondl/null/v8"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"
	"gearguard/pkg/utils"
)

type WorkCenterServiceInterface interface {
	GetWorkCenters(ctx context.Context, filter types.Filter) ([]entities.WorkCenter, uint64, error)
	FindWorkCenter(ctx context.Context, id string) (*entities.WorkCenter, error)
	CreateWorkCenter(ctx context.Context, payload dto.CreateWorkCenterDTO) (*entities.WorkCenter, error)
	UpdateWorkCenter(ctx context.Context, id string, payload dto.UpdateWorkCenterDTO) (*entities.WorkCenter, error)
	DeleteWorkCenter(ctx context.Context, id string) error
}

type WorkCenterService struct {
	*BaseService
	workCenterRepository repositories.WorkCenterRepositoryInterface
	requestRepository    repositories.MaintenanceRequestRepositoryInterface
}

func NewWorkCenterService(
	base *BaseService,
	workCenterRepository repositories.WorkCenterRepositoryInterface,
	requestRepository repositories.MaintenanceRequestRepositoryInterface,
) *WorkCenterService {
	return &WorkCenterService{
		BaseService:          base,
		workCenterRepository: workCenterRepository,
		requestRepository:    requestRepository,
	}
}

func (s *WorkCenterService) GetWorkCenters(ctx context.Context, filter types.Filter) ([]entities.WorkCenter, uint64, error) {
	return s.workCenterRepository.List(ctx, filter)
}

func (s *WorkCenterService) FindWorkCenter(ctx context.Context, id string) (*entities.WorkCenter, error) {
	return s.workCenterRepository.FindByID(ctx, id)
}

func money(field string, v *decimal.Decimal) (decimal.NullDecimal, error) {
	if v == nil {
		return decimal.NullDecimal{}, nil
	}
	if v.IsNegative() {
		return decimal.NullDecimal{}, apperrors.NewValidationError(field, "cannot be negative")
	}
	return decimal.NewNullDecimal(*v), nil
}

func (s *WorkCenterService) CreateWorkCenter(ctx context.Context, payload dto.CreateWorkCenterDTO) (*entities.WorkCenter, error) {
	name := strings.TrimSpace(payload.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name", "name is required")
	}
	cost, err := money("cost", payload.Cost)
	if err != nil {
		return nil, err
	}
	perHour, err := money("costPerHour", payload.CostPerHour)
	if err != nil {
		return nil, err
	}
	w := &entities.WorkCenter{
		ID:          s.newID(),
		Name:        name,
		Cost:        cost,
		CostPerHour: perHour,
		CreatedAt:   s.now(),
	}
	if payload.AllocatedManHours != nil {
		w.AllocatedManHours = null.Float64From(*payload.AllocatedManHours)
	}
	w.Description, _ = utils.NullStringPatch(payload.Description)
	if err := s.workCenterRepository.Create(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *WorkCenterService) UpdateWorkCenter(ctx context.Context, id string, payload dto.UpdateWorkCenterDTO) (*entities.WorkCenter, error) {
	w, err := s.workCenterRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payload.Name != nil {
		if strings.TrimSpace(*payload.Name) == "" {
			return nil, apperrors.NewValidationError("name", "name is required")
		}
		w.Name = strings.TrimSpace(*payload.Name)
	}
	if payload.Cost != nil {
		if w.Cost, err = money("cost", payload.Cost); err != nil {
			return nil, err
		}
	}
	if payload.CostPerHour != nil {
		if w.CostPerHour, err = money("costPerHour", payload.CostPerHour); err != nil {
			return nil, err
		}
	}
	if payload.AllocatedManHours != nil {
		w.AllocatedManHours = null.Float64From(*payload.AllocatedManHours)
	}
	if v, ok := utils.NullStringPatch(payload.Description); ok {
		w.Description = v
	}
	if err := s.workCenterRepository.Update(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// DeleteWorkCenter unlinks the work center from requests and deletes it.
func (s *WorkCenterService) DeleteWorkCenter(ctx context.Context, id string) error {
	if _, err := s.workCenterRepository.FindByID(ctx, id); err != nil {
		return err
	}
	cleared, err := s.requestRepository.ClearWorkCenter(ctx, id)
	if err != nil {
		return err
	}
	if err := s.workCenterRepository.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("work center deleted", zap.String("workCenterId", id), zap.Int64("requests", cleared))
	return nil
}
