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

type EquipmentServiceInterface interface {
	GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error)
	FindEquipment(ctx context.Context, id string) (*entities.Equipment, error)
	CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*entities.Equipment, error)
	UpdateEquipment(ctx context.Context, id string, payload dto.UpdateEquipmentDTO) (*entities.Equipment, error)
	DeleteEquipment(ctx context.Context, id string) error
}

type EquipmentService struct {
	*BaseService
	equipmentRepository repositories.EquipmentRepositoryInterface
	teamRepository      repositories.TeamRepositoryInterface
	categoryRepository  repositories.CategoryRepositoryInterface
	lifecycle           RequestLifecycleInterface
	sink                NotificationSink
}

func NewEquipmentService(
	base *BaseService,
	equipmentRepository repositories.EquipmentRepositoryInterface,
	teamRepository repositories.TeamRepositoryInterface,
	categoryRepository repositories.CategoryRepositoryInterface,
	lifecycle RequestLifecycleInterface,
	sink NotificationSink,
) *EquipmentService {
	return &EquipmentService{
		BaseService:         base,
		equipmentRepository: equipmentRepository,
		teamRepository:      teamRepository,
		categoryRepository:  categoryRepository,
		lifecycle:           lifecycle,
		sink:                sink,
	}
}

func (s *EquipmentService) GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error) {
	return s.equipmentRepository.List(ctx, filter)
}

func (s *EquipmentService) FindEquipment(ctx context.Context, id string) (*entities.Equipment, error) {
	return s.equipmentRepository.FindByID(ctx, id)
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*entities.Equipment, error) {
	name := strings.TrimSpace(payload.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name", "name is required")
	}
	status := entities.EquipmentActive
	if payload.Status != "" {
		status = entities.EquipmentStatus(payload.Status)
		if !status.IsValid() {
			return nil, apperrors.NewValidationError("status", "unknown status %q", payload.Status)
		}
		if status == entities.EquipmentScrapped {
			return nil, apperrors.NewValidationError("status", "equipment is scrapped through a maintenance request")
		}
	}
	purchase, _, err := utils.ParseNullDate(payload.PurchaseDate)
	if err != nil {
		return nil, apperrors.NewValidationError("purchaseDate", "%v", err)
	}
	warranty, _, err := utils.ParseNullDate(payload.WarrantyExpiry)
	if err != nil {
		return nil, apperrors.NewValidationError("warrantyExpiry", "%v", err)
	}
	if err := s.checkReferences(ctx, payload.MaintenanceTeamID, payload.Category); err != nil {
		return nil, err
	}

	now := s.now()
	e := &entities.Equipment{
		ID:                s.newID(),
		Name:              name,
		SerialNumber:      payload.SerialNumber,
		Category:          payload.Category,
		DepartmentID:      payload.DepartmentID,
		PurchaseDate:      purchase,
		WarrantyExpiry:    warranty,
		Location:          payload.Location,
		MaintenanceTeamID: payload.MaintenanceTeamID,
		Status:            status,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	e.AssignedToUserID, _ = utils.NullStringPatch(payload.AssignedToUserID)
	e.Notes, _ = utils.NullStringPatch(payload.Notes)

	if err := s.equipmentRepository.Create(ctx, e); err != nil {
		return nil, err
	}
	s.logger.Info("equipment created", zap.String("equipmentId", e.ID), zap.String("serialNumber", e.SerialNumber))
	return e, nil
}

// UpdateEquipment applies an edit. Scrapping only happens through a request reaching Scrap, so an
// edit may neither set Scrapped nor move a scrapped item back into service.
func (s *EquipmentService) UpdateEquipment(ctx context.Context, id string, payload dto.UpdateEquipmentDTO) (*entities.Equipment, error) {
	e, err := s.equipmentRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Status != nil {
		status := entities.EquipmentStatus(*payload.Status)
		switch {
		case !status.IsValid():
			return nil, apperrors.NewValidationError("status", "unknown status %q", *payload.Status)
		case status == entities.EquipmentScrapped && !e.IsScrapped():
			return nil, apperrors.NewValidationError("status", "equipment is scrapped through a maintenance request")
		case status != entities.EquipmentScrapped && e.IsScrapped():
			return nil, apperrors.NewValidationError("status", "scrapped equipment cannot be put back into service")
		}
		e.Status = status
	}
	if payload.Name != nil {
		if strings.TrimSpace(*payload.Name) == "" {
			return nil, apperrors.NewValidationError("name", "name is required")
		}
		e.Name = strings.TrimSpace(*payload.Name)
	}
	if v, ok, err := utils.ParseNullDate(payload.PurchaseDate); err != nil {
		return nil, apperrors.NewValidationError("purchaseDate", "%v", err)
	} else if ok {
		e.PurchaseDate = v
	}
	if v, ok, err := utils.ParseNullDate(payload.WarrantyExpiry); err != nil {
		return nil, apperrors.NewValidationError("warrantyExpiry", "%v", err)
	} else if ok {
		e.WarrantyExpiry = v
	}
	teamID, category := "", ""
	if payload.MaintenanceTeamID != nil && *payload.MaintenanceTeamID != e.MaintenanceTeamID {
		teamID = *payload.MaintenanceTeamID
	}
	if payload.Category != nil && *payload.Category != e.Category {
		category = *payload.Category
	}
	if err := s.checkReferences(ctx, teamID, category); err != nil {
		return nil, err
	}

	if payload.SerialNumber != nil {
		e.SerialNumber = *payload.SerialNumber
	}
	if payload.Category != nil {
		e.Category = *payload.Category
	}
	if payload.DepartmentID != nil {
		e.DepartmentID = *payload.DepartmentID
	}
	if payload.Location != nil {
		e.Location = *payload.Location
	}
	if payload.MaintenanceTeamID != nil {
		e.MaintenanceTeamID = *payload.MaintenanceTeamID
	}
	if v, ok := utils.NullStringPatch(payload.AssignedToUserID); ok {
		e.AssignedToUserID = v
	}
	if v, ok := utils.NullStringPatch(payload.Notes); ok {
		e.Notes = v
	}
	e.UpdatedAt = s.now()

	if err := s.equipmentRepository.Update(ctx, e); err != nil {
		return nil, err
	}
	s.notifyHolder(ctx, e)
	return e, nil
}

// notifyHolder tells the person the equipment is assigned to that its record changed,
// unless they made the change themselves.
func (s *EquipmentService) notifyHolder(ctx context.Context, e *entities.Equipment) {
	if !e.AssignedToUserID.Valid || e.AssignedToUserID.String == "" {
		return
	}
	if caller, err := utils.GetUserIDFromCtx(ctx); err == nil && caller == e.AssignedToUserID.String {
		return
	}
	n := &entities.Notification{
		UserID:  e.AssignedToUserID.String,
		Type:    entities.NotificationEquipmentUpdated,
		Title:   "Equipment Updated",
		Message: "Details of " + e.Name + " were updated",
		Related: entities.EquipmentRef{ID: e.ID},
	}
	if err := s.sink.Create(ctx, n); err != nil {
		s.logger.Error("notification dropped", zap.String("equipmentId", e.ID), zap.Error(err))
	}
}

// DeleteEquipment removes the equipment together with its requests, their tracking logs and requirements.
func (s *EquipmentService) DeleteEquipment(ctx context.Context, id string) error {
	if _, err := s.equipmentRepository.FindByID(ctx, id); err != nil {
		return err
	}
	removed, err := s.lifecycle.DeleteRequestsForEquipment(ctx, id)
	if err != nil {
		return err
	}
	if err := s.equipmentRepository.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("equipment deleted", zap.String("equipmentId", id), zap.Int("requests", removed))
	return nil
}

func (s *EquipmentService) checkReferences(ctx context.Context, teamID, categoryID string) error {
	if teamID != "" {
		if _, err := s.teamRepository.FindByID(ctx, teamID); err != nil {
			return err
		}
	}
	if categoryID != "" {
		if _, err := s.categoryRepository.FindByID(ctx, categoryID); err != nil {
			return err
		}
	}
	return nil
}

