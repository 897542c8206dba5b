package services

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"
	"gearguard/pkg/utils"
)

// BoardServiceInterface serves the kanban board, the maintenance calendar and equipment history.
// They are read models over the request list; writes go through the lifecycle service.
type BoardServiceInterface interface {
	Kanban(ctx context.Context, teamID, userID string) (*dto.KanbanBoardDTO, error)
	MoveCard(ctx context.Context, payload dto.KanbanMoveDTO) (*entities.MaintenanceRequest, error)
	Calendar(ctx context.Context, teamID, userID, startDate, endDate string) ([]dto.CalendarEventDTO, error)
	ScheduleMaintenance(ctx context.Context, payload dto.CreateRequestDTO) (*entities.MaintenanceRequest, error)
	EquipmentHistory(ctx context.Context, equipmentID string) (*dto.EquipmentHistoryDTO, error)
	RequestForEquipment(ctx context.Context, equipmentID string, payload dto.CreateRequestDTO) (*entities.MaintenanceRequest, error)
}

type BoardService struct {
	*BaseService
	lifecycle       RequestLifecycleInterface
	requestRepo     repositories.MaintenanceRequestRepositoryInterface
	equipmentRepo   repositories.EquipmentRepositoryInterface
	trackingLogRepo repositories.TrackingLogRepositoryInterface
	requirementRepo repositories.RequirementRepositoryInterface
}

func NewBoardService(
	base *BaseService,
	lifecycle RequestLifecycleInterface,
	requestRepo repositories.MaintenanceRequestRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	trackingLogRepo repositories.TrackingLogRepositoryInterface,
	requirementRepo repositories.RequirementRepositoryInterface,
) *BoardService {
	return &BoardService{
		BaseService:     base,
		lifecycle:       lifecycle,
		requestRepo:     requestRepo,
		equipmentRepo:   equipmentRepo,
		trackingLogRepo: trackingLogRepo,
		requirementRepo: requirementRepo,
	}
}

func boardFilter(teamID, userID string) types.Filter {
	f := types.Filter{Filter: map[string]interface{}{}, Sort: map[string]string{}}
	if teamID != "" {
		f.Filter["teamId"] = teamID
	}
	if userID != "" {
		f.Filter["assignedToUserId"] = userID
	}
	return f
}

func (s *BoardService) Kanban(ctx context.Context, teamID, userID string) (*dto.KanbanBoardDTO, error) {
	list, _, err := s.lifecycle.ListRequests(ctx, boardFilter(teamID, userID))
	if err != nil {
		return nil, err
	}
	board := &dto.KanbanBoardDTO{
		New:        []entities.MaintenanceRequest{},
		InProgress: []entities.MaintenanceRequest{},
		Repaired:   []entities.MaintenanceRequest{},
		Scrap:      []entities.MaintenanceRequest{},
	}
	for _, r := range list {
		switch r.Stage {
		case entities.StageNew:
			board.New = append(board.New, r)
		case entities.StageInProgress:
			board.InProgress = append(board.InProgress, r)
		case entities.StageRepaired:
			board.Repaired = append(board.Repaired, r)
		case entities.StageScrap:
			board.Scrap = append(board.Scrap, r)
		}
	}
	return board, nil
}

// MoveCard is a drag on the board: optional reassignment first, then the stage move. The move is
// checked against the stage policy before the reassignment is written.
func (s *BoardService) MoveCard(ctx context.Context, payload dto.KanbanMoveDTO) (*entities.MaintenanceRequest, error) {
	stage := entities.RequestStage(payload.NewStage)
	if !stage.IsValid() {
		return nil, apperrors.NewValidationError("newStage", "unknown stage %q", payload.NewStage)
	}
	current, err := s.lifecycle.GetRequest(ctx, payload.RequestID)
	if err != nil {
		return nil, err
	}
	if err := s.lifecycle.CanTransition(current.Stage, stage); err != nil {
		return nil, err
	}
	if payload.AssignedToUserID != nil {
		if current.AssignedToUserID.String != *payload.AssignedToUserID {
			if _, err := s.lifecycle.AssignTechnician(ctx, payload.RequestID, *payload.AssignedToUserID); err != nil {
				return nil, err
			}
		}
	}
	return s.lifecycle.TransitionStage(ctx, payload.RequestID, stage)
}

func (s *BoardService) Calendar(ctx context.Context, teamID, userID, startDate, endDate string) ([]dto.CalendarEventDTO, error) {
	var from, to time.Time
	if startDate != "" {
		t, err := utils.ParseDate(startDate)
		if err != nil {
			return nil, apperrors.NewValidationError("startDate", "%v", err)
		}
		from = t
	}
	if endDate != "" {
		t, err := utils.ParseDate(endDate)
		if err != nil {
			return nil, apperrors.NewValidationError("endDate", "%v", err)
		}
		// the end date is inclusive
		if len(endDate) == len(utils.DateLayout) {
			to = t.AddDate(0, 0, 1)
		} else {
			to = t.Add(time.Microsecond)
		}
	}

	filter := boardFilter(teamID, userID)
	filter.Filter["type"] = string(entities.RequestPreventive)
	list, err := s.requestRepo.ListScheduled(ctx, filter, from, to)
	if err != nil {
		return nil, err
	}

	now := s.now()
	events := make([]dto.CalendarEventDTO, 0, len(list))
	for i := range list {
		r := list[i].RefreshOverdue(now)
		start := r.ScheduledDate.Time.Format(time.RFC3339)
		events = append(events, dto.CalendarEventDTO{
			ID:               r.ID,
			Title:            r.Subject,
			Start:            start,
			End:              start,
			AllDay:           true,
			Stage:            r.Stage,
			Type:             r.Type,
			EquipmentID:      r.EquipmentID,
			TeamID:           r.TeamID,
			AssignedToUserID: r.AssignedToUserID.Ptr(),
			Priority:         r.Priority,
			IsOverdue:        r.IsOverdue,
		})
	}
	return events, nil
}

// ScheduleMaintenance creates a preventive request from the calendar and tells the whole team.
func (s *BoardService) ScheduleMaintenance(ctx context.Context, payload dto.CreateRequestDTO) (*entities.MaintenanceRequest, error) {
	if payload.Type != "" && payload.Type != string(entities.RequestPreventive) {
		return nil, apperrors.NewValidationError("type", "calendar events are only for preventive maintenance")
	}
	payload.Type = string(entities.RequestPreventive)
	return s.lifecycle.CreateRequest(ctx, payload, CreateRequestOptions{NotifyWholeTeam: true})
}

func (s *BoardService) EquipmentHistory(ctx context.Context, equipmentID string) (*dto.EquipmentHistoryDTO, error) {
	equipment, err := s.equipmentRepo.FindByID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	requests, err := s.requestRepo.ListByEquipment(ctx, equipmentID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	ids := make([]string, 0, len(requests))
	history := &dto.EquipmentHistoryDTO{
		Equipment:             equipment,
		Requests:              requests,
		TotalMaintenanceCount: len(requests),
	}
	var repaired []*entities.MaintenanceRequest
	for i := range requests {
		r := requests[i].RefreshOverdue(now)
		ids = append(ids, r.ID)
		if !r.Stage.IsTerminal() {
			history.OpenIssues++
		}
		if r.Stage == entities.StageRepaired {
			repaired = append(repaired, r)
		}
	}
	if len(repaired) > 0 {
		sort.Slice(repaired, func(i, j int) bool { return repaired[i].UpdatedAt.After(repaired[j].UpdatedAt) })
		last := repaired[0].UpdatedAt.Format(time.RFC3339)
		history.LastMaintenanceDate = &last
	}

	if history.TrackingLogs, err = s.trackingLogRepo.ListByRequests(ctx, ids...); err != nil {
		return nil, err
	}
	if history.Requirements, err = s.requirementRepo.ListByRequests(ctx, ids...); err != nil {
		return nil, err
	}
	s.logger.Debug("equipment history built",
		zap.String("equipmentId", equipmentID),
		zap.Int("requests", len(requests)),
	)
	return history, nil
}

// RequestForEquipment opens a request from the equipment page, defaulting team and category
// from the equipment record. Admins hear about the issue and the reporter gets a receipt.
func (s *BoardService) RequestForEquipment(ctx context.Context, equipmentID string, payload dto.CreateRequestDTO) (*entities.MaintenanceRequest, error) {
	equipment, err := s.equipmentRepo.FindByID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	if equipment.IsScrapped() {
		return nil, apperrors.NewValidationError("equipmentId", "equipment %s is scrapped", equipment.Name)
	}
	payload.EquipmentID = equipment.ID
	if payload.TeamID == "" {
		payload.TeamID = equipment.MaintenanceTeamID
	}
	if payload.Category == "" {
		payload.Category = equipment.Category
	}
	return s.lifecycle.CreateRequest(ctx, payload, CreateRequestOptions{ReportedIssue: equipment})
}
