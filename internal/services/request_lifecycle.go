package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/metrics"
	"gearguard/pkg/types"
	"gearguard/pkg/utils"
)

const trackingPreviewRunes = 50

// CreateRequestOptions tweaks side effects of CreateRequest.
type CreateRequestOptions struct {
	// NotifyWholeTeam sends the creation notice to every team member instead of only the first one.
	NotifyWholeTeam bool
	// ReportedIssue marks a request filed from the equipment page. Admins are told about the issue
	// and the reporter gets a submission receipt.
	ReportedIssue *entities.Equipment
}

type RequestLifecycleInterface interface {
	CreateRequest(ctx context.Context, payload dto.CreateRequestDTO, opts CreateRequestOptions) (*entities.MaintenanceRequest, error)
	GetRequest(ctx context.Context, id string) (*entities.MaintenanceRequest, error)
	ListRequests(ctx context.Context, filter types.Filter) ([]entities.MaintenanceRequest, uint64, error)
	UpdateRequest(ctx context.Context, id string, patch dto.UpdateRequestDTO) (*entities.MaintenanceRequest, error)
	AssignTechnician(ctx context.Context, requestID, userID string) (*entities.MaintenanceRequest, error)
	TransitionStage(ctx context.Context, requestID string, stage entities.RequestStage) (*entities.MaintenanceRequest, error)
	// CanTransition reports whether the configured policy accepts the move, without touching anything.
	CanTransition(from, to entities.RequestStage) error
	DeleteRequest(ctx context.Context, id string) error
	DeleteRequestsForEquipment(ctx context.Context, equipmentID string) (int, error)

	AddTrackingLog(ctx context.Context, payload dto.CreateTrackingLogDTO) (*entities.TrackingLog, error)
	ListTrackingLogs(ctx context.Context, filter types.Filter) ([]entities.TrackingLog, uint64, error)
	SubmitRequirement(ctx context.Context, payload dto.SubmitRequirementDTO) (*entities.Requirement, error)
	ReviewRequirement(ctx context.Context, id string, status entities.RequirementStatus) (*entities.Requirement, error)
	ListRequirements(ctx context.Context, filter types.Filter) ([]entities.Requirement, uint64, error)
}

// RequestLifecycleService owns maintenance request writes: stage moves, the scrap cascade,
// team auto-assignment and the notifications they trigger.
type RequestLifecycleService struct {
	*BaseService
	requestRepo     repositories.MaintenanceRequestRepositoryInterface
	equipmentRepo   repositories.EquipmentRepositoryInterface
	teamRepo        repositories.TeamRepositoryInterface
	userRepo        repositories.UserRepositoryInterface
	trackingLogRepo repositories.TrackingLogRepositoryInterface
	requirementRepo repositories.RequirementRepositoryInterface
	roles           RoleDirectoryInterface
	sink            NotificationSink
	policy          StagePolicy
}

func NewRequestLifecycleService(
	base *BaseService,
	requestRepo repositories.MaintenanceRequestRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	teamRepo repositories.TeamRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	trackingLogRepo repositories.TrackingLogRepositoryInterface,
	requirementRepo repositories.RequirementRepositoryInterface,
	roles RoleDirectoryInterface,
	sink NotificationSink,
	policy StagePolicy,
) *RequestLifecycleService {
	return &RequestLifecycleService{
		BaseService:     base,
		requestRepo:     requestRepo,
		equipmentRepo:   equipmentRepo,
		teamRepo:        teamRepo,
		userRepo:        userRepo,
		trackingLogRepo: trackingLogRepo,
		requirementRepo: requirementRepo,
		roles:           roles,
		sink:            sink,
		policy:          policy,
	}
}

func (s *RequestLifecycleService) CreateRequest(ctx context.Context, payload dto.CreateRequestDTO, opts CreateRequestOptions) (*entities.MaintenanceRequest, error) {
	subject := strings.TrimSpace(payload.Subject)
	if subject == "" {
		return nil, apperrors.NewValidationError("subject", "subject is required")
	}
	reqType := entities.RequestType(payload.Type)
	if !reqType.IsValid() {
		return nil, apperrors.NewValidationError("type", "unknown request type %q", payload.Type)
	}
	scheduled, _, err := utils.ParseNullDate(payload.ScheduledDate)
	if err != nil {
		return nil, apperrors.NewValidationError("scheduledDate", "%v", err)
	}
	if reqType == entities.RequestPreventive && !scheduled.Valid {
		return nil, apperrors.NewValidationError("scheduledDate", "preventive requests need a scheduled date")
	}
	priority := entities.PriorityMedium
	if payload.Priority != "" {
		priority = entities.Priority(payload.Priority)
		if !priority.IsValid() {
			return nil, apperrors.NewValidationError("priority", "unknown priority %q", payload.Priority)
		}
	}

	teamID := payload.TeamID
	if payload.EquipmentID != "" {
		equipment, err := s.equipmentRepo.FindByID(ctx, payload.EquipmentID)
		switch {
		case err == nil:
			if equipment.IsScrapped() {
				return nil, apperrors.NewValidationError("equipmentId", "equipment %s is scrapped", equipment.Name)
			}
			if teamID == "" {
				teamID = equipment.MaintenanceTeamID
			}
		case apperrors.IsNotFound(err):
			s.logger.Debug("team not resolved, equipment missing", zap.String("equipmentId", payload.EquipmentID))
		default:
			return nil, err
		}
	}

	now := s.now()
	r := &entities.MaintenanceRequest{
		ID:                s.newID(),
		Subject:           subject,
		Type:              reqType,
		EquipmentID:       payload.EquipmentID,
		RequestedByUserID: payload.RequestedByUserID,
		TeamID:            teamID,
		Stage:             entities.StageNew,
		Priority:          priority,
		Category:          payload.Category,
		ScheduledDate:     scheduled,
		Notes:             payload.Notes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	r.Description, _ = utils.NullStringPatch(payload.Description)
	r.AssignedToUserID, _ = utils.NullStringPatch(payload.AssignedToUserID)
	r.WorkCenterID, _ = utils.NullStringPatch(payload.WorkCenterID)
	if payload.DurationHours != nil {
		r.DurationHours = null.Float64From(*payload.DurationHours)
	}

	if err := s.requestRepo.Create(ctx, r); err != nil {
		return nil, err
	}
	s.logger.Info("maintenance request created",
		zap.String("requestId", r.ID),
		zap.String("type", string(r.Type)),
		zap.String("teamId", r.TeamID),
	)

	s.notifyTeam(ctx, r, opts)
	if opts.ReportedIssue != nil {
		s.notifyIssueReported(ctx, r, opts.ReportedIssue)
	}
	return r.RefreshOverdue(now), nil
}

func (s *RequestLifecycleService) notifyIssueReported(ctx context.Context, r *entities.MaintenanceRequest, equipment *entities.Equipment) {
	related := entities.RequestRef{ID: r.ID}
	detail := r.Description.String
	if detail == "" {
		detail = r.Subject
	}
	admins, err := s.roles.UserIDsByRole(ctx, entities.RoleAdmin)
	if err != nil {
		s.logger.Warn("could not load admins", zap.Error(err))
	}
	message := fmt.Sprintf("New issue reported for %s: %s...", equipment.Name, utils.FirstRunes(detail, trackingPreviewRunes))
	for _, adminID := range admins {
		s.notify(ctx, adminID, entities.NotificationNewRequest, "New Equipment Issue", message, related)
	}
	s.notify(ctx, r.RequestedByUserID, entities.NotificationSystemAlert, "Request Submitted Successfully",
		"Your request has been submitted successfully. Request ID: "+r.ID, related)
}

func (s *RequestLifecycleService) notifyTeam(ctx context.Context, r *entities.MaintenanceRequest, opts CreateRequestOptions) {
	if r.TeamID == "" {
		return
	}
	team, err := s.teamRepo.FindByID(ctx, r.TeamID)
	if err != nil {
		s.logger.Warn("team lookup for new request failed", zap.String("teamId", r.TeamID), zap.Error(err))
		return
	}
	related := entities.RequestRef{ID: r.ID}
	if opts.NotifyWholeTeam {
		when := ""
		if r.ScheduledDate.Valid {
			when = r.ScheduledDate.Time.Format(utils.DateLayout)
		}
		for _, memberID := range team.MemberIDs {
			s.notify(ctx, memberID, entities.NotificationNewRequest, "New Scheduled Maintenance",
				fmt.Sprintf("Scheduled maintenance: %s on %s", r.Subject, when), related)
		}
		return
	}
	s.notify(ctx, team.Lead(), entities.NotificationNewRequest, "New Maintenance Request",
		"New request: "+r.Subject, related)
}

func (s *RequestLifecycleService) GetRequest(ctx context.Context, id string) (*entities.MaintenanceRequest, error) {
	r, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.RefreshOverdue(s.now()), nil
}

func (s *RequestLifecycleService) ListRequests(ctx context.Context, filter types.Filter) ([]entities.MaintenanceRequest, uint64, error) {
	list, total, err := s.requestRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	now := s.now()
	for i := range list {
		list[i].RefreshOverdue(now)
	}
	return list, total, nil
}

func (s *RequestLifecycleService) UpdateRequest(ctx context.Context, id string, patch dto.UpdateRequestDTO) (*entities.MaintenanceRequest, error) {
	r, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	from := r.Stage
	if err := mergeRequestPatch(r, patch); err != nil {
		return nil, err
	}
	r.UpdatedAt = s.now()

	if err := s.applyStageChange(ctx, r, from); err != nil {
		return nil, err
	}
	return r.RefreshOverdue(s.now()), nil
}

// mergeRequestPatch copies every non-nil patch field onto r after validating all of them.
func mergeRequestPatch(r *entities.MaintenanceRequest, patch dto.UpdateRequestDTO) error {
	next := *r

	if patch.Subject != nil {
		next.Subject = strings.TrimSpace(*patch.Subject)
		if next.Subject == "" {
			return apperrors.NewValidationError("subject", "subject is required")
		}
	}
	if patch.Type != nil {
		next.Type = entities.RequestType(*patch.Type)
		if !next.Type.IsValid() {
			return apperrors.NewValidationError("type", "unknown request type %q", *patch.Type)
		}
	}
	if patch.Stage != nil {
		next.Stage = entities.RequestStage(*patch.Stage)
		if !next.Stage.IsValid() {
			return apperrors.NewValidationError("stage", "unknown stage %q", *patch.Stage)
		}
	}
	if patch.Priority != nil {
		next.Priority = entities.Priority(*patch.Priority)
		if !next.Priority.IsValid() {
			return apperrors.NewValidationError("priority", "unknown priority %q", *patch.Priority)
		}
	}
	if v, ok, err := utils.ParseNullDate(patch.ScheduledDate); err != nil {
		return apperrors.NewValidationError("scheduledDate", "%v", err)
	} else if ok {
		next.ScheduledDate = v
	}
	if v, ok, err := utils.ParseNullDate(patch.CompletedDate); err != nil {
		return apperrors.NewValidationError("completedDate", "%v", err)
	} else if ok {
		next.CompletedDate = v
	}
	if next.Type == entities.RequestPreventive && !next.ScheduledDate.Valid {
		return apperrors.NewValidationError("scheduledDate", "preventive requests need a scheduled date")
	}

	if v, ok := utils.NullStringPatch(patch.Description); ok {
		next.Description = v
	}
	if v, ok := utils.NullStringPatch(patch.AssignedToUserID); ok {
		next.AssignedToUserID = v
	}
	if v, ok := utils.NullStringPatch(patch.WorkCenterID); ok {
		next.WorkCenterID = v
	}
	if patch.EquipmentID != nil {
		next.EquipmentID = *patch.EquipmentID
	}
	if patch.RequestedByUserID != nil {
		next.RequestedByUserID = *patch.RequestedByUserID
	}
	if patch.TeamID != nil {
		next.TeamID = *patch.TeamID
	}
	if patch.Category != nil {
		next.Category = *patch.Category
	}
	if patch.Notes != nil {
		next.Notes = *patch.Notes
	}
	if patch.DurationHours != nil {
		next.DurationHours = null.Float64From(*patch.DurationHours)
	}

	*r = next
	return nil
}

func (s *RequestLifecycleService) AssignTechnician(ctx context.Context, requestID, userID string) (*entities.MaintenanceRequest, error) {
	r, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	var assignee *entities.User
	if userID != "" {
		if assignee, err = s.userRepo.FindByID(ctx, userID); err != nil {
			return nil, err
		}
	}

	previous := ""
	if r.AssignedToUserID.Valid {
		previous = r.AssignedToUserID.String
	}
	if userID == "" {
		r.AssignedToUserID = null.String{}
	} else {
		r.AssignedToUserID = null.StringFrom(userID)
	}
	r.UpdatedAt = s.now()
	if err := s.requestRepo.Update(ctx, r); err != nil {
		return nil, err
	}
	s.logger.Info("request assignee changed",
		zap.String("requestId", r.ID),
		zap.String("from", previous),
		zap.String("to", userID),
	)

	related := entities.RequestRef{ID: r.ID}
	if previous != "" && previous != userID {
		newName := "another technician"
		if assignee != nil && assignee.Name != "" {
			newName = assignee.Name
		}
		s.notify(ctx, previous, entities.NotificationTaskReassigned, "Task Reassigned",
			fmt.Sprintf("Task %q has been reassigned to %s", r.Subject, newName), related)
	}
	if userID != "" {
		s.notify(ctx, userID, entities.NotificationRequestAssigned, "Task Assigned to You",
			"You have been assigned to: "+r.Subject, related)
	}
	return r.RefreshOverdue(s.now()), nil
}

func (s *RequestLifecycleService) TransitionStage(ctx context.Context, requestID string, stage entities.RequestStage) (*entities.MaintenanceRequest, error) {
	if !stage.IsValid() {
		return nil, apperrors.NewValidationError("stage", "unknown stage %q", stage)
	}
	r, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if r.Stage == stage {
		return r.RefreshOverdue(s.now()), nil
	}

	from := r.Stage
	r.Stage = stage
	r.UpdatedAt = s.now()
	if err := s.applyStageChange(ctx, r, from); err != nil {
		return nil, err
	}
	return r.RefreshOverdue(s.now()), nil
}

func (s *RequestLifecycleService) CanTransition(from, to entities.RequestStage) error {
	return s.policy.Check(from, to)
}

// applyStageChange persists r whose stage may have moved away from `from`, then runs the side
// effects of the move. Both UpdateRequest and TransitionStage go through here.
func (s *RequestLifecycleService) applyStageChange(ctx context.Context, r *entities.MaintenanceRequest, from entities.RequestStage) error {
	to := r.Stage
	if from == to {
		return s.requestRepo.Update(ctx, r)
	}
	if err := s.policy.Check(from, to); err != nil {
		return err
	}

	now := s.now()
	switch to {
	case entities.StageInProgress:
		if !r.AcceptedAt.Valid {
			r.AcceptedAt = null.TimeFrom(now)
		}
	case entities.StageRepaired:
		if !r.CompletedDate.Valid {
			r.CompletedDate = null.TimeFrom(now)
		}
	}

	if err := s.requestRepo.Update(ctx, r); err != nil {
		return err
	}
	metrics.StageTransition(string(from), string(to))
	s.logger.Info("request stage changed",
		zap.String("requestId", r.ID),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)

	related := entities.RequestRef{ID: r.ID}
	switch to {
	case entities.StageInProgress:
		s.notify(ctx, r.RequestedByUserID, entities.NotificationRequestUpdated, "Request In Progress",
			fmt.Sprintf("Your request %q is now in progress", r.Subject), related)
	case entities.StageRepaired:
		s.notify(ctx, r.RequestedByUserID, entities.NotificationRequestCompleted, "Request Completed",
			fmt.Sprintf("Your request %q has been completed", r.Subject), related)
		s.notifyManagersCompleted(ctx, r)
	case entities.StageScrap:
		if err := s.scrapCascade(ctx, r); err != nil {
			return err
		}
		s.notifyStatusChanged(ctx, r)
	default:
		s.notifyStatusChanged(ctx, r)
	}
	return nil
}

func (s *RequestLifecycleService) notifyStatusChanged(ctx context.Context, r *entities.MaintenanceRequest) {
	s.notify(ctx, r.StatusRecipient(), entities.NotificationRequestUpdated, "Request Status Updated",
		fmt.Sprintf("Request %q status changed to %s", r.Subject, r.Stage), entities.RequestRef{ID: r.ID})
}

func (s *RequestLifecycleService) notifyManagersCompleted(ctx context.Context, r *entities.MaintenanceRequest) {
	recipients, err := s.roles.UserIDsByRole(ctx, entities.RoleAdmin, entities.RoleManager)
	if err != nil {
		s.logger.Warn("could not load admins and managers", zap.Error(err))
		return
	}
	by := s.userName(ctx, r.AssignedToUserID.String, "technician")
	message := fmt.Sprintf("Request %q has been completed by %s", r.Subject, by)
	for _, userID := range recipients {
		s.notify(ctx, userID, entities.NotificationRequestCompleted, "Request Completed", message, entities.RequestRef{ID: r.ID})
	}
}

// scrapCascade marks the request's equipment as Scrapped and force-closes its other open requests.
// Every record is written separately; the closed requests get no notifications.
func (s *RequestLifecycleService) scrapCascade(ctx context.Context, r *entities.MaintenanceRequest) error {
	if !r.TargetsEquipment() {
		return nil
	}
	equipment, err := s.equipmentRepo.FindByID(ctx, r.EquipmentID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			s.logger.Warn("scrapped request points at missing equipment", zap.String("equipmentId", r.EquipmentID))
			return nil
		}
		return err
	}

	now := s.now()
	if !equipment.IsScrapped() || !equipment.ScrapDate.Valid {
		equipment.Status = entities.EquipmentScrapped
		if !equipment.ScrapDate.Valid {
			equipment.ScrapDate = null.TimeFrom(now)
		}
		equipment.UpdatedAt = now
		if err := s.equipmentRepo.Update(ctx, equipment); err != nil {
			return err
		}
	}

	siblings, err := s.requestRepo.ListByEquipment(ctx, equipment.ID)
	if err != nil {
		return err
	}
	closed := 0
	for i := range siblings {
		other := &siblings[i]
		if other.ID == r.ID || other.Stage.IsTerminal() {
			continue
		}
		other.Stage = entities.StageScrap
		other.UpdatedAt = now
		if err := s.requestRepo.Update(ctx, other); err != nil {
			return err
		}
		closed++
	}
	metrics.ScrapCascade()
	s.logger.Info("equipment scrapped",
		zap.String("equipmentId", equipment.ID),
		zap.String("requestId", r.ID),
		zap.Int("closedRequests", closed),
	)
	return nil
}

func (s *RequestLifecycleService) DeleteRequest(ctx context.Context, id string) error {
	if _, err := s.requestRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.deleteWithChildren(ctx, id)
}

// DeleteRequestsForEquipment removes every request of an equipment together with its logs and requirements.
func (s *RequestLifecycleService) DeleteRequestsForEquipment(ctx context.Context, equipmentID string) (int, error) {
	list, err := s.requestRepo.ListByEquipment(ctx, equipmentID)
	if err != nil {
		return 0, err
	}
	for _, r := range list {
		if err := s.deleteWithChildren(ctx, r.ID); err != nil {
			return 0, err
		}
	}
	return len(list), nil
}

func (s *RequestLifecycleService) deleteWithChildren(ctx context.Context, id string) error {
	logs, err := s.trackingLogRepo.DeleteByRequest(ctx, id)
	if err != nil {
		return err
	}
	reqs, err := s.requirementRepo.DeleteByRequest(ctx, id)
	if err != nil {
		return err
	}
	if err := s.requestRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("maintenance request deleted",
		zap.String("requestId", id),
		zap.Int64("trackingLogs", logs),
		zap.Int64("requirements", reqs),
	)
	return nil
}

func (s *RequestLifecycleService) AddTrackingLog(ctx context.Context, payload dto.CreateTrackingLogDTO) (*entities.TrackingLog, error) {
	description := strings.TrimSpace(payload.Description)
	if description == "" {
		return nil, apperrors.NewValidationError("description", "description is required")
	}
	if payload.CreatedBy == "" {
		return nil, apperrors.NewValidationError("createdBy", "author is required")
	}
	r, err := s.requestRepo.FindByID(ctx, payload.RequestID)
	if err != nil {
		return nil, err
	}

	entry := &entities.TrackingLog{
		ID:          s.newID(),
		RequestID:   r.ID,
		Description: description,
		CreatedBy:   payload.CreatedBy,
		CreatedAt:   s.now(),
	}
	if err := s.trackingLogRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	author, err := s.userRepo.FindByID(ctx, payload.CreatedBy)
	if err != nil {
		s.logger.Warn("tracking log author lookup failed", zap.String("userId", payload.CreatedBy), zap.Error(err))
		return entry, nil
	}
	if author.Role == entities.RoleTechnician {
		s.notify(ctx, r.RequestedByUserID, entities.NotificationTrackingUpdated, "Request Update",
			fmt.Sprintf("Update on %s: %s...", r.Subject, utils.FirstRunes(description, trackingPreviewRunes)),
			entities.RequestRef{ID: r.ID})
	}
	return entry, nil
}

func (s *RequestLifecycleService) ListTrackingLogs(ctx context.Context, filter types.Filter) ([]entities.TrackingLog, uint64, error) {
	return s.trackingLogRepo.List(ctx, filter)
}

func (s *RequestLifecycleService) SubmitRequirement(ctx context.Context, payload dto.SubmitRequirementDTO) (*entities.Requirement, error) {
	products := make([]string, 0, len(payload.Products))
	for _, p := range payload.Products {
		if p = strings.TrimSpace(p); p != "" {
			products = append(products, p)
		}
	}
	if len(products) == 0 {
		return nil, apperrors.NewValidationError("products", "at least one product is required")
	}
	if payload.SubmittedBy == "" {
		return nil, apperrors.NewValidationError("submittedBy", "submitter is required")
	}
	if payload.Pricing != nil && payload.Pricing.IsNegative() {
		return nil, apperrors.NewValidationError("pricing", "pricing cannot be negative")
	}
	r, err := s.requestRepo.FindByID(ctx, payload.RequestID)
	if err != nil {
		return nil, err
	}

	req := &entities.Requirement{
		ID:          s.newID(),
		RequestID:   r.ID,
		SubmittedBy: payload.SubmittedBy,
		Products:    products,
		Notes:       payload.Notes,
		Status:      entities.RequirementPending,
		SubmittedAt: s.now(),
	}
	if payload.Pricing != nil {
		req.Pricing.Decimal = *payload.Pricing
		req.Pricing.Valid = true
	}
	if err := s.requirementRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	admins, err := s.roles.UserIDsByRole(ctx, entities.RoleAdmin)
	if err != nil {
		s.logger.Warn("could not load admins", zap.Error(err))
		return req, nil
	}
	for _, adminID := range admins {
		s.notify(ctx, adminID, entities.NotificationRequirementSubmitted, "Repair Requirements Submitted",
			"Technician submitted requirements for "+r.Subject, entities.RequestRef{ID: r.ID})
	}
	return req, nil
}

// ReviewRequirement approves or rejects a pending requirement and tells the submitter.
func (s *RequestLifecycleService) ReviewRequirement(ctx context.Context, id string, status entities.RequirementStatus) (*entities.Requirement, error) {
	if status != entities.RequirementApproved && status != entities.RequirementRejected {
		return nil, apperrors.NewValidationError("status", "status must be approved or rejected")
	}
	req, err := s.requirementRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status != entities.RequirementPending {
		return nil, apperrors.NewValidationError("status", "requirement is already %s", req.Status)
	}

	req.Status = status
	if status == entities.RequirementApproved {
		req.ApprovedAt = null.TimeFrom(s.now())
	}
	if err := s.requirementRepo.Update(ctx, req); err != nil {
		return nil, err
	}

	subject := "your request"
	if r, err := s.requestRepo.FindByID(ctx, req.RequestID); err == nil {
		subject = fmt.Sprintf("%q", r.Subject)
	}
	title := "Requirements Approved"
	if status == entities.RequirementRejected {
		title = "Requirements Rejected"
	}
	s.notify(ctx, req.SubmittedBy, entities.NotificationRequestUpdated, title,
		fmt.Sprintf("Your requirements for %s were %s", subject, status), entities.RequestRef{ID: req.RequestID})
	return req, nil
}

func (s *RequestLifecycleService) ListRequirements(ctx context.Context, filter types.Filter) ([]entities.Requirement, uint64, error) {
	return s.requirementRepo.List(ctx, filter)
}

// notify hands a notification to the sink. Failures are logged and swallowed.
func (s *RequestLifecycleService) notify(ctx context.Context, userID string, kind entities.NotificationType, title, message string, related entities.Related) {
	if userID == "" {
		return
	}
	n := &entities.Notification{
		ID:        s.newID(),
		UserID:    userID,
		Type:      kind,
		Title:     title,
		Message:   message,
		Related:   related,
		CreatedAt: s.now(),
	}
	if err := s.sink.Create(ctx, n); err != nil {
		s.logger.Error("notification dropped",
			zap.String("userId", userID),
			zap.String("type", string(kind)),
			zap.Error(err),
		)
	}
}

func (s *RequestLifecycleService) userName(ctx context.Context, userID, fallback string) string {
	if userID == "" {
		return fallback
	}
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil || u.Name == "" {
		return fallback
	}
	return u.Name
}
