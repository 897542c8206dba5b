package services

import (
	"context"

	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/events"
	"gearguard/internal/repositories"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/eventbus"
	"gearguard/pkg/metrics"
	"gearguard/pkg/types"
	"gearguard/pkg/utils"
)

// NotificationSink accepts a notification for delivery.
type NotificationSink interface {
	Create(ctx context.Context, n *entities.Notification) error
}

type NotificationServiceInterface interface {
	NotificationSink
	CreateFromDTO(ctx context.Context, payload dto.CreateNotificationDTO) (*entities.Notification, error)
	List(ctx context.Context, filter types.Filter) ([]entities.Notification, uint64, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, id string) (*entities.Notification, error)
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, id string) error
}

type NotificationService struct {
	*BaseService
	repo repositories.NotificationRepositoryInterface
	bus  *eventbus.Bus
}

func NewNotificationService(
	base *BaseService,
	repo repositories.NotificationRepositoryInterface,
	bus *eventbus.Bus,
) *NotificationService {
	return &NotificationService{BaseService: base, repo: repo, bus: bus}
}

// Create stores n and announces it on the bus. Missing id and timestamp are filled in.
func (s *NotificationService) Create(ctx context.Context, n *entities.Notification) error {
	if n.UserID == "" {
		return apperrors.NewValidationError("userId", "recipient is required")
	}
	if !n.Type.IsValid() {
		return apperrors.NewValidationError("type", "unknown notification type %q", n.Type)
	}
	if n.ID == "" {
		n.ID = s.newID()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = s.now()
	}
	n.IsRead = false

	if err := s.repo.Create(ctx, n); err != nil {
		metrics.Notification(string(n.Type), "error")
		return err
	}
	metrics.Notification(string(n.Type), "ok")

	if s.bus != nil {
		s.bus.Publish(ctx, events.NotificationCreatedEvent{Notification: *n})
	}
	return nil
}

func (s *NotificationService) CreateFromDTO(ctx context.Context, payload dto.CreateNotificationDTO) (*entities.Notification, error) {
	related, err := entities.NewRelated(payload.RelatedType, payload.RelatedID)
	if err != nil {
		return nil, apperrors.NewValidationError("relatedType", "%v", err)
	}
	n := &entities.Notification{
		UserID:  payload.UserID,
		Type:    entities.NotificationType(payload.Type),
		Title:   payload.Title,
		Message: payload.Message,
		Related: related,
	}
	if err := s.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// List restricts non-admin callers to their own notifications.
func (s *NotificationService) List(ctx context.Context, filter types.Filter) ([]entities.Notification, uint64, error) {
	userID, role, err := callerFromCtx(ctx)
	if err != nil {
		return nil, 0, err
	}
	if filter.Filter == nil {
		filter.Filter = map[string]interface{}{}
	}
	if role != entities.RoleAdmin {
		filter.Filter["userId"] = userID
	}
	return s.repo.List(ctx, filter)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	target, err := s.resolveTarget(ctx, userID)
	if err != nil {
		return 0, err
	}
	return s.repo.CountUnread(ctx, target)
}

func (s *NotificationService) MarkRead(ctx context.Context, id string) (*entities.Notification, error) {
	n, err := s.owned(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.IsRead {
		return n, nil
	}
	if err := s.repo.MarkRead(ctx, id); err != nil {
		return nil, err
	}
	n.IsRead = true
	return n, nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	target, err := s.resolveTarget(ctx, userID)
	if err != nil {
		return 0, err
	}
	n, err := s.repo.MarkAllRead(ctx, target)
	if err != nil {
		return 0, err
	}
	s.logger.Debug("notifications marked read", zap.String("userId", target), zap.Int64("count", n))
	return n, nil
}

func (s *NotificationService) Delete(ctx context.Context, id string) error {
	if _, err := s.owned(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// owned loads a notification the caller may touch: their own, or any when they are an admin.
func (s *NotificationService) owned(ctx context.Context, id string) (*entities.Notification, error) {
	userID, role, err := callerFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.UserID != userID && role != entities.RoleAdmin {
		return nil, apperrors.ErrForbidden
	}
	return n, nil
}

// resolveTarget picks the user whose notifications are addressed. Only admins may name someone else.
func (s *NotificationService) resolveTarget(ctx context.Context, userID string) (string, error) {
	callerID, role, err := callerFromCtx(ctx)
	if err != nil {
		return "", err
	}
	if userID == "" || userID == callerID {
		return callerID, nil
	}
	if role != entities.RoleAdmin {
		return "", apperrors.ErrForbidden
	}
	return userID, nil
}

func callerFromCtx(ctx context.Context) (string, entities.UserRole, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return "", "", err
	}
	role, err := utils.GetUserRoleFromCtx(ctx)
	if err != nil {
		return "", "", err
	}
	return userID, entities.UserRole(role), nil
}
