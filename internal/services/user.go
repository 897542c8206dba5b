package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"
	"gearguard/pkg/utils"
)

type UserServiceInterface interface {
	GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error)
	FindUser(ctx context.Context, id string) (*entities.User, error)
	CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*entities.User, error)
	UpdateUser(ctx context.Context, id string, payload dto.UpdateUserDTO) (*entities.User, error)
	DeleteUser(ctx context.Context, id string) error
}

type UserService struct {
	*BaseService
	userRepository    repositories.UserRepositoryInterface
	teamRepository    repositories.TeamRepositoryInterface
	requestRepository repositories.MaintenanceRequestRepositoryInterface
	roles             RoleDirectoryInterface
	sink              NotificationSink
}

func NewUserService(
	base *BaseService,
	userRepository repositories.UserRepositoryInterface,
	teamRepository repositories.TeamRepositoryInterface,
	requestRepository repositories.MaintenanceRequestRepositoryInterface,
	roles RoleDirectoryInterface,
	sink NotificationSink,
) *UserService {
	return &UserService{
		BaseService:       base,
		userRepository:    userRepository,
		teamRepository:    teamRepository,
		requestRepository: requestRepository,
		roles:             roles,
		sink:              sink,
	}
}

func (s *UserService) GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error) {
	return s.userRepository.List(ctx, filter)
}

func (s *UserService) FindUser(ctx context.Context, id string) (*entities.User, error) {
	return s.userRepository.FindByID(ctx, id)
}

func (s *UserService) CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*entities.User, error) {
	role := entities.UserRole(payload.Role)
	if role == "" {
		role = entities.RoleUser
	}
	if !role.IsValid() {
		return nil, apperrors.NewValidationError("role", "unknown role %q", payload.Role)
	}
	email := strings.ToLower(strings.TrimSpace(payload.Email))
	if email == "" {
		return nil, apperrors.NewValidationError("email", "email is required")
	}
	hash, err := utils.HashPassword(payload.Password)
	if err != nil {
		return nil, err
	}

	u := &entities.User{
		ID:           s.newID(),
		Email:        email,
		Name:         strings.TrimSpace(payload.Name),
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}
	u.Department, _ = utils.NullStringPatch(payload.Department)
	u.Avatar, _ = utils.NullStringPatch(payload.Avatar)

	if err := s.userRepository.Create(ctx, u); err != nil {
		return nil, err
	}
	s.roles.Invalidate(ctx)
	s.logger.Info("user created", zap.String("userId", u.ID), zap.String("role", string(u.Role)))

	s.announce(ctx, u)
	return u, nil
}

func (s *UserService) announce(ctx context.Context, u *entities.User) {
	admins, err := s.roles.UserIDsByRole(ctx, entities.RoleAdmin)
	if err != nil {
		s.logger.Warn("could not load admins", zap.Error(err))
		return
	}
	message := fmt.Sprintf("%s (%s) joined as %s", u.Name, u.Email, u.Role)
	for _, adminID := range admins {
		if adminID == u.ID {
			continue
		}
		n := &entities.Notification{
			UserID:  adminID,
			Type:    entities.NotificationNewUserRegistered,
			Title:   "New User Registered",
			Message: message,
			Related: entities.UserRef{ID: u.ID},
		}
		if err := s.sink.Create(ctx, n); err != nil {
			s.logger.Error("notification dropped", zap.String("userId", adminID), zap.Error(err))
		}
	}
}

func (s *UserService) UpdateUser(ctx context.Context, id string, payload dto.UpdateUserDTO) (*entities.User, error) {
	u, err := s.userRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payload.Role != nil {
		role := entities.UserRole(*payload.Role)
		if !role.IsValid() {
			return nil, apperrors.NewValidationError("role", "unknown role %q", *payload.Role)
		}
		u.Role = role
	}
	if payload.Email != nil {
		u.Email = strings.ToLower(strings.TrimSpace(*payload.Email))
	}
	if payload.Name != nil {
		u.Name = strings.TrimSpace(*payload.Name)
	}
	if payload.Password != nil {
		hash, err := utils.HashPassword(*payload.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}
	if v, ok := utils.NullStringPatch(payload.Department); ok {
		u.Department = v
	}
	if v, ok := utils.NullStringPatch(payload.Avatar); ok {
		u.Avatar = v
	}

	if err := s.userRepository.Update(ctx, u); err != nil {
		return nil, err
	}
	s.roles.Invalidate(ctx)
	return u, nil
}

// DeleteUser removes the user from every team and unassigns them from requests before deleting.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if _, err := s.userRepository.FindByID(ctx, id); err != nil {
		return err
	}
	teams, err := s.teamRepository.RemoveMember(ctx, id)
	if err != nil {
		return err
	}
	requests, err := s.requestRepository.ClearAssignee(ctx, id)
	if err != nil {
		return err
	}
	if err := s.userRepository.Delete(ctx, id); err != nil {
		return err
	}
	s.roles.Invalidate(ctx)
	s.logger.Info("user deleted",
		zap.String("userId", id),
		zap.Int64("teams", teams),
		zap.Int64("requests", requests),
	)
	return nil
}
