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
)

type TeamServiceInterface interface {
	GetTeams(ctx context.Context, filter types.Filter) ([]entities.Team, uint64, error)
	FindTeam(ctx context.Context, id string) (*entities.Team, error)
	CreateTeam(ctx context.Context, payload dto.CreateTeamDTO) (*entities.Team, error)
	UpdateTeam(ctx context.Context, id string, payload dto.UpdateTeamDTO) (*entities.Team, error)
	DeleteTeam(ctx context.Context, id string) error
}

type TeamService struct {
	*BaseService
	teamRepository      repositories.TeamRepositoryInterface
	userRepository      repositories.UserRepositoryInterface
	requestRepository   repositories.MaintenanceRequestRepositoryInterface
	equipmentRepository repositories.EquipmentRepositoryInterface
}

func NewTeamService(
	base *BaseService,
	teamRepository repositories.TeamRepositoryInterface,
	userRepository repositories.UserRepositoryInterface,
	requestRepository repositories.MaintenanceRequestRepositoryInterface,
	equipmentRepository repositories.EquipmentRepositoryInterface,
) *TeamService {
	return &TeamService{
		BaseService:         base,
		teamRepository:      teamRepository,
		userRepository:      userRepository,
		requestRepository:   requestRepository,
		equipmentRepository: equipmentRepository,
	}
}

func (s *TeamService) GetTeams(ctx context.Context, filter types.Filter) ([]entities.Team, uint64, error) {
	return s.teamRepository.List(ctx, filter)
}

func (s *TeamService) FindTeam(ctx context.Context, id string) (*entities.Team, error) {
	return s.teamRepository.FindByID(ctx, id)
}

func (s *TeamService) CreateTeam(ctx context.Context, payload dto.CreateTeamDTO) (*entities.Team, error) {
	name := strings.TrimSpace(payload.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name", "name is required")
	}
	members, err := s.members(ctx, payload.MemberIDs)
	if err != nil {
		return nil, err
	}
	t := &entities.Team{
		ID:          s.newID(),
		Name:        name,
		Description: payload.Description,
		MemberIDs:   members,
		CreatedAt:   s.now(),
	}
	if err := s.teamRepository.Create(ctx, t); err != nil {
		return nil, err
	}
	s.logger.Info("team created", zap.String("teamId", t.ID), zap.Int("members", len(t.MemberIDs)))
	return t, nil
}

func (s *TeamService) UpdateTeam(ctx context.Context, id string, payload dto.UpdateTeamDTO) (*entities.Team, error) {
	t, err := s.teamRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payload.Name != nil {
		if strings.TrimSpace(*payload.Name) == "" {
			return nil, apperrors.NewValidationError("name", "name is required")
		}
		t.Name = strings.TrimSpace(*payload.Name)
	}
	if payload.Description != nil {
		t.Description = *payload.Description
	}
	if payload.MemberIDs != nil {
		members, err := s.members(ctx, payload.MemberIDs)
		if err != nil {
			return nil, err
		}
		t.MemberIDs = members
	}
	if err := s.teamRepository.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteTeam removes the team and blanks it on requests and equipment that pointed at it.
func (s *TeamService) DeleteTeam(ctx context.Context, id string) error {
	if _, err := s.teamRepository.FindByID(ctx, id); err != nil {
		return err
	}
	requests, err := s.requestRepository.ClearTeam(ctx, id)
	if err != nil {
		return err
	}
	equipment, err := s.equipmentRepository.ClearTeam(ctx, id)
	if err != nil {
		return err
	}
	if err := s.teamRepository.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("team deleted",
		zap.String("teamId", id),
		zap.Int64("requests", requests),
		zap.Int64("equipment", equipment),
	)
	return nil
}

// members checks that every id names a user and drops duplicates, keeping first-seen order.
func (s *TeamService) members(ctx context.Context, ids []string) ([]string, error) {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup || id == "" {
			continue
		}
		if _, err := s.userRepository.FindByID(ctx, id); err != nil {
			return nil, err
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}
