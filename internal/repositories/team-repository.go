package repositories

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"gearguard/internal/entities"
	"gearguard/internal/infrastructure/bd"
	"gearguard/pkg/types"
)

const (
	teamTable  = "teams"
	teamFields = "id, name, description, member_ids, created_at"
)

var teamColumns = map[string]string{
	"id":        "id",
	"name":      "name",
	"createdAt": "created_at",
}

type TeamRepositoryInterface interface {
	FindByID(ctx context.Context, id string) (*entities.Team, error)
	List(ctx context.Context, filter types.Filter) ([]entities.Team, uint64, error)
	Create(ctx context.Context, t *entities.Team) error
	Update(ctx context.Context, t *entities.Team) error
	Delete(ctx context.Context, id string) error
	// RemoveMember drops userID from every team's member list, keeping the order of the rest.
	RemoveMember(ctx context.Context, userID string) (int64, error)
}

type teamRepository struct {
	storage querier
	logger  *zap.Logger
}

func NewTeamRepository(storage *pgxpool.Pool, logger *zap.Logger) TeamRepositoryInterface {
	return &teamRepository{storage: storage, logger: logger}
}

func scanTeam(row rowScanner) (*entities.Team, error) {
	var t entities.Team
	if err := row.Scan(&t.ID, &t.Name, &t.Description, &t.MemberIDs, &t.CreatedAt); err != nil {
		return nil, err
	}
	if t.MemberIDs == nil {
		t.MemberIDs = []string{}
	}
	return &t, nil
}

func (r *teamRepository) FindByID(ctx context.Context, id string) (*entities.Team, error) {
	builder := bd.Psql.Select(teamFields).From(teamTable).Where(sq.Eq{"id": id})
	return findOne(ctx, r.storage, builder, scanTeam, "team", id)
}

func (r *teamRepository) List(ctx context.Context, filter types.Filter) ([]entities.Team, uint64, error) {
	countBuilder := bd.Psql.Select("COUNT(id)").From(teamTable)
	selectBuilder := bd.Psql.Select(teamFields).From(teamTable)

	countBuilder = bd.ApplySearch(bd.ApplyFilters(countBuilder, filter, teamColumns), filter.Search, "name")
	selectBuilder = bd.ApplySearch(bd.ApplyFilters(selectBuilder, filter, teamColumns), filter.Search, "name")
	if userID := filter.String("userId"); userID != "" {
		member := sq.Expr("? = ANY(member_ids)", userID)
		countBuilder = countBuilder.Where(member)
		selectBuilder = selectBuilder.Where(member)
	}
	selectBuilder = bd.ApplySortAndPage(selectBuilder, filter, teamColumns, "name ASC")

	return fetchPage(ctx, r.storage, countBuilder, selectBuilder, scanTeam, "list teams")
}

func (r *teamRepository) Create(ctx context.Context, t *entities.Team) error {
	builder := bd.Psql.Insert(teamTable).
		Columns("id", "name", "description", "member_ids", "created_at").
		Values(t.ID, t.Name, t.Description, t.MemberIDs, t.CreatedAt)
	_, err := execAffected(ctx, r.storage, builder, "create team")
	return err
}

func (r *teamRepository) Update(ctx context.Context, t *entities.Team) error {
	builder := bd.Psql.Update(teamTable).
		Set("name", t.Name).
		Set("description", t.Description).
		Set("member_ids", t.MemberIDs).
		Where(sq.Eq{"id": t.ID})
	return execOne(ctx, r.storage, builder, "update team", "team", t.ID)
}

func (r *teamRepository) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.storage, bd.Psql.Delete(teamTable).Where(sq.Eq{"id": id}), "delete team", "team", id)
}

func (r *teamRepository) RemoveMember(ctx context.Context, userID string) (int64, error) {
	builder := bd.Psql.Update(teamTable).
		Set("member_ids", sq.Expr("array_remove(member_ids, ?)", userID)).
		Where(sq.Expr("? = ANY(member_ids)", userID))
	return execAffected(ctx, r.storage, builder, "remove team member")
}
