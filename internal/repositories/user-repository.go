package repositories

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"gearguard/internal/entities"
	"gearguard/internal/infrastructure/bd"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"
)

const (
	userTable  = "users"
	userFields = "id, email, name, role, department, avatar, password_hash, created_at"
)

var userColumns = map[string]string{
	"id":         "id",
	"email":      "email",
	"name":       "name",
	"role":       "role",
	"department": "department",
	"createdAt":  "created_at",
}

type UserRepositoryInterface interface {
	FindByID(ctx context.Context, id string) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	List(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error)
	ListByRoles(ctx context.Context, roles ...entities.UserRole) ([]entities.User, error)
	Create(ctx context.Context, u *entities.User) error
	Update(ctx context.Context, u *entities.User) error
	Delete(ctx context.Context, id string) error
}

type userRepository struct {
	storage querier
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &userRepository{storage: storage, logger: logger}
}

func scanUser(row rowScanner) (*entities.User, error) {
	var u entities.User
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.Department, &u.Avatar, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	builder := bd.Psql.Select(userFields).From(userTable).Where(sq.Eq{"id": id})
	return findOne(ctx, r.storage, builder, scanUser, "user", id)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	builder := bd.Psql.Select(userFields).From(userTable).Where(sq.Expr("LOWER(email) = LOWER(?)", email))
	return findOne(ctx, r.storage, builder, scanUser, "user", email)
}

func (r *userRepository) List(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error) {
	countBuilder := bd.Psql.Select("COUNT(id)").From(userTable)
	selectBuilder := bd.Psql.Select(userFields).From(userTable)

	countBuilder = bd.ApplySearch(bd.ApplyFilters(countBuilder, filter, userColumns), filter.Search, "name", "email")
	selectBuilder = bd.ApplySearch(bd.ApplyFilters(selectBuilder, filter, userColumns), filter.Search, "name", "email")
	selectBuilder = bd.ApplySortAndPage(selectBuilder, filter, userColumns, "name ASC")

	return fetchPage(ctx, r.storage, countBuilder, selectBuilder, scanUser, "list users")
}

func (r *userRepository) ListByRoles(ctx context.Context, roles ...entities.UserRole) ([]entities.User, error) {
	names := make([]string, len(roles))
	for i, role := range roles {
		names[i] = string(role)
	}
	builder := bd.Psql.Select(userFields).From(userTable).Where(sq.Eq{"role": names}).OrderBy("created_at ASC")
	return queryAll(ctx, r.storage, builder, scanUser, "list users by role")
}

func (r *userRepository) Create(ctx context.Context, u *entities.User) error {
	builder := bd.Psql.Insert(userTable).
		Columns("id", "email", "name", "role", "department", "avatar", "password_hash", "created_at").
		Values(u.ID, u.Email, u.Name, u.Role, u.Department, u.Avatar, u.PasswordHash, u.CreatedAt)
	_, err := execAffected(ctx, r.storage, builder, "create user")
	return uniqueEmail(err)
}

func (r *userRepository) Update(ctx context.Context, u *entities.User) error {
	builder := bd.Psql.Update(userTable).
		Set("email", u.Email).
		Set("name", u.Name).
		Set("role", u.Role).
		Set("department", u.Department).
		Set("avatar", u.Avatar).
		Set("password_hash", u.PasswordHash).
		Where(sq.Eq{"id": u.ID})
	return uniqueEmail(execOne(ctx, r.storage, builder, "update user", "user", u.ID))
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.storage, bd.Psql.Delete(userTable).Where(sq.Eq{"id": id}), "delete user", "user", id)
}

// uniqueEmail turns a unique_violation on users.email into a ValidationError.
func uniqueEmail(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return apperrors.NewValidationError("email", "a user with this email already exists")
	}
	return err
}
