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
	categoryTable  = "equipment_categories"
	categoryFields = "id, name, description, responsible, created_at"
)

var categoryColumns = map[string]string{
	"id":        "id",
	"name":      "name",
	"createdAt": "created_at",
}

type CategoryRepositoryInterface interface {
	FindByID(ctx context.Context, id string) (*entities.EquipmentCategory, error)
	List(ctx context.Context, filter types.Filter) ([]entities.EquipmentCategory, uint64, error)
	Create(ctx context.Context, c *entities.EquipmentCategory) error
	Update(ctx context.Context, c *entities.EquipmentCategory) error
	Delete(ctx context.Context, id string) error
}

type categoryRepository struct {
	storage querier
	logger  *zap.Logger
}

func NewCategoryRepository(storage *pgxpool.Pool, logger *zap.Logger) CategoryRepositoryInterface {
	return &categoryRepository{storage: storage, logger: logger}
}

func scanCategory(row rowScanner) (*entities.EquipmentCategory, error) {
	var c entities.EquipmentCategory
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Responsible, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id string) (*entities.EquipmentCategory, error) {
	builder := bd.Psql.Select(categoryFields).From(categoryTable).Where(sq.Eq{"id": id})
	return findOne(ctx, r.storage, builder, scanCategory, "category", id)
}

func (r *categoryRepository) List(ctx context.Context, filter types.Filter) ([]entities.EquipmentCategory, uint64, error) {
	countBuilder := bd.ApplySearch(bd.Psql.Select("COUNT(id)").From(categoryTable), filter.Search, "name")
	selectBuilder := bd.ApplySearch(bd.Psql.Select(categoryFields).From(categoryTable), filter.Search, "name")
	selectBuilder = bd.ApplyListParams(selectBuilder, filter, categoryColumns, "name ASC")
	countBuilder = bd.ApplyFilters(countBuilder, filter, categoryColumns)

	return fetchPage(ctx, r.storage, countBuilder, selectBuilder, scanCategory, "list categories")
}

func (r *categoryRepository) Create(ctx context.Context, c *entities.EquipmentCategory) error {
	builder := bd.Psql.Insert(categoryTable).
		Columns("id", "name", "description", "responsible", "created_at").
		Values(c.ID, c.Name, c.Description, c.Responsible, c.CreatedAt)
	_, err := execAffected(ctx, r.storage, builder, "create category")
	return err
}

func (r *categoryRepository) Update(ctx context.Context, c *entities.EquipmentCategory) error {
	builder := bd.Psql.Update(categoryTable).
		Set("name", c.Name).
		Set("description", c.Description).
		Set("responsible", c.Responsible).
		Where(sq.Eq{"id": c.ID})
	return execOne(ctx, r.storage, builder, "update category", "category", c.ID)
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.storage, bd.Psql.Delete(categoryTable).Where(sq.Eq{"id": id}), "delete category", "category", id)
}
