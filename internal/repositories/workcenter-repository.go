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
	workCenterTable  = "work_centers"
	workCenterFields = "id, name, cost, cost_per_hour, allocated_man_hours, description, created_at"
)

var workCenterColumns = map[string]string{
	"id":          "id",
	"name":        "name",
	"cost":        "cost",
	"costPerHour": "cost_per_hour",
	"createdAt":   "created_at",
}

type WorkCenterRepositoryInterface interface {
	FindByID(ctx context.Context, id string) (*entities.WorkCenter, error)
	List(ctx context.Context, filter types.Filter) ([]entities.WorkCenter, uint64, error)
	Create(ctx context.Context, w *entities.WorkCenter) error
	Update(ctx context.Context, w *entities.WorkCenter) error
	Delete(ctx context.Context, id string) error
}

type workCenterRepository struct {
	storage querier
	logger  *zap.Logger
}

func NewWorkCenterRepository(storage *pgxpool.Pool, logger *zap.Logger) WorkCenterRepositoryInterface {
	return &workCenterRepository{storage: storage, logger: logger}
}

func scanWorkCenter(row rowScanner) (*entities.WorkCenter, error) {
	var w entities.WorkCenter
	if err := row.Scan(&w.ID, &w.Name, &w.Cost, &w.CostPerHour, &w.AllocatedManHours, &w.Description, &w.CreatedAt); err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *workCenterRepository) FindByID(ctx context.Context, id string) (*entities.WorkCenter, error) {
	builder := bd.Psql.Select(workCenterFields).From(workCenterTable).Where(sq.Eq{"id": id})
	return findOne(ctx, r.storage, builder, scanWorkCenter, "work center", id)
}

func (r *workCenterRepository) List(ctx context.Context, filter types.Filter) ([]entities.WorkCenter, uint64, error) {
	countBuilder := bd.ApplySearch(bd.Psql.Select("COUNT(id)").From(workCenterTable), filter.Search, "name")
	selectBuilder := bd.ApplySearch(bd.Psql.Select(workCenterFields).From(workCenterTable), filter.Search, "name")
	countBuilder = bd.ApplyFilters(countBuilder, filter, workCenterColumns)
	selectBuilder = bd.ApplyListParams(selectBuilder, filter, workCenterColumns, "name ASC")

	return fetchPage(ctx, r.storage, countBuilder, selectBuilder, scanWorkCenter, "list work centers")
}

func (r *workCenterRepository) Create(ctx context.Context, w *entities.WorkCenter) error {
	builder := bd.Psql.Insert(workCenterTable).
		Columns("id", "name", "cost", "cost_per_hour", "allocated_man_hours", "description", "created_at").
		Values(w.ID, w.Name, w.Cost, w.CostPerHour, w.AllocatedManHours, w.Description, w.CreatedAt)
	_, err := execAffected(ctx, r.storage, builder, "create work center")
	return err
}

func (r *workCenterRepository) Update(ctx context.Context, w *entities.WorkCenter) error {
	builder := bd.Psql.Update(workCenterTable).
		Set("name", w.Name).
		Set("cost", w.Cost).
		Set("cost_per_hour", w.CostPerHour).
		Set("allocated_man_hours", w.AllocatedManHours).
		Set("description", w.Description).
		Where(sq.Eq{"id": w.ID})
	return execOne(ctx, r.storage, builder, "update work center", "work center", w.ID)
}

func (r *workCenterRepository) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.storage, bd.Psql.Delete(workCenterTable).Where(sq.Eq{"id": id}), "delete work center", "work center", id)
}
