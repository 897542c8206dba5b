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
	equipmentTable  = "equipment"
	equipmentFields = "id, name, serial_number, category, department_id, assigned_to_user_id, purchase_date, warranty_expiry, location, maintenance_team_id, status, notes, scrap_date, created_at, updated_at"
)

var equipmentColumns = map[string]string{
	"id":                "id",
	"name":              "name",
	"serialNumber":      "serial_number",
	"category":          "category",
	"departmentId":      "department_id",
	"assignedToUserId":  "assigned_to_user_id",
	"maintenanceTeamId": "maintenance_team_id",
	"teamId":            "maintenance_team_id",
	"status":            "status",
	"location":          "location",
	"purchaseDate":      "purchase_date",
	"createdAt":         "created_at",
}

type EquipmentRepositoryInterface interface {
	FindByID(ctx context.Context, id string) (*entities.Equipment, error)
	List(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error)
	Create(ctx context.Context, e *entities.Equipment) error
	Update(ctx context.Context, e *entities.Equipment) error
	Delete(ctx context.Context, id string) error

	ClearTeam(ctx context.Context, teamID string) (int64, error)
	ClearCategory(ctx context.Context, categoryID string) (int64, error)
}

type equipmentRepository struct {
	storage querier
	logger  *zap.Logger
}

func NewEquipmentRepository(storage *pgxpool.Pool, logger *zap.Logger) EquipmentRepositoryInterface {
	return &equipmentRepository{storage: storage, logger: logger}
}

func scanEquipment(row rowScanner) (*entities.Equipment, error) {
	var e entities.Equipment
	err := row.Scan(
		&e.ID, &e.Name, &e.SerialNumber, &e.Category, &e.DepartmentID, &e.AssignedToUserID,
		&e.PurchaseDate, &e.WarrantyExpiry, &e.Location, &e.MaintenanceTeamID, &e.Status,
		&e.Notes, &e.ScrapDate, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *equipmentRepository) FindByID(ctx context.Context, id string) (*entities.Equipment, error) {
	builder := bd.Psql.Select(equipmentFields).From(equipmentTable).Where(sq.Eq{"id": id})
	return findOne(ctx, r.storage, builder, scanEquipment, "equipment", id)
}

func (r *equipmentRepository) where(builder sq.SelectBuilder, filter types.Filter) sq.SelectBuilder {
	builder = bd.ApplyFilters(builder, filter, equipmentColumns)
	return bd.ApplySearch(builder, filter.Search, "name", "serial_number", "location")
}

func (r *equipmentRepository) List(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error) {
	countBuilder := r.where(bd.Psql.Select("COUNT(id)").From(equipmentTable), filter)
	selectBuilder := r.where(bd.Psql.Select(equipmentFields).From(equipmentTable), filter)
	selectBuilder = bd.ApplySortAndPage(selectBuilder, filter, equipmentColumns, "name ASC")

	return fetchPage(ctx, r.storage, countBuilder, selectBuilder, scanEquipment, "list equipment")
}

func (r *equipmentRepository) Create(ctx context.Context, e *entities.Equipment) error {
	builder := bd.Psql.Insert(equipmentTable).
		Columns("id", "name", "serial_number", "category", "department_id", "assigned_to_user_id",
			"purchase_date", "warranty_expiry", "location", "maintenance_team_id", "status", "notes",
			"scrap_date", "created_at", "updated_at").
		Values(e.ID, e.Name, e.SerialNumber, e.Category, e.DepartmentID, e.AssignedToUserID,
			e.PurchaseDate, e.WarrantyExpiry, e.Location, e.MaintenanceTeamID, e.Status, e.Notes,
			e.ScrapDate, e.CreatedAt, e.UpdatedAt)
	_, err := execAffected(ctx, r.storage, builder, "create equipment")
	return err
}

func (r *equipmentRepository) Update(ctx context.Context, e *entities.Equipment) error {
	builder := bd.Psql.Update(equipmentTable).
		Set("name", e.Name).
		Set("serial_number", e.SerialNumber).
		Set("category", e.Category).
		Set("department_id", e.DepartmentID).
		Set("assigned_to_user_id", e.AssignedToUserID).
		Set("purchase_date", e.PurchaseDate).
		Set("warranty_expiry", e.WarrantyExpiry).
		Set("location", e.Location).
		Set("maintenance_team_id", e.MaintenanceTeamID).
		Set("status", e.Status).
		Set("notes", e.Notes).
		Set("scrap_date", e.ScrapDate).
		Set("updated_at", e.UpdatedAt).
		Where(sq.Eq{"id": e.ID})
	return execOne(ctx, r.storage, builder, "update equipment", "equipment", e.ID)
}

func (r *equipmentRepository) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.storage, bd.Psql.Delete(equipmentTable).Where(sq.Eq{"id": id}), "delete equipment", "equipment", id)
}

func (r *equipmentRepository) ClearTeam(ctx context.Context, teamID string) (int64, error) {
	builder := bd.Psql.Update(equipmentTable).
		Set("maintenance_team_id", "").
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"maintenance_team_id": teamID})
	return execAffected(ctx, r.storage, builder, "clear equipment team")
}

func (r *equipmentRepository) ClearCategory(ctx context.Context, categoryID string) (int64, error) {
	builder := bd.Psql.Update(equipmentTable).
		Set("category", "").
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"category": categoryID})
	return execAffected(ctx, r.storage, builder, "clear equipment category")
}
