package repositories

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"gearguard/internal/entities"
	"gearguard/internal/infrastructure/bd"
	"gearguard/pkg/types"
)

const (
	requestTable  = "maintenance_requests"
	requestFields = "id, subject, description, type, equipment_id, requested_by_user_id, assigned_to_user_id, team_id, stage, priority, category, work_center_id, scheduled_date, completed_date, accepted_at, duration_hours, notes, created_at, updated_at"
)

var requestColumns = map[string]string{
	"id":                "id",
	"teamId":            "team_id",
	"stage":             "stage",
	"type":              "type",
	"priority":          "priority",
	"category":          "category",
	"equipmentId":       "equipment_id",
	"assignedToUserId":  "assigned_to_user_id",
	"requestedByUserId": "requested_by_user_id",
	"workCenterId":      "work_center_id",
	"scheduledDate":     "scheduled_date",
	"createdAt":         "created_at",
	"updatedAt":         "updated_at",
	"subject":           "subject",
}

type MaintenanceRequestRepositoryInterface interface {
	FindByID(ctx context.Context, id string) (*entities.MaintenanceRequest, error)
	List(ctx context.Context, filter types.Filter) ([]entities.MaintenanceRequest, uint64, error)
	ListByEquipment(ctx context.Context, equipmentID string) ([]entities.MaintenanceRequest, error)
	// ListScheduled returns requests with a scheduled date inside [from, to); zero bounds are open.
	ListScheduled(ctx context.Context, filter types.Filter, from, to time.Time) ([]entities.MaintenanceRequest, error)
	Create(ctx context.Context, r *entities.MaintenanceRequest) error
	// Update overwrites the stored record with r.
	Update(ctx context.Context, r *entities.MaintenanceRequest) error
	Delete(ctx context.Context, id string) error

	ClearTeam(ctx context.Context, teamID string) (int64, error)
	ClearAssignee(ctx context.Context, userID string) (int64, error)
	ClearCategory(ctx context.Context, category string) (int64, error)
	ClearWorkCenter(ctx context.Context, workCenterID string) (int64, error)
}

type maintenanceRequestRepository struct {
	storage querier
	logger  *zap.Logger
}

func NewMaintenanceRequestRepository(storage *pgxpool.Pool, logger *zap.Logger) MaintenanceRequestRepositoryInterface {
	return &maintenanceRequestRepository{storage: storage, logger: logger}
}

func scanRequest(row rowScanner) (*entities.MaintenanceRequest, error) {
	var r entities.MaintenanceRequest
	err := row.Scan(
		&r.ID, &r.Subject, &r.Description, &r.Type, &r.EquipmentID, &r.RequestedByUserID,
		&r.AssignedToUserID, &r.TeamID, &r.Stage, &r.Priority, &r.Category, &r.WorkCenterID,
		&r.ScheduledDate, &r.CompletedDate, &r.AcceptedAt, &r.DurationHours, &r.Notes,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *maintenanceRequestRepository) FindByID(ctx context.Context, id string) (*entities.MaintenanceRequest, error) {
	builder := bd.Psql.Select(requestFields).From(requestTable).Where(sq.Eq{"id": id})
	return findOne(ctx, r.storage, builder, scanRequest, "request", id)
}

func (r *maintenanceRequestRepository) where(builder sq.SelectBuilder, filter types.Filter) sq.SelectBuilder {
	builder = bd.ApplyFilters(builder, filter, requestColumns)
	builder = bd.ApplySearch(builder, filter.Search, "subject", "description", "notes")
	return builder
}

func (r *maintenanceRequestRepository) List(ctx context.Context, filter types.Filter) ([]entities.MaintenanceRequest, uint64, error) {
	countBuilder := r.where(bd.Psql.Select("COUNT(id)").From(requestTable), filter)
	selectBuilder := r.where(bd.Psql.Select(requestFields).From(requestTable), filter)
	selectBuilder = bd.ApplySortAndPage(selectBuilder, filter, requestColumns, "created_at DESC")

	return fetchPage(ctx, r.storage, countBuilder, selectBuilder, scanRequest, "list requests")
}

func (r *maintenanceRequestRepository) ListByEquipment(ctx context.Context, equipmentID string) ([]entities.MaintenanceRequest, error) {
	builder := bd.Psql.Select(requestFields).From(requestTable).
		Where(sq.Eq{"equipment_id": equipmentID}).
		OrderBy("created_at DESC")
	return queryAll(ctx, r.storage, builder, scanRequest, "list requests by equipment")
}

func (r *maintenanceRequestRepository) ListScheduled(ctx context.Context, filter types.Filter, from, to time.Time) ([]entities.MaintenanceRequest, error) {
	builder := bd.Psql.Select(requestFields).From(requestTable).Where(sq.NotEq{"scheduled_date": nil})
	builder = bd.ApplyFilters(builder, filter, requestColumns)
	if !from.IsZero() {
		builder = builder.Where(sq.GtOrEq{"scheduled_date": from})
	}
	if !to.IsZero() {
		builder = builder.Where(sq.Lt{"scheduled_date": to})
	}
	builder = builder.OrderBy("scheduled_date ASC")
	return queryAll(ctx, r.storage, builder, scanRequest, "list scheduled requests")
}

func (r *maintenanceRequestRepository) Create(ctx context.Context, m *entities.MaintenanceRequest) error {
	builder := bd.Psql.Insert(requestTable).
		Columns("id", "subject", "description", "type", "equipment_id", "requested_by_user_id",
			"assigned_to_user_id", "team_id", "stage", "priority", "category", "work_center_id",
			"scheduled_date", "completed_date", "accepted_at", "duration_hours", "notes",
			"created_at", "updated_at").
		Values(m.ID, m.Subject, m.Description, m.Type, m.EquipmentID, m.RequestedByUserID,
			m.AssignedToUserID, m.TeamID, m.Stage, m.Priority, m.Category, m.WorkCenterID,
			m.ScheduledDate, m.CompletedDate, m.AcceptedAt, m.DurationHours, m.Notes,
			m.CreatedAt, m.UpdatedAt)
	_, err := execAffected(ctx, r.storage, builder, "create request")
	return err
}

func (r *maintenanceRequestRepository) Update(ctx context.Context, m *entities.MaintenanceRequest) error {
	builder := bd.Psql.Update(requestTable).
		Set("subject", m.Subject).
		Set("description", m.Description).
		Set("type", m.Type).
		Set("equipment_id", m.EquipmentID).
		Set("requested_by_user_id", m.RequestedByUserID).
		Set("assigned_to_user_id", m.AssignedToUserID).
		Set("team_id", m.TeamID).
		Set("stage", m.Stage).
		Set("priority", m.Priority).
		Set("category", m.Category).
		Set("work_center_id", m.WorkCenterID).
		Set("scheduled_date", m.ScheduledDate).
		Set("completed_date", m.CompletedDate).
		Set("accepted_at", m.AcceptedAt).
		Set("duration_hours", m.DurationHours).
		Set("notes", m.Notes).
		Set("updated_at", m.UpdatedAt).
		Where(sq.Eq{"id": m.ID})
	return execOne(ctx, r.storage, builder, "update request", "request", m.ID)
}

func (r *maintenanceRequestRepository) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.storage, bd.Psql.Delete(requestTable).Where(sq.Eq{"id": id}), "delete request", "request", id)
}

func (r *maintenanceRequestRepository) clear(ctx context.Context, column, value string, blank interface{}) (int64, error) {
	builder := bd.Psql.Update(requestTable).
		Set(column, blank).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{column: value})
	n, err := execAffected(ctx, r.storage, builder, "clear request "+column)
	if err == nil && n > 0 {
		r.logger.Debug("cleared request references", zap.String("column", column), zap.String("value", value), zap.Int64("rows", n))
	}
	return n, err
}

func (r *maintenanceRequestRepository) ClearTeam(ctx context.Context, teamID string) (int64, error) {
	return r.clear(ctx, "team_id", teamID, "")
}

func (r *maintenanceRequestRepository) ClearAssignee(ctx context.Context, userID string) (int64, error) {
	return r.clear(ctx, "assigned_to_user_id", userID, nil)
}

func (r *maintenanceRequestRepository) ClearCategory(ctx context.Context, category string) (int64, error) {
	return r.clear(ctx, "category", category, "")
}

func (r *maintenanceRequestRepository) ClearWorkCenter(ctx context.Context, workCenterID string) (int64, error) {
	return r.clear(ctx, "work_center_id", workCenterID, nil)
}
