package repositories

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"gearguard/internal/entities"
	"gearguard/internal/infrastructure/bd"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"
)

type ReportRepositoryInterface interface {
	Summary(ctx context.Context, filter entities.ReportFilter, now time.Time) (types.RequestSummary, error)
	Rows(ctx context.Context, filter entities.ReportFilter, now time.Time) ([]entities.ReportRow, error)
}

type reportRepository struct {
	storage querier
	logger  *zap.Logger
}

func NewReportRepository(storage *pgxpool.Pool, logger *zap.Logger) ReportRepositoryInterface {
	return &reportRepository{storage: storage, logger: logger}
}

func applyReportFilter(builder sq.SelectBuilder, filter entities.ReportFilter) sq.SelectBuilder {
	if filter.TeamID != "" {
		builder = builder.Where(sq.Eq{"r.team_id": filter.TeamID})
	}
	if filter.Type != "" {
		builder = builder.Where(sq.Eq{"r.type": filter.Type})
	}
	if filter.DateFrom.Valid {
		builder = builder.Where(sq.GtOrEq{"r.created_at": filter.DateFrom.Time})
	}
	if filter.DateTo.Valid {
		builder = builder.Where(sq.Lt{"r.created_at": filter.DateTo.Time})
	}
	return builder
}

// overdueExpr mirrors MaintenanceRequest.Overdue.
const overdueExpr = "(r.scheduled_date IS NOT NULL AND r.stage NOT IN ('Repaired', 'Scrap') AND r.scheduled_date < ?)"

func (r *reportRepository) groupCount(ctx context.Context, filter entities.ReportFilter, column string) (map[string]int, error) {
	builder := applyReportFilter(bd.Psql.Select(column, "COUNT(*)").From(requestTable+" r"), filter).GroupBy(column)
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, apperrors.NewStoreError("report group "+column, err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewStoreError("report group "+column, err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return nil, apperrors.NewStoreError("report group "+column, err)
		}
		out[key] = count
	}
	return out, rows.Err()
}

func (r *reportRepository) Summary(ctx context.Context, filter entities.ReportFilter, now time.Time) (types.RequestSummary, error) {
	summary := types.NewRequestSummary()

	totals := bd.Psql.Select("COUNT(*)").
		Column(sq.Expr("COUNT(*) FILTER (WHERE "+overdueExpr+")", now)).
		Column("COALESCE(AVG(r.duration_hours), 0)").
		From(requestTable + " r")
	query, args, err := applyReportFilter(totals, filter).ToSql()
	if err != nil {
		return summary, apperrors.NewStoreError("report totals", err)
	}
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&summary.Total, &summary.Overdue, &summary.AvgDuration); err != nil {
		return summary, apperrors.NewStoreError("report totals", err)
	}

	groups := []struct {
		column string
		dst    *map[string]int
	}{
		{"r.stage", &summary.ByStage},
		{"r.type", &summary.ByType},
		{"r.team_id", &summary.ByTeam},
		{"r.priority", &summary.ByPriority},
	}
	for _, g := range groups {
		counts, err := r.groupCount(ctx, filter, g.column)
		if err != nil {
			return summary, err
		}
		*g.dst = counts
	}
	return summary, nil
}

func (r *reportRepository) Rows(ctx context.Context, filter entities.ReportFilter, now time.Time) ([]entities.ReportRow, error) {
	builder := bd.Psql.Select(
		"r.id", "r.subject", "r.type", "r.stage", "r.priority",
		"e.name", "t.name", "a.name", "q.name",
		"r.scheduled_date", "r.completed_date", "r.duration_hours", "r.created_at",
	).
		From(requestTable + " r").
		LeftJoin(equipmentTable + " e ON e.id = r.equipment_id").
		LeftJoin(teamTable + " t ON t.id = r.team_id").
		LeftJoin(userTable + " a ON a.id = r.assigned_to_user_id").
		LeftJoin(userTable + " q ON q.id = r.requested_by_user_id")
	builder = applyReportFilter(builder, filter).OrderBy("r.created_at DESC")

	scan := func(row rowScanner) (*entities.ReportRow, error) {
		var rr entities.ReportRow
		err := row.Scan(&rr.ID, &rr.Subject, &rr.Type, &rr.Stage, &rr.Priority,
			&rr.EquipmentName, &rr.TeamName, &rr.AssigneeName, &rr.RequesterName,
			&rr.ScheduledDate, &rr.CompletedDate, &rr.DurationHours, &rr.CreatedAt)
		if err != nil {
			return nil, err
		}
		rr.IsOverdue = rr.ScheduledDate.Valid && !rr.Stage.IsTerminal() && rr.ScheduledDate.Time.Before(now)
		return &rr, nil
	}
	return queryAll(ctx, r.storage, builder, scan, "report rows")
}
