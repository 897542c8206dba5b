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
	trackingLogTable  = "tracking_logs"
	trackingLogFields = "id, request_id, description, created_by, created_at"
)

var trackingLogColumns = map[string]string{
	"id":        "id",
	"requestId": "request_id",
	"createdBy": "created_by",
	"createdAt": "created_at",
}

type TrackingLogRepositoryInterface interface {
	List(ctx context.Context, filter types.Filter) ([]entities.TrackingLog, uint64, error)
	ListByRequests(ctx context.Context, requestIDs ...string) ([]entities.TrackingLog, error)
	Create(ctx context.Context, l *entities.TrackingLog) error
	DeleteByRequest(ctx context.Context, requestID string) (int64, error)
}

type trackingLogRepository struct {
	storage querier
	logger  *zap.Logger
}

func NewTrackingLogRepository(storage *pgxpool.Pool, logger *zap.Logger) TrackingLogRepositoryInterface {
	return &trackingLogRepository{storage: storage, logger: logger}
}

func scanTrackingLog(row rowScanner) (*entities.TrackingLog, error) {
	var l entities.TrackingLog
	if err := row.Scan(&l.ID, &l.RequestID, &l.Description, &l.CreatedBy, &l.CreatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *trackingLogRepository) List(ctx context.Context, filter types.Filter) ([]entities.TrackingLog, uint64, error) {
	countBuilder := bd.ApplyFilters(bd.Psql.Select("COUNT(id)").From(trackingLogTable), filter, trackingLogColumns)
	selectBuilder := bd.ApplyListParams(bd.Psql.Select(trackingLogFields).From(trackingLogTable), filter, trackingLogColumns, "created_at DESC")

	return fetchPage(ctx, r.storage, countBuilder, selectBuilder, scanTrackingLog, "list tracking logs")
}

func (r *trackingLogRepository) ListByRequests(ctx context.Context, requestIDs ...string) ([]entities.TrackingLog, error) {
	if len(requestIDs) == 0 {
		return []entities.TrackingLog{}, nil
	}
	builder := bd.Psql.Select(trackingLogFields).From(trackingLogTable).
		Where(sq.Eq{"request_id": requestIDs}).
		OrderBy("created_at DESC")
	return queryAll(ctx, r.storage, builder, scanTrackingLog, "list tracking logs by request")
}

func (r *trackingLogRepository) Create(ctx context.Context, l *entities.TrackingLog) error {
	builder := bd.Psql.Insert(trackingLogTable).
		Columns("id", "request_id", "description", "created_by", "created_at").
		Values(l.ID, l.RequestID, l.Description, l.CreatedBy, l.CreatedAt)
	_, err := execAffected(ctx, r.storage, builder, "create tracking log")
	return err
}

func (r *trackingLogRepository) DeleteByRequest(ctx context.Context, requestID string) (int64, error) {
	return execAffected(ctx, r.storage, bd.Psql.Delete(trackingLogTable).Where(sq.Eq{"request_id": requestID}), "delete tracking logs")
}
