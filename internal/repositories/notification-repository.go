package repositories

import (
	"context"
	"strconv"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"gearguard/internal/entities"
	"gearguard/internal/infrastructure/bd"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"
)

const (
	notificationTable  = "notifications"
	notificationFields = "id, user_id, type, title, message, related_id, related_type, is_read, created_at"
)

var notificationColumns = map[string]string{
	"id":          "id",
	"userId":      "user_id",
	"type":        "type",
	"relatedId":   "related_id",
	"relatedType": "related_type",
	"createdAt":   "created_at",
}

type NotificationRepositoryInterface interface {
	FindByID(ctx context.Context, id string) (*entities.Notification, error)
	// List supports userId, type, isRead and related filters, newest first by default.
	List(ctx context.Context, filter types.Filter) ([]entities.Notification, uint64, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	Create(ctx context.Context, n *entities.Notification) error
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, id string) error
}

type notificationRepository struct {
	storage querier
	logger  *zap.Logger
}

func NewNotificationRepository(storage *pgxpool.Pool, logger *zap.Logger) NotificationRepositoryInterface {
	return &notificationRepository{storage: storage, logger: logger}
}

func scanNotification(row rowScanner) (*entities.Notification, error) {
	var (
		n                      entities.Notification
		relatedID, relatedType null.String
	)
	if err := row.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &relatedID, &relatedType, &n.IsRead, &n.CreatedAt); err != nil {
		return nil, err
	}
	related, err := entities.NewRelated(relatedType.String, relatedID.String)
	if err != nil {
		return nil, err
	}
	n.Related = related
	return &n, nil
}

func (r *notificationRepository) FindByID(ctx context.Context, id string) (*entities.Notification, error) {
	builder := bd.Psql.Select(notificationFields).From(notificationTable).Where(sq.Eq{"id": id})
	return findOne(ctx, r.storage, builder, scanNotification, "notification", id)
}

func (r *notificationRepository) where(builder sq.SelectBuilder, filter types.Filter) sq.SelectBuilder {
	builder = bd.ApplyFilters(builder, filter, notificationColumns)
	if raw := filter.String("isRead"); raw != "" {
		if isRead, err := strconv.ParseBool(raw); err == nil {
			builder = builder.Where(sq.Eq{"is_read": isRead})
		}
	}
	return bd.ApplySearch(builder, filter.Search, "title", "message")
}

func (r *notificationRepository) List(ctx context.Context, filter types.Filter) ([]entities.Notification, uint64, error) {
	countBuilder := r.where(bd.Psql.Select("COUNT(id)").From(notificationTable), filter)
	selectBuilder := r.where(bd.Psql.Select(notificationFields).From(notificationTable), filter)
	selectBuilder = bd.ApplySortAndPage(selectBuilder, filter, notificationColumns, "created_at DESC")

	return fetchPage(ctx, r.storage, countBuilder, selectBuilder, scanNotification, "list notifications")
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	query, args, err := bd.Psql.Select("COUNT(id)").From(notificationTable).
		Where(sq.Eq{"user_id": userID, "is_read": false}).
		ToSql()
	if err != nil {
		return 0, apperrors.NewStoreError("count unread notifications", err)
	}
	var count int
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.NewStoreError("count unread notifications", err)
	}
	return count, nil
}

func (r *notificationRepository) Create(ctx context.Context, n *entities.Notification) error {
	var relatedID, relatedType null.String
	if n.Related != nil {
		relatedID = null.StringFrom(n.Related.RelatedID())
		relatedType = null.StringFrom(string(n.Related.RelatedType()))
	}
	builder := bd.Psql.Insert(notificationTable).
		Columns("id", "user_id", "type", "title", "message", "related_id", "related_type", "is_read", "created_at").
		Values(n.ID, n.UserID, n.Type, n.Title, n.Message, relatedID, relatedType, n.IsRead, n.CreatedAt)
	_, err := execAffected(ctx, r.storage, builder, "create notification")
	return err
}

func (r *notificationRepository) MarkRead(ctx context.Context, id string) error {
	builder := bd.Psql.Update(notificationTable).Set("is_read", true).Where(sq.Eq{"id": id})
	return execOne(ctx, r.storage, builder, "mark notification read", "notification", id)
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	builder := bd.Psql.Update(notificationTable).Set("is_read", true).
		Where(sq.Eq{"user_id": userID, "is_read": false})
	return execAffected(ctx, r.storage, builder, "mark all notifications read")
}

func (r *notificationRepository) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.storage, bd.Psql.Delete(notificationTable).Where(sq.Eq{"id": id}), "delete notification", "notification", id)
}
