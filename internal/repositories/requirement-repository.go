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
	requirementTable  = "requirements"
	requirementFields = "id, request_id, submitted_by, pricing, products, notes, status, submitted_at, approved_at"
)

var requirementColumns = map[string]string{
	"id":          "id",
	"requestId":   "request_id",
	"submittedBy": "submitted_by",
	"status":      "status",
	"pricing":     "pricing",
	"submittedAt": "submitted_at",
}

type RequirementRepositoryInterface interface {
	FindByID(ctx context.Context, id string) (*entities.Requirement, error)
	List(ctx context.Context, filter types.Filter) ([]entities.Requirement, uint64, error)
	ListByRequests(ctx context.Context, requestIDs ...string) ([]entities.Requirement, error)
	Create(ctx context.Context, req *entities.Requirement) error
	Update(ctx context.Context, req *entities.Requirement) error
	DeleteByRequest(ctx context.Context, requestID string) (int64, error)
}

type requirementRepository struct {
	storage querier
	logger  *zap.Logger
}

func NewRequirementRepository(storage *pgxpool.Pool, logger *zap.Logger) RequirementRepositoryInterface {
	return &requirementRepository{storage: storage, logger: logger}
}

func scanRequirement(row rowScanner) (*entities.Requirement, error) {
	var req entities.Requirement
	err := row.Scan(&req.ID, &req.RequestID, &req.SubmittedBy, &req.Pricing, &req.Products,
		&req.Notes, &req.Status, &req.SubmittedAt, &req.ApprovedAt)
	if err != nil {
		return nil, err
	}
	if req.Products == nil {
		req.Products = []string{}
	}
	return &req, nil
}

func (r *requirementRepository) FindByID(ctx context.Context, id string) (*entities.Requirement, error) {
	builder := bd.Psql.Select(requirementFields).From(requirementTable).Where(sq.Eq{"id": id})
	return findOne(ctx, r.storage, builder, scanRequirement, "requirement", id)
}

func (r *requirementRepository) List(ctx context.Context, filter types.Filter) ([]entities.Requirement, uint64, error) {
	countBuilder := bd.ApplyFilters(bd.Psql.Select("COUNT(id)").From(requirementTable), filter, requirementColumns)
	selectBuilder := bd.ApplyListParams(bd.Psql.Select(requirementFields).From(requirementTable), filter, requirementColumns, "submitted_at DESC")

	return fetchPage(ctx, r.storage, countBuilder, selectBuilder, scanRequirement, "list requirements")
}

func (r *requirementRepository) ListByRequests(ctx context.Context, requestIDs ...string) ([]entities.Requirement, error) {
	if len(requestIDs) == 0 {
		return []entities.Requirement{}, nil
	}
	builder := bd.Psql.Select(requirementFields).From(requirementTable).
		Where(sq.Eq{"request_id": requestIDs}).
		OrderBy("submitted_at DESC")
	return queryAll(ctx, r.storage, builder, scanRequirement, "list requirements by request")
}

func (r *requirementRepository) Create(ctx context.Context, req *entities.Requirement) error {
	builder := bd.Psql.Insert(requirementTable).
		Columns("id", "request_id", "submitted_by", "pricing", "products", "notes", "status", "submitted_at", "approved_at").
		Values(req.ID, req.RequestID, req.SubmittedBy, req.Pricing, req.Products, req.Notes, req.Status, req.SubmittedAt, req.ApprovedAt)
	_, err := execAffected(ctx, r.storage, builder, "create requirement")
	return err
}

func (r *requirementRepository) Update(ctx context.Context, req *entities.Requirement) error {
	builder := bd.Psql.Update(requirementTable).
		Set("pricing", req.Pricing).
		Set("products", req.Products).
		Set("notes", req.Notes).
		Set("status", req.Status).
		Set("approved_at", req.ApprovedAt).
		Where(sq.Eq{"id": req.ID})
	return execOne(ctx, r.storage, builder, "update requirement", "requirement", req.ID)
}

func (r *requirementRepository) DeleteByRequest(ctx context.Context, requestID string) (int64, error) {
	return execAffected(ctx, r.storage, bd.Psql.Delete(requirementTable).Where(sq.Eq{"request_id": requestID}), "delete requirements")
}
