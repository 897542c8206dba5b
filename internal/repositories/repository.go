package repositories

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	apperrors "gearguard/pkg/errors"
)

// rowScanner is satisfied by pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanOne maps pgx.ErrNoRows onto a NotFoundError for kind/id and wraps anything else as a StoreError.
func scanOne[T any](row pgx.Row, scan func(rowScanner) (*T, error), kind, id string) (*T, error) {
	v, err := scan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(kind, id)
		}
		return nil, apperrors.NewStoreError("scan "+kind, err)
	}
	return v, nil
}

// queryAll runs builder and scans every row.
func queryAll[T any](ctx context.Context, q querier, builder sq.SelectBuilder, scan func(rowScanner) (*T, error), op string) ([]T, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, apperrors.NewStoreError(op, err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewStoreError(op, err)
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, apperrors.NewStoreError(op, err)
		}
		out = append(out, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError(op, err)
	}
	return out, nil
}

// fetchPage runs countBuilder and then selectBuilder; both must carry the same WHERE clause.
func fetchPage[T any](ctx context.Context, q querier, countBuilder, selectBuilder sq.SelectBuilder, scan func(rowScanner) (*T, error), op string) ([]T, uint64, error) {
	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, apperrors.NewStoreError(op, err)
	}

	var total uint64
	if err := q.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewStoreError(op+" count", err)
	}
	if total == 0 {
		return []T{}, 0, nil
	}

	items, err := queryAll(ctx, q, selectBuilder, scan, op)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// execAffected runs a write and returns the number of affected rows.
func execAffected(ctx context.Context, q querier, builder sq.Sqlizer, op string) (int64, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return 0, apperrors.NewStoreError(op, err)
	}
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return 0, apperrors.NewStoreError(op, err)
	}
	return tag.RowsAffected(), nil
}

// execOne runs a write that must touch exactly one existing row.
func execOne(ctx context.Context, q querier, builder sq.Sqlizer, op, kind, id string) error {
	n, err := execAffected(ctx, q, builder, op)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NewNotFoundError(kind, id)
	}
	return nil
}

// findOne runs builder and scans a single row, NotFoundError when there is none.
func findOne[T any](ctx context.Context, q querier, builder sq.SelectBuilder, scan func(rowScanner) (*T, error), kind, id string) (*T, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, apperrors.NewStoreError("find "+kind, err)
	}
	return scanOne(q.QueryRow(ctx, query, args...), scan, kind, id)
}
