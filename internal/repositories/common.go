package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	intdb "busbooking/internal/db"
	"busbooking/internal/domain"
)

type rowScanner interface {
	Scan(dest ...any) error
}

// mapWriteErr translates driver errors from an INSERT/UPDATE/DELETE into domain errors.
func mapWriteErr(table, resource string, err error) error {
	if err == nil {
		return nil
	}
	if key, ok := intdb.DuplicateKey(err); ok {
		return domain.UniquenessError{Resource: resource, Field: intdb.KeyField(table, key), Err: err}
	}
	if intdb.IsRowReferenced(err) {
		return domain.ConflictError{Resource: resource, Msg: resource + " is referenced by other records", Err: err}
	}
	if intdb.IsMissingParent(err) {
		return domain.ValidationError{Msg: "referenced record does not exist", Err: err}
	}
	return domain.InternalError{Err: err}
}

// mapReadErr turns sql.ErrNoRows into NotFoundError.
func mapReadErr(resource string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError{Resource: resource, Err: err}
	}
	return domain.InternalError{Err: err}
}

func deleteByID(ctx context.Context, q intdb.DBTX, table, resource string, id int64) error {
	res, err := q.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return mapWriteErr(table, resource, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n == 0 {
		return domain.NotFoundError{Resource: resource}
	}
	return nil
}

func lastInsertID(res sql.Result) (int64, error) {
	id, err := res.LastInsertId()
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return id, nil
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func int64Args(ids []int64) []any {
	out := make([]any, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return out
}
