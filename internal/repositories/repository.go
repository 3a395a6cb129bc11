package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	intconfig "backoffice/internal/config"
	intdb "backoffice/internal/db"
	"backoffice/internal/domain"
	"backoffice/internal/query"
)

func dbOrDefault(db *sql.DB) *sql.DB {
	if db != nil {
		return db
	}
	return intconfig.DB
}

// notFound maps sql.ErrNoRows onto a domain.NotFoundError.
func notFound(err error, resource string, id int64) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError{Resource: resource, ID: id, Err: err}
	}
	return err
}

// conflict maps duplicate-key and foreign-key errors onto a domain.ConflictError.
func conflict(err error, resource, msg string) error {
	if intdb.IsDuplicateKey(err) || intdb.IsForeignKey(err) {
		return domain.ConflictError{Resource: resource, Msg: msg, Err: err}
	}
	return err
}

// countAndPage runs the COUNT(*) for clause and returns the paged SELECT with its args.
func countAndPage(ctx context.Context, q intdb.Querier, table, columns string, clause query.Clause, p domain.ListParams) (int, string, []any, error) {
	var total int
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table+clause.Where, clause.Args...).Scan(&total); err != nil {
		return 0, "", nil, fmt.Errorf("count %s: %w", table, err)
	}
	stmt := `SELECT ` + columns + ` FROM ` + table + clause.Where + clause.OrderBy + ` LIMIT ? OFFSET ?`
	args := append(append([]any(nil), clause.Args...), p.Size, p.Offset())
	return total, stmt, args, nil
}

// mustAffect turns a zero-row UPDATE/DELETE into a NotFoundError.
func mustAffect(res sql.Result, resource string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError{Resource: resource, ID: id}
	}
	return nil
}
