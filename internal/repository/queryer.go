package repository

import (
	"context"
	"database/sql"
)

// queryer is satisfied by both *sql.DB and *sql.Tx so read helpers can run
// inside or outside a transaction.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// finishTx commits when *errp is nil and rolls back otherwise.  A commit
// failure is reported through errp.
func finishTx(tx *sql.Tx, errp *error) {
	if *errp != nil {
		_ = tx.Rollback()
		return
	}
	*errp = tx.Commit()
}
