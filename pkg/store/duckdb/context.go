package duckdb

import (
	"context"
	"database/sql"
)

type txKey struct{}

// WithTransaction makes stores called with the returned context write through tx.
func WithTransaction(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

func GetTransaction(ctx context.Context) *sql.Tx {
	tx, _ := ctx.Value(txKey{}).(*sql.Tx)
	return tx
}

// Conn is the subset of *sql.DB and *sql.Tx the stores go through.
type Conn interface {
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Execer returns the transaction bound to ctx, or db when there is none.
func Execer(ctx context.Context, db *sql.DB) Conn {
	if tx := GetTransaction(ctx); tx != nil {
		return tx
	}
	return db
}
