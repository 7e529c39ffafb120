// Package repository is the MySQL implementation of the core's store
// contract.  Version tokens are BIGINT counters bumped inside every
// UPDATE/DELETE and compared in the WHERE clause, so a concurrent
// writer makes the statement affect zero rows and the caller's unit of
// work rolls back.
package repository

import (
	"context"
	"database/sql"

	"github.com/cinematix/cinema-ticket-system/internal/booking"
)

// queryer is satisfied by both *sql.DB and *sql.Tx, letting every store
// method run either standalone or inside a unit of work.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store implements booking.Store on top of a queryer.
type Store struct {
	q queryer
}

// DB implements booking.DB.  Standalone calls run on the pool; InTx
// binds a Store to a transaction.
type DB struct {
	Store
	db *sql.DB
}

// NewDB wraps an open MySQL pool.
func NewDB(db *sql.DB) *DB {
	return &DB{Store: Store{q: db}, db: db}
}

// InTx runs fn against a transactional store.  The transaction is
// rolled back unless fn returns nil and the commit succeeds; the
// deferred rollback also fires on panics so no transaction is ever left
// open.
func (d *DB) InTx(ctx context.Context, fn func(booking.Store) error) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := fn(&Store{q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
