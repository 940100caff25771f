// Package sqlite implementa los puertos de almacenamiento sobre SQLite (modo local).
// Misma semántica que el backend PostgreSQL; se elige al arrancar con DB_DRIVER.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/mattn/go-sqlite3"

	"github.com/jhoicas/bev-flow/internal/domain"
)

// Querier abstrae *sql.DB y *sql.Tx para que los repositorios funcionen dentro o fuera de una transacción.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// Open abre la base SQLite en path (WAL, foreign keys, transacciones IMMEDIATE) y aplica el esquema.
// ":memory:" se limita a una conexión: cada conexión en memoria sería una base distinta.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000&_txlock=immediate", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate crea las tablas si no existen.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrar esquema sqlite: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// mapWriteError traduce violaciones de FK (producto inexistente) a domain.ErrNotFound.
func mapWriteError(op string, err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}
