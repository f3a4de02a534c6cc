// Copyright 2026 SGNL.ai, Inc.

// Package database is the Database adapter family of spec.md §4.2,
// grounded on the teacher's pkg/my-sql: connect via database/sql with a
// pooled *sql.DB, execute through prepared statements to guard against SQL
// injection. Query building is handed to goqu rather than the teacher's
// raw fmt.Sprintf DSN/filter strings, since goqu is the query builder the
// rest of the example pack reaches for.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/mysql"
	_ "github.com/go-sql-driver/mysql"

	"github.com/dc-api-x/dcapix/pkg/adapter"
	"github.com/dc-api-x/dcapix/pkg/dcerrors"
)

// Config configures a Database adapter connection.
type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func (c Config) withDefaults() Config {
	if c.MaxOpenConns == 0 {
		c.MaxOpenConns = 10
	}

	if c.MaxIdleConns == 0 {
		c.MaxIdleConns = 10
	}

	if c.ConnMaxLifetime == 0 {
		c.ConnMaxLifetime = time.Minute
	}

	return c
}

// Adapter implements adapter.DatabaseAdapter over a pooled *sql.DB,
// grounded on the teacher's defaultSQLClient.Connect pool settings.
type Adapter struct {
	cfg Config
	db  *sql.DB
}

// New constructs an Adapter. Connect must be called before use.
func New(cfg Config) *Adapter {
	return &Adapter{cfg: cfg.withDefaults()}
}

// Dialect returns the goqu dialect this adapter builds queries with,
// exposed so callers can compose statements with goqu before handing the
// resulting SQL and args to Execute/ExecuteWrite.
func Dialect() goqu.DialectWrapper {
	return goqu.Dialect("mysql")
}

func (a *Adapter) Connect(context.Context) error {
	if a.db != nil {
		return nil
	}

	db, err := sql.Open("mysql", a.cfg.DSN)
	if err != nil {
		return dcerrors.NewApiConnectionError("failed to open database connection", err)
	}

	db.SetMaxOpenConns(a.cfg.MaxOpenConns)
	db.SetMaxIdleConns(a.cfg.MaxIdleConns)
	db.SetConnMaxLifetime(a.cfg.ConnMaxLifetime)

	a.db = db

	return nil
}

func (a *Adapter) Disconnect(context.Context) error {
	if a.db == nil {
		return nil
	}

	err := a.db.Close()
	a.db = nil

	return err
}

func (a *Adapter) IsConnected() bool {
	return a.db != nil && a.db.Ping() == nil
}

// SetOption is a no-op; the database adapter takes all configuration
// through Config at construction time.
func (a *Adapter) SetOption(string, any) {}

// Execute runs a prepared-statement query and decodes every row into a
// Row, grounded on the teacher's defaultSQLClient.Query Prepare-then-Query
// sequence (guards against SQL injection the same way the teacher's
// comment describes).
func (a *Adapter) Execute(ctx context.Context, query string, params ...any) ([]adapter.Row, error) {
	if a.db == nil {
		return nil, dcerrors.NewApiConnectionError("database adapter is not connected", nil)
	}

	stmt, err := a.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, dcerrors.NewApiError("execute_query", fmt.Sprintf("failed to prepare query: %v", err))
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx, params...)
	if err != nil {
		return nil, dcerrors.NewApiError("execute_query", fmt.Sprintf("query failed: %v", err))
	}
	defer rows.Close()

	return scanRows(rows)
}

// ExecuteWrite runs a prepared-statement write and returns rows affected.
func (a *Adapter) ExecuteWrite(ctx context.Context, query string, params ...any) (int64, error) {
	if a.db == nil {
		return 0, dcerrors.NewApiConnectionError("database adapter is not connected", nil)
	}

	stmt, err := a.db.PrepareContext(ctx, query)
	if err != nil {
		return 0, dcerrors.NewApiError("execute_write", fmt.Sprintf("failed to prepare statement: %v", err))
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, params...)
	if err != nil {
		return 0, dcerrors.NewApiError("execute_write", fmt.Sprintf("statement failed: %v", err))
	}

	return result.RowsAffected()
}

// Transaction begins a scoped transaction; Commit or Rollback must be
// called exactly once, per adapter.DatabaseTransaction's contract.
func (a *Adapter) Transaction(ctx context.Context) (adapter.DatabaseTransaction, error) {
	if a.db == nil {
		return nil, dcerrors.NewApiConnectionError("database adapter is not connected", nil)
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, dcerrors.NewApiConnectionError("failed to begin transaction", err)
	}

	return &transaction{tx: tx}, nil
}

type transaction struct {
	tx   *sql.Tx
	done bool
}

func (t *transaction) Execute(ctx context.Context, query string, params ...any) ([]adapter.Row, error) {
	rows, err := t.tx.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, dcerrors.NewApiError("execute_query", fmt.Sprintf("query failed: %v", err))
	}
	defer rows.Close()

	return scanRows(rows)
}

func (t *transaction) ExecuteWrite(ctx context.Context, query string, params ...any) (int64, error) {
	result, err := t.tx.ExecContext(ctx, query, params...)
	if err != nil {
		return 0, dcerrors.NewApiError("execute_write", fmt.Sprintf("statement failed: %v", err))
	}

	return result.RowsAffected()
}

func (t *transaction) Commit() error {
	if t.done {
		return dcerrors.NewApiError("commit", "transaction already ended")
	}

	t.done = true

	return t.tx.Commit()
}

func (t *transaction) Rollback() error {
	if t.done {
		return nil
	}

	t.done = true

	return t.tx.Rollback()
}

func scanRows(rows *sql.Rows) ([]adapter.Row, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, dcerrors.NewApiError("execute_query", fmt.Sprintf("failed to read columns: %v", err))
	}

	out := make([]adapter.Row, 0)

	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))

		for i := range values {
			pointers[i] = &values[i]
		}

		if err := rows.Scan(pointers...); err != nil {
			return nil, dcerrors.NewApiError("execute_query", fmt.Sprintf("failed to scan row: %v", err))
		}

		row := make(adapter.Row, len(columns))

		for i, col := range columns {
			row[col] = normalizeValue(values[i])
		}

		out = append(out, row)
	}

	if err := rows.Err(); err != nil {
		return nil, dcerrors.NewApiError("execute_query", fmt.Sprintf("row iteration failed: %v", err))
	}

	return out, nil
}

// normalizeValue converts driver byte slices (MySQL returns most scalar
// types as []byte over the wire) into strings so callers see plain Go
// values rather than raw bytes.
func normalizeValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}

	return v
}
