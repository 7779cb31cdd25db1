package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/llehouerou/synaudio/internal/dberr"
	"github.com/llehouerou/synaudio/internal/query"
	"github.com/llehouerou/synaudio/internal/schema"
)

// Session is a scoped connection to the store.
type Session struct {
	conn   *sql.Conn
	store  *Store
	closed bool
}

// Close releases the connection. Safe to call more than once.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.store.metrics.sessionClosed()
	return s.conn.Close()
}

// Value is the result of a scalar query. Present is false when the query
// returned no row; V is nil when the row held NULL.
type Value struct {
	V       any
	Present bool
}

// Int64 returns V as an int64 when it holds an integer.
func (v Value) Int64() (int64, bool) {
	n, ok := v.V.(int64)
	return n, ok
}

// IsNull reports a returned row whose value is NULL.
func (v Value) IsNull() bool {
	return v.Present && v.V == nil
}

// Scalar runs sql and returns the first column of the first row.
func (s *Session) Scalar(sqlText string, args ...any) (Value, error) {
	if err := query.CheckPlaceholders(sqlText, len(args)); err != nil {
		s.store.metrics.observeError("scalar", dberr.KindQueryExecution)
		return Value{}, err
	}

	var v Value
	err := s.run("scalar", sqlText, args, func(rows *sql.Rows) error {
		if !rows.Next() {
			return nil
		}
		v.Present = true
		return rows.Scan(&v.V)
	})
	if err != nil {
		return Value{}, err
	}
	return v, nil
}

// Exists reports whether where matches at least one row of table.
func (s *Session) Exists(table string, where query.Fragment) (bool, error) {
	sqlText := "SELECT 1 FROM " + table
	if !where.IsZero() {
		sqlText += " WHERE " + where.SQL()
	}
	v, err := s.Scalar(sqlText+" LIMIT 1", where.Args()...)
	if err != nil {
		return false, err
	}
	return v.Present, nil
}

// Strings returns the first column of every row as a string; NULL becomes "".
func (s *Session) Strings(sqlText string, args ...any) ([]string, error) {
	if err := query.CheckPlaceholders(sqlText, len(args)); err != nil {
		s.store.metrics.observeError("strings", dberr.KindQueryExecution)
		return nil, err
	}

	out := []string{}
	err := s.run("strings", sqlText, args, func(rows *sql.Rows) error {
		for rows.Next() {
			var v sql.NullString
			if err := rows.Scan(&v); err != nil {
				return err
			}
			out = append(out, NullStringValue(v))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Exec runs a statement that returns no rows.
func (s *Session) Exec(sqlText string, args ...any) (sql.Result, error) {
	if err := query.CheckPlaceholders(sqlText, len(args)); err != nil {
		s.store.metrics.observeError("exec", dberr.KindQueryExecution)
		return nil, err
	}
	if s.closed {
		return nil, dberr.StoreConnection("exec", sql.ErrConnDone)
	}
	start := time.Now()
	res, err := s.conn.ExecContext(context.Background(), sqlText, args...)
	s.store.metrics.observe("exec", time.Since(start))
	if err != nil {
		s.store.metrics.observeError("exec", dberr.KindQueryExecution)
		return nil, dberr.QueryExecution(fmt.Sprintf("exec %q", sqlText), err)
	}
	return res, nil
}

// run executes a query and hands its rows to scan.
func (s *Session) run(kind, sqlText string, args []any, scan func(*sql.Rows) error) error {
	if s.closed {
		return dberr.StoreConnection(kind, sql.ErrConnDone)
	}
	s.store.log.Debug("query", "kind", kind, "sql", sqlText, "args", args)

	start := time.Now()
	defer func() { s.store.metrics.observe(kind, time.Since(start)) }()

	rows, err := s.conn.QueryContext(context.Background(), sqlText, args...)
	if err != nil {
		s.store.metrics.observeError(kind, dberr.KindQueryExecution)
		return dberr.QueryExecution(fmt.Sprintf("%s %q", kind, sqlText), err)
	}
	defer rows.Close()

	if err := scan(rows); err != nil {
		// Mapping failures already carry their kind.
		if k := dberr.KindOf(err); k != "" {
			s.store.metrics.observeError(kind, k)
			return err
		}
		s.store.metrics.observeError(kind, dberr.KindQueryExecution)
		return dberr.QueryExecution(fmt.Sprintf("%s %q", kind, sqlText), err)
	}
	if err := rows.Err(); err != nil {
		s.store.metrics.observeError(kind, dberr.KindQueryExecution)
		return dberr.QueryExecution(fmt.Sprintf("%s %q", kind, sqlText), err)
	}
	return nil
}

// SelectWhere returns every T matching where, in the given order. It
// returns an empty, non-nil slice when nothing matches.
func SelectWhere[T any](s *Session, where query.Fragment, order ...query.Order) ([]T, error) {
	d, err := schema.Of[T]()
	if err != nil {
		return nil, err
	}
	return selectRows[T](s, d, selectSQL(d, where, order, 0), where.Args())
}

// SelectFirst returns the first T matching where, or nil when none does.
func SelectFirst[T any](s *Session, where query.Fragment, order ...query.Order) (*T, error) {
	d, err := schema.Of[T]()
	if err != nil {
		return nil, err
	}
	out, err := selectRows[T](s, d, selectSQL(d, where, order, 1), where.Args())
	if err != nil || len(out) == 0 {
		return nil, err
	}
	return &out[0], nil
}

// SelectByID returns the T whose identity column equals id, or nil.
func SelectByID[T any](s *Session, id any) (*T, error) {
	d, err := schema.Of[T]()
	if err != nil {
		return nil, err
	}
	f, ok := d.Identity()
	if !ok {
		return nil, dberr.SchemaMapping("select by id", "%s has no identity field", d.Type)
	}
	return SelectFirst[T](s, query.Eq(f.Column, id))
}

func selectSQL(d *schema.Descriptor, where query.Fragment, order []query.Order, limit int) string {
	sqlText := "SELECT " + joinColumns(d.ColumnList()) + " FROM " + d.Table
	if !where.IsZero() {
		sqlText += " WHERE " + where.SQL()
	}
	sqlText += query.OrderBy(order...)
	if limit > 0 {
		sqlText += fmt.Sprintf(" LIMIT %d", limit)
	}
	return sqlText
}

func selectRows[T any](s *Session, d *schema.Descriptor, sqlText string, args []any) ([]T, error) {
	if err := query.CheckPlaceholders(sqlText, len(args)); err != nil {
		s.store.metrics.observeError("select", dberr.KindQueryExecution)
		return nil, err
	}

	out := []T{}
	err := s.run("select", sqlText, args, func(rows *sql.Rows) error {
		for rows.Next() {
			var rec T
			if err := scanRecord(rows, d, &rec); err != nil {
				return err
			}
			out = append(out, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
