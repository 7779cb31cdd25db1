// Package dberr defines the error kinds surfaced by the data access layer.
//
// Absence of a row is never an error; callers get an empty slice or a nil
// record instead.
package dberr

import (
	"errors"
	"fmt"
)

// Kind classifies a data access failure.
type Kind string

const (
	KindSchemaMapping   Kind = "schema-mapping"
	KindStoreConnection Kind = "store-connection"
	KindQueryExecution  Kind = "query-execution"
)

// Sentinels for errors.Is checks.
var (
	ErrSchemaMapping   = &Error{Kind: KindSchemaMapping}
	ErrStoreConnection = &Error{Kind: KindStoreConnection}
	ErrQueryExecution  = &Error{Kind: KindQueryExecution}
)

// Error wraps an underlying failure with its kind and the operation that
// produced it.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	case e.Op != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Op)
	default:
		return string(e.Kind)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// SchemaMapping returns a schema mapping error.
func SchemaMapping(op string, format string, args ...any) error {
	return &Error{Kind: KindSchemaMapping, Op: op, Err: fmt.Errorf(format, args...)}
}

// StoreConnection wraps err as a store connection error.
func StoreConnection(op string, err error) error {
	return &Error{Kind: KindStoreConnection, Op: op, Err: err}
}

// QueryExecution wraps err as a query execution error.
func QueryExecution(op string, err error) error {
	return &Error{Kind: KindQueryExecution, Op: op, Err: err}
}

// KindOf returns the kind of err, or "" when err is not a data access error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
