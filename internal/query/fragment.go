// Package query builds parameterized SQL predicates.
//
// A Fragment carries its clause text together with the values bound to its
// positional placeholders, so clauses and arguments can only be combined as
// a unit. Column names are expected to come from a schema.Descriptor; values
// are always bound, never interpolated.
package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/llehouerou/synaudio/internal/dberr"
)

// Fragment is a SQL boolean expression and its bound arguments.
// The zero Fragment is empty and is skipped by And and Or.
type Fragment struct {
	sql  string
	args []any
}

// SQL returns the clause text.
func (f Fragment) SQL() string { return f.sql }

// Args returns a copy of the bound arguments in placeholder order.
func (f Fragment) Args() []any {
	return append([]any(nil), f.args...)
}

// IsZero reports whether the fragment is empty.
func (f Fragment) IsZero() bool { return f.sql == "" }

func (f Fragment) String() string {
	return fmt.Sprintf("%s %v", f.sql, f.args)
}

// Validate checks that the placeholder count matches the argument count.
func (f Fragment) Validate() error {
	return CheckPlaceholders(f.sql, len(f.args))
}

// Raw wraps hand-written SQL. Use sparingly; prefer the typed constructors.
func Raw(sql string, args ...any) Fragment {
	return Fragment{sql: sql, args: args}
}

// Eq is `col = ?`.
func Eq(col string, v any) Fragment {
	return Fragment{sql: col + " = ?", args: []any{v}}
}

// IsEmpty matches NULL or empty string.
func IsEmpty(col string) Fragment {
	return Fragment{sql: "COALESCE(" + col + ", '') = ''"}
}

// And joins fragments with AND.
func And(fs ...Fragment) Fragment {
	return join(" AND ", fs)
}

// Or joins fragments with OR.
func Or(fs ...Fragment) Fragment {
	return join(" OR ", fs)
}

func join(op string, fs []Fragment) Fragment {
	parts := make([]string, 0, len(fs))
	var args []any
	for _, f := range fs {
		if f.IsZero() {
			continue
		}
		parts = append(parts, f.sql)
		args = append(args, f.args...)
	}
	switch len(parts) {
	case 0:
		return Fragment{}
	case 1:
		return Fragment{sql: parts[0], args: args}
	}
	for i, p := range parts {
		if needsParens(p) {
			parts[i] = "(" + p + ")"
		}
	}
	return Fragment{sql: strings.Join(parts, op), args: args}
}

// needsParens reports whether p has a top-level AND/OR.
func needsParens(p string) bool {
	depth := 0
	inQuote := false
	upper := strings.ToUpper(p)
	for i := 0; i < len(upper); i++ {
		switch c := upper[i]; {
		case c == '\'':
			inQuote = !inQuote
		case inQuote:
		case c == '(':
			depth++
		case c == ')':
			depth--
		case depth == 0 && c == ' ':
			rest := upper[i:]
			if strings.HasPrefix(rest, " AND ") || strings.HasPrefix(rest, " OR ") {
				return true
			}
		}
	}
	return false
}

// Direction is a sort direction.
type Direction string

const (
	Ascending  Direction = "ASC"
	Descending Direction = "DESC"
)

// Order is one ORDER BY term.
type Order struct {
	Column string
	Dir    Direction
}

// Asc orders by col ascending.
func Asc(col string) Order { return Order{Column: col, Dir: Ascending} }

// OrderBy renders an ORDER BY clause, or "" for no terms.
func OrderBy(orders ...Order) string {
	if len(orders) == 0 {
		return ""
	}
	terms := make([]string, len(orders))
	for i, o := range orders {
		dir := o.Dir
		if dir == "" {
			dir = Ascending
		}
		terms[i] = o.Column + " " + string(dir)
	}
	return " ORDER BY " + strings.Join(terms, ", ")
}

var errPlaceholderMismatch = errors.New("placeholder count does not match argument count")

// CheckPlaceholders returns a query execution error when sql does not have
// exactly n positional placeholders.
func CheckPlaceholders(sql string, n int) error {
	if got := Placeholders(sql); got != n {
		return dberr.QueryExecution("bind",
			fmt.Errorf("%w: %d placeholders, %d args in %q", errPlaceholderMismatch, got, n, sql))
	}
	return nil
}

// Placeholders counts `?` outside quoted literals and identifiers.
func Placeholders(sql string) int {
	n := 0
	var quote byte
	for i := 0; i < len(sql); i++ {
		c := sql[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"' || c == '`':
			quote = c
		case c == '?':
			n++
		}
	}
	return n
}
