// Package querybuilder renders the handful of postgres statements the document
// repositories need. Placeholders are numbered in the order values are bound.
package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// statement accumulates SQL text and its bound arguments.
type statement struct {
	sql  strings.Builder
	args []any
}

func (s *statement) write(parts ...string) {
	for _, p := range parts {
		s.sql.WriteString(p)
	}
}

// bind appends a value and writes its placeholder.
func (s *statement) bind(value any) {
	s.args = append(s.args, value)
	s.sql.WriteString("$" + strconv.Itoa(len(s.args)))
}

func (s *statement) bindList(values []any) {
	s.write("(")
	for i, v := range values {
		if i > 0 {
			s.write(", ")
		}
		s.bind(v)
	}
	s.write(")")
}

func (s *statement) where(conditions []Condition) {
	for i, c := range conditions {
		if i == 0 {
			s.write(" WHERE ")
		} else {
			s.write(" AND ")
		}
		c.render(s)
	}
}

func (s *statement) result() (string, []any, error) {
	return s.sql.String(), s.args, nil
}

type Condition interface {
	render(*statement)
}

type conditionFunc func(*statement)

func (f conditionFunc) render(s *statement) { f(s) }

func Eq(column string, value any) Condition {
	return conditionFunc(func(s *statement) {
		s.write(column, " = ")
		s.bind(value)
	})
}

// NotIn matches rows whose column is outside values. An empty list matches every row.
func NotIn(column string, values []any) Condition {
	values = append([]any(nil), values...)
	return conditionFunc(func(s *statement) {
		if len(values) == 0 {
			s.write("1=1")
			return
		}
		s.write(column, " NOT IN ")
		s.bindList(values)
	})
}

type SelectBuilder struct {
	columns []string
	table   string
	filters []Condition
	order   []string
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = strings.TrimSpace(table)
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.filters = append(b.filters, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(columns ...string) *SelectBuilder {
	b.order = append(b.order, columns...)
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	switch {
	case len(b.columns) == 0:
		return "", nil, fmt.Errorf("select: no columns")
	case b.table == "":
		return "", nil, fmt.Errorf("select: no table")
	}

	var s statement
	s.write("SELECT ", strings.Join(b.columns, ", "), " FROM ", b.table)
	s.where(b.filters)
	if len(b.order) > 0 {
		s.write(" ORDER BY ", strings.Join(b.order, ", "))
	}
	return s.result()
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: strings.TrimSpace(table)}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

// Suffix is appended verbatim, e.g. an ON CONFLICT clause.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	switch {
	case b.table == "":
		return "", nil, fmt.Errorf("insert: no table")
	case len(b.columns) == 0:
		return "", nil, fmt.Errorf("insert into %s: no columns", b.table)
	case len(b.rows) == 0:
		return "", nil, fmt.Errorf("insert into %s: no rows", b.table)
	}

	var s statement
	s.write("INSERT INTO ", b.table, " (", strings.Join(b.columns, ", "), ") VALUES ")
	for i, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert into %s: row %d has %d values for %d columns", b.table, i, len(row), len(b.columns))
		}
		if i > 0 {
			s.write(", ")
		}
		s.bindList(row)
	}
	if b.suffix != "" {
		s.write(" ", b.suffix)
	}
	return s.result()
}

type DeleteBuilder struct {
	table   string
	filters []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: strings.TrimSpace(table)}
}

func (b *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	b.filters = append(b.filters, conditions...)
	return b
}

// ToSQL builds the statement. A delete without conditions removes every row.
func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if b.table == "" {
		return "", nil, fmt.Errorf("delete: no table")
	}

	var s statement
	s.write("DELETE FROM ", b.table)
	s.where(b.filters)
	return s.result()
}
