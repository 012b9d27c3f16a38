package types

import "strings"

// Column describes one output column: its physical name, the table or
// alias that qualifies it (if known), and the label it is displayed
// under (the alias if any, else the column's textual form).
type Column struct {
	Label      string
	Table      string
	ColumnName string
}

// NewColumn builds a bare, unlabeled, unqualified column.
func NewColumn(name string) Column {
	return Column{ColumnName: name}
}

// Header returns the column's displayed header: its label if set,
// else its physical column name, per spec.md §6's rendering rule.
func (c Column) Header() string {
	if c.Label != "" {
		return c.Label
	}
	return c.ColumnName
}

// OutputSchema is the ordered column list an operator presents to its
// parent.
type OutputSchema struct {
	Columns []Column
}

// NewOutputSchema builds a schema from the given columns.
func NewOutputSchema(cols ...Column) OutputSchema {
	return OutputSchema{Columns: cols}
}

// Len returns the number of columns in the schema.
func (s OutputSchema) Len() int { return len(s.Columns) }

// Headers returns the displayed header for every column, in order, for
// the rendering boundary (spec.md §6).
func (s OutputSchema) Headers() []string {
	headers := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		headers[i] = c.Header()
	}
	return headers
}

// Concat appends other's columns after s's, used when building the
// joined schema for NestedLoopJoin (left schema ++ right schema).
func (s OutputSchema) Concat(other OutputSchema) OutputSchema {
	cols := make([]Column, 0, len(s.Columns)+len(other.Columns))
	cols = append(cols, s.Columns...)
	cols = append(cols, other.Columns...)
	return OutputSchema{Columns: cols}
}

// splitQualified splits a resolvable name of the form "t.c" or "c"
// into (table, column); a quoted path form 'p'.c is unwrapped first.
func splitQualified(name string) (table, column string) {
	name = strings.Trim(name, "`\"")
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		table = strings.Trim(name[:idx], "'\"`")
		column = name[idx+1:]
		return table, column
	}
	return "", name
}

// Resolve looks up name ("t.c", "c", or the quoted-path form
// "'…'.c") against the schema. A qualified name must match both the
// table and the column name; a bare name matches on column name alone.
// Zero matches and multiple matches are both errors, per spec.md §3.
func (s OutputSchema) Resolve(name string) (int, error) {
	table, column := splitQualified(name)

	matches := make([]int, 0, 1)
	for i, c := range s.Columns {
		if c.ColumnName != column {
			continue
		}
		if table != "" && c.Table != table {
			continue
		}
		matches = append(matches, i)
	}

	switch len(matches) {
	case 0:
		return -1, NewError(ErrPlanner, "Field not found: "+name)
	case 1:
		return matches[0], nil
	default:
		return -1, NewError(ErrPlanner, "Ambiguous field name: "+name)
	}
}
