// Package querybuilder renders the few postgres statement shapes the dataset
// tables need, with $n placeholders.
package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

type SelectBuilder struct {
	columns []string
	table   string
	orderBy []string
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) OrderBy(columns ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, columns...)
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if err := checkTable(b.table); err != nil {
		return "", nil, err
	}

	query := "SELECT " + strings.Join(b.columns, ", ") + " FROM " + b.table
	if len(b.orderBy) > 0 {
		query += " ORDER BY " + strings.Join(b.orderBy, ", ")
	}
	return query, nil, nil
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

// Values appends one row; call it once per row for a multi-row insert.
func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if err := checkTable(b.table); err != nil {
		return "", nil, err
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert columns are required")
	}
	if len(b.rows) == 0 {
		return "", nil, fmt.Errorf("insert values are required")
	}

	var buf strings.Builder
	buf.Grow(32 + len(b.rows)*len(b.columns)*5)
	fmt.Fprintf(&buf, "INSERT INTO %s (%s) VALUES ", b.table, strings.Join(b.columns, ", "))

	args := make([]any, 0, len(b.rows)*len(b.columns))
	for rowIdx, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", rowIdx, len(row), len(b.columns))
		}
		if rowIdx > 0 {
			buf.WriteString(", ")
		}
		buf.WriteByte('(')
		for colIdx := range row {
			if colIdx > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(placeholder(len(args) + colIdx + 1))
		}
		buf.WriteByte(')')
		args = append(args, row...)
	}

	return buf.String(), args, nil
}

// DeleteAll renders an unconditional DELETE for table.
func DeleteAll(table string) (string, error) {
	if err := checkTable(table); err != nil {
		return "", err
	}
	return "DELETE FROM " + table, nil
}

func checkTable(table string) error {
	if strings.TrimSpace(table) == "" {
		return fmt.Errorf("table is required")
	}
	if strings.ContainsAny(table, " ;\t\n") {
		return fmt.Errorf("invalid table name %q", table)
	}
	return nil
}

func placeholder(i int) string {
	return "$" + strconv.Itoa(i)
}
