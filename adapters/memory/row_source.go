// Package memory provides in-memory row sources and run storage.
package memory

import (
	"context"
	"fmt"
	"io"

	"hypotest/domain/core"
	"hypotest/domain/table"
)

// RowSource replays a fixed slice of rows
type RowSource struct {
	schema table.Schema
	rows   []table.Row
	pos    int
	closed bool
	// OnRow, when set, is called before each row is returned
	OnRow func(i int)
}

// NewRowSource creates a source over rows. Every row must match the schema arity.
func NewRowSource(schema table.Schema, rows []table.Row) (*RowSource, error) {
	for i, r := range rows {
		if len(r) != len(schema) {
			return nil, fmt.Errorf("%w: row %d has %d cells, schema has %d columns", core.ErrRowArity, i+1, len(r), len(schema))
		}
	}
	return &RowSource{schema: schema, rows: rows}, nil
}

// NewColumnSource builds a source from named columns of equal length. Cells
// are converted with CellOf.
func NewColumnSource(names []string, columns [][]interface{}) (*RowSource, error) {
	if len(names) != len(columns) {
		return nil, fmt.Errorf("%w: %d names for %d columns", core.ErrRowArity, len(names), len(columns))
	}
	schema, err := table.NewSchema(table.NamesSchema(names)...)
	if err != nil {
		return nil, err
	}
	n := 0
	if len(columns) > 0 {
		n = len(columns[0])
	}
	rows := make([]table.Row, n)
	for r := range rows {
		rows[r] = make(table.Row, len(columns))
	}
	for c, col := range columns {
		if len(col) != n {
			return nil, fmt.Errorf("%w: column %q has %d values, expected %d", core.ErrRowArity, names[c], len(col), n)
		}
		for r, v := range col {
			cell, err := CellOf(v)
			if err != nil {
				return nil, fmt.Errorf("column %q row %d: %w", names[c], r+1, err)
			}
			rows[r][c] = cell
		}
	}
	return &RowSource{schema: schema, rows: rows}, nil
}

// CellOf converts a decoded JSON or YAML value into a cell
func CellOf(v interface{}) (table.Cell, error) {
	switch x := v.(type) {
	case nil:
		return table.Missing(), nil
	case float64:
		return table.Number(x), nil
	case float32:
		return table.Number(float64(x)), nil
	case int:
		return table.Int(x), nil
	case int64:
		return table.Number(float64(x)), nil
	case string:
		return table.Text(x), nil
	case bool:
		return table.Text(fmt.Sprint(x)), nil
	default:
		return table.Missing(), fmt.Errorf("unsupported value %v (%T)", v, v)
	}
}

func (s *RowSource) Schema() table.Schema {
	return s.schema
}

func (s *RowSource) Next(ctx context.Context) (table.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.closed {
		return nil, fmt.Errorf("row source closed")
	}
	if s.pos >= len(s.rows) {
		return nil, io.EOF
	}
	if s.OnRow != nil {
		s.OnRow(s.pos)
	}
	row := s.rows[s.pos]
	s.pos++
	return row, nil
}

func (s *RowSource) Close() error {
	s.closed = true
	return nil
}

// Len returns the number of rows
func (s *RowSource) Len() int {
	return len(s.rows)
}
