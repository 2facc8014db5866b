package table

import (
	"fmt"

	"hypotest/domain/core"
)

// Table is a fixed-schema result table
type Table struct {
	Name   string `json:"name"`
	Schema Schema `json:"schema"`
	Rows   []Row  `json:"rows"`
}

// New creates an empty table
func New(name string, schema Schema) *Table {
	return &Table{Name: name, Schema: schema}
}

// AppendRow appends a row, checking arity and numeric column types
func (t *Table) AppendRow(cells ...Cell) error {
	if len(cells) != len(t.Schema) {
		return fmt.Errorf("%w: table %s expects %d cells, got %d", core.ErrRowArity, t.Name, len(t.Schema), len(cells))
	}
	for i, c := range cells {
		if c.Kind() == KindText && t.Schema[i].Type != TypeString {
			return fmt.Errorf("table %s: column %q is %s, got text", t.Name, t.Schema[i].Name, t.Schema[i].Type)
		}
	}
	t.Rows = append(t.Rows, Row(cells))
	return nil
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// Column returns all cells of the named column
func (t *Table) Column(name string) ([]Cell, error) {
	i := t.Schema.IndexOf(name)
	if i < 0 {
		return nil, core.NewColumnNotFoundError(name)
	}
	cells := make([]Cell, len(t.Rows))
	for r, row := range t.Rows {
		cells[r] = row[i]
	}
	return cells, nil
}

// Get returns the cell at row r of the named column
func (t *Table) Get(r int, name string) Cell {
	i := t.Schema.IndexOf(name)
	if i < 0 || r < 0 || r >= len(t.Rows) {
		return Missing()
	}
	return t.Rows[r][i]
}
