package table

import (
	"fmt"

	"hypotest/domain/core"
)

// ColumnType is the declared type of an output column
type ColumnType string

const (
	TypeString ColumnType = "string"
	TypeInt    ColumnType = "int"
	TypeDouble ColumnType = "double"
)

// Column is a named, typed column
type Column struct {
	Name string     `json:"name"`
	Type ColumnType `json:"type"`
}

// Schema is an ordered list of columns
type Schema []Column

// NewSchema builds a schema from columns, rejecting duplicate names
func NewSchema(cols ...Column) (Schema, error) {
	seen := make(map[string]bool, len(cols))
	for _, c := range cols {
		if seen[c.Name] {
			return nil, fmt.Errorf("duplicate column %q", c.Name)
		}
		seen[c.Name] = true
	}
	return Schema(cols), nil
}

// MustSchema is NewSchema for package-level schema definitions
func MustSchema(cols ...Column) Schema {
	s, err := NewSchema(cols...)
	if err != nil {
		panic(err)
	}
	return s
}

// Names returns the column names in order
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, c := range s {
		names[i] = c.Name
	}
	return names
}

// IndexOf returns the index of the named column or -1
func (s Schema) IndexOf(name string) int {
	for i, c := range s {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Resolve maps names to indices once, before a pass begins
func (s Schema) Resolve(names ...string) ([]int, error) {
	idx := make([]int, len(names))
	for i, n := range names {
		idx[i] = s.IndexOf(n)
		if idx[i] < 0 {
			return nil, core.NewColumnNotFoundError(n)
		}
	}
	return idx, nil
}

// NamesSchema builds an untyped input schema from header names
func NamesSchema(names []string) Schema {
	s := make(Schema, len(names))
	for i, n := range names {
		s[i] = Column{Name: n, Type: TypeString}
	}
	return s
}
