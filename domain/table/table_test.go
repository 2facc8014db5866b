package table

import (
	"math"
	"testing"

	"hypotest/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellFloat(t *testing.T) {
	tests := []struct {
		name string
		cell Cell
		want float64
		ok   bool
	}{
		{"number", Number(2.5), 2.5, true},
		{"int", Int(3), 3, true},
		{"numeric text", Text("1e3"), 1000, true},
		{"word", Text("abc"), 0, false},
		{"nan text", Text("NaN"), 0, false},
		{"inf text", Text("inf"), 0, false},
		{"signed inf text", Text("+Inf"), 0, false},
		{"infinity text", Text("-infinity"), 0, false},
		{"inf number", Number(math.Inf(1)), 0, false},
		{"missing", Missing(), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.cell.Float()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNumberNaNIsMissing(t *testing.T) {
	assert.True(t, Number(math.NaN()).IsMissing())
	assert.Nil(t, Number(math.NaN()).Value())
}

func TestCellString(t *testing.T) {
	assert.Equal(t, "1", Number(1).String())
	assert.Equal(t, "0.25", Number(0.25).String())
	assert.Equal(t, " a ", Text(" a ").String())
	assert.Equal(t, "", Missing().String())
}

func TestRowCellOutOfRange(t *testing.T) {
	r := Row{Number(1)}
	assert.True(t, r.Cell(5).IsMissing())
	assert.True(t, r.Cell(-1).IsMissing())
}

func TestSchemaResolve(t *testing.T) {
	s := NamesSchema([]string{"a", "b", "c"})

	idx, err := s.Resolve("c", "a")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0}, idx)

	_, err = s.Resolve("a", "zz")
	assert.ErrorIs(t, err, core.ErrColumnNotFound)
}

func TestNewSchemaRejectsDuplicates(t *testing.T) {
	_, err := NewSchema(Column{"x", TypeInt}, Column{"x", TypeDouble})
	assert.Error(t, err)
}

func TestTableAppendRow(t *testing.T) {
	tbl := New("t", MustSchema(Column{"name", TypeString}, Column{"v", TypeDouble}))

	require.NoError(t, tbl.AppendRow(Text("a"), Number(1)))
	require.NoError(t, tbl.AppendRow(Text("b"), Missing()))
	assert.ErrorIs(t, tbl.AppendRow(Text("c")), core.ErrRowArity)
	assert.Error(t, tbl.AppendRow(Text("c"), Text("oops")))

	assert.Equal(t, 2, tbl.Len())
	col, err := tbl.Column("v")
	require.NoError(t, err)
	assert.Equal(t, []Cell{Number(1), Missing()}, col)
	assert.Equal(t, "b", tbl.Get(1, "name").String())
	assert.True(t, tbl.Get(7, "name").IsMissing())
}
