package table

import (
	"math"
	"strconv"
)

// CellKind discriminates the payload of a Cell
type CellKind int

const (
	KindMissing CellKind = iota
	KindNumber
	KindText
)

// Cell is a single value of a row: missing, numeric or textual.
type Cell struct {
	kind CellKind
	num  float64
	text string
}

// Missing returns an absent cell
func Missing() Cell {
	return Cell{kind: KindMissing}
}

// Number returns a numeric cell. NaN is treated as missing.
func Number(v float64) Cell {
	if math.IsNaN(v) {
		return Missing()
	}
	return Cell{kind: KindNumber, num: v}
}

// Int returns a numeric cell holding an integer
func Int(v int) Cell {
	return Cell{kind: KindNumber, num: float64(v)}
}

// Text returns a textual cell
func Text(s string) Cell {
	return Cell{kind: KindText, text: s}
}

// Kind returns the cell kind
func (c Cell) Kind() CellKind {
	return c.kind
}

// IsMissing reports whether the cell holds no value
func (c Cell) IsMissing() bool {
	return c.kind == KindMissing
}

// Float returns the finite numeric value of the cell. Text cells are parsed;
// the second return is false for missing, non-numeric or infinite cells.
func (c Cell) Float() (float64, bool) {
	switch c.kind {
	case KindNumber:
		if math.IsInf(c.num, 0) {
			return 0, false
		}
		return c.num, true
	case KindText:
		v, err := strconv.ParseFloat(c.text, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return v, true
	default:
		return 0, false
	}
}

// String renders the cell value. Missing cells render as "".
func (c Cell) String() string {
	switch c.kind {
	case KindNumber:
		return strconv.FormatFloat(c.num, 'g', -1, 64)
	case KindText:
		return c.text
	default:
		return ""
	}
}

// Value returns the cell as a plain Go value for encoding: nil, float64 or string.
func (c Cell) Value() interface{} {
	switch c.kind {
	case KindNumber:
		return c.num
	case KindText:
		return c.text
	default:
		return nil
	}
}

// Row is an ordered list of cells
type Row []Cell

// Cell returns the cell at index i, or a missing cell when out of range
func (r Row) Cell(i int) Cell {
	if i < 0 || i >= len(r) {
		return Missing()
	}
	return r[i]
}
