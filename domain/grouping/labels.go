package grouping

import "hypotest/domain/table"

// Labels is an ordered registry of distinct group labels for k-group tests.
//
// A fixed registry only accepts the labels it was created with; anything else
// classifies as unmatched. An open registry learns labels in order of first
// appearance.
type Labels struct {
	order []string
	index map[string]int
	fixed bool
}

// NewLabels creates a registry. With no labels it is open.
func NewLabels(labels ...string) *Labels {
	l := &Labels{index: make(map[string]int, len(labels))}
	for _, s := range labels {
		l.add(s)
	}
	l.fixed = len(labels) > 0
	return l
}

func (l *Labels) add(s string) int {
	if i, ok := l.index[s]; ok {
		return i
	}
	l.index[s] = len(l.order)
	l.order = append(l.order, s)
	return len(l.order) - 1
}

// Classify returns the group index of cell. ok is false for missing cells
// (missing=true) and for labels a fixed registry does not know.
func (l *Labels) Classify(cell table.Cell) (idx int, missing bool, ok bool) {
	if cell.IsMissing() {
		return -1, true, false
	}
	s := cell.String()
	if i, found := l.index[s]; found {
		return i, false, true
	}
	if l.fixed {
		return -1, false, false
	}
	return l.add(s), false, true
}

// Learn registers s if absent and returns its index, regardless of fixed mode.
func (l *Labels) Learn(s string) int {
	return l.add(s)
}

// Len returns the number of known labels
func (l *Labels) Len() int {
	return len(l.order)
}

// At returns the label at index i
func (l *Labels) At(i int) string {
	return l.order[i]
}

// All returns a copy of the labels in order
func (l *Labels) All() []string {
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}

// Fixed reports whether the registry was pre-listed
func (l *Labels) Fixed() bool {
	return l.fixed
}
