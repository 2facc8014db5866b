// Package grouping classifies categorical cells into test groups.
//
// Label matching is exact string equality against the rendered cell text:
// case-sensitive and untrimmed. "Male" does not match "male" or "Male ".
package grouping

import (
	"fmt"

	"hypotest/domain/core"
	"hypotest/domain/table"
)

// Group is one of the two groups of a two-sample comparison
type Group int

const (
	GroupX Group = iota
	GroupY
)

func (g Group) String() string {
	switch g {
	case GroupX:
		return "GroupX"
	case GroupY:
		return "GroupY"
	default:
		return fmt.Sprintf("Group(%d)", int(g))
	}
}

// Classification is the outcome of classifying a grouping cell
type Classification int

const (
	ClassX Classification = iota
	ClassY
	ClassUnmatched
	ClassMissing
)

func (c Classification) String() string {
	switch c {
	case ClassX:
		return "x"
	case ClassY:
		return "y"
	case ClassUnmatched:
		return "unmatched"
	case ClassMissing:
		return "missing"
	default:
		return "unknown"
	}
}

// Group returns the group for a matched classification
func (c Classification) Group() (Group, bool) {
	switch c {
	case ClassX:
		return GroupX, true
	case ClassY:
		return GroupY, true
	default:
		return 0, false
	}
}

// Grouping maps a cell to GroupX or GroupY via two configured labels
type Grouping struct {
	labelX string
	labelY string
}

// New creates a two-label grouping. Labels must be set and distinct so that a
// value matches at most one group.
func New(labelX, labelY string) (*Grouping, error) {
	if labelX == "" || labelY == "" {
		return nil, core.ErrGroupLabelUnset
	}
	if labelX == labelY {
		return nil, core.NewValidationError("group labels", fmt.Sprintf("both groups use label %q", labelX))
	}
	return &Grouping{labelX: labelX, labelY: labelY}, nil
}

// Label returns the configured label of g
func (gr *Grouping) Label(g Group) string {
	if g == GroupY {
		return gr.labelY
	}
	return gr.labelX
}

// Swapped returns the grouping with X and Y exchanged
func (gr *Grouping) Swapped() *Grouping {
	return &Grouping{labelX: gr.labelY, labelY: gr.labelX}
}

// Classify assigns a cell to a group
func (gr *Grouping) Classify(cell table.Cell) Classification {
	if cell.IsMissing() {
		return ClassMissing
	}
	switch cell.String() {
	case gr.labelX:
		return ClassX
	case gr.labelY:
		return ClassY
	default:
		return ClassUnmatched
	}
}
