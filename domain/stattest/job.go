package stattest

import (
	"fmt"
	"math"

	"hypotest/domain/core"
)

// Kind identifies a test procedure
type Kind string

const (
	KindOneSample Kind = "one-sample"
	KindPaired    Kind = "paired"
	KindTwoSample Kind = "two-sample"
	KindANOVA     Kind = "anova"
)

// ParseKind parses a test kind
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindOneSample, KindPaired, KindTwoSample, KindANOVA:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", core.ErrUnknownKind, s)
	}
}

// Confidence bounds accepted by Validate
const (
	MinConfidence     = 0.01
	MaxConfidence     = 0.99
	DefaultConfidence = 0.95
)

// Pair is a (left, right) column pair of a paired test
type Pair struct {
	Left  string `json:"left" yaml:"left"`
	Right string `json:"right" yaml:"right"`
}

// Job is the configuration of one test run
type Job struct {
	Kind        Kind     `json:"kind" yaml:"kind"`
	TestColumns []string `json:"test_columns,omitempty" yaml:"test_columns,omitempty"`
	Pairs       []Pair   `json:"pairs,omitempty" yaml:"pairs,omitempty"`
	GroupColumn string   `json:"group_column,omitempty" yaml:"group_column,omitempty"`
	// GroupLabels holds exactly two labels for two-sample tests. For ANOVA it
	// is optional; when set, values outside the list count as unmatched.
	GroupLabels []string `json:"group_labels,omitempty" yaml:"group_labels,omitempty"`
	TestValue   float64  `json:"test_value,omitempty" yaml:"test_value,omitempty"`
	Confidence  float64  `json:"confidence" yaml:"confidence"`
	// SkipLevene disables the companion Levene test of two-sample and ANOVA runs.
	SkipLevene bool `json:"skip_levene,omitempty" yaml:"skip_levene,omitempty"`
}

// Validate checks the configuration before any row is read
func (j Job) Validate() error {
	if _, err := ParseKind(string(j.Kind)); err != nil {
		return err
	}
	if !(j.Confidence >= MinConfidence && j.Confidence <= MaxConfidence) {
		return fmt.Errorf("%w: %v not in [%v, %v]", core.ErrConfidenceRange, j.Confidence, MinConfidence, MaxConfidence)
	}
	if math.IsNaN(j.TestValue) || math.IsInf(j.TestValue, 0) {
		return fmt.Errorf("%w: got %v", core.ErrTestValueInvalid, j.TestValue)
	}

	switch j.Kind {
	case KindOneSample:
		return j.requireTestColumns()
	case KindPaired:
		if len(j.Pairs) == 0 {
			return core.ErrNoTestColumns
		}
		for i, p := range j.Pairs {
			if p.Left == "" || p.Right == "" {
				return core.NewValidationError(fmt.Sprintf("pairs[%d]", i), "both columns must be set")
			}
		}
		return nil
	case KindTwoSample:
		if err := j.requireTestColumns(); err != nil {
			return err
		}
		if j.GroupColumn == "" {
			return core.ErrGroupColumnMissing
		}
		if len(j.GroupLabels) != 2 {
			return core.NewValidationError("group_labels", fmt.Sprintf("two-sample test needs exactly 2 labels, got %d", len(j.GroupLabels)))
		}
		if j.GroupLabels[0] == "" || j.GroupLabels[1] == "" {
			return core.ErrGroupLabelUnset
		}
		if j.GroupLabels[0] == j.GroupLabels[1] {
			return core.NewValidationError("group_labels", "labels must differ")
		}
		return nil
	case KindANOVA:
		if err := j.requireTestColumns(); err != nil {
			return err
		}
		if j.GroupColumn == "" {
			return core.ErrGroupColumnMissing
		}
		if len(j.GroupLabels) == 1 {
			return core.NewValidationError("group_labels", "at least 2 labels are required when listed")
		}
		seen := make(map[string]bool, len(j.GroupLabels))
		for _, l := range j.GroupLabels {
			if seen[l] {
				return core.NewValidationError("group_labels", fmt.Sprintf("duplicate label %q", l))
			}
			seen[l] = true
		}
		return nil
	}
	return nil
}

func (j Job) requireTestColumns() error {
	if len(j.TestColumns) == 0 {
		return core.ErrNoTestColumns
	}
	for i, c := range j.TestColumns {
		if c == "" {
			return core.NewValidationError(fmt.Sprintf("test_columns[%d]", i), "empty column name")
		}
	}
	return nil
}

// WithDefaults fills unset optional fields
func (j Job) WithDefaults() Job {
	if j.Confidence == 0 {
		j.Confidence = DefaultConfidence
	}
	return j
}

// InputColumns returns every input column the job reads, in first-use order
func (j Job) InputColumns() []string {
	var cols []string
	seen := make(map[string]bool)
	add := func(c string) {
		if c != "" && !seen[c] {
			seen[c] = true
			cols = append(cols, c)
		}
	}
	for _, c := range j.TestColumns {
		add(c)
	}
	for _, p := range j.Pairs {
		add(p.Left)
		add(p.Right)
	}
	add(j.GroupColumn)
	return cols
}
