package stattest

// VarianceAssumption labels the two rows of a two-sample test
type VarianceAssumption string

const (
	EqualVariances   VarianceAssumption = "Equal variances assumed"
	UnequalVariances VarianceAssumption = "Equal variances not assumed"
)

// ANOVASource labels the rows of an ANOVA table
type ANOVASource string

const (
	SourceBetween ANOVASource = "Between Groups"
	SourceWithin  ANOVASource = "Within Groups"
	SourceTotal   ANOVASource = "Total"
)

// TotalGroup is the group label of the pooled ANOVA descriptive row
const TotalGroup = "Total"

// Descriptive holds the sample statistics of one column, or one group of a column
type Descriptive struct {
	Column       string  `json:"column"`
	Group        string  `json:"group,omitempty"`
	N            int64   `json:"n"`
	Missing      int64   `json:"missing"`
	MissingGroup int64   `json:"missing_group,omitempty"`
	Mean         float64 `json:"mean"`
	StdDev       float64 `json:"std_dev"`
	StdErr       float64 `json:"std_err"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
}

// OneSampleResult is the test row of a one-sample t-test
type OneSampleResult struct {
	Column     string  `json:"column"`
	TestValue  float64 `json:"test_value"`
	T          float64 `json:"t"`
	DF         float64 `json:"df"`
	P          float64 `json:"p"`
	MeanDiff   float64 `json:"mean_diff"`
	Confidence float64 `json:"confidence"`
	CILower    float64 `json:"ci_lower"`
	CIUpper    float64 `json:"ci_upper"`
}

// PairedResult is the test row of a paired t-test
type PairedResult struct {
	Left       string  `json:"left"`
	Right      string  `json:"right"`
	N          int64   `json:"n"`
	Missing    int64   `json:"missing"`
	MeanDiff   float64 `json:"mean_diff"`
	StdDev     float64 `json:"std_dev"`
	StdErr     float64 `json:"std_err"`
	Confidence float64 `json:"confidence"`
	CILower    float64 `json:"ci_lower"`
	CIUpper    float64 `json:"ci_upper"`
	T          float64 `json:"t"`
	DF         float64 `json:"df"`
	P          float64 `json:"p"`
}

// TwoSampleResult is one of the two test rows of an independent-groups t-test
type TwoSampleResult struct {
	Column     string             `json:"column"`
	Assumption VarianceAssumption `json:"assumption"`
	T          float64            `json:"t"`
	DF         float64            `json:"df"`
	P          float64            `json:"p"`
	MeanDiff   float64            `json:"mean_diff"`
	StdErrDiff float64            `json:"std_err_diff"`
	Confidence float64            `json:"confidence"`
	CILower    float64            `json:"ci_lower"`
	CIUpper    float64            `json:"ci_upper"`
}

// LeveneResult is the result of Levene's test for one column
type LeveneResult struct {
	Column    string  `json:"column"`
	Statistic float64 `json:"statistic"`
	DF1       int64   `json:"df1"`
	DF2       int64   `json:"df2"`
	P         float64 `json:"p"`
}

// ANOVAGroup is a per-group descriptive row of a one-way ANOVA
type ANOVAGroup struct {
	Descriptive
	Confidence float64 `json:"confidence"`
	CILower    float64 `json:"ci_lower"`
	CIUpper    float64 `json:"ci_upper"`
}

// ANOVARow is one source row of a one-way ANOVA table
type ANOVARow struct {
	Column     string      `json:"column"`
	Source     ANOVASource `json:"source"`
	SumSquares float64     `json:"sum_squares"`
	DF         int64       `json:"df"`
	MeanSquare float64     `json:"mean_square"`
	F          float64     `json:"f"`
	P          float64     `json:"p"`
}

// ColumnAccounting records how the rows of a pass were used for one column
// (or one pair). Used + Missing + MissingGroup + Unmatched equals the rows read.
type ColumnAccounting struct {
	Column       string `json:"column"`
	Used         int64  `json:"used"`
	Missing      int64  `json:"missing"`
	MissingGroup int64  `json:"missing_group"`
	Unmatched    int64  `json:"unmatched"`
}

// Total returns the number of rows accounted for
func (a ColumnAccounting) Total() int64 {
	return a.Used + a.Missing + a.MissingGroup + a.Unmatched
}

// Outcome bundles every result record of one finalized test
type Outcome struct {
	Kind        Kind               `json:"kind"`
	Rows        int64              `json:"rows"`
	Descriptive []Descriptive      `json:"descriptive,omitempty"`
	OneSample   []OneSampleResult  `json:"one_sample,omitempty"`
	Paired      []PairedResult     `json:"paired,omitempty"`
	TwoSample   []TwoSampleResult  `json:"two_sample,omitempty"`
	Levene      []LeveneResult     `json:"levene,omitempty"`
	ANOVAGroups []ANOVAGroup       `json:"anova_groups,omitempty"`
	ANOVA       []ANOVARow         `json:"anova,omitempty"`
	Accounting  []ColumnAccounting `json:"accounting"`
}
