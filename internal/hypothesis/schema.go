package hypothesis

import "hypotest/domain/table"

// Column names of the result tables. They are part of the output contract.
const (
	ColTestColumn         = "Test Column"
	ColGroup              = "Group"
	ColN                  = "N"
	ColMissing            = "Missing Count"
	ColMissingGroup       = "Missing Count (Group Column)"
	ColMean               = "Mean"
	ColStdDev             = "Standard Deviation"
	ColStdErrMean         = "Standard Error Mean"
	ColStdErr             = "Standard Error"
	ColTestValue          = "Test Value"
	ColT                  = "t"
	ColDF                 = "df"
	ColPTwoTailed         = "p-value (2-tailed)"
	ColMeanDiff           = "Mean Difference"
	ColStdErrDiff         = "Standard Error Difference"
	ColConfidence         = "Confidence Interval Probability"
	ColCIDiffLower        = "Confidence Interval of the Difference (Lower Bound)"
	ColCIDiffUpper        = "Confidence Interval of the Difference (Upper Bound)"
	ColCIMeanLower        = "Confidence Interval for Mean (Lower Bound)"
	ColCIMeanUpper        = "Confidence Interval for Mean (Upper Bound)"
	ColLeftColumn         = "Left Column"
	ColRightColumn        = "Right Column"
	ColVarianceAssumption = "Variance Assumption"
	ColLeveneStatistic    = "Levene Statistic"
	ColDF1                = "df1"
	ColDF2                = "df2"
	ColP                  = "p-value"
	ColSource             = "Source"
	ColSumSquares         = "Sum of Squares"
	ColMeanSquare         = "Mean Square"
	ColF                  = "F"
	ColMinimum            = "Minimum"
	ColMaximum            = "Maximum"
)

// Table names
const (
	TableDescriptive      = "Descriptive Statistics"
	TableGroupStatistics  = "Group Statistics"
	TableOneSample        = "One-Sample Test"
	TablePaired           = "Paired Samples Test"
	TableIndependent      = "Independent Samples Test"
	TableLevene           = "Levene's Test"
	TableANOVADescriptive = "Descriptives"
	TableANOVA            = "ANOVA"
)

func col(name string, t table.ColumnType) table.Column {
	return table.Column{Name: name, Type: t}
}

// ResultSchemas holds the output schema of every result table
type ResultSchemas struct {
	Descriptive      table.Schema
	GroupDescriptive table.Schema
	OneSample        table.Schema
	Paired           table.Schema
	TwoSample        table.Schema
	Levene           table.Schema
	ANOVAGroups      table.Schema
	ANOVA            table.Schema
}

// DefaultSchemas is the standard output layout
var DefaultSchemas = &ResultSchemas{
	Descriptive: table.MustSchema(
		col(ColTestColumn, table.TypeString),
		col(ColN, table.TypeInt),
		col(ColMissing, table.TypeInt),
		col(ColMean, table.TypeDouble),
		col(ColStdDev, table.TypeDouble),
		col(ColStdErrMean, table.TypeDouble),
	),
	GroupDescriptive: table.MustSchema(
		col(ColTestColumn, table.TypeString),
		col(ColGroup, table.TypeString),
		col(ColN, table.TypeInt),
		col(ColMissing, table.TypeInt),
		col(ColMissingGroup, table.TypeInt),
		col(ColMean, table.TypeDouble),
		col(ColStdDev, table.TypeDouble),
		col(ColStdErrMean, table.TypeDouble),
	),
	OneSample: table.MustSchema(
		col(ColTestColumn, table.TypeString),
		col(ColTestValue, table.TypeDouble),
		col(ColT, table.TypeDouble),
		col(ColDF, table.TypeDouble),
		col(ColPTwoTailed, table.TypeDouble),
		col(ColMeanDiff, table.TypeDouble),
		col(ColConfidence, table.TypeDouble),
		col(ColCIDiffLower, table.TypeDouble),
		col(ColCIDiffUpper, table.TypeDouble),
	),
	Paired: table.MustSchema(
		col(ColLeftColumn, table.TypeString),
		col(ColRightColumn, table.TypeString),
		col(ColN, table.TypeInt),
		col(ColMissing, table.TypeInt),
		col(ColMean, table.TypeDouble),
		col(ColStdDev, table.TypeDouble),
		col(ColStdErrMean, table.TypeDouble),
		col(ColConfidence, table.TypeDouble),
		col(ColCIDiffLower, table.TypeDouble),
		col(ColCIDiffUpper, table.TypeDouble),
		col(ColT, table.TypeDouble),
		col(ColDF, table.TypeDouble),
		col(ColPTwoTailed, table.TypeDouble),
	),
	TwoSample: table.MustSchema(
		col(ColTestColumn, table.TypeString),
		col(ColVarianceAssumption, table.TypeString),
		col(ColT, table.TypeDouble),
		col(ColDF, table.TypeDouble),
		col(ColPTwoTailed, table.TypeDouble),
		col(ColMeanDiff, table.TypeDouble),
		col(ColStdErrDiff, table.TypeDouble),
		col(ColConfidence, table.TypeDouble),
		col(ColCIDiffLower, table.TypeDouble),
		col(ColCIDiffUpper, table.TypeDouble),
	),
	Levene: table.MustSchema(
		col(ColTestColumn, table.TypeString),
		col(ColLeveneStatistic, table.TypeDouble),
		col(ColDF1, table.TypeInt),
		col(ColDF2, table.TypeInt),
		col(ColP, table.TypeDouble),
	),
	ANOVAGroups: table.MustSchema(
		col(ColTestColumn, table.TypeString),
		col(ColGroup, table.TypeString),
		col(ColN, table.TypeInt),
		col(ColMissing, table.TypeInt),
		col(ColMissingGroup, table.TypeInt),
		col(ColMean, table.TypeDouble),
		col(ColStdDev, table.TypeDouble),
		col(ColStdErr, table.TypeDouble),
		col(ColConfidence, table.TypeDouble),
		col(ColCIMeanLower, table.TypeDouble),
		col(ColCIMeanUpper, table.TypeDouble),
		col(ColMinimum, table.TypeDouble),
		col(ColMaximum, table.TypeDouble),
	),
	ANOVA: table.MustSchema(
		col(ColTestColumn, table.TypeString),
		col(ColSource, table.TypeString),
		col(ColSumSquares, table.TypeDouble),
		col(ColDF, table.TypeInt),
		col(ColMeanSquare, table.TypeDouble),
		col(ColF, table.TypeDouble),
		col(ColP, table.TypeDouble),
	),
}
