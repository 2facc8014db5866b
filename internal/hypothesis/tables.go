package hypothesis

import (
	"fmt"

	"hypotest/domain/stattest"
	"hypotest/domain/table"
)

// BuildTables maps the records of a finalized test to result tables. Descriptive
// tables come first, the test tables after them.
func BuildTables(out *stattest.Outcome, schemas *ResultSchemas) ([]*table.Table, error) {
	if out == nil {
		return nil, fmt.Errorf("nil outcome")
	}
	if schemas == nil {
		schemas = DefaultSchemas
	}

	b := &tableBuilder{}
	switch out.Kind {
	case stattest.KindOneSample:
		desc := b.table(TableDescriptive, schemas.Descriptive)
		for _, d := range out.Descriptive {
			b.row(desc, table.Text(d.Column), table.Int(int(d.N)), table.Int(int(d.Missing)),
				table.Number(d.Mean), table.Number(d.StdDev), table.Number(d.StdErr))
		}
		test := b.table(TableOneSample, schemas.OneSample)
		for _, r := range out.OneSample {
			b.row(test, table.Text(r.Column), table.Number(r.TestValue), table.Number(r.T), table.Number(r.DF),
				table.Number(r.P), table.Number(r.MeanDiff), table.Number(r.Confidence),
				table.Number(r.CILower), table.Number(r.CIUpper))
		}

	case stattest.KindPaired:
		desc := b.table(TableDescriptive, schemas.Descriptive)
		for _, d := range out.Descriptive {
			b.row(desc, table.Text(d.Column), table.Int(int(d.N)), table.Int(int(d.Missing)),
				table.Number(d.Mean), table.Number(d.StdDev), table.Number(d.StdErr))
		}
		test := b.table(TablePaired, schemas.Paired)
		for _, r := range out.Paired {
			b.row(test, table.Text(r.Left), table.Text(r.Right), table.Int(int(r.N)), table.Int(int(r.Missing)),
				table.Number(r.MeanDiff), table.Number(r.StdDev), table.Number(r.StdErr), table.Number(r.Confidence),
				table.Number(r.CILower), table.Number(r.CIUpper), table.Number(r.T), table.Number(r.DF), table.Number(r.P))
		}

	case stattest.KindTwoSample:
		desc := b.table(TableGroupStatistics, schemas.GroupDescriptive)
		for _, d := range out.Descriptive {
			b.row(desc, table.Text(d.Column), table.Text(d.Group), table.Int(int(d.N)), table.Int(int(d.Missing)),
				table.Int(int(d.MissingGroup)), table.Number(d.Mean), table.Number(d.StdDev), table.Number(d.StdErr))
		}
		test := b.table(TableIndependent, schemas.TwoSample)
		for _, r := range out.TwoSample {
			b.row(test, table.Text(r.Column), table.Text(string(r.Assumption)), table.Number(r.T), table.Number(r.DF),
				table.Number(r.P), table.Number(r.MeanDiff), table.Number(r.StdErrDiff), table.Number(r.Confidence),
				table.Number(r.CILower), table.Number(r.CIUpper))
		}
		b.levene(out, schemas)

	case stattest.KindANOVA:
		desc := b.table(TableANOVADescriptive, schemas.ANOVAGroups)
		for _, g := range out.ANOVAGroups {
			b.row(desc, table.Text(g.Column), table.Text(g.Group), table.Int(int(g.N)), table.Int(int(g.Missing)),
				table.Int(int(g.MissingGroup)), table.Number(g.Mean), table.Number(g.StdDev), table.Number(g.StdErr),
				table.Number(g.Confidence), table.Number(g.CILower), table.Number(g.CIUpper),
				table.Number(g.Min), table.Number(g.Max))
		}
		test := b.table(TableANOVA, schemas.ANOVA)
		for _, r := range out.ANOVA {
			b.row(test, table.Text(r.Column), table.Text(string(r.Source)), table.Number(r.SumSquares),
				dfCell(r.DF), table.Number(r.MeanSquare), table.Number(r.F), table.Number(r.P))
		}
		b.levene(out, schemas)

	default:
		return nil, fmt.Errorf("no table layout for kind %q", out.Kind)
	}

	if b.err != nil {
		return nil, b.err
	}
	return b.tables, nil
}

// tableBuilder collects tables and keeps the first append error
type tableBuilder struct {
	tables []*table.Table
	err    error
}

func (b *tableBuilder) table(name string, schema table.Schema) *table.Table {
	t := table.New(name, schema)
	b.tables = append(b.tables, t)
	return t
}

func (b *tableBuilder) row(t *table.Table, cells ...table.Cell) {
	if b.err != nil {
		return
	}
	b.err = t.AppendRow(cells...)
}

func (b *tableBuilder) levene(out *stattest.Outcome, schemas *ResultSchemas) {
	if len(out.Levene) == 0 {
		return
	}
	t := b.table(TableLevene, schemas.Levene)
	for _, r := range out.Levene {
		b.row(t, table.Text(r.Column), table.Number(r.Statistic), dfCell(r.DF1), dfCell(r.DF2), table.Number(r.P))
	}
}

// dfCell renders integer degrees of freedom; negative values are undefined
// and become missing cells.
func dfCell(df int64) table.Cell {
	if df < 0 {
		return table.Missing()
	}
	return table.Int(int(df))
}
