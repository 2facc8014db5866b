package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"hypotest/adapters/excel"
	"hypotest/adapters/jobfile"
	"hypotest/adapters/postgres"
	"hypotest/adapters/report"
	"hypotest/app"
	"hypotest/domain/stattest"
	"hypotest/internal"
	"hypotest/internal/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
)

// options are the flags shared by every test command
type options struct {
	output        string
	precision     int
	workers       int
	batchSize     int
	confidence    float64
	sheet         string
	delimiter     string
	missingTokens []string
	save          bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "hypotest",
		Short:         "Streaming hypothesis tests over CSV and XLSX files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.output, "output", "o", "table", "Output format: table, markdown, html or csv")
	pf.IntVar(&opts.precision, "precision", -1, "Significant digits of doubles (-1 for full precision)")
	pf.IntVar(&opts.workers, "workers", 0, "Concurrent batch accumulators (default HYPOTEST_WORKERS)")
	pf.IntVar(&opts.batchSize, "batch-size", 0, "Rows per batch when workers > 1 (default HYPOTEST_BATCH_SIZE)")
	pf.Float64Var(&opts.confidence, "confidence", 0, "Confidence interval probability (default HYPOTEST_CONFIDENCE)")
	pf.StringVar(&opts.sheet, "sheet", "", "XLSX sheet to read (default first sheet)")
	pf.StringVar(&opts.delimiter, "delimiter", "", "CSV field delimiter (default ',' or tab for .tsv)")
	pf.StringSliceVar(&opts.missingTokens, "missing", nil, "Cell texts read as missing values, besides empty cells")
	pf.BoolVar(&opts.save, "save", false, "Store the run in PostgreSQL (requires DATABASE_URL)")

	root.AddCommand(
		newOneSampleCmd(opts),
		newPairedCmd(opts),
		newTwoSampleCmd(opts),
		newANOVACmd(opts),
		newRunCmd(opts),
	)
	return root
}

func newOneSampleCmd(opts *options) *cobra.Command {
	var columns []string
	var testValue float64

	cmd := &cobra.Command{
		Use:   "one-sample FILE",
		Short: "Test column means against a hypothesised value",
		Long: `Run a one-sample t-test for every test column.

Example: hypotest one-sample scores.csv --columns math,reading --test-value 500`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job := stattest.Job{Kind: stattest.KindOneSample, TestColumns: columns, TestValue: testValue}
			return execute(cmd, opts, args[0], []stattest.Job{job}, nil)
		},
	}
	cmd.Flags().StringSliceVarP(&columns, "columns", "c", nil, "Test columns")
	cmd.Flags().Float64Var(&testValue, "test-value", 0, "Hypothesised population mean")
	_ = cmd.MarkFlagRequired("columns")
	return cmd
}

func newPairedCmd(opts *options) *cobra.Command {
	var pairs []string

	cmd := &cobra.Command{
		Use:   "paired FILE",
		Short: "Test the mean difference of paired columns",
		Long: `Run a paired-samples t-test for every LEFT:RIGHT column pair.

Example: hypotest paired trial.csv --pair before:after --pair week1:week2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parsePairs(pairs)
			if err != nil {
				return err
			}
			job := stattest.Job{Kind: stattest.KindPaired, Pairs: parsed}
			return execute(cmd, opts, args[0], []stattest.Job{job}, nil)
		},
	}
	cmd.Flags().StringArrayVarP(&pairs, "pair", "p", nil, "Column pair as LEFT:RIGHT (repeatable)")
	_ = cmd.MarkFlagRequired("pair")
	return cmd
}

func newTwoSampleCmd(opts *options) *cobra.Command {
	var columns, labels []string
	var groupColumn string
	var skipLevene bool

	cmd := &cobra.Command{
		Use:   "two-sample FILE",
		Short: "Compare the means of two groups",
		Long: `Run independent-samples t-tests (pooled and Welch) with Levene's test.

Group labels are matched exactly against the group column; rows with any
other value are counted as unmatched.

Example: hypotest two-sample trial.csv --columns score --group-column arm --labels treatment,placebo`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job := stattest.Job{
				Kind:        stattest.KindTwoSample,
				TestColumns: columns,
				GroupColumn: groupColumn,
				GroupLabels: labels,
				SkipLevene:  skipLevene,
			}
			return execute(cmd, opts, args[0], []stattest.Job{job}, nil)
		},
	}
	cmd.Flags().StringSliceVarP(&columns, "columns", "c", nil, "Test columns")
	cmd.Flags().StringVarP(&groupColumn, "group-column", "g", "", "Column holding the group labels")
	cmd.Flags().StringSliceVarP(&labels, "labels", "l", nil, "The two group labels, X,Y")
	cmd.Flags().BoolVar(&skipLevene, "skip-levene", false, "Do not run Levene's test")
	_ = cmd.MarkFlagRequired("columns")
	_ = cmd.MarkFlagRequired("group-column")
	_ = cmd.MarkFlagRequired("labels")
	return cmd
}

func newANOVACmd(opts *options) *cobra.Command {
	var columns, labels []string
	var groupColumn string
	var skipLevene bool

	cmd := &cobra.Command{
		Use:   "anova FILE",
		Short: "One-way analysis of variance",
		Long: `Run a one-way ANOVA for every test column.

Without --labels every distinct group value forms a group, in order of first
appearance. With --labels only the listed groups are used.

Example: hypotest anova yields.xlsx --columns yield --group-column field`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job := stattest.Job{
				Kind:        stattest.KindANOVA,
				TestColumns: columns,
				GroupColumn: groupColumn,
				GroupLabels: labels,
				SkipLevene:  skipLevene,
			}
			return execute(cmd, opts, args[0], []stattest.Job{job}, nil)
		},
	}
	cmd.Flags().StringSliceVarP(&columns, "columns", "c", nil, "Test columns")
	cmd.Flags().StringVarP(&groupColumn, "group-column", "g", "", "Column holding the group labels")
	cmd.Flags().StringSliceVarP(&labels, "labels", "l", nil, "Groups to compare (default all)")
	cmd.Flags().BoolVar(&skipLevene, "skip-levene", false, "Do not run Levene's test")
	_ = cmd.MarkFlagRequired("columns")
	_ = cmd.MarkFlagRequired("group-column")
	return cmd
}

func newRunCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run JOBFILE",
		Short: "Run the jobs of a YAML job file",
		Long: `Run every job of a YAML job file against its input file.

Example: hypotest run analysis.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := jobfile.Load(args[0])
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if f.Output.Format != "" && !flags.Changed("output") {
				opts.output = f.Output.Format
			}
			if f.Output.Precision != nil && !flags.Changed("precision") {
				opts.precision = *f.Output.Precision
			}
			cfg := f.Input.ExcelConfig()
			return execute(cmd, opts, cfg.FilePath, f.Jobs, &cfg)
		},
	}
}

// parsePairs parses LEFT:RIGHT specs. Column names are kept verbatim.
func parsePairs(specs []string) ([]stattest.Pair, error) {
	pairs := make([]stattest.Pair, 0, len(specs))
	for _, s := range specs {
		left, right, ok := strings.Cut(s, ":")
		if !ok || left == "" || right == "" {
			return nil, fmt.Errorf("invalid pair %q: want LEFT:RIGHT", s)
		}
		pairs = append(pairs, stattest.Pair{Left: left, Right: right})
	}
	return pairs, nil
}

// execute runs each job in its own pass over path and renders the results
func execute(cmd *cobra.Command, opts *options, path string, jobs []stattest.Job, input *excel.ExcelConfig) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := internal.NewLogger(cfg.Log.Level).WithOutput(cmd.ErrOrStderr())

	format, err := report.ParseFormat(opts.output)
	if err != nil {
		return err
	}
	renderer := report.NewRenderer()
	renderer.Precision = opts.precision

	svcOpts := []app.Option{
		app.WithLogger(logger),
		app.WithWorkers(cfg.Engine.Workers),
		app.WithBatchSize(cfg.Engine.BatchSize),
	}
	if opts.workers > 0 {
		svcOpts = append(svcOpts, app.WithWorkers(opts.workers))
	}
	if opts.batchSize > 0 {
		svcOpts = append(svcOpts, app.WithBatchSize(opts.batchSize))
	}
	if opts.save {
		if !cfg.Database.Enabled() {
			return fmt.Errorf("--save requires DATABASE_URL")
		}
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()
		svcOpts = append(svcOpts, app.WithSink(postgres.NewRunRepository(db)))
	}
	svc := app.NewStatTestService(svcOpts...)

	readerCfg := excel.DefaultExcelConfig(path)
	if input != nil {
		readerCfg = *input
	}
	if opts.sheet != "" {
		readerCfg.Sheet = opts.sheet
	}
	if opts.delimiter != "" {
		readerCfg.Delimiter = []rune(opts.delimiter)[0]
	}
	readerCfg.MissingTokens = append(readerCfg.MissingTokens, opts.missingTokens...)
	reader := excel.NewDataReaderWithConfig(readerCfg)

	out := cmd.OutOrStdout()
	for i, job := range jobs {
		if job.Confidence == 0 {
			job.Confidence = cfg.Engine.Confidence
		}
		if cmd.Flags().Changed("confidence") {
			job.Confidence = opts.confidence
		}
		if err := runOne(cmd.Context(), svc, reader, job, renderer, format, out); err != nil {
			return fmt.Errorf("job %d (%s): %w", i+1, job.Kind, err)
		}
	}
	return nil
}

func runOne(ctx context.Context, svc *app.StatTestService, reader *excel.DataReader, job stattest.Job,
	renderer *report.Renderer, format report.Format, out io.Writer) error {
	src, err := reader.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	run, err := svc.Run(ctx, job, src)
	if err != nil {
		return err
	}
	return renderer.Write(out, run, format)
}
