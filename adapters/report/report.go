// Package report renders result tables for terminals, Markdown and HTML.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"hypotest/domain/stattest"
	dtable "hypotest/domain/table"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Format selects an output rendering
type Format string

const (
	FormatTable    Format = "table"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatCSV      Format = "csv"
)

// ParseFormat parses an output format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTable, FormatMarkdown, FormatHTML, FormatCSV:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, markdown, html or csv)", s)
	}
}

// Renderer formats result tables. Missing cells render as empty strings.
type Renderer struct {
	// Precision is the number of significant digits of doubles; -1 prints
	// the shortest exact representation.
	Precision int
}

// NewRenderer creates a renderer with full precision
func NewRenderer() *Renderer {
	return &Renderer{Precision: -1}
}

// FormatCell renders one cell of a column of type t
func (r *Renderer) FormatCell(c dtable.Cell, t dtable.ColumnType) string {
	v, ok := c.Float()
	if c.Kind() != dtable.KindNumber || !ok {
		return c.String()
	}
	if t == dtable.TypeInt {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'g', r.Precision, 64)
}

// writer builds a go-pretty writer for t. Column names are printed as is.
func (r *Renderer) writer(t *dtable.Table, style table.Style) table.Writer {
	style.Format.Header = text.FormatDefault
	style.Title.Format = text.FormatDefault
	style.Title.Align = text.AlignCenter

	tw := table.NewWriter()
	tw.SetStyle(style)

	header := make(table.Row, len(t.Schema))
	configs := make([]table.ColumnConfig, len(t.Schema))
	for i, col := range t.Schema {
		header[i] = col.Name
		configs[i] = table.ColumnConfig{Number: i + 1}
		if col.Type != dtable.TypeString {
			configs[i].Align = text.AlignRight
		}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, row := range t.Rows {
		cells := make(table.Row, len(row))
		for i, c := range row {
			cells[i] = r.FormatCell(c, t.Schema[i].Type)
		}
		tw.AppendRow(cells)
	}
	return tw
}

// Console renders tables for a terminal
func (r *Renderer) Console(tables []*dtable.Table) string {
	parts := make([]string, 0, len(tables))
	for _, t := range tables {
		tw := r.writer(t, table.StyleLight)
		tw.SetTitle(t.Name)
		parts = append(parts, tw.Render())
	}
	return strings.Join(parts, "\n\n")
}

// CSV renders each table as a titled CSV block
func (r *Renderer) CSV(tables []*dtable.Table) string {
	parts := make([]string, 0, len(tables))
	for _, t := range tables {
		tw := r.writer(t, table.StyleDefault)
		parts = append(parts, "# "+t.Name+"\n"+tw.RenderCSV())
	}
	return strings.Join(parts, "\n\n")
}

// Markdown renders a run as a Markdown document
func (r *Renderer) Markdown(run *stattest.Run) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s test\n\n", run.Job.Kind)
	if !run.ID.IsEmpty() {
		fmt.Fprintf(&b, "- Run: `%s`\n", run.ID)
	}
	fmt.Fprintf(&b, "- Status: %s\n", run.Status)
	if !run.StartedAt.IsZero() {
		fmt.Fprintf(&b, "- Started: %s\n", run.StartedAt.UTC().Format("2006-01-02 15:04:05 MST"))
		fmt.Fprintf(&b, "- Duration: %s\n", run.Duration())
	}
	fmt.Fprintf(&b, "- Rows: %d\n", run.Rows)
	fmt.Fprintf(&b, "- Confidence: %g\n", run.Job.Confidence)

	for _, t := range run.Tables {
		tw := r.writer(t, table.StyleDefault)
		fmt.Fprintf(&b, "\n## %s\n\n%s\n", t.Name, tw.RenderMarkdown())
	}
	return b.String()
}

// HTML renders a run as a standalone HTML page
func (r *Renderer) HTML(run *stattest.Run) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{
		Title: fmt.Sprintf("%s test %s", run.Job.Kind, run.ID),
		Flags: html.CommonFlags | html.CompletePage,
	})
	return markdown.ToHTML([]byte(r.Markdown(run)), p, renderer)
}

// Write renders run in format f to w
func (r *Renderer) Write(w io.Writer, run *stattest.Run, f Format) error {
	var out string
	switch f {
	case FormatTable:
		out = r.Console(run.Tables) + "\n"
	case FormatMarkdown:
		out = r.Markdown(run)
	case FormatHTML:
		out = string(r.HTML(run))
	case FormatCSV:
		out = r.CSV(run.Tables) + "\n"
	default:
		return fmt.Errorf("unknown output format %q", f)
	}
	_, err := io.WriteString(w, out)
	return err
}
