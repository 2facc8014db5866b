package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"hypotest/domain/core"
	"hypotest/domain/table"
	"hypotest/internal"

	"github.com/xuri/excelize/v2"
)

// DataReader opens Excel and CSV files as row sources
type DataReader struct {
	config   ExcelConfig
	fileType string // "xlsx" or "csv"
	logger   *internal.Logger
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(filePath string) *DataReader {
	return NewDataReaderWithConfig(DefaultExcelConfig(filePath))
}

// NewDataReaderWithConfig creates a data reader from an explicit configuration
func NewDataReaderWithConfig(config ExcelConfig) *DataReader {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	fileType := "xlsx"
	if ext == ".csv" || ext == ".tsv" || ext == ".txt" {
		fileType = "csv"
	}
	if config.Delimiter == 0 {
		config.Delimiter = ','
		if ext == ".tsv" {
			config.Delimiter = '\t'
		}
	}
	return &DataReader{config: config, fileType: fileType, logger: internal.DefaultLogger.WithComponent("DataReader")}
}

// Open opens the file and reads its header row. Rows are streamed on
// demand by the returned source, which the caller must close.
func (r *DataReader) Open() (*Source, error) {
	r.logger.Debug("opening %s file: %s", r.fileType, r.config.FilePath)

	if _, err := os.Stat(r.config.FilePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.config.FilePath)
	}

	var (
		it  rowIterator
		err error
	)
	start := time.Now()
	switch r.fileType {
	case "csv":
		it, err = r.openCSV()
	case "xlsx":
		it, err = r.openExcel()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
	if err != nil {
		return nil, err
	}

	header, err := it.next()
	if err == io.EOF {
		it.close()
		return nil, fmt.Errorf("%s file has no header row: %s", strings.ToUpper(r.fileType), r.config.FilePath)
	}
	if err != nil {
		it.close()
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}
	schema, err := table.NewSchema(table.NamesSchema(header)...)
	if err != nil {
		it.close()
		return nil, fmt.Errorf("invalid header row: %w", err)
	}
	for i, c := range schema {
		if c.Name == "" {
			it.close()
			return nil, fmt.Errorf("invalid header row: column %d has no name", i+1)
		}
	}

	r.logger.Debug("%s file opened in %.2fms (%d columns)",
		strings.ToUpper(r.fileType), float64(time.Since(start).Nanoseconds())/1e6, len(schema))

	missing := map[string]bool{"": true}
	for _, tok := range r.config.MissingTokens {
		missing[tok] = true
	}
	return &Source{schema: schema, it: it, missing: missing, line: 1}, nil
}

func (r *DataReader) openCSV() (rowIterator, error) {
	file, err := os.Open(r.config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	reader := csv.NewReader(file)
	reader.Comma = r.config.Delimiter
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = false
	return &csvIterator{file: file, reader: reader}, nil
}

func (r *DataReader) openExcel() (rowIterator, error) {
	f, err := excelize.OpenFile(r.config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	sheet := r.config.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.Rows(sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return &excelIterator{file: f, rows: rows}, nil
}

// rowIterator yields raw string records; io.EOF after the last one
type rowIterator interface {
	next() ([]string, error)
	close() error
}

type csvIterator struct {
	file   *os.File
	reader *csv.Reader
}

func (c *csvIterator) next() ([]string, error) {
	return c.reader.Read()
}

func (c *csvIterator) close() error {
	return c.file.Close()
}

type excelIterator struct {
	file *excelize.File
	rows *excelize.Rows
}

func (e *excelIterator) next() ([]string, error) {
	if !e.rows.Next() {
		if err := e.rows.Error(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
	return e.rows.Columns()
}

func (e *excelIterator) close() error {
	e.rows.Close()
	return e.file.Close()
}

// Source streams the data rows of a CSV or XLSX file. Every cell is read as
// text, untrimmed; empty cells and configured missing tokens become missing
// cells. Rows shorter than the header are padded with missing cells.
type Source struct {
	schema  table.Schema
	it      rowIterator
	missing map[string]bool
	line    int
	closed  bool
}

func (s *Source) Schema() table.Schema {
	return s.schema
}

func (s *Source) Next(ctx context.Context) (table.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.closed {
		return nil, fmt.Errorf("source closed")
	}
	record, err := s.it.next()
	if err != nil {
		return nil, err
	}
	s.line++
	if len(record) > len(s.schema) {
		return nil, fmt.Errorf("%w: line %d has %d fields, header has %d", core.ErrRowArity, s.line, len(record), len(s.schema))
	}
	row := make(table.Row, len(s.schema))
	for i := range row {
		if i >= len(record) || s.missing[record[i]] {
			row[i] = table.Missing()
			continue
		}
		row[i] = table.Text(record[i])
	}
	return row, nil
}

func (s *Source) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.it.close()
}
