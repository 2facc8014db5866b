// Package jobfile loads batch test definitions from YAML.
//
// A job file names one input file and any number of jobs run against it:
//
//	input:
//	  path: trial.csv
//	  missing_tokens: [NA]
//	output:
//	  format: markdown
//	jobs:
//	  - kind: two-sample
//	    test_columns: [score]
//	    group_column: arm
//	    group_labels: [treatment, placebo]
package jobfile

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"hypotest/adapters/excel"
	"hypotest/domain/stattest"

	"gopkg.in/yaml.v3"
)

// Input describes the data file of a job file
type Input struct {
	Path          string   `yaml:"path"`
	Sheet         string   `yaml:"sheet,omitempty"`
	Delimiter     string   `yaml:"delimiter,omitempty"`
	MissingTokens []string `yaml:"missing_tokens,omitempty"`
}

// Output describes how results are rendered
type Output struct {
	Format    string `yaml:"format,omitempty"`
	Precision *int   `yaml:"precision,omitempty"`
}

// File is a decoded job file
type File struct {
	Input  Input          `yaml:"input"`
	Output Output         `yaml:"output,omitempty"`
	Jobs   []stattest.Job `yaml:"jobs"`
}

// Load reads and validates a job file. A relative input path is resolved
// against the directory of the job file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read job file: %w", err)
	}
	f, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if !filepath.IsAbs(f.Input.Path) {
		f.Input.Path = filepath.Join(filepath.Dir(path), f.Input.Path)
	}
	return f, nil
}

// Decode parses a job file, rejecting unknown keys, and validates every job
func Decode(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty job file")
		}
		return nil, fmt.Errorf("decode job file: %w", err)
	}
	if f.Input.Path == "" {
		return nil, fmt.Errorf("input.path is required")
	}
	if utf8.RuneCountInString(f.Input.Delimiter) > 1 {
		return nil, fmt.Errorf("input.delimiter must be a single character, got %q", f.Input.Delimiter)
	}
	if len(f.Jobs) == 0 {
		return nil, fmt.Errorf("no jobs defined")
	}
	for i := range f.Jobs {
		f.Jobs[i] = f.Jobs[i].WithDefaults()
		if err := f.Jobs[i].Validate(); err != nil {
			return nil, fmt.Errorf("jobs[%d]: %w", i, err)
		}
	}
	return &f, nil
}

// ExcelConfig converts the input section into a reader configuration
func (in Input) ExcelConfig() excel.ExcelConfig {
	cfg := excel.ExcelConfig{
		FilePath:      in.Path,
		Sheet:         in.Sheet,
		MissingTokens: in.MissingTokens,
	}
	if in.Delimiter != "" {
		cfg.Delimiter, _ = utf8.DecodeRuneInString(in.Delimiter)
	}
	return cfg
}

// Encode writes f as YAML
func Encode(w io.Writer, f *File) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encode job file: %w", err)
	}
	return enc.Close()
}
