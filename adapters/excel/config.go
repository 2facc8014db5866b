package excel

// ExcelConfig holds configuration for a spreadsheet data source
type ExcelConfig struct {
	FilePath string `json:"file_path"`
	// Sheet is the XLSX sheet to read; empty selects the first sheet
	Sheet string `json:"sheet,omitempty"`
	// Delimiter of CSV files; zero means '\t' for .tsv files and ',' otherwise
	Delimiter rune `json:"delimiter,omitempty"`
	// MissingTokens are cell texts read as missing values in addition to
	// the empty string. Matching is exact.
	MissingTokens []string `json:"missing_tokens,omitempty"`
}

// DefaultExcelConfig returns the defaults for path
func DefaultExcelConfig(path string) ExcelConfig {
	return ExcelConfig{FilePath: path}
}
