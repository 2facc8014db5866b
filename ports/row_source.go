package ports

import (
	"context"

	"hypotest/domain/table"
)

// RowSource is an ordered, finite, single-pass stream of input rows
type RowSource interface {
	// Schema returns the input columns; it is known before the first row
	Schema() table.Schema
	// Next returns the next row, or io.EOF after the last one
	Next(ctx context.Context) (table.Row, error)
	Close() error
}
