// Package gradebook converts multi-sheet grade workbooks into a JSON document
// keyed by student identifier.
package gradebook

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/ukaji3/gradebook-go/pkg/gradebook/merge"
)

// Default column names of the school grade book.
const (
	DefaultIdentifierColumn = "Mã định danh"
	DefaultClassColumn      = "Tên lớp"
	DefaultStudentIDColumn  = "MSHS"
)

// Options configures conversion behavior.
type Options struct {
	// IdentifierColumn names the column whose value keys the output records.
	IdentifierColumn string
	// ClassColumn names the class-name column. It falls back to the sheet name when absent or blank.
	ClassColumn string
	// TextColumns lists extra columns emitted as strings regardless of cell type.
	// The identifier column is always textual.
	TextColumns []string
	// Logger receives skip and merge diagnostics. The zero value discards them.
	Logger zerolog.Logger
	// Clock stamps the payload. Defaults to time.Now.
	Clock func() time.Time
}

// DefaultOptions returns default conversion options.
func DefaultOptions() Options {
	return Options{
		IdentifierColumn: DefaultIdentifierColumn,
		ClassColumn:      DefaultClassColumn,
		TextColumns:      []string{DefaultStudentIDColumn},
		Logger:           zerolog.Nop(),
	}
}

// Columns returns the column roles used by the record merger.
func (o Options) Columns() merge.Columns {
	return merge.Columns{
		Identifier: o.IdentifierColumn,
		Class:      o.ClassColumn,
		Text:       o.TextColumns,
	}
}

func (o Options) now() time.Time {
	if o.Clock != nil {
		return o.Clock()
	}
	return time.Now()
}
