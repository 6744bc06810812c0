package gradebook

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a valid xlsx workbook.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ConvertError represents a fatal error during conversion.
type ConvertError struct {
	Sheet string // empty for workbook-level stages
	Stage string // "open", "read", "write"
	Err   error
}

func (e *ConvertError) Error() string {
	if e.Sheet == "" {
		return fmt.Sprintf("convert %s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("convert %s in sheet %q: %v", e.Stage, e.Sheet, e.Err)
}

func (e *ConvertError) Unwrap() error {
	return e.Err
}

// NewConvertError creates a new ConvertError.
func NewConvertError(sheet, stage string, err error) *ConvertError {
	return &ConvertError{
		Sheet: sheet,
		Stage: stage,
		Err:   err,
	}
}
