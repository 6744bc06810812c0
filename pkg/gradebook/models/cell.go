// Package models defines data structures for grade workbook conversion.
package models

import "time"

// CellKind enumerates the native cell types a workbook cell can hold.
type CellKind int

const (
	// KindEmpty is a missing or blank cell.
	KindEmpty CellKind = iota
	// KindError is a formula error such as #N/A or #DIV/0!.
	KindError
	// KindDate is a date or timestamp (numeric cell with a date format, or an ISO 8601 date cell).
	KindDate
	// KindInt is a numeric cell whose stored text is an integer literal.
	KindInt
	// KindFloat is any other numeric cell.
	KindFloat
	// KindBool is a boolean cell.
	KindBool
	// KindText is a string cell (shared, inline or formula result).
	KindText
)

// String returns the kind name used in logs.
func (k CellKind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindError:
		return "error"
	case KindDate:
		return "date"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindText:
		return "text"
	}
	return "unknown"
}

// Cell is a raw workbook cell. Only the field matching Kind is meaningful.
type Cell struct {
	Kind  CellKind
	Time  time.Time
	Int   int64
	Float float64
	Bool  bool
	Text  string
}

// Empty returns an empty cell.
func Empty() Cell { return Cell{Kind: KindEmpty} }

// ErrorCell returns a formula error cell holding the error literal.
func ErrorCell(s string) Cell { return Cell{Kind: KindError, Text: s} }

// Date returns a date cell.
func Date(t time.Time) Cell { return Cell{Kind: KindDate, Time: t} }

// Int returns an integer cell.
func Int(i int64) Cell { return Cell{Kind: KindInt, Int: i} }

// Float returns a floating-point cell.
func Float(f float64) Cell { return Cell{Kind: KindFloat, Float: f} }

// Bool returns a boolean cell.
func Bool(b bool) Cell { return Cell{Kind: KindBool, Bool: b} }

// Text returns a string cell.
func Text(s string) Cell { return Cell{Kind: KindText, Text: s} }
