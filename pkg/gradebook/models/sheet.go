package models

// Sheet is one worksheet as read from the workbook: a header row and data rows.
type Sheet struct {
	// Name is the worksheet name.
	Name string
	// Columns holds the header row as read (not yet trimmed).
	Columns []string
	// Rows holds the data rows. A row may be shorter than Columns; missing cells are empty.
	Rows [][]Cell
}

