// Package merge builds the identifier-keyed record set from workbook sheets.
package merge

import (
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ukaji3/gradebook-go/pkg/gradebook/models"
	"github.com/ukaji3/gradebook-go/pkg/gradebook/normalize"
)

// Columns names the column roles the merger relies on.
type Columns struct {
	// Identifier keys the record set. Sheets without it are skipped.
	Identifier string
	// Class is filled with the sheet name when missing or blank.
	Class string
	// Text lists columns always emitted as strings.
	Text []string
}

// IsText reports whether values of the named column are kept as strings.
// The identifier column always is.
func (c Columns) IsText(name string) bool {
	if name == c.Identifier {
		return true
	}
	for _, t := range c.Text {
		if strings.TrimSpace(t) == name {
			return true
		}
	}
	return false
}

// Merger accumulates records sheet by sheet. Later sheets and later rows
// overwrite earlier records with the same identifier.
//
// A Merger is not safe for concurrent use, and must not be used after
// Payload has handed its record set off.
type Merger struct {
	cols       Columns
	log        zerolog.Logger
	records    *models.RecordSet
	collisions []string
	skipped    []string
	rowsDrop   int
}

// New creates a merger for the given column roles.
func New(cols Columns) *Merger {
	return &Merger{
		cols:    cols,
		log:     zerolog.Nop(),
		records: models.NewRecordSet(),
	}
}

// WithLogger sets the logger used for per-sheet diagnostics.
func (m *Merger) WithLogger(l zerolog.Logger) *Merger {
	m.log = l
	return m
}

// Add merges every valid row of sheet into the record set.
func (m *Merger) Add(sheet models.Sheet) {
	columns := HeaderNames(sheet.Columns, rowWidth(sheet.Rows))

	idCol := -1
	for i, c := range columns {
		if c == m.cols.Identifier {
			idCol = i
			break
		}
	}
	if idCol < 0 {
		m.skipped = append(m.skipped, sheet.Name)
		m.log.Debug().Str("sheet", sheet.Name).Str("column", m.cols.Identifier).
			Msg("sheet has no identifier column, skipped")
		return
	}

	var added, dropped, dups int
	for _, row := range sheet.Rows {
		if normalize.Blank(normalize.Text(cellAt(row, idCol))) {
			dropped++
			continue
		}

		rec := m.buildRecord(columns, row)
		if v, ok := rec.Get(m.cols.Class); !ok || v == "" {
			rec.Set(m.cols.Class, sheet.Name)
		}

		id := strings.TrimSpace(rec.String(m.cols.Identifier))
		if normalize.Blank(id) {
			dropped++
			continue
		}

		if m.records.Put(id, rec) {
			m.collisions = append(m.collisions, id)
			dups++
		}
		added++
	}
	m.rowsDrop += dropped

	m.log.Debug().Str("sheet", sheet.Name).Int("rows", added).Int("dropped", dropped).
		Int("duplicates", dups).Msg("sheet merged")
}

// buildRecord normalizes every column of row into a record.
func (m *Merger) buildRecord(columns []string, row []models.Cell) *models.Record {
	rec := models.NewRecord()
	for i, col := range columns {
		c := cellAt(row, i)
		if m.cols.IsText(col) {
			rec.Set(col, normalize.Text(c))
		} else {
			rec.Set(col, normalize.Value(c))
		}
	}
	return rec
}

// Payload returns the output document stamped with now.
func (m *Merger) Payload(now time.Time) *models.Payload {
	return &models.Payload{
		LastUpdated: now.Format(models.TimestampLayout),
		Records:     m.records,
	}
}

// Report summarizes what has been merged so far.
func (m *Merger) Report() models.Report {
	return models.Report{
		Records:       m.records.Len(),
		Collisions:    append([]string(nil), m.collisions...),
		SkippedSheets: append([]string(nil), m.skipped...),
		SkippedRows:   m.rowsDrop,
	}
}

// Merge merges sheets in order and returns the payload stamped with now.
func Merge(sheets []models.Sheet, cols Columns, now time.Time) (*models.Payload, models.Report) {
	m := New(cols)
	for _, s := range sheets {
		m.Add(s)
	}
	return m.Payload(now), m.Report()
}

// HeaderNames names the columns of a sheet that is width cells wide.
// Blank or missing headers are named "Unnamed: <index>", a repeated header
// gets a ".1", ".2", ... suffix, and the result is trimmed.
func HeaderNames(headers []string, width int) []string {
	if width < len(headers) {
		width = len(headers)
	}
	out := make([]string, width)
	seen := make(map[string]bool, width)
	next := make(map[string]int)
	for i := range out {
		h := ""
		if i < len(headers) {
			h = headers[i]
		}
		if strings.TrimSpace(h) == "" {
			h = "Unnamed: " + strconv.Itoa(i)
		}
		if seen[h] {
			base := h
			for {
				next[base]++
				h = base + "." + strconv.Itoa(next[base])
				if !seen[h] {
					break
				}
			}
		}
		seen[h] = true
		out[i] = strings.TrimSpace(h)
	}
	return out
}

func rowWidth(rows [][]models.Cell) int {
	w := 0
	for _, r := range rows {
		w = max(w, len(r))
	}
	return w
}

func cellAt(row []models.Cell, i int) models.Cell {
	if i < 0 || i >= len(row) {
		return models.Empty()
	}
	return row[i]
}
