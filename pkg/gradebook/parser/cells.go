// Package parser reads grade workbook sheets into typed cells.
package parser

import (
	"strconv"
	"strings"
	"time"

	"github.com/ukaji3/gradebook-go/pkg/gradebook/models"
	"github.com/xuri/excelize/v2"
)

// isoLayouts are the layouts accepted for ISO 8601 date cells (t="d").
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ReadSheet reads a sheet into a header row and typed data rows.
// The first non-empty row is the header; rows above it are ignored.
func ReadSheet(f *excelize.File, sheetName string) (models.Sheet, error) {
	sheet := models.Sheet{Name: sheetName}

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return sheet, err
	}

	header := -1
	for rowIdx, row := range rows {
		if !isBlankRow(row) {
			header = rowIdx
			break
		}
	}
	if header < 0 {
		return sheet, nil
	}
	sheet.Columns = rows[header]

	r := &cellReader{f: f, sheet: sheetName, date1904: usesDate1904(f), styles: make(map[int]bool)}
	for rowIdx := header + 1; rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		rowNum := rowIdx + 1 // 1-based row index
		cells := make([]models.Cell, len(row))
		for colIdx, cellValue := range row {
			if cellValue == "" {
				cells[colIdx] = models.Empty()
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowNum)
			if err != nil {
				return sheet, err
			}
			c, err := r.read(cellName, cellValue)
			if err != nil {
				return sheet, err
			}
			cells[colIdx] = c
		}
		sheet.Rows = append(sheet.Rows, cells)
	}

	return sheet, nil
}

// cellReader classifies raw cell values using the cell type and number format.
type cellReader struct {
	f        *excelize.File
	sheet    string
	date1904 bool
	// styles caches whether a style index carries a date number format.
	styles map[int]bool
}

func (r *cellReader) read(cellName, raw string) (models.Cell, error) {
	typ, err := r.f.GetCellType(r.sheet, cellName)
	if err != nil {
		return models.Empty(), err
	}

	switch typ {
	case excelize.CellTypeBool:
		return models.Bool(raw == "1" || strings.EqualFold(raw, "true")), nil
	case excelize.CellTypeError:
		return models.ErrorCell(raw), nil
	case excelize.CellTypeDate:
		if t, ok := parseISODate(raw); ok {
			return models.Date(t), nil
		}
		return models.Text(raw), nil
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return models.Text(raw), nil
	}

	// CellTypeNumber and CellTypeUnset: plain numbers, possibly date-formatted.
	isDate, err := r.isDateCell(cellName)
	if err != nil {
		return models.Empty(), err
	}
	if isDate {
		if serial, err := strconv.ParseFloat(raw, 64); err == nil {
			if t, err := excelize.ExcelDateToTime(serial, r.date1904); err == nil {
				return models.Date(t), nil
			}
		}
	}
	return parseValue(raw), nil
}

func (r *cellReader) isDateCell(cellName string) (bool, error) {
	styleID, err := r.f.GetCellStyle(r.sheet, cellName)
	if err != nil {
		return false, err
	}
	if isDate, ok := r.styles[styleID]; ok {
		return isDate, nil
	}
	isDate := false
	if style, err := r.f.GetStyle(styleID); err == nil && style != nil {
		isDate = IsDateNumFmt(style.NumFmt)
		if style.CustomNumFmt != nil {
			isDate = IsDateFormatCode(*style.CustomNumFmt)
		}
	}
	r.styles[styleID] = isDate
	return isDate, nil
}

// parseValue attempts to parse a raw numeric value.
// Returns an Int cell for integer literals, a Float cell for decimals, or a Text cell.
func parseValue(s string) models.Cell {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return models.Int(i)
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return models.Float(f)
	}
	return models.Text(s)
}

func parseISODate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func usesDate1904(f *excelize.File) bool {
	props, err := f.GetWorkbookProps()
	if err != nil || props.Date1904 == nil {
		return false
	}
	return *props.Date1904
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
