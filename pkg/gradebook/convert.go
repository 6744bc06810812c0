package gradebook

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ukaji3/gradebook-go/pkg/gradebook/merge"
	"github.com/ukaji3/gradebook-go/pkg/gradebook/models"
	"github.com/ukaji3/gradebook-go/pkg/gradebook/parser"
	"github.com/xuri/excelize/v2"
)

// ReadWorkbook reads every sheet of an xlsx file, in workbook order.
func ReadWorkbook(path string) ([]models.Sheet, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, NewConvertError("", "open", fmt.Errorf("%w: %v", ErrInvalidFormat, err))
	}
	defer f.Close()

	var sheets []models.Sheet
	for _, sheetName := range f.GetSheetList() {
		sheet, err := parser.ReadSheet(f, sheetName)
		if err != nil {
			return nil, NewConvertError(sheetName, "read", err)
		}
		sheets = append(sheets, sheet)
	}
	return sheets, nil
}

// Convert reads the workbook at path and merges its sheets into a payload.
// Sheets without the identifier column and rows with a blank identifier are
// skipped; duplicate identifiers are listed in the report.
func Convert(path string, opts Options) (*models.Payload, models.Report, error) {
	sheets, err := ReadWorkbook(path)
	if err != nil {
		return nil, models.Report{}, err
	}

	m := merge.New(opts.Columns()).WithLogger(opts.Logger)
	for _, sheet := range sheets {
		m.Add(sheet)
	}

	payload := m.Payload(opts.now())
	report := m.Report()

	opts.Logger.Debug().Str("file", path).Int("sheets", len(sheets)).
		Int("records", report.Records).Int("skipped_rows", report.SkippedRows).
		Msg("workbook converted")

	return payload, report, nil
}
