package importer

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// DefaultSheet is the worksheet holding the sales rows.
const DefaultSheet = "Sheet1"

// XLSXReader reads one worksheet of a sales workbook.
type XLSXReader struct {
	Sheet       string
	DateLayouts []string
}

// Format returns the reader name.
func (r *XLSXReader) Format() string { return "xlsx" }

// Read opens the workbook and types the rows of the configured sheet.
// Cells are read raw so numbers keep their stored precision and date
// columns arrive as serials.
func (r *XLSXReader) Read(in io.Reader) (*Table, error) {
	wb, err := excelize.OpenReader(in)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer wb.Close()

	sheet := r.Sheet
	if sheet == "" {
		sheet = DefaultSheet
	}
	if idx, err := wb.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q not found (have %s)", sheet, strings.Join(wb.GetSheetList(), ", "))
	}

	rows, err := wb.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, errors.New("sheet " + strconv.Quote(sheet) + " has no header row")
	}

	serial := serialDates(date1904(wb))
	header := rows[0]
	t := &Table{Sheet: sheet, Header: header}
	for _, raw := range rows[1:] {
		if isBlankRow(raw) {
			t.Rows = append(t.Rows, nil)
			continue
		}
		t.Rows = append(t.Rows, typeRow(header, raw, r.DateLayouts, serial))
	}
	return t, nil
}

func date1904(wb *excelize.File) bool {
	props, err := wb.GetWorkbookProps()
	if err != nil || props.Date1904 == nil {
		return false
	}
	return *props.Date1904
}

func serialDates(use1904 bool) serialFunc {
	return func(s string) (time.Time, bool) {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || f <= 0 {
			return time.Time{}, false
		}
		t, err := excelize.ExcelDateToTime(f, use1904)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
}
