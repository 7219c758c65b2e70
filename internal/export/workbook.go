package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/saleboard/saleboard/internal/derive"
	"github.com/saleboard/saleboard/internal/model"
	"github.com/saleboard/saleboard/internal/report"
)

// Sheet names written by WriteWorkbook.
const (
	SheetMapped    = "Mapped"
	SheetPlatforms = "Platforms"
	SheetProducts  = "Products"
)

var (
	platformHeader = []any{"Platform", "Net Revenue", "Net Quantity", "Orders", "AOV", "Sales", "Returns", "Return Rate %"}
	productHeader  = []any{"Product", "Net Revenue", "Net Quantity", "AOV"}
)

// WriteWorkbook writes the mapped rows and the dashboard's platform and
// product tables as an xlsx workbook.
func WriteWorkbook(w io.Writer, rows []model.Row, dash report.Dashboard, mf derive.MonthFormat) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetMapped); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}
	for _, name := range []string{SheetPlatforms, SheetProducts} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("adding sheet %s: %w", name, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	fmtDate := model.DateFormat
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &fmtDate})
	if err != nil {
		return fmt.Errorf("creating date style: %w", err)
	}

	if err := writeMapped(f, rows, mf, dateStyle); err != nil {
		return err
	}
	if err := writePlatforms(f, dash.Platforms); err != nil {
		return err
	}
	if err := writeProducts(f, dash.Products); err != nil {
		return err
	}
	for _, name := range []string{SheetMapped, SheetPlatforms, SheetProducts} {
		if err := f.SetRowStyle(name, 1, 1, headerStyle); err != nil {
			return fmt.Errorf("styling %s header: %w", name, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeMapped(f *excelize.File, rows []model.Row, mf derive.MonthFormat, dateStyle int) error {
	header := Header()
	hdr := make([]any, len(header))
	for i, h := range header {
		hdr[i] = h
	}
	if err := setRow(f, SheetMapped, 1, hdr); err != nil {
		return err
	}

	dateCol := int(model.FieldDate) + 1
	for i, r := range rows {
		line := i + 2
		cells := make([]any, 0, len(header))
		for _, fld := range model.Fields() {
			cells = append(cells, cellValue(r.Record.Get(fld)))
		}
		cells = append(cells,
			r.Derived.NetRevenue.InexactFloat64(),
			r.Derived.NetQuantity.InexactFloat64(),
			r.Derived.FiscalYear.Label(),
			mf.Format(r.Derived.Month),
		)
		if err := setRow(f, SheetMapped, line, cells); err != nil {
			return err
		}
		if r.Record.Date().Kind() == model.KindDate {
			cell, _ := excelize.CoordinatesToCellName(dateCol, line)
			if err := f.SetCellStyle(SheetMapped, cell, cell, dateStyle); err != nil {
				return fmt.Errorf("styling %s: %w", cell, err)
			}
		}
	}
	return nil
}

func writePlatforms(f *excelize.File, stats []report.PlatformStat) error {
	if err := setRow(f, SheetPlatforms, 1, platformHeader); err != nil {
		return err
	}
	for i, s := range stats {
		row := []any{
			s.Platform,
			s.NetRevenue.InexactFloat64(),
			s.NetQuantity.InexactFloat64(),
			s.Orders,
			s.AOV.Round(2).InexactFloat64(),
			s.Sales.InexactFloat64(),
			s.Returns.InexactFloat64(),
			s.ReturnRate.Round(1).InexactFloat64(),
		}
		if err := setRow(f, SheetPlatforms, i+2, row); err != nil {
			return err
		}
	}
	return f.SetColWidth(SheetPlatforms, "A", "A", 20)
}

func writeProducts(f *excelize.File, stats []report.ProductStat) error {
	if err := setRow(f, SheetProducts, 1, productHeader); err != nil {
		return err
	}
	for i, s := range stats {
		row := []any{
			s.Product,
			s.NetRevenue.InexactFloat64(),
			s.NetQuantity.InexactFloat64(),
			s.AOV.Round(2).InexactFloat64(),
		}
		if err := setRow(f, SheetProducts, i+2, row); err != nil {
			return err
		}
	}
	return f.SetColWidth(SheetProducts, "A", "A", 30)
}

func setRow(f *excelize.File, sheet string, line int, cells []any) error {
	cell, _ := excelize.CoordinatesToCellName(1, line)
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("%s row %d: %w", sheet, line, err)
	}
	return nil
}

// cellValue keeps numbers numeric and dates as dates so the workbook stays
// sortable. Text is written as a string, which preserves SKUs like "00123".
func cellValue(v model.Value) any {
	switch v.Kind() {
	case model.KindNumber:
		d, _ := v.Decimal()
		return d.InexactFloat64()
	case model.KindDate:
		t, _ := v.Time()
		return t
	case model.KindText:
		return v.String()
	}
	return nil
}
