// Package export writes mapped rows and their derived fields to CSV or to
// an xlsx workbook.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/saleboard/saleboard/internal/derive"
	"github.com/saleboard/saleboard/internal/model"
)

// Header returns the output column names: the mapped fields in order,
// then the derived fields.
func Header() []string {
	var h []string
	for _, f := range model.Fields() {
		h = append(h, f.Name())
	}
	return append(h, model.DerivedNames...)
}

// MarshalRow converts a row to CSV fields in Header order.
func MarshalRow(r model.Row, mf derive.MonthFormat) []string {
	out := make([]string, 0, model.NumFields+len(model.DerivedNames))
	for _, f := range model.Fields() {
		out = append(out, r.Record.Get(f).String())
	}
	return append(out,
		r.Derived.NetRevenue.String(),
		r.Derived.NetQuantity.String(),
		r.Derived.FiscalYear.Label(),
		mf.Format(r.Derived.Month),
	)
}

// WriteCSV writes the header and one line per row.
func WriteCSV(w io.Writer, rows []model.Row, mf derive.MonthFormat) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header()); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(MarshalRow(r, mf)); err != nil {
			return fmt.Errorf("row %d: %w", r.Line, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
