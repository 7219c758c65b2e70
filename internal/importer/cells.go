package importer

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/saleboard/saleboard/internal/model"
)

// serialFunc converts a workbook date serial to a time.
type serialFunc func(s string) (time.Time, bool)

// typeCell converts raw cell text to a Value using the column's catalog kind.
// Text columns are kept verbatim. Number and date cells that do not parse
// stay text so the mismatch surfaces when fields are derived.
func typeCell(column, raw string, layouts []string, serial serialFunc) model.Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return model.Blank()
	}

	switch model.ColumnKind(column) {
	case model.KindNumber:
		if d, err := decimal.NewFromString(s); err == nil {
			return model.Number(d)
		}
	case model.KindDate:
		if serial != nil {
			if t, ok := serial(s); ok {
				return model.Date(t)
			}
		}
		for _, layout := range layouts {
			if t, err := time.Parse(layout, s); err == nil {
				return model.Date(t)
			}
		}
	}
	return model.Text(raw)
}

// typeRow types one row against header, padding short rows with blanks.
func typeRow(header, raw []string, layouts []string, serial serialFunc) []model.Value {
	cells := make([]model.Value, len(header))
	for i, name := range header {
		if i < len(raw) {
			cells[i] = typeCell(name, raw[i], layouts, serial)
		}
	}
	return cells
}

func isBlankRow(raw []string) bool {
	for _, c := range raw {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
