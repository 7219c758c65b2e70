package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFiscalYearOf(t *testing.T) {
	tests := []struct {
		date  time.Time
		label string
		short string
	}{
		{date(2025, 2, 28), "2024–2025", "FY2024-25"},
		{date(2025, 3, 1), "2025–2026", "FY2025-26"},
		{date(2025, 1, 1), "2024–2025", "FY2024-25"},
		{date(2024, 12, 31), "2024–2025", "FY2024-25"},
		{date(1999, 6, 15), "1999–2000", "FY1999-00"},
	}
	for _, tt := range tests {
		fy := FiscalYearOf(tt.date, DefaultFiscalStart)
		assert.Equal(t, tt.label, fy.Label(), "Label(%s)", tt.date.Format(DateFormat))
		assert.Equal(t, tt.short, fy.Short(), "Short(%s)", tt.date.Format(DateFormat))
	}
}

func TestFiscalYearCalendarStart(t *testing.T) {
	fy := FiscalYearOf(date(2025, 2, 1), time.January)
	assert.Equal(t, "2025", fy.Label())
	assert.Equal(t, "FY2025", fy.Short())
}

func TestFiscalYearContains(t *testing.T) {
	fy := FiscalYearOf(date(2025, 7, 1), DefaultFiscalStart)
	assert.True(t, fy.Contains(date(2026, 2, 28)))
	assert.False(t, fy.Contains(date(2026, 3, 1)))
	assert.False(t, fy.Contains(date(2025, 2, 28)))
}

func TestValueEqual(t *testing.T) {
	assert.True(t, Number(decimal.RequireFromString("1.50")).Equal(Number(decimal.RequireFromString("1.5"))))
	assert.False(t, Number(decimal.NewFromInt(1)).Equal(Text("1")))
	assert.True(t, Blank().Equal(Value{}))
	assert.True(t, Date(date(2025, 7, 15)).Equal(Date(date(2025, 7, 15))))
	assert.Equal(t, "00123", Text("00123").String())
	assert.Equal(t, "2025-07-15", Date(date(2025, 7, 15)).String())
}

func TestMappedRecordKeys(t *testing.T) {
	var vals [NumFields]Value
	vals[FieldPlatform] = Text("Amazon")
	rec := NewMappedRecord(vals)

	assert.Equal(t, []string{
		"Date", "Platform", "Category", "Product", "SKU", "Revenue",
		"Returns", "Quantity", "Return Qty", "Dispatch Status", "Courier",
	}, rec.Keys())
	assert.Equal(t, "Amazon", rec.Platform().String())
	assert.True(t, rec.Get(Field(99)).IsBlank())
	assert.Len(t, rec.Map(), NumFields)
}

func TestCatalog(t *testing.T) {
	mapped := 0
	for _, c := range Catalog {
		if c.Mapped {
			mapped++
			assert.Equal(t, c.Field.Source(), c.Name)
		}
	}
	assert.Equal(t, NumFields, mapped)

	c, ok := LookupColumn("Dispatch Coruier partner")
	require.True(t, ok)
	assert.Equal(t, FieldCourier, c.Field)

	_, ok = LookupColumn("Dispatch Courier partner")
	assert.False(t, ok)

	assert.Equal(t, KindDate, ColumnKind("Org..VchDate"))
	assert.Equal(t, KindText, ColumnKind("Unknown Column"))
}

func TestDerivedMonthLabel(t *testing.T) {
	d := Derived{Date: date(2025, 7, 15), Month: time.July}
	assert.Equal(t, "July 2025", d.MonthLabel())
}
