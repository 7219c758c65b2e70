package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawRecord is one worksheet row keyed by its exact column names.
type RawRecord map[string]Value

// MappedRecord is the eleven-field projection of a RawRecord.
// It is built once by the field mapper and has no setters.
type MappedRecord struct {
	values [NumFields]Value
}

// NewMappedRecord builds a record from values in Fields() order.
func NewMappedRecord(values [NumFields]Value) MappedRecord {
	return MappedRecord{values: values}
}

// Get returns the value of a field.
func (m MappedRecord) Get(f Field) Value {
	if f < 0 || int(f) >= NumFields {
		return Blank()
	}
	return m.values[f]
}

// Keys returns the output field names in order.
func (m MappedRecord) Keys() []string {
	keys := make([]string, NumFields)
	for i := range keys {
		keys[i] = fieldNames[i]
	}
	return keys
}

// Map returns a copy of the record keyed by output field name.
func (m MappedRecord) Map() map[string]Value {
	out := make(map[string]Value, NumFields)
	for i, v := range m.values {
		out[fieldNames[i]] = v
	}
	return out
}

func (m MappedRecord) Date() Value           { return m.values[FieldDate] }
func (m MappedRecord) Platform() Value       { return m.values[FieldPlatform] }
func (m MappedRecord) Category() Value       { return m.values[FieldCategory] }
func (m MappedRecord) Product() Value        { return m.values[FieldProduct] }
func (m MappedRecord) SKU() Value            { return m.values[FieldSKU] }
func (m MappedRecord) Revenue() Value        { return m.values[FieldRevenue] }
func (m MappedRecord) Returns() Value        { return m.values[FieldReturns] }
func (m MappedRecord) Quantity() Value       { return m.values[FieldQuantity] }
func (m MappedRecord) ReturnQty() Value      { return m.values[FieldReturnQty] }
func (m MappedRecord) DispatchStatus() Value { return m.values[FieldDispatchStatus] }
func (m MappedRecord) Courier() Value        { return m.values[FieldCourier] }

// Derived holds the values computed from a MappedRecord.
type Derived struct {
	NetRevenue  decimal.Decimal
	NetQuantity decimal.Decimal
	FiscalYear  FiscalYear
	Month       time.Month
	// Date is the resolved order date the fiscal year and month were taken from.
	Date time.Time
}

// MonthLabel returns the month and year, e.g. "July 2025".
func (d Derived) MonthLabel() string {
	return d.Date.Format("January 2006")
}

// DerivedNames are the output names of the derived fields.
var DerivedNames = []string{"Net Revenue", "Net Quantity", "Fiscal Year", "Month"}

// Row pairs a mapped record with its derived fields and source position.
type Row struct {
	Line    int // 1-based sheet row, header is row 1
	Key     string
	Record  MappedRecord
	Derived Derived
}
