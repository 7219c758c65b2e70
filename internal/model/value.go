package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind classifies a cell value.
type Kind int

const (
	KindBlank Kind = iota
	KindText
	KindNumber
	KindDate
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	default:
		return "blank"
	}
}

// Value is a single spreadsheet cell in its native type.
type Value struct {
	kind Kind
	text string
	num  decimal.Decimal
	date time.Time
}

// Blank returns an empty cell.
func Blank() Value { return Value{} }

// Text returns a text cell. The string is kept verbatim.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Number returns a numeric cell.
func Number(d decimal.Decimal) Value { return Value{kind: KindNumber, num: d} }

// Date returns a date cell.
func Date(t time.Time) Value { return Value{kind: KindDate, date: t} }

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// IsBlank reports whether the cell is empty.
func (v Value) IsBlank() bool { return v.kind == KindBlank }

// Decimal returns the number held by a numeric cell.
func (v Value) Decimal() (decimal.Decimal, bool) {
	if v.kind != KindNumber {
		return decimal.Zero, false
	}
	return v.num, true
}

// Time returns the time held by a date cell.
func (v Value) Time() (time.Time, bool) {
	if v.kind != KindDate {
		return time.Time{}, false
	}
	return v.date, true
}

// String renders the value the way it is written to CSV.
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return v.num.String()
	case KindDate:
		return v.date.Format(DateFormat)
	default:
		return ""
	}
}

// Equal reports whether two values have the same kind and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindText:
		return v.text == o.text
	case KindNumber:
		return v.num.Equal(o.num)
	case KindDate:
		return v.date.Equal(o.date)
	default:
		return true
	}
}

// DateFormat is the layout used when rendering date cells.
const DateFormat = "2006-01-02"
