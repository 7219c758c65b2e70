// Package derive computes Net Revenue, Net Quantity, Fiscal Year and Month
// from a mapped record.
package derive

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/saleboard/saleboard/internal/model"
)

// BlankPolicy decides how blank numeric cells are treated.
type BlankPolicy string

const (
	// BlankZero treats blank Revenue/Returns/Quantity/Return Qty as 0.
	BlankZero BlankPolicy = "zero"
	// BlankReject fails the record with a TypeMismatchError.
	BlankReject BlankPolicy = "reject"
)

// ParseBlankPolicy parses "zero" or "reject".
func ParseBlankPolicy(s string) (BlankPolicy, error) {
	switch BlankPolicy(strings.ToLower(s)) {
	case BlankZero, "":
		return BlankZero, nil
	case BlankReject:
		return BlankReject, nil
	}
	return "", fmt.Errorf("unknown blank policy %q", s)
}

// DefaultDateLayouts are tried in order when Date arrives as text.
var DefaultDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02-01-2006",
	"02/01/2006",
	"02-Jan-2006",
	"2 Jan 2006",
}

// Calculator derives fields for mapped records. The zero value uses
// BlankZero, a March fiscal start and DefaultDateLayouts.
type Calculator struct {
	Blank       BlankPolicy
	FiscalStart time.Month
	DateLayouts []string
}

// Derive computes the four derived fields. It reads only m and has no side
// effects, so repeated calls return identical results.
func (c Calculator) Derive(m model.MappedRecord) (model.Derived, error) {
	revenue, err := c.number(m, model.FieldRevenue)
	if err != nil {
		return model.Derived{}, err
	}
	returns, err := c.number(m, model.FieldReturns)
	if err != nil {
		return model.Derived{}, err
	}
	qty, err := c.number(m, model.FieldQuantity)
	if err != nil {
		return model.Derived{}, err
	}
	returnQty, err := c.number(m, model.FieldReturnQty)
	if err != nil {
		return model.Derived{}, err
	}
	d, err := c.ResolveDate(m.Date())
	if err != nil {
		return model.Derived{}, err
	}

	return model.Derived{
		NetRevenue:  revenue.Sub(returns),
		NetQuantity: qty.Sub(returnQty),
		FiscalYear:  model.FiscalYearOf(d, c.fiscalStart()),
		Month:       d.Month(),
		Date:        d,
	}, nil
}

// ResolveDate returns the time held by a Date value, parsing text with the
// configured layouts.
func (c Calculator) ResolveDate(v model.Value) (time.Time, error) {
	switch v.Kind() {
	case model.KindDate:
		t, _ := v.Time()
		return t, nil
	case model.KindText:
		s := strings.TrimSpace(v.String())
		for _, layout := range c.layouts() {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
	}
	return time.Time{}, &InvalidDateError{Value: v}
}

func (c Calculator) number(m model.MappedRecord, f model.Field) (decimal.Decimal, error) {
	v := m.Get(f)
	if v.IsBlank() && c.Blank != BlankReject {
		return decimal.Zero, nil
	}
	d, ok := v.Decimal()
	if !ok {
		return decimal.Zero, &TypeMismatchError{Field: f, Value: v}
	}
	return d, nil
}

func (c Calculator) fiscalStart() time.Month {
	if c.FiscalStart == 0 {
		return model.DefaultFiscalStart
	}
	return c.FiscalStart
}

func (c Calculator) layouts() []string {
	if len(c.DateLayouts) == 0 {
		return DefaultDateLayouts
	}
	return c.DateLayouts
}
