package report

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money renders d rounded to whole units with thousands separators,
// e.g. 1234567.6 -> "1,234,568".
func Money(d decimal.Decimal) string {
	s := d.Round(0).StringFixed(0)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// Percent renders d with one decimal place.
func Percent(d decimal.Decimal) string {
	return d.StringFixed(1) + "%"
}
