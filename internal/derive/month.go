package derive

import (
	"fmt"
	"strconv"
	"time"
)

// MonthFormat selects how Month is rendered on output. One format applies
// to every record of a run.
type MonthFormat string

const (
	MonthNumber MonthFormat = "number" // 7
	MonthName   MonthFormat = "name"   // July
	MonthPadded MonthFormat = "padded" // 07
)

// ParseMonthFormat parses a month format name. Empty means MonthNumber.
func ParseMonthFormat(s string) (MonthFormat, error) {
	switch f := MonthFormat(s); f {
	case "":
		return MonthNumber, nil
	case MonthNumber, MonthName, MonthPadded:
		return f, nil
	}
	return "", fmt.Errorf("unknown month format %q", s)
}

// Format renders m.
func (f MonthFormat) Format(m time.Month) string {
	switch f {
	case MonthName:
		return m.String()
	case MonthPadded:
		return fmt.Sprintf("%02d", int(m))
	default:
		return strconv.Itoa(int(m))
	}
}
