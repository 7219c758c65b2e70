package model

import (
	"fmt"
	"time"
)

// DefaultFiscalStart is the first month of the fiscal year (March to February).
const DefaultFiscalStart = time.March

// FiscalYear is a twelve-month accounting period identified by the
// calendar year it starts in.
type FiscalYear struct {
	StartYear  int
	StartMonth time.Month
}

// FiscalYearOf returns the fiscal year containing t for a year that starts
// in month start. Dates before start belong to the year that began in the
// previous calendar year.
func FiscalYearOf(t time.Time, start time.Month) FiscalYear {
	if start < time.January || start > time.December {
		start = DefaultFiscalStart
	}
	y := t.Year()
	if t.Month() < start {
		y--
	}
	return FiscalYear{StartYear: y, StartMonth: start}
}

// Label returns "2024–2025" style labels.
func (fy FiscalYear) Label() string {
	if fy.StartMonth == time.January {
		return fmt.Sprintf("%d", fy.StartYear)
	}
	return fmt.Sprintf("%d–%d", fy.StartYear, fy.StartYear+1)
}

// Short returns the compact "FY2024-25" label.
func (fy FiscalYear) Short() string {
	if fy.StartMonth == time.January {
		return fmt.Sprintf("FY%d", fy.StartYear)
	}
	return fmt.Sprintf("FY%d-%02d", fy.StartYear, (fy.StartYear+1)%100)
}

func (fy FiscalYear) String() string { return fy.Label() }

// Contains reports whether t falls inside the fiscal year.
func (fy FiscalYear) Contains(t time.Time) bool {
	return FiscalYearOf(t, fy.StartMonth) == fy
}

// IsZero reports whether the fiscal year is unset.
func (fy FiscalYear) IsZero() bool { return fy.StartYear == 0 && fy.StartMonth == 0 }
