package report

import (
	"sort"
	"strings"
	"time"

	"github.com/saleboard/saleboard/internal/model"
)

// Filter narrows the rows a dashboard is built from. Zero-valued members
// match every row.
type Filter struct {
	FiscalYear string // Label or Short form, e.g. "2025–2026", "2025-2026" or "FY2025-26"
	Month      string // "July 2025"
	Platforms  []string
	Categories []string
	Product    string
	From, To   time.Time // inclusive calendar days
}

// Match reports whether row passes the filter.
func (f Filter) Match(row model.Row) bool {
	d := row.Derived
	if f.FiscalYear != "" && !matchFiscalYear(f.FiscalYear, d.FiscalYear) {
		return false
	}
	if f.Month != "" && f.Month != d.MonthLabel() {
		return false
	}
	if len(f.Platforms) > 0 && !contains(f.Platforms, row.Record.Platform().String()) {
		return false
	}
	if len(f.Categories) > 0 && !contains(f.Categories, row.Record.Category().String()) {
		return false
	}
	if f.Product != "" && f.Product != row.Record.Product().String() {
		return false
	}
	day := truncateDay(d.Date)
	if !f.From.IsZero() && day.Before(truncateDay(f.From)) {
		return false
	}
	if !f.To.IsZero() && day.After(truncateDay(f.To)) {
		return false
	}
	return true
}

// Apply returns the rows that pass the filter.
func (f Filter) Apply(rows []model.Row) []model.Row {
	var out []model.Row
	for _, r := range rows {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// Choices are the distinct values available to each filter.
type Choices struct {
	FiscalYears []string // newest first
	Months      []string // newest first
	Platforms   []string
	Categories  []string
	Products    []string
	First, Last time.Time
}

// Options collects filter choices from rows.
func Options(rows []model.Row) Choices {
	var c Choices
	fys := map[model.FiscalYear]bool{}
	months := map[time.Time]bool{}
	platforms := map[string]bool{}
	categories := map[string]bool{}
	products := map[string]bool{}

	for i, r := range rows {
		d := r.Derived
		fys[d.FiscalYear] = true
		months[monthStart(d.Date)] = true
		addNonBlank(platforms, r.Record.Platform())
		addNonBlank(categories, r.Record.Category())
		addNonBlank(products, r.Record.Product())
		if i == 0 || d.Date.Before(c.First) {
			c.First = d.Date
		}
		if i == 0 || d.Date.After(c.Last) {
			c.Last = d.Date
		}
	}

	fyList := make([]model.FiscalYear, 0, len(fys))
	for fy := range fys {
		fyList = append(fyList, fy)
	}
	sort.Slice(fyList, func(i, j int) bool { return fyList[i].StartYear > fyList[j].StartYear })
	for _, fy := range fyList {
		c.FiscalYears = append(c.FiscalYears, fy.Label())
	}

	monthList := make([]time.Time, 0, len(months))
	for m := range months {
		monthList = append(monthList, m)
	}
	sort.Slice(monthList, func(i, j int) bool { return monthList[i].After(monthList[j]) })
	for _, m := range monthList {
		c.Months = append(c.Months, m.Format("January 2006"))
	}

	c.Platforms = sortedKeys(platforms)
	c.Categories = sortedKeys(categories)
	c.Products = sortedKeys(products)
	return c
}

// matchFiscalYear accepts the label with an en dash or an ASCII hyphen,
// and the short form.
func matchFiscalYear(s string, fy model.FiscalYear) bool {
	label := fy.Label()
	return s == label || s == strings.ReplaceAll(label, "–", "-") || s == fy.Short()
}

func addNonBlank(set map[string]bool, v model.Value) {
	if !v.IsBlank() {
		set[v.String()] = true
	}
}

func sortedKeys(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
