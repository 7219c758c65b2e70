// Package report aggregates mapped sales rows into the figures the sales
// dashboard shows. It does no rendering.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/saleboard/saleboard/internal/model"
)

// DefaultParetoSize is how many products the Pareto series keeps.
const DefaultParetoSize = 50

// NoDataInsight is the only insight produced for an empty selection.
const NoDataInsight = "No data matches the selected filters."

var hundred = decimal.NewFromInt(100)

// KPIs are the headline figures.
type KPIs struct {
	Revenue decimal.Decimal // sum of Net Revenue
	Volume  decimal.Decimal // sum of Net Quantity
	Orders  int
	AOV     decimal.Decimal // Revenue / Orders
}

// PlatformStat summarizes one sales channel.
type PlatformStat struct {
	Platform    string
	NetRevenue  decimal.Decimal
	NetQuantity decimal.Decimal
	Orders      int
	AOV         decimal.Decimal
	Sales       decimal.Decimal // gross Revenue
	Returns     decimal.Decimal
	ReturnRate  decimal.Decimal // percent of Sales
}

// ChannelStat is net revenue for one platform and category pair.
type ChannelStat struct {
	Platform   string
	Category   string
	NetRevenue decimal.Decimal
}

// ProductStat summarizes one product.
type ProductStat struct {
	Product     string
	NetRevenue  decimal.Decimal
	NetQuantity decimal.Decimal
	AOV         decimal.Decimal // NetRevenue / NetQuantity
}

// ParetoPoint is one product on the cumulative revenue curve.
type ParetoPoint struct {
	Product       string
	NetRevenue    decimal.Decimal
	Cumulative    decimal.Decimal
	CumulativePct decimal.Decimal
}

// TrendPoint is net revenue for one calendar month.
type TrendPoint struct {
	Month      time.Time // first day of the month
	NetRevenue decimal.Decimal
}

// Dashboard is every aggregate for one filtered selection.
type Dashboard struct {
	KPIs       KPIs
	Platforms  []PlatformStat // lowest return rate first
	Channels   []ChannelStat
	Products   []ProductStat // highest revenue first
	TopVolume  *ProductStat
	ActiveSKUs int
	Pareto     []ParetoPoint
	Trend      []TrendPoint
	Insights   []string
}

// Build filters rows and aggregates the selection.
func Build(rows []model.Row, f Filter) Dashboard {
	return BuildN(rows, f, DefaultParetoSize)
}

// BuildN is Build with a custom Pareto size.
func BuildN(rows []model.Row, f Filter, paretoSize int) Dashboard {
	sel := f.Apply(rows)

	var d Dashboard
	d.KPIs = kpis(sel)
	d.Platforms = platforms(sel)
	d.Channels = channels(sel)
	d.Products = products(sel)
	d.ActiveSKUs = len(d.Products)
	d.TopVolume = topVolume(d.Products)
	d.Pareto = pareto(d.Products, paretoSize)
	d.Trend = trend(sel)
	d.Insights = insights(sel, d)
	return d
}

func kpis(rows []model.Row) KPIs {
	k := KPIs{Orders: len(rows)}
	for _, r := range rows {
		k.Revenue = k.Revenue.Add(r.Derived.NetRevenue)
		k.Volume = k.Volume.Add(r.Derived.NetQuantity)
	}
	k.AOV = safeDiv(k.Revenue, decimal.NewFromInt(int64(k.Orders)))
	return k
}

func platforms(rows []model.Row) []PlatformStat {
	idx := map[string]int{}
	var out []PlatformStat
	for _, r := range rows {
		p := r.Record.Platform()
		if p.IsBlank() {
			continue
		}
		name := p.String()
		i, ok := idx[name]
		if !ok {
			i = len(out)
			idx[name] = i
			out = append(out, PlatformStat{Platform: name})
		}
		s := &out[i]
		s.NetRevenue = s.NetRevenue.Add(r.Derived.NetRevenue)
		s.NetQuantity = s.NetQuantity.Add(r.Derived.NetQuantity)
		s.Orders++
		s.Sales = s.Sales.Add(number(r.Record.Revenue()))
		s.Returns = s.Returns.Add(number(r.Record.Returns()))
	}
	for i := range out {
		s := &out[i]
		s.AOV = safeDiv(s.NetRevenue, decimal.NewFromInt(int64(s.Orders)))
		s.ReturnRate = safeDiv(s.Returns, s.Sales).Mul(hundred)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].ReturnRate.Equal(out[j].ReturnRate) {
			return out[i].ReturnRate.LessThan(out[j].ReturnRate)
		}
		return out[i].Platform < out[j].Platform
	})
	return out
}

func channels(rows []model.Row) []ChannelStat {
	type key struct{ platform, category string }
	idx := map[key]int{}
	var out []ChannelStat
	for _, r := range rows {
		p, c := r.Record.Platform(), r.Record.Category()
		if p.IsBlank() || c.IsBlank() {
			continue
		}
		k := key{p.String(), c.String()}
		i, ok := idx[k]
		if !ok {
			i = len(out)
			idx[k] = i
			out = append(out, ChannelStat{Platform: k.platform, Category: k.category})
		}
		out[i].NetRevenue = out[i].NetRevenue.Add(r.Derived.NetRevenue)
	}

	// Only channels that earned something are shown.
	kept := out[:0]
	for _, c := range out {
		if c.NetRevenue.IsPositive() {
			kept = append(kept, c)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].Platform != kept[j].Platform {
			return kept[i].Platform < kept[j].Platform
		}
		return kept[i].Category < kept[j].Category
	})
	return kept
}

func products(rows []model.Row) []ProductStat {
	idx := map[string]int{}
	var out []ProductStat
	for _, r := range rows {
		p := r.Record.Product()
		if p.IsBlank() {
			continue
		}
		name := p.String()
		i, ok := idx[name]
		if !ok {
			i = len(out)
			idx[name] = i
			out = append(out, ProductStat{Product: name})
		}
		out[i].NetRevenue = out[i].NetRevenue.Add(r.Derived.NetRevenue)
		out[i].NetQuantity = out[i].NetQuantity.Add(r.Derived.NetQuantity)
	}
	for i := range out {
		out[i].AOV = safeDiv(out[i].NetRevenue, out[i].NetQuantity)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].NetRevenue.Equal(out[j].NetRevenue) {
			return out[i].NetRevenue.GreaterThan(out[j].NetRevenue)
		}
		return out[i].Product < out[j].Product
	})
	return out
}

func topVolume(ps []ProductStat) *ProductStat {
	if len(ps) == 0 {
		return nil
	}
	best := ps[0]
	for _, p := range ps[1:] {
		if p.NetQuantity.GreaterThan(best.NetQuantity) {
			best = p
		}
	}
	return &best
}

// pareto expects products sorted by revenue, highest first. Percentages
// are of the whole selection, not just the points kept.
func pareto(ps []ProductStat, n int) []ParetoPoint {
	if len(ps) == 0 {
		return nil
	}
	total := decimal.Zero
	for _, p := range ps {
		total = total.Add(p.NetRevenue)
	}
	if n <= 0 || n > len(ps) {
		n = len(ps)
	}
	out := make([]ParetoPoint, 0, n)
	cum := decimal.Zero
	for _, p := range ps[:n] {
		cum = cum.Add(p.NetRevenue)
		out = append(out, ParetoPoint{
			Product:       p.Product,
			NetRevenue:    p.NetRevenue,
			Cumulative:    cum,
			CumulativePct: safeDiv(cum, total).Mul(hundred),
		})
	}
	return out
}

func trend(rows []model.Row) []TrendPoint {
	sums := map[time.Time]decimal.Decimal{}
	for _, r := range rows {
		m := monthStart(r.Derived.Date)
		sums[m] = sums[m].Add(r.Derived.NetRevenue)
	}
	out := make([]TrendPoint, 0, len(sums))
	for m, v := range sums {
		out = append(out, TrendPoint{Month: m, NetRevenue: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month.Before(out[j].Month) })
	return out
}

func insights(rows []model.Row, d Dashboard) []string {
	if len(rows) == 0 {
		return []string{NoDataInsight}
	}
	out := []string{fmt.Sprintf("Average Order Value: ₹%s", Money(d.KPIs.AOV))}

	if len(d.Platforms) > 0 {
		top := d.Platforms[0]
		for _, p := range d.Platforms[1:] {
			if p.NetRevenue.GreaterThan(top.NetRevenue) {
				top = p
			}
		}
		out = append(out, fmt.Sprintf("Top Platform: %s (₹%s)", top.Platform, Money(top.NetRevenue)))
	}

	sales, returns := decimal.Zero, decimal.Zero
	for _, r := range rows {
		sales = sales.Add(number(r.Record.Revenue()))
		returns = returns.Add(number(r.Record.Returns()))
	}
	out = append(out, fmt.Sprintf("Return Rate: %s%%", safeDiv(returns, sales).Mul(hundred).StringFixed(1)))

	if len(d.Products) > 0 {
		best := d.Products[0]
		out = append(out, fmt.Sprintf("Best Seller: %s (₹%s)", best.Product, Money(best.NetRevenue)))
	}
	return out
}

// number reads a numeric cell, treating anything else as zero. Rows reach
// the report only after derive accepted them.
func number(v model.Value) decimal.Decimal {
	d, _ := v.Decimal()
	return d
}

func safeDiv(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.Div(b)
}
