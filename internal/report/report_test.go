package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saleboard/saleboard/internal/derive"
	"github.com/saleboard/saleboard/internal/model"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type sale struct {
	date                 string
	platform, cat, item  string
	qty, rqty, amt, ramt string
}

func num(s string) model.Value {
	if s == "" {
		return model.Blank()
	}
	return model.Number(dec(s))
}

func rows(t *testing.T, sales ...sale) []model.Row {
	t.Helper()
	var out []model.Row
	for i, s := range sales {
		d, err := time.Parse("2006-01-02", s.date)
		require.NoError(t, err)
		var vals [model.NumFields]model.Value
		vals[model.FieldDate] = model.Date(d)
		vals[model.FieldPlatform] = model.Text(s.platform)
		vals[model.FieldCategory] = model.Text(s.cat)
		vals[model.FieldProduct] = model.Text(s.item)
		vals[model.FieldQuantity] = num(s.qty)
		vals[model.FieldReturnQty] = num(s.rqty)
		vals[model.FieldRevenue] = num(s.amt)
		vals[model.FieldReturns] = num(s.ramt)
		rec := model.NewMappedRecord(vals)
		der, err := derive.Calculator{}.Derive(rec)
		require.NoError(t, err)
		out = append(out, model.Row{Line: i + 2, Record: rec, Derived: der})
	}
	return out
}

func fixtureRows(t *testing.T) []model.Row {
	return rows(t,
		sale{"2025-02-28", "Amazon", "Kitchen", "Steel Bottle 1L", "10", "3", "100", "15"},
		sale{"2025-03-01", "Amazon", "Kitchen", "Steel Bottle 1L", "4", "0", "40", "0"},
		sale{"2025-03-15", "Flipkart", "Kitchen", "Lunch Box", "5", "1", "250", "50"},
		sale{"2025-07-15", "Flipkart", "Home", "Cushion Cover", "8", "", "400", ""},
		sale{"2025-07-20", "Meesho", "Home", "Cushion Cover", "2", "2", "100", "100"},
		sale{"2026-01-10", "Amazon", "Home", "Lunch Box", "6", "0", "300", "0"},
	)
}

func TestBuild_KPIs(t *testing.T) {
	d := Build(fixtureRows(t), Filter{})
	assert.Equal(t, "1025", d.KPIs.Revenue.String())
	assert.Equal(t, "29", d.KPIs.Volume.String())
	assert.Equal(t, 6, d.KPIs.Orders)
	assert.Equal(t, "170.83", d.KPIs.AOV.StringFixed(2))
}

func TestBuild_Platforms(t *testing.T) {
	d := Build(fixtureRows(t), Filter{})
	require.Len(t, d.Platforms, 3)

	names := []string{d.Platforms[0].Platform, d.Platforms[1].Platform, d.Platforms[2].Platform}
	assert.Equal(t, []string{"Amazon", "Flipkart", "Meesho"}, names, "sorted by return rate")

	amazon := d.Platforms[0]
	assert.Equal(t, "425", amazon.NetRevenue.String())
	assert.Equal(t, "17", amazon.NetQuantity.String())
	assert.Equal(t, 3, amazon.Orders)
	assert.Equal(t, "440", amazon.Sales.String())
	assert.Equal(t, "3.4", amazon.ReturnRate.StringFixed(1))

	meesho := d.Platforms[2]
	assert.Equal(t, "100.0", meesho.ReturnRate.StringFixed(1))
	assert.True(t, meesho.AOV.IsZero())
}

func TestBuild_ChannelsDropNonPositive(t *testing.T) {
	d := Build(fixtureRows(t), Filter{})
	require.Len(t, d.Channels, 4)
	for _, c := range d.Channels {
		assert.NotEqual(t, "Meesho", c.Platform)
	}
	assert.Equal(t, "Amazon", d.Channels[0].Platform)
	assert.Equal(t, "Home", d.Channels[0].Category)
	assert.Equal(t, "300", d.Channels[0].NetRevenue.String())
	assert.Equal(t, "Kitchen", d.Channels[3].Category)
	assert.Equal(t, "200", d.Channels[3].NetRevenue.String())
}

func TestBuild_ProductsAndPareto(t *testing.T) {
	d := Build(fixtureRows(t), Filter{})
	require.Len(t, d.Products, 3)
	assert.Equal(t, "Lunch Box", d.Products[0].Product)
	assert.Equal(t, "500", d.Products[0].NetRevenue.String())
	assert.Equal(t, "50", d.Products[0].AOV.String())
	assert.Equal(t, "Cushion Cover", d.Products[1].Product)
	assert.Equal(t, "Steel Bottle 1L", d.Products[2].Product)
	assert.Equal(t, 3, d.ActiveSKUs)

	require.NotNil(t, d.TopVolume)
	assert.Equal(t, "Steel Bottle 1L", d.TopVolume.Product)
	assert.Equal(t, "11", d.TopVolume.NetQuantity.String())

	require.Len(t, d.Pareto, 3)
	assert.Equal(t, "48.78", d.Pareto[0].CumulativePct.StringFixed(2))
	assert.Equal(t, "900", d.Pareto[1].Cumulative.String())
	assert.Equal(t, "100.00", d.Pareto[2].CumulativePct.StringFixed(2))
}

func TestBuildN_ParetoLimit(t *testing.T) {
	d := BuildN(fixtureRows(t), Filter{}, 1)
	require.Len(t, d.Pareto, 1)
	assert.Equal(t, "48.78", d.Pareto[0].CumulativePct.StringFixed(2))
}

func TestBuild_Trend(t *testing.T) {
	d := Build(fixtureRows(t), Filter{})
	require.Len(t, d.Trend, 4)
	assert.Equal(t, "2025-02", d.Trend[0].Month.Format("2006-01"))
	assert.Equal(t, "85", d.Trend[0].NetRevenue.String())
	assert.Equal(t, "240", d.Trend[1].NetRevenue.String())
	assert.Equal(t, "2026-01", d.Trend[3].Month.Format("2006-01"))
}

func TestBuild_Insights(t *testing.T) {
	d := Build(fixtureRows(t), Filter{})
	assert.Equal(t, []string{
		"Average Order Value: ₹171",
		"Top Platform: Flipkart (₹600)",
		"Return Rate: 13.9%",
		"Best Seller: Lunch Box (₹500)",
	}, d.Insights)
}

func TestBuild_Empty(t *testing.T) {
	d := Build(fixtureRows(t), Filter{Product: "Nothing"})
	assert.Equal(t, 0, d.KPIs.Orders)
	assert.True(t, d.KPIs.AOV.IsZero())
	assert.Nil(t, d.TopVolume)
	assert.Empty(t, d.Pareto)
	assert.Equal(t, []string{NoDataInsight}, d.Insights)
}

func TestFilter_FiscalYear(t *testing.T) {
	all := fixtureRows(t)
	assert.Len(t, Filter{FiscalYear: "2024–2025"}.Apply(all), 1)
	assert.Len(t, Filter{FiscalYear: "FY2025-26"}.Apply(all), 5)
	assert.Len(t, Filter{FiscalYear: "2025-2026"}.Apply(all), 5, "ASCII hyphen")
	assert.Empty(t, Filter{FiscalYear: "2023-2024"}.Apply(all))
}

func TestFilter_Cascade(t *testing.T) {
	all := fixtureRows(t)
	f := Filter{
		Month:      "July 2025",
		Platforms:  []string{"Flipkart", "Meesho"},
		Categories: []string{"Home"},
	}
	assert.Len(t, f.Apply(all), 2)

	f.Platforms = []string{"Flipkart"}
	sel := f.Apply(all)
	require.Len(t, sel, 1)
	assert.Equal(t, "Cushion Cover", sel[0].Record.Product().String())
}

func TestFilter_DateRange(t *testing.T) {
	all := fixtureRows(t)
	f := Filter{
		From: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 7, 15, 23, 0, 0, 0, time.UTC),
	}
	assert.Len(t, f.Apply(all), 3)
}

func TestOptions(t *testing.T) {
	c := Options(fixtureRows(t))
	assert.Equal(t, []string{"2025–2026", "2024–2025"}, c.FiscalYears)
	assert.Equal(t, []string{"January 2026", "July 2025", "March 2025", "February 2025"}, c.Months)
	assert.Equal(t, []string{"Amazon", "Flipkart", "Meesho"}, c.Platforms)
	assert.Equal(t, []string{"Home", "Kitchen"}, c.Categories)
	assert.Equal(t, "2025-02-28", c.First.Format("2006-01-02"))
	assert.Equal(t, "2026-01-10", c.Last.Format("2006-01-02"))
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "0", Money(decimal.Zero))
	assert.Equal(t, "999", Money(dec("999.4")))
	assert.Equal(t, "1,000", Money(dec("999.5")))
	assert.Equal(t, "1,234,568", Money(dec("1234567.6")))
	assert.Equal(t, "-12,345", Money(dec("-12345")))
	assert.Equal(t, "13.9%", Percent(dec("13.865")))
}
