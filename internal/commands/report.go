package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/saleboard/saleboard/internal/model"
	"github.com/saleboard/saleboard/internal/report"
)

func newReportCommand(a *app) *cobra.Command {
	var f report.Filter
	var from, to string
	var top int
	var listOptions bool

	cmd := &cobra.Command{
		Use:   "report <file>",
		Short: "Print dashboard figures for a sales sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if f.From, err = parseDay("from", from); err != nil {
				return err
			}
			if f.To, err = parseDay("to", to); err != nil {
				return err
			}

			res, err := processFile(cmd.Context(), a.cfg, args[0])
			if err != nil {
				return err
			}
			if len(res.Errors) > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %d rows skipped\n", len(res.Errors))
				printRowErrors(cmd.ErrOrStderr(), res.Errors)
			}

			w := cmd.OutOrStdout()
			if listOptions {
				return printChoices(w, report.Options(res.Rows))
			}
			return printDashboard(w, report.BuildN(res.Rows, f, top))
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.FiscalYear, "fiscal-year", "", `fiscal year, e.g. "2025–2026", 2025-2026 or FY2025-26`)
	fl.StringVar(&f.Month, "month", "", `month, e.g. "July 2025"`)
	fl.StringSliceVar(&f.Platforms, "platform", nil, "platforms to include")
	fl.StringSliceVar(&f.Categories, "category", nil, "categories to include")
	fl.StringVar(&f.Product, "product", "", "single product")
	fl.StringVar(&from, "from", "", "first order date, YYYY-MM-DD")
	fl.StringVar(&to, "to", "", "last order date, YYYY-MM-DD")
	fl.IntVar(&top, "top", 10, "products to list")
	fl.BoolVar(&listOptions, "options", false, "list filter values instead of the dashboard")

	return cmd
}

func parseDay(flag, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(model.DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s %q: want YYYY-MM-DD", flag, s)
	}
	return t, nil
}

func printDashboard(w io.Writer, d report.Dashboard) error {
	k := d.KPIs
	fmt.Fprintf(w, "Revenue: ₹%s  Volume: %s  Orders: %d  AOV: ₹%s  Active SKUs: %d\n\n",
		report.Money(k.Revenue), k.Volume.String(), k.Orders, report.Money(k.AOV), d.ActiveSKUs)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "PLATFORM\tNET REVENUE\tNET QTY\tORDERS\tAOV\tRETURN RATE\t")
	for _, p := range d.Platforms {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t\n",
			p.Platform, report.Money(p.NetRevenue), p.NetQuantity.String(), p.Orders, report.Money(p.AOV), report.Percent(p.ReturnRate))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)

	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "PRODUCT\tNET REVENUE\tNET QTY\tCUMULATIVE\t")
	for i, p := range d.Pareto {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n",
			p.Product, report.Money(p.NetRevenue), d.Products[i].NetQuantity.String(), report.Percent(p.CumulativePct))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if d.TopVolume != nil {
		fmt.Fprintf(w, "\nTop by volume: %s (%s units)\n", d.TopVolume.Product, d.TopVolume.NetQuantity.String())
	}

	fmt.Fprintln(w)
	for _, s := range d.Insights {
		fmt.Fprintln(w, s)
	}
	return nil
}

func printChoices(w io.Writer, c report.Choices) error {
	lines := []struct {
		label  string
		values []string
	}{
		{"Fiscal years", c.FiscalYears},
		{"Months", c.Months},
		{"Platforms", c.Platforms},
		{"Categories", c.Categories},
		{"Products", c.Products},
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, l := range lines {
		fmt.Fprintf(tw, "%s:\t%s\n", l.label, joinOrNone(l.values))
	}
	if !c.First.IsZero() {
		fmt.Fprintf(tw, "Dates:\t%s to %s\n", c.First.Format(model.DateFormat), c.Last.Format(model.DateFormat))
	}
	return tw.Flush()
}

func joinOrNone(vs []string) string {
	if len(vs) == 0 {
		return "(none)"
	}
	return strings.Join(vs, ", ")
}
