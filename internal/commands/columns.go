package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/saleboard/saleboard/internal/model"
)

func newColumnsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "columns",
		Short: "Print the sheet columns and the fields they map to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "COLUMN\tKIND\tFIELD\tNOTE")
			for _, c := range model.Catalog {
				field := "(excluded)"
				if c.Mapped {
					field = c.Field.Name()
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.Name, c.Kind, field, c.Note)
			}
			return tw.Flush()
		},
	}
}
