package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saleboard/saleboard/internal/importer"
	"github.com/saleboard/saleboard/internal/logger"
)

func newMapCommand(a *app) *cobra.Command {
	var out string
	var format string

	cmd := &cobra.Command{
		Use:   "map <file>",
		Short: "Map a sales sheet and write the dashboard fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			switch {
			case format == "" && out != "":
				format = importer.FormatOf(out)
			case format == "":
				format = "csv"
			}
			if format != "csv" && format != "xlsx" {
				return fmt.Errorf("unknown output format %q (want csv or xlsx)", format)
			}
			if out == "" {
				out = outputPath(input, format)
			}

			res, err := processFile(cmd.Context(), a.cfg, input)
			if err != nil {
				return err
			}
			if err := writeOutput(out, format, res.Rows, a.cfg); err != nil {
				return err
			}

			log := logger.FromContext(cmd.Context())
			log.Info().
				Str("file", input).
				Str("output", out).
				Int("mapped", len(res.Rows)).
				Int("failed", len(res.Errors)).
				Msg("sheet mapped")

			fmt.Fprintf(cmd.OutOrStdout(), "Mapped %d of %d rows from %s -> %s\n", len(res.Rows), res.Total(), input, out)
			if len(res.Errors) > 0 {
				printRowErrors(cmd.ErrOrStderr(), res.Errors)
				return fmt.Errorf("%d of %d rows failed", len(res.Errors), res.Total())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default <file>-mapped.<format>)")
	cmd.Flags().StringVar(&format, "format", "", "output format csv|xlsx (default from --out, else csv)")

	return cmd
}
