package commands

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/saleboard/saleboard/internal/importer"
	"github.com/saleboard/saleboard/internal/logger"
	"github.com/saleboard/saleboard/internal/runlog"
)

func newImportCommand(a *app) *cobra.Command {
	var repoDir string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Map every sheet in import/ and write exports/",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(repoDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runImport(cmd, a, absDir)
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "project directory")

	return cmd
}

func runImport(cmd *cobra.Command, a *app, root string) error {
	ctx := cmd.Context()
	log := logger.FromContext(ctx)
	out := cmd.OutOrStdout()

	files, err := importer.Scan(root)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(out, "No sheets to import")
		return nil
	}

	runID := runlog.NewRunID()
	log = log.With().Str("run_id", runID.String()).Logger()

	var entries []runlog.Entry
	var failedFiles, failedRows int
	for _, fi := range files {
		flog := log.With().Str("file", fi.Name).Logger()

		res, err := processFile(ctx, a.cfg, fi.Path)
		if err != nil {
			// Unreadable sheets stay in import/ for the next run.
			flog.Error().Err(err).Msg("import failed")
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", fi.Name, err)
			failedFiles++
			continue
		}

		rel := filepath.Join(exportDir, strings.TrimSuffix(fi.Name, filepath.Ext(fi.Name))+".csv")
		if err := writeOutput(filepath.Join(root, rel), "csv", res.Rows, a.cfg); err != nil {
			return err
		}
		if err := importer.MarkProcessed(root, fi.Name); err != nil {
			return err
		}

		entries = append(entries, runlog.Entry{
			Timestamp: time.Now().UTC(),
			RunID:     runID,
			File:      fi.Name,
			Rows:      res.Total(),
			Mapped:    len(res.Rows),
			Failed:    len(res.Errors),
			Output:    filepath.ToSlash(rel),
		})
		failedRows += len(res.Errors)
		if len(res.Errors) > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s:\n", fi.Name)
			printRowErrors(cmd.ErrOrStderr(), res.Errors)
		}
		flog.Info().Int("mapped", len(res.Rows)).Int("failed", len(res.Errors)).Str("output", rel).Msg("sheet imported")
		fmt.Fprintf(out, "Imported %s: %d of %d rows -> %s\n", fi.Name, len(res.Rows), res.Total(), rel)
	}

	if len(entries) > 0 {
		if err := runlog.Append(root, entries); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: failed to write import log: %v\n", err)
		}
	}

	switch {
	case failedFiles > 0:
		return fmt.Errorf("%d of %d sheets could not be imported", failedFiles, len(files))
	case failedRows > 0:
		return fmt.Errorf("%d rows failed", failedRows)
	}
	return nil
}
