package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/saleboard/saleboard/internal/config"
	"github.com/saleboard/saleboard/internal/export"
	"github.com/saleboard/saleboard/internal/importer"
	"github.com/saleboard/saleboard/internal/model"
	"github.com/saleboard/saleboard/internal/pipeline"
	"github.com/saleboard/saleboard/internal/report"
)

// exportDir is where import writes its output.
const exportDir = "exports"

// processFile reads one sheet and runs it through the pipeline.
func processFile(ctx context.Context, cfg *config.Config, path string) (*pipeline.Result, error) {
	calc, err := cfg.Calculator()
	if err != nil {
		return nil, err
	}
	tbl, err := importer.ReadFile(cfg.Registry(), path)
	if err != nil {
		return nil, err
	}
	res, err := pipeline.Run(ctx, tbl, pipeline.Options{
		Calculator: calc,
		Workers:    cfg.Processing.Workers,
		FailFast:   cfg.Processing.FailFast,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return res, nil
}

// writeOutput writes rows to path as csv or xlsx.
func writeOutput(path, format string, rows []model.Row, cfg *config.Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}

	if err := writeRows(f, format, rows, cfg); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeRows(w io.Writer, format string, rows []model.Row, cfg *config.Config) error {
	switch format {
	case "csv":
		return export.WriteCSV(w, rows, cfg.MonthFormat())
	case "xlsx":
		return export.WriteWorkbook(w, rows, report.Build(rows, report.Filter{}), cfg.MonthFormat())
	}
	return fmt.Errorf("unknown output format %q", format)
}

// outputPath returns the default output file for input.
func outputPath(input, format string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(filepath.Dir(input), base+"-mapped."+format)
}

func printRowErrors(w io.Writer, errs []*pipeline.RowError) {
	for _, e := range errs {
		fmt.Fprintf(w, "  %v\n", e)
	}
}
