// Package pipeline maps and derives every row of an imported sheet.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/saleboard/saleboard/internal/derive"
	"github.com/saleboard/saleboard/internal/fieldmap"
	"github.com/saleboard/saleboard/internal/importer"
	"github.com/saleboard/saleboard/internal/logger"
	"github.com/saleboard/saleboard/internal/model"
)

// Options control a run.
type Options struct {
	Calculator derive.Calculator
	// Workers bounds concurrent rows. Zero means GOMAXPROCS.
	Workers int
	// FailFast stops the run at the first row error.
	FailFast bool
}

// RowError identifies the sheet row and field a failure came from.
type RowError struct {
	Line int    // 1-based sheet row, header is row 1
	Key  string // VchNo when the sheet has one
	Err  error
}

func (e *RowError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("row %d (%s %s): %v", e.Line, model.KeyColumn, e.Key, e.Err)
	}
	return fmt.Sprintf("row %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// Result holds the rows that mapped cleanly and the rows that did not.
// Rows are in sheet order.
type Result struct {
	Rows    []model.Row
	Errors  []*RowError
	Skipped int // blank lines
	Extras  []string
}

// Total returns the number of non-blank rows processed.
func (r *Result) Total() int { return len(r.Rows) + len(r.Errors) }

// Run resolves the header of t and processes each row independently.
// A header that lacks required columns fails the whole run. Row failures
// are collected unless FailFast is set, in which case the first one is
// returned.
func Run(ctx context.Context, t *importer.Table, opts Options) (*Result, error) {
	log := logger.FromContext(ctx)

	binding, err := fieldmap.Resolve(t.Header)
	if err != nil {
		return nil, err
	}
	if extras := binding.Extras(); len(extras) > 0 {
		log.Debug().Strs("columns", extras).Msg("ignoring unmapped columns")
	}

	type slot struct {
		row  model.Row
		err  *RowError
		used bool
	}
	slots := make([]slot, len(t.Rows))

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, cells := range t.Rows {
		if cells == nil {
			continue
		}
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			line := t.Line(i)
			key := binding.Key(cells)
			row, err := processRow(binding, opts.Calculator, cells)
			if err != nil {
				rerr := &RowError{Line: line, Key: key, Err: err}
				slots[i] = slot{err: rerr, used: true}
				if opts.FailFast {
					return rerr
				}
				return nil
			}
			row.Line = line
			row.Key = key
			slots[i] = slot{row: row, used: true}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("pipeline canceled: %w", err)
	}

	res := &Result{Extras: binding.Extras()}
	for i, s := range slots {
		switch {
		case t.Rows[i] == nil:
			res.Skipped++
		case s.err != nil:
			log.Warn().Int("row", s.err.Line).Str("key", s.err.Key).Err(s.err.Err).Msg("row rejected")
			res.Errors = append(res.Errors, s.err)
		case s.used:
			res.Rows = append(res.Rows, s.row)
		}
	}
	log.Info().
		Int("rows", res.Total()).
		Int("mapped", len(res.Rows)).
		Int("failed", len(res.Errors)).
		Msg("sheet processed")
	return res, nil
}

func processRow(b *fieldmap.Binding, calc derive.Calculator, cells []model.Value) (model.Row, error) {
	rec, err := b.MapRow(cells)
	if err != nil {
		return model.Row{}, err
	}
	d, err := calc.Derive(rec)
	if err != nil {
		return model.Row{}, err
	}
	return model.Row{Record: rec, Derived: d}, nil
}

// IsRowError reports whether err came from a single row rather than the
// sheet as a whole.
func IsRowError(err error) bool {
	var rerr *RowError
	return errors.As(err, &rerr)
}
