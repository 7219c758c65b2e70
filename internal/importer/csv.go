package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// CSVReader reads a sales sheet exported as CSV. The first row is the header.
type CSVReader struct {
	DateLayouts []string
}

// Format returns the reader name.
func (r *CSVReader) Format() string { return "csv" }

// Read parses the CSV and types its cells by column.
func (r *CSVReader) Read(in io.Reader) (*Table, error) {
	cr := csv.NewReader(in)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("reading sales CSV: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("reading sales CSV: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	t := &Table{Header: header}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading sales CSV: %w", err)
		}
		// encoding/csv drops empty lines and joins quoted newlines, so the
		// physical line is taken from the reader.
		line, _ := cr.FieldPos(0)
		t.Lines = append(t.Lines, line)
		if isBlankRow(rec) {
			t.Rows = append(t.Rows, nil)
			continue
		}
		t.Rows = append(t.Rows, typeRow(header, rec, r.DateLayouts, nil))
	}
	return t, nil
}
