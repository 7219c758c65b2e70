package fieldmap

import (
	"fmt"
	"strings"

	"github.com/saleboard/saleboard/internal/model"
)

// MissingFieldError reports a required source column absent from a record.
type MissingFieldError struct {
	Field  model.Field
	Column string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing column %q for field %s", e.Column, e.Field.Name())
}

// HeaderError reports a worksheet header that does not carry every
// required column.
type HeaderError struct {
	Missing   []string
	Duplicate []string
}

func (e *HeaderError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing columns: "+quoteAll(e.Missing))
	}
	if len(e.Duplicate) > 0 {
		parts = append(parts, "duplicate columns: "+quoteAll(e.Duplicate))
	}
	return "header does not match mapping: " + strings.Join(parts, "; ")
}

func quoteAll(names []string) string {
	q := make([]string, len(names))
	for i, n := range names {
		q[i] = fmt.Sprintf("%q", n)
	}
	return strings.Join(q, ", ")
}
