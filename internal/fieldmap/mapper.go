// Package fieldmap projects raw worksheet rows onto the eleven dashboard fields.
package fieldmap

import (
	"github.com/saleboard/saleboard/internal/model"
)

// Map copies the eleven required source columns of raw into a MappedRecord.
// Values are copied verbatim. The first absent column, in field order, is
// reported as a *MissingFieldError and no record is returned.
func Map(raw model.RawRecord) (model.MappedRecord, error) {
	var vals [model.NumFields]model.Value
	for _, f := range model.Fields() {
		v, ok := raw[f.Source()]
		if !ok {
			return model.MappedRecord{}, &MissingFieldError{Field: f, Column: f.Source()}
		}
		vals[f] = v
	}
	return model.NewMappedRecord(vals), nil
}

// Binding is the field enumeration resolved against one worksheet header.
type Binding struct {
	index  [model.NumFields]int
	key    int // index of the natural key column, -1 if absent
	header []string
	extras []string
}

// Resolve locates every required column in header. Names must match exactly.
// All missing or duplicated required columns are reported together.
func Resolve(header []string) (*Binding, error) {
	pos := make(map[string]int, len(header))
	var dups []string
	for i, name := range header {
		if _, seen := pos[name]; seen {
			if isRequired(name) {
				dups = append(dups, name)
			}
			continue
		}
		pos[name] = i
	}

	b := &Binding{key: -1, header: append([]string(nil), header...)}
	var missing []string
	for _, f := range model.Fields() {
		i, ok := pos[f.Source()]
		if !ok {
			missing = append(missing, f.Source())
			continue
		}
		b.index[f] = i
	}
	if len(missing) > 0 || len(dups) > 0 {
		return nil, &HeaderError{Missing: missing, Duplicate: dups}
	}

	if i, ok := pos[model.KeyColumn]; ok {
		b.key = i
	}
	for _, name := range header {
		if !isRequired(name) {
			b.extras = append(b.extras, name)
		}
	}
	return b, nil
}

// MapRow maps a row of cells laid out like the resolved header.
func (b *Binding) MapRow(cells []model.Value) (model.MappedRecord, error) {
	var vals [model.NumFields]model.Value
	for _, f := range model.Fields() {
		i := b.index[f]
		if i >= len(cells) {
			return model.MappedRecord{}, &MissingFieldError{Field: f, Column: f.Source()}
		}
		vals[f] = cells[i]
	}
	return model.NewMappedRecord(vals), nil
}

// Key returns the natural key (VchNo) of a row, or "" when unavailable.
func (b *Binding) Key(cells []model.Value) string {
	if b.key < 0 || b.key >= len(cells) {
		return ""
	}
	return cells[b.key].String()
}

// Record rebuilds the RawRecord for a row. Cells past the end of a short
// row are left out, so Map reports them as missing.
func (b *Binding) Record(cells []model.Value) model.RawRecord {
	raw := make(model.RawRecord, len(b.header))
	for i, name := range b.header {
		if i >= len(cells) {
			break
		}
		if _, seen := raw[name]; !seen {
			raw[name] = cells[i]
		}
	}
	return raw
}

// Extras returns the header names the mapping ignores.
func (b *Binding) Extras() []string {
	return b.extras
}

func isRequired(name string) bool {
	c, ok := model.LookupColumn(name)
	return ok && c.Mapped
}
