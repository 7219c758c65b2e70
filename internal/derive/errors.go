package derive

import (
	"fmt"

	"github.com/saleboard/saleboard/internal/model"
)

// TypeMismatchError reports a field that must be numeric but is not.
type TypeMismatchError struct {
	Field model.Field
	Value model.Value
}

func (e *TypeMismatchError) Error() string {
	if e.Value.IsBlank() {
		return fmt.Sprintf("field %s is blank, expected a number", e.Field.Name())
	}
	return fmt.Sprintf("field %s is %s %q, expected a number", e.Field.Name(), e.Value.Kind(), e.Value.String())
}

// InvalidDateError reports a Date field that is absent or unparseable.
type InvalidDateError struct {
	Value model.Value
}

func (e *InvalidDateError) Error() string {
	if e.Value.IsBlank() {
		return "field Date is blank"
	}
	return fmt.Sprintf("field Date %q is not a date", e.Value.String())
}
