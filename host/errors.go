package host

import (
	"errors"
	"fmt"
)

// ErrPermissionDenied is returned by writes rejected by CanUpdateRecords and by reads the host
// does not allow.
var ErrPermissionDenied = errors.New("permission denied")

type RecordNotFoundError struct {
	Table    string
	RecordID string
}

func (e *RecordNotFoundError) Error() string {
	return fmt.Sprintf("record '%s' not found in table '%s'", e.RecordID, e.Table)
}

type FieldNotFoundError struct {
	Table string
	Field string
}

func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf("field '%s' not found in table '%s'", e.Field, e.Table)
}

// CellTypeError is returned by CellValueAsString when a cell holds a value the field type can
// not render.
type CellTypeError struct {
	Field string
	Value interface{}
}

func (e *CellTypeError) Error() string {
	return fmt.Sprintf("unable to render value of type %T for field '%s'", e.Value, e.Field)
}
