// Package host describes the tabular database the page blocks read from and write to.
package host

import (
	"context"
)

type FieldType string

const (
	SingleLineText      FieldType = "singleLineText"
	MultilineText       FieldType = "multilineText"
	RichText            FieldType = "richText"
	MultipleAttachments FieldType = "multipleAttachments"
	Number              FieldType = "number"
	Checkbox            FieldType = "checkbox"
	Date                FieldType = "date"
	Other               FieldType = "other"
)

type Field struct {
	Name string
	Type FieldType
}

// Record is a single row of a table. CellValueAsString may fail for individual cells, callers
// are expected to recover per record.
type Record interface {
	ID() string
	CellValueAsString(field Field) (string, error)
}

type Table interface {
	Name() string
	Fields() []Field
	FieldIfExists(name string) (Field, bool)

	// Records returns a snapshot of the table rows in host iteration order.
	Records(ctx context.Context) ([]Record, error)

	// CanUpdateRecords reports whether UpdateRecord is permitted. It never contacts the host.
	CanUpdateRecords() bool
	UpdateRecord(ctx context.Context, recordID string, cells map[string]string) error
}

type Base interface {
	Tables() []Table
	// TableByName returns nil when no table has exactly that name.
	TableByName(name string) Table
}

// FindField is a linear lookup helper for Table implementations.
func FindField(fields []Field, name string) (Field, bool) {
	for _, field := range fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// FindTable is a linear lookup helper for Base implementations.
func FindTable(tables []Table, name string) Table {
	for _, table := range tables {
		if table.Name() == name {
			return table
		}
	}
	return nil
}

// FindRecord returns the record with the given id, or nil.
func FindRecord(records []Record, id string) Record {
	for _, record := range records {
		if record.ID() == id {
			return record
		}
	}
	return nil
}

// CellValues extracts every field of record as a string, skipping cells that fail.
func CellValues(record Record, fields []Field) map[string]string {
	cells := make(map[string]string, len(fields))
	for _, field := range fields {
		if value, err := record.CellValueAsString(field); err == nil {
			cells[field.Name] = value
		}
	}
	return cells
}
