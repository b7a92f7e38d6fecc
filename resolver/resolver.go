// Package resolver turns a DataRef into a display value over a snapshot of host records.
//
// Resolution never fails: every missing or broken piece of configuration or data is reported
// through one of the placeholder values below. Errors raised while evaluating a single record
// are contained to that record.
package resolver

import (
	"github.com/datastax/page-data-blocks/host"
	"github.com/datastax/page-data-blocks/types"
)

// Placeholder values shown instead of a resolved value.
const (
	Empty          = "—"
	TableNotFound  = "(table not found)"
	FieldNotFound  = "(field not found)"
	Error          = "(error)"
	SelectField    = "(select a field)"
	SelectRecord   = "(select a record)"
	RecordNotFound = "(record not found)"
)

type Result struct {
	// Value is meaningful only when Configured is true.
	Value string
	// Configured is false when the reference or its table name is missing. Callers render their
	// own unconfigured state in that case.
	Configured bool
	// Records holds the filtered and sorted records, before a single one is picked.
	Records []host.Record
	Loading bool
}

// Resolve applies filter, sort, pick and projection to records. table is nil when the referenced
// table no longer exists. Neither records nor the ref are modified.
func Resolve(ref *types.DataRef, table host.Table, records []host.Record) Result {
	if ref == nil || ref.TableName == "" {
		return Result{Records: []host.Record{}}
	}

	if table == nil {
		return Result{Value: TableNotFound, Configured: true, Records: []host.Record{}}
	}

	if len(records) == 0 {
		return Result{Value: Empty, Configured: true, Records: []host.Record{}}
	}

	filtered := filterRecords(table, records, ref.Filters)
	sorted := sortRecords(table, filtered, ref.Sort)
	chosen := pick(table, sorted, ref)

	return Result{
		Value:      project(table, chosen, ref.FieldName),
		Configured: true,
		Records:    sorted,
	}
}

func project(table host.Table, chosen host.Record, fieldName string) string {
	if chosen == nil || fieldName == "" {
		return Empty
	}

	field, ok := table.FieldIfExists(fieldName)
	if !ok {
		return FieldNotFound
	}

	value, err := chosen.CellValueAsString(field)
	if err != nil {
		return Error
	}
	if value == "" {
		return Empty
	}
	return value
}

// ToResolutionResult converts a result into its wire representation. Cells of every table field
// are included for each record.
func ToResolutionResult(result Result, table host.Table) types.ResolutionResult {
	wire := types.ResolutionResult{
		Configured: result.Configured,
		Records:    make([]types.RecordValues, 0, len(result.Records)),
		Loading:    result.Loading,
	}
	if result.Configured {
		value := result.Value
		wire.Value = &value
	}
	if table == nil {
		return wire
	}
	fields := table.Fields()
	for _, record := range result.Records {
		wire.Records = append(wire.Records, types.RecordValues{
			ID:    record.ID(),
			Cells: host.CellValues(record, fields),
		})
	}
	return wire
}
