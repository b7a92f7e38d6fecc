package resolver

import (
	"github.com/datastax/page-data-blocks/host"
	"github.com/datastax/page-data-blocks/types"
	"strings"
)

func filterRecords(table host.Table, records []host.Record, filters []types.FilterClause) []host.Record {
	result := make([]host.Record, 0, len(records))
	for _, record := range records {
		if matchesAll(table, record, filters) {
			result = append(result, record)
		}
	}
	return result
}

func matchesAll(table host.Table, record host.Record, filters []types.FilterClause) bool {
	for _, filter := range filters {
		if !matches(table, record, filter) {
			return false
		}
	}
	return true
}

// matches evaluates a single clause. Clauses on unknown fields, and clauses whose cell can not be
// read, let the record through.
func matches(table host.Table, record host.Record, filter types.FilterClause) bool {
	field, ok := table.FieldIfExists(filter.Field)
	if !ok {
		return true
	}

	cell, err := record.CellValueAsString(field)
	if err != nil {
		return true
	}

	switch filter.Op {
	case types.OpEq:
		return cell == filter.Value.String()
	case types.OpNeq:
		return cell != filter.Value.String()
	case types.OpContains:
		return strings.Contains(strings.ToLower(cell), strings.ToLower(filter.Value.String()))
	case types.OpGt, types.OpGte, types.OpLt, types.OpLte:
		return compareNumbers(cell, filter)
	}
	return true
}

// compareNumbers only holds for number operands; a string operand fails every comparison.
func compareNumbers(cell string, filter types.FilterClause) bool {
	right, ok := filter.Value.Number()
	if !ok {
		return false
	}
	left, ok := types.ToNumber(cell)
	if !ok {
		return false
	}

	switch filter.Op {
	case types.OpGt:
		return left > right
	case types.OpGte:
		return left >= right
	case types.OpLt:
		return left < right
	case types.OpLte:
		return left <= right
	}
	return false
}
