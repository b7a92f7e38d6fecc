package resolver

import (
	"github.com/datastax/page-data-blocks/host"
	"github.com/datastax/page-data-blocks/types"
	"sort"
	"unicode/utf16"
)

// sortRecords returns a stably sorted copy of records. Values are compared as text, so numeric
// fields order "10" before "2". Any direction other than asc sorts descending.
func sortRecords(table host.Table, records []host.Record, clauses []types.SortClause) []host.Record {
	if len(clauses) == 0 {
		return records
	}

	keys := make([]sortKey, 0, len(clauses))
	for _, clause := range clauses {
		if field, ok := table.FieldIfExists(clause.Field); ok {
			keys = append(keys, sortKey{field: field, desc: clause.Direction != types.Asc})
		}
	}

	rows := make([]sortRow, len(records))
	for i, record := range records {
		rows[i] = sortRow{record: record, values: make([]sortValue, len(keys))}
		for k, key := range keys {
			value, err := record.CellValueAsString(key.field)
			rows[i].values[k] = sortValue{text: value, ok: err == nil}
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return compareRows(keys, rows[i], rows[j]) < 0
	})

	result := make([]host.Record, len(rows))
	for i, row := range rows {
		result[i] = row.record
	}
	return result
}

type sortKey struct {
	field host.Field
	desc  bool
}

type sortValue struct {
	text string
	ok   bool
}

type sortRow struct {
	record host.Record
	values []sortValue
}

// compareRows walks the keys in order; a key whose value could not be read on either side is a
// tie for that key.
func compareRows(keys []sortKey, a, b sortRow) int {
	for k, key := range keys {
		av, bv := a.values[k], b.values[k]
		if !av.ok || !bv.ok || av.text == bv.text {
			continue
		}
		cmp := compareText(av.text, bv.text)
		if key.desc {
			return -cmp
		}
		return cmp
	}
	return 0
}

// compareText orders a and b by UTF-16 code units, which differs from byte order for characters
// outside the basic multilingual plane.
func compareText(a, b string) int {
	ua, ub := utf16.Encode([]rune(a)), utf16.Encode([]rune(b))
	for i := 0; i < len(ua) && i < len(ub); i++ {
		if ua[i] != ub[i] {
			if ua[i] < ub[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(ua) < len(ub):
		return -1
	case len(ua) > len(ub):
		return 1
	}
	return 0
}
