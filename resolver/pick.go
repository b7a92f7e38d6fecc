package resolver

import (
	"github.com/datastax/page-data-blocks/host"
	"github.com/datastax/page-data-blocks/types"
	"math"
)

func pick(table host.Table, records []host.Record, ref *types.DataRef) host.Record {
	if len(records) == 0 {
		return nil
	}

	pickType := ref.PickType()
	switch pickType {
	case types.PickLast:
		return records[len(records)-1]
	case types.PickMaxBy, types.PickMinBy:
		strategy := ref.Pick
		if strategy.Field == "" {
			return records[0]
		}
		field, ok := table.FieldIfExists(strategy.Field)
		if !ok {
			return records[0]
		}
		return pickExtreme(records, field, pickType == types.PickMaxBy)
	}
	return records[0]
}

// pickExtreme scans for the largest (or smallest) numeric value. Unreadable values never win
// and ties keep the earliest record.
func pickExtreme(records []host.Record, field host.Field, max bool) host.Record {
	losing := math.Inf(1)
	if max {
		losing = math.Inf(-1)
	}

	value := func(record host.Record) float64 {
		cell, err := record.CellValueAsString(field)
		if err != nil {
			return losing
		}
		f, ok := types.ParseFloat(cell)
		if !ok {
			return losing
		}
		return f
	}

	best := records[0]
	bestValue := value(best)
	for _, record := range records[1:] {
		v := value(record)
		if (max && v > bestValue) || (!max && v < bestValue) {
			best, bestValue = record, v
		}
	}
	return best
}
