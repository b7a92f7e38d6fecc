// Package aggregate computes summary statistics over the numeric cells of a table field.
package aggregate

import (
	"github.com/datastax/page-data-blocks/host"
	"github.com/datastax/page-data-blocks/types"
	"math"
	"sort"
)

// Empty is returned when there is nothing to aggregate or the statistic is unknown.
const Empty = "—"

type StatKind string

const (
	Sum     StatKind = "sum"
	Average StatKind = "average"
	Median  StatKind = "median"
	Min     StatKind = "min"
	Max     StatKind = "max"
	Range   StatKind = "range"
)

// Kinds lists the supported statistics in the order they are offered to users.
var Kinds = []StatKind{Sum, Average, Median, Min, Max, Range}

// Aggregate computes kind over values and formats it with two decimals. values is not modified.
func Aggregate(values []float64, kind StatKind) string {
	if len(values) == 0 {
		return Empty
	}

	var result float64
	switch kind {
	case Sum:
		result = sum(values)
	case Average:
		result = sum(values) / float64(len(values))
	case Median:
		result = median(values)
	case Min:
		result, _ = extremes(values)
	case Max:
		_, result = extremes(values)
	case Range:
		low, high := extremes(values)
		result = high - low
	default:
		return Empty
	}
	return types.FormatFixed(result)
}

// Numbers collects the numeric values of field over records. Cells that do not start with a
// number, and cells that can not be read, are skipped rather than counted as zero.
func Numbers(field host.Field, records []host.Record) []float64 {
	values := make([]float64, 0, len(records))
	for _, record := range records {
		cell, err := record.CellValueAsString(field)
		if err != nil {
			continue
		}
		if value, ok := types.ParseFloat(cell); ok {
			values = append(values, value)
		}
	}
	return values
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func extremes(values []float64) (float64, float64) {
	low, high := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		low = math.Min(low, v)
		high = math.Max(high, v)
	}
	return low, high
}
