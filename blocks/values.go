package blocks

import (
	"github.com/datastax/page-data-blocks/aggregate"
	"github.com/datastax/page-data-blocks/host"
	"github.com/datastax/page-data-blocks/resolver"
	"github.com/datastax/page-data-blocks/types"
	"strconv"
)

// DefaultTitle is shown by Number and StatsCard blocks without a title.
const DefaultTitle = "Stat"

// Value is what a block displays: a title, the computed value and a caption.
type Value struct {
	Title    string `json:"title"`
	Value    string `json:"value"`
	Subtitle string `json:"subtitle,omitempty"`
}

// NumberValue counts the records of a table or summarizes one of its fields. table is nil when
// TableName does not resolve.
func NumberValue(props NumberProps, table host.Table, records []host.Record) Value {
	value := Value{Title: titleOrDefault(props.Title), Value: resolver.Empty}

	displayType := props.DisplayType
	if displayType == "" {
		displayType = DisplayCount
	}

	switch displayType {
	case DisplayCount:
		if table == nil {
			value.Value = resolver.TableNotFound
			return value
		}
		value.Value = strconv.Itoa(len(records))
		value.Subtitle = props.TableName
	case DisplaySummary:
		if props.FieldName == "" {
			value.Value = resolver.SelectField
			return value
		}
		if table == nil {
			value.Value = resolver.TableNotFound
			return value
		}
		field, ok := table.FieldIfExists(props.FieldName)
		if !ok {
			value.Value = resolver.FieldNotFound
			return value
		}
		summaryType := props.SummaryType
		if summaryType == "" {
			summaryType = aggregate.Sum
		}
		value.Value = aggregate.Aggregate(aggregate.Numbers(field, records), summaryType)
		value.Subtitle = props.TableName + " → " + props.FieldName
	}
	return value
}

// StatsCardValue shows a single cell of the record with id RecordID.
func StatsCardValue(props StatsCardProps, table host.Table, records []host.Record) Value {
	value := Value{
		Title:    titleOrDefault(props.Title),
		Value:    resolver.Empty,
		Subtitle: props.TableName + " → " + props.FieldName,
	}

	switch {
	case props.RecordID == "":
		value.Value = resolver.SelectRecord
	case props.FieldName == "":
		value.Value = resolver.SelectField
	case table == nil:
		value.Value = resolver.TableNotFound
	default:
		record := host.FindRecord(records, props.RecordID)
		if record == nil {
			value.Value = resolver.RecordNotFound
			return value
		}
		field, ok := table.FieldIfExists(props.FieldName)
		if !ok {
			value.Value = resolver.FieldNotFound
			return value
		}
		cell, err := record.CellValueAsString(field)
		if err != nil {
			value.Value = resolver.Error
		} else if cell != "" {
			value.Value = cell
		}
	}
	return value
}

// refValue resolves ref, reporting whether it is configured at all.
func refValue(ref *types.DataRef, lookup TableLookup) (string, bool) {
	if ref == nil || ref.TableName == "" {
		return "", false
	}
	table, records := lookup(ref.TableName)
	result := resolver.Resolve(ref, table, records)
	return result.Value, result.Configured
}

func titleOrDefault(title string) string {
	if title == "" {
		return DefaultTitle
	}
	return title
}

// TableLookup returns the named table, or nil, along with its records.
type TableLookup func(name string) (host.Table, []host.Record)

// SnapshotLookup looks tables up in base and their records in snapshot.
func SnapshotLookup(base host.Base, snapshot host.Snapshot) TableLookup {
	return func(name string) (host.Table, []host.Record) {
		table := base.TableByName(name)
		if table == nil {
			return nil, nil
		}
		return table, snapshot[name]
	}
}
