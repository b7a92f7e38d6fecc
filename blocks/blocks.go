// Package blocks defines the page blocks a layout is made of: their props, the descriptors of
// their editable fields and the values they display.
package blocks

import (
	"fmt"
	"github.com/datastax/page-data-blocks/config"
	"github.com/datastax/page-data-blocks/host"
	"github.com/datastax/page-data-blocks/types"
)

const (
	Hero      = "Hero"
	Text      = "Text"
	Columns   = "Columns"
	StatsCard = "StatsCard"
	Number    = "Number"
)

// Types lists the block types in palette order.
var Types = []string{Hero, Columns, Text, StatsCard, Number}

// Definition describes a block type.
type Definition struct {
	Type  string `json:"type"`
	Label string `json:"label"`

	fields   func(base host.Base, props map[string]interface{}) []FieldDescriptor
	defaults func(base host.Base) map[string]interface{}
	// tables lists the tables a block reads, so that their records can be loaded up front.
	tables func(props map[string]interface{}) []string
	value  func(props map[string]interface{}, lookup TableLookup) (Value, error)
}

var definitions = map[string]*Definition{
	Hero: {
		Type:   Hero,
		Label:  "Hero",
		fields: heroFields,
		defaults: func(host.Base) map[string]interface{} {
			return map[string]interface{}{
				"headline": "Welcome to Your Page",
				"subhead":  "Build pages from the data in your tables",
			}
		},
		tables: dataRefTables,
		value: func(raw map[string]interface{}, lookup TableLookup) (Value, error) {
			var props HeroProps
			if err := DecodeProps(raw, &props); err != nil {
				return Value{}, err
			}
			value := Value{Title: props.Headline, Subtitle: props.Subhead}
			value.Value, _ = refValue(props.DataRef, lookup)
			return value, nil
		},
	},
	Text: {
		Type:   Text,
		Label:  "Text",
		fields: textFields,
		defaults: func(host.Base) map[string]interface{} {
			return map[string]interface{}{"content": "Add your text here...", "size": "base", "weight": "normal"}
		},
		tables: dataRefTables,
		value: func(raw map[string]interface{}, lookup TableLookup) (Value, error) {
			var props TextProps
			if err := DecodeProps(raw, &props); err != nil {
				return Value{}, err
			}
			value, configured := refValue(props.DataRef, lookup)
			if !configured {
				value = props.Content
			}
			return Value{Value: value}, nil
		},
	},
	Columns: {
		Type:   Columns,
		Label:  "Columns",
		fields: columnsFields,
		defaults: func(host.Base) map[string]interface{} {
			return map[string]interface{}{"columns": 2, "distribution": "equal"}
		},
		tables: func(map[string]interface{}) []string { return nil },
		value: func(raw map[string]interface{}, _ TableLookup) (Value, error) {
			var props ColumnsProps
			if err := DecodeProps(raw, &props); err != nil {
				return Value{}, err
			}
			return Value{}, nil
		},
	},
	StatsCard: {
		Type:   StatsCard,
		Label:  "Stats Card",
		fields: statsCardFields,
		defaults: func(base host.Base) map[string]interface{} {
			return map[string]interface{}{
				"title":     "Stat Card",
				"tableName": firstTableName(base),
				"recordId":  "",
				"fieldName": "",
			}
		},
		tables: tableNameProp,
		value: func(raw map[string]interface{}, lookup TableLookup) (Value, error) {
			var props StatsCardProps
			if err := DecodeProps(raw, &props); err != nil {
				return Value{}, err
			}
			table, records := lookup(props.TableName)
			return StatsCardValue(props, table, records), nil
		},
	},
	Number: {
		Type:   Number,
		Label:  "Number",
		fields: numberFields,
		defaults: func(base host.Base) map[string]interface{} {
			return map[string]interface{}{
				"title":       "Count",
				"tableName":   firstTableName(base),
				"displayType": string(DisplayCount),
				"fieldName":   "",
				"summaryType": "sum",
			}
		},
		tables: tableNameProp,
		value: func(raw map[string]interface{}, lookup TableLookup) (Value, error) {
			var props NumberProps
			if err := DecodeProps(raw, &props); err != nil {
				return Value{}, err
			}
			table, records := lookup(props.TableName)
			return NumberValue(props, table, records), nil
		},
	},
}

// UnknownBlockError is returned for block types that are not defined.
type UnknownBlockError struct {
	Type string
}

func (e *UnknownBlockError) Error() string {
	return fmt.Sprintf("unknown block type '%s'", e.Type)
}

// Lookup finds the definition of a block type, accepting any spelling the naming convention
// maps onto it ("stats-card", "stats_card", "StatsCard").
func Lookup(naming config.NamingConvention, name string) (*Definition, error) {
	if definition, ok := definitions[name]; ok {
		return definition, nil
	}
	if definition, ok := definitions[naming.ToBlockType(name)]; ok {
		return definition, nil
	}
	return nil, &UnknownBlockError{Type: name}
}

// Fields returns the field descriptors of the block for its current props. Options depend on
// the props, e.g. the field list follows the selected table.
func (d *Definition) Fields(base host.Base, props map[string]interface{}) []FieldDescriptor {
	if props == nil {
		props = map[string]interface{}{}
	}
	return d.fields(base, props)
}

// Defaults returns the props of a newly added block.
func (d *Definition) Defaults(base host.Base) map[string]interface{} {
	return d.defaults(base)
}

// Fields returns the field descriptors of blockType for props.
func Fields(naming config.NamingConvention, base host.Base, blockType string, props map[string]interface{}) ([]FieldDescriptor, error) {
	definition, err := Lookup(naming, blockType)
	if err != nil {
		return nil, err
	}
	return definition.Fields(base, props), nil
}

func firstTableName(base host.Base) string {
	if tables := base.Tables(); len(tables) > 0 {
		return tables[0].Name()
	}
	return ""
}

func tableNameProp(props map[string]interface{}) []string {
	if name, ok := props["tableName"].(string); ok && name != "" {
		return []string{name}
	}
	return nil
}

func dataRefTables(props map[string]interface{}) []string {
	var decoded struct {
		DataRef *types.DataRef `mapstructure:"dataRef"`
	}
	if err := DecodeProps(props, &decoded); err != nil || decoded.DataRef == nil || decoded.DataRef.TableName == "" {
		return nil
	}
	return []string{decoded.DataRef.TableName}
}
