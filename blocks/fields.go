package blocks

import (
	"github.com/datastax/page-data-blocks/aggregate"
	"github.com/datastax/page-data-blocks/host"
)

type FieldKind string

const (
	TextField     FieldKind = "text"
	TextareaField FieldKind = "textarea"
	SelectField   FieldKind = "select"
	RadioField    FieldKind = "radio"
	DataRefField  FieldKind = "dataRef"
)

// FieldDescriptor describes one editable prop of a block.
type FieldDescriptor struct {
	Name    string    `json:"name"`
	Kind    FieldKind `json:"type"`
	Label   string    `json:"label"`
	Options []Option  `json:"options,omitempty"`
}

type Option struct {
	Label string      `json:"label"`
	Value interface{} `json:"value"`
}

var noTableOption = Option{Label: "Select a table first", Value: ""}

func tableOptions(base host.Base) []Option {
	options := make([]Option, 0, len(base.Tables()))
	for _, table := range base.Tables() {
		options = append(options, Option{Label: table.Name(), Value: table.Name()})
	}
	return options
}

// fieldOptions lists the fields of the named table, or a placeholder option when it does not
// resolve or has no fields.
func fieldOptions(base host.Base, tableName string) []Option {
	table := base.TableByName(tableName)
	if table == nil || len(table.Fields()) == 0 {
		return []Option{noTableOption}
	}
	options := make([]Option, 0, len(table.Fields()))
	for _, field := range table.Fields() {
		options = append(options, Option{Label: field.Name, Value: field.Name})
	}
	return options
}

func labeled(pairs ...string) []Option {
	options := make([]Option, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		options = append(options, Option{Label: pairs[i], Value: pairs[i+1]})
	}
	return options
}

var alignmentOptions = labeled("Left", "left", "Center", "center", "Right", "right")

func heroFields(host.Base, map[string]interface{}) []FieldDescriptor {
	return []FieldDescriptor{
		{Name: "headline", Kind: TextField, Label: "Headline"},
		{Name: "subhead", Kind: TextareaField, Label: "Subheadline"},
		{Name: "backgroundUrl", Kind: TextField, Label: "Background Image URL (optional)"},
		{Name: "backgroundColor", Kind: SelectField, Label: "Background Color", Options: labeled(
			"Blue", "blue", "Green", "green", "Red", "red", "Yellow", "yellow", "Purple", "purple",
			"Gray", "gray", "Cyan", "cyan", "Teal", "teal", "Orange", "orange", "Pink", "pink")},
		{Name: "alignment", Kind: SelectField, Label: "Text Alignment", Options: alignmentOptions},
		{Name: "dataRef", Kind: DataRefField, Label: "Data (optional)"},
	}
}

func textFields(host.Base, map[string]interface{}) []FieldDescriptor {
	return []FieldDescriptor{
		{Name: "content", Kind: TextareaField, Label: "Text Content"},
		{Name: "size", Kind: SelectField, Label: "Text Size", Options: labeled(
			"Extra Small", "xs", "Small", "sm", "Base", "base", "Large", "lg", "Extra Large", "xl",
			"2XL", "2xl", "3XL", "3xl", "4XL", "4xl", "5XL", "5xl", "6XL", "6xl")},
		{Name: "weight", Kind: SelectField, Label: "Font Weight", Options: labeled(
			"Normal", "normal", "Medium", "medium", "Semibold", "semibold", "Bold", "bold")},
		{Name: "align", Kind: RadioField, Label: "Text Alignment", Options: alignmentOptions},
		{Name: "color", Kind: SelectField, Label: "Text Color", Options: labeled(
			"Black", "black", "White", "white", "Color 1", "color1", "Color 2", "color2",
			"Color 3", "color3", "Color 4", "color4", "Color 5", "color5", "Color 6", "color6",
			"Color 7", "color7", "Color 8", "color8")},
		{Name: "dataRef", Kind: DataRefField, Label: "Data (optional)"},
	}
}

func columnsFields(host.Base, map[string]interface{}) []FieldDescriptor {
	return []FieldDescriptor{
		{Name: "columns", Kind: SelectField, Label: "Number of Columns", Options: []Option{
			{Label: "1 Column", Value: 1},
			{Label: "2 Columns", Value: 2},
			{Label: "3 Columns", Value: 3},
			{Label: "4 Columns", Value: 4},
			{Label: "5 Columns", Value: 5},
		}},
		{Name: "distribution", Kind: SelectField, Label: "Column Distribution", Options: labeled(
			"Equal Width", "equal", "Auto (fit content)", "auto", "Wide Left (2:1)", "wide-left",
			"Wide Right (1:2)", "wide-right")},
		{Name: "gap", Kind: SelectField, Label: "Gap Between Columns", Options: labeled(
			"None", "none", "Small", "small", "Medium", "medium", "Large", "large")},
	}
}

func statsCardFields(base host.Base, raw map[string]interface{}) []FieldDescriptor {
	var props StatsCardProps
	_ = DecodeProps(raw, &props)
	return []FieldDescriptor{
		{Name: "title", Kind: TextField, Label: "Title"},
		{Name: "tableName", Kind: SelectField, Label: "Table", Options: tableOptions(base)},
		{Name: "recordId", Kind: TextField, Label: "Record ID"},
		{Name: "fieldName", Kind: SelectField, Label: "Field to Display", Options: fieldOptions(base, props.TableName)},
	}
}

func numberFields(base host.Base, raw map[string]interface{}) []FieldDescriptor {
	var props NumberProps
	_ = DecodeProps(raw, &props)

	summaryOnly := func(label string) string {
		if props.DisplayType == DisplaySummary {
			return label
		}
		return label + " (Summary only)"
	}

	summaryOptions := make([]Option, 0, len(aggregate.Kinds))
	for _, kind := range aggregate.Kinds {
		summaryOptions = append(summaryOptions, Option{Label: summaryLabels[kind], Value: string(kind)})
	}

	return []FieldDescriptor{
		{Name: "title", Kind: TextField, Label: "Title"},
		{Name: "tableName", Kind: SelectField, Label: "Table", Options: tableOptions(base)},
		{Name: "displayType", Kind: RadioField, Label: "Type", Options: labeled(
			"Count", string(DisplayCount), "Summary", string(DisplaySummary))},
		{Name: "fieldName", Kind: SelectField, Label: summaryOnly("Field"), Options: fieldOptions(base, props.TableName)},
		{Name: "summaryType", Kind: SelectField, Label: summaryOnly("Summary Type"), Options: summaryOptions},
	}
}

var summaryLabels = map[aggregate.StatKind]string{
	aggregate.Sum:     "Sum",
	aggregate.Average: "Average",
	aggregate.Median:  "Median",
	aggregate.Min:     "Min",
	aggregate.Max:     "Max",
	aggregate.Range:   "Range",
}
