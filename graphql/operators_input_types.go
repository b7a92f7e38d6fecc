package graphql

import (
	"github.com/datastax/page-data-blocks/aggregate"
	"github.com/datastax/page-data-blocks/blocks"
	"github.com/datastax/page-data-blocks/types"
	"github.com/graphql-go/graphql"
)

var filterOpEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "FilterOp",
	Values: enumValues(
		string(types.OpEq), string(types.OpNeq), string(types.OpContains),
		string(types.OpGt), string(types.OpGte), string(types.OpLt), string(types.OpLte)),
})

var sortDirectionEnum = graphql.NewEnum(graphql.EnumConfig{
	Name:   "SortDirection",
	Values: enumValues(string(types.Asc), string(types.Desc)),
})

var pickTypeEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "PickType",
	Values: enumValues(
		string(types.PickFirst), string(types.PickLast), string(types.PickMaxBy), string(types.PickMinBy)),
})

var displayTypeEnum = graphql.NewEnum(graphql.EnumConfig{
	Name:   "DisplayType",
	Values: enumValues(string(blocks.DisplayCount), string(blocks.DisplaySummary)),
})

var summaryTypeEnum = graphql.NewEnum(graphql.EnumConfig{
	Name:   "SummaryType",
	Values: summaryValues(),
})

// enumValues maps each name to itself so resolvers receive the plain string.
func enumValues(names ...string) graphql.EnumValueConfigMap {
	values := graphql.EnumValueConfigMap{}
	for _, name := range names {
		values[name] = &graphql.EnumValueConfig{Value: name}
	}
	return values
}

func summaryValues() graphql.EnumValueConfigMap {
	names := make([]string, 0, len(aggregate.Kinds))
	for _, kind := range aggregate.Kinds {
		names = append(names, string(kind))
	}
	return enumValues(names...)
}

var filterInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "FilterInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"field": {Type: graphql.NewNonNull(graphql.String)},
		"op":    {Type: graphql.NewNonNull(filterOpEnum)},
		"value": {Type: filterValue},
	},
})

var sortInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "SortInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"field":     {Type: graphql.NewNonNull(graphql.String)},
		"direction": {Type: sortDirectionEnum, DefaultValue: string(types.Asc)},
	},
})

var pickInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "PickInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"type":  {Type: graphql.NewNonNull(pickTypeEnum)},
		"field": {Type: graphql.String},
	},
})

var dataRefInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "DataRefInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"tableName": {Type: graphql.NewNonNull(graphql.String)},
		"viewName":  {Type: graphql.String},
		"filters":   {Type: graphql.NewList(graphql.NewNonNull(filterInput))},
		"sort":      {Type: graphql.NewList(graphql.NewNonNull(sortInput))},
		"pick":      {Type: pickInput},
		"fieldName": {Type: graphql.NewNonNull(graphql.String)},
	},
})
