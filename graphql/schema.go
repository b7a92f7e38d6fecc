package graphql

import (
	"github.com/datastax/page-data-blocks/pages"
	"github.com/graphql-go/graphql"
)

var fieldType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Field",
	Fields: graphql.Fields{
		"name": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"type": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

var tableType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Table",
	Fields: graphql.Fields{
		"name":             &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"fields":           &graphql.Field{Type: graphql.NewList(fieldType)},
		"canUpdateRecords": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
	},
})

var cellType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Cell",
	Fields: graphql.Fields{
		"name":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"value": &graphql.Field{Type: graphql.String},
	},
})

var recordType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Record",
	Fields: graphql.Fields{
		"id":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"cells": &graphql.Field{Type: graphql.NewList(cellType)},
	},
})

var resolutionType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Resolution",
	Fields: graphql.Fields{
		"value":      &graphql.Field{Type: graphql.String},
		"configured": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"loading":    &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"records":    &graphql.Field{Type: graphql.NewList(recordType)},
	},
})

var blockValueType = graphql.NewObject(graphql.ObjectConfig{
	Name: "BlockValue",
	Fields: graphql.Fields{
		"title":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"value":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"subtitle": &graphql.Field{Type: graphql.String},
	},
})

var renderedBlockType = graphql.NewObject(graphql.ObjectConfig{
	Name: "RenderedBlock",
	Fields: graphql.Fields{
		"id":       &graphql.Field{Type: graphql.String},
		"type":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"zone":     &graphql.Field{Type: graphql.String},
		"title":    &graphql.Field{Type: graphql.String},
		"value":    &graphql.Field{Type: graphql.String},
		"subtitle": &graphql.Field{Type: graphql.String},
	},
})

var pageType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Page",
	Fields: graphql.Fields{
		"background": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"blocks":     &graphql.Field{Type: graphql.NewList(renderedBlockType)},
	},
})

var layoutType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Layout",
	Fields: graphql.Fields{
		"document": &graphql.Field{Type: graphql.NewNonNull(document)},
		"pending":  &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
	},
})

var slotType = graphql.NewObject(graphql.ObjectConfig{
	Name: "PropertySlot",
	Fields: graphql.Fields{
		"key":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"label":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"type":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"table":   &graphql.Field{Type: graphql.String},
		"options": &graphql.Field{Type: graphql.NewList(graphql.String)},
		"default": &graphql.Field{Type: graphql.String},
	},
})

var optionType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Option",
	Fields: graphql.Fields{
		"label": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"value": &graphql.Field{Type: graphql.String},
	},
})

var blockFieldType = graphql.NewObject(graphql.ObjectConfig{
	Name: "BlockField",
	Fields: graphql.Fields{
		"name":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"type":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"label":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"options": &graphql.Field{Type: graphql.NewList(optionType)},
	},
})

var blockType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Block",
	Fields: graphql.Fields{
		"type":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"label": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		// JSON encoded props a new block starts with
		"defaults": &graphql.Field{Type: graphql.String},
	},
})

func buildQueryFields(sr *serviceResolvers) graphql.Fields {
	return graphql.Fields{
		"tables": &graphql.Field{
			Type:    graphql.NewList(tableType),
			Resolve: sr.tables,
		},
		"table": &graphql.Field{
			Type: tableType,
			Args: graphql.FieldConfigArgument{
				"name": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: sr.table,
		},
		"resolve": &graphql.Field{
			Type: resolutionType,
			Args: graphql.FieldConfigArgument{
				"ref": &graphql.ArgumentConfig{Type: graphql.NewNonNull(dataRefInput)},
			},
			Resolve: sr.resolve,
		},
		"summarize": &graphql.Field{
			Type: blockValueType,
			Args: graphql.FieldConfigArgument{
				"tableName":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"title":       &graphql.ArgumentConfig{Type: graphql.String},
				"displayType": &graphql.ArgumentConfig{Type: displayTypeEnum},
				"fieldName":   &graphql.ArgumentConfig{Type: graphql.String},
				"summaryType": &graphql.ArgumentConfig{Type: summaryTypeEnum},
			},
			Resolve: sr.summarize,
		},
		"statsCard": &graphql.Field{
			Type: blockValueType,
			Args: graphql.FieldConfigArgument{
				"tableName": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"recordId":  &graphql.ArgumentConfig{Type: graphql.String},
				"fieldName": &graphql.ArgumentConfig{Type: graphql.String},
				"title":     &graphql.ArgumentConfig{Type: graphql.String},
			},
			Resolve: sr.statsCard,
		},
		"properties": &graphql.Field{
			Type:    graphql.NewList(slotType),
			Resolve: sr.properties,
		},
		"blocks": &graphql.Field{
			Type:    graphql.NewList(blockType),
			Resolve: sr.blocks,
		},
		"blockFields": &graphql.Field{
			Type: graphql.NewList(blockFieldType),
			Args: graphql.FieldConfigArgument{
				"type": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				// Current props of the block, as a JSON object
				"props": &graphql.ArgumentConfig{Type: graphql.String},
			},
			Resolve: sr.blockFields,
		},
		"layout": &graphql.Field{
			Type:    layoutType,
			Resolve: sr.layout,
		},
		"render": &graphql.Field{
			Type: pageType,
			Args: graphql.FieldConfigArgument{
				"document": &graphql.ArgumentConfig{Type: document},
			},
			Resolve: sr.render,
		},
	}
}

func buildMutationFields(sr *serviceResolvers) graphql.Fields {
	documentArgs := graphql.FieldConfigArgument{
		"document": &graphql.ArgumentConfig{Type: graphql.NewNonNull(document)},
	}
	return graphql.Fields{
		"saveLayout": &graphql.Field{
			Type:    layoutType,
			Args:    documentArgs,
			Resolve: sr.saveLayout,
		},
		"publishLayout": &graphql.Field{
			Type:    layoutType,
			Args:    documentArgs,
			Resolve: sr.publishLayout,
		},
	}
}

// BuildSchema builds the GraphQL schema served for a page service
func BuildSchema(service *pages.Service) (graphql.Schema, error) {
	sr := &serviceResolvers{service: service}
	return graphql.NewSchema(
		graphql.SchemaConfig{
			Query: graphql.NewObject(graphql.ObjectConfig{
				Name:   "PageQuery",
				Fields: buildQueryFields(sr),
			}),
			Mutation: graphql.NewObject(graphql.ObjectConfig{
				Name:   "PageMutation",
				Fields: buildMutationFields(sr),
			}),
		},
	)
}
