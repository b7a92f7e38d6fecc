package graphql

import (
	"github.com/datastax/page-data-blocks/layout"
	"github.com/datastax/page-data-blocks/types"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
	"strconv"
)

var filterValue = graphql.NewScalar(graphql.ScalarConfig{
	Name: "FilterValue",
	Description: "The `FilterValue` scalar type represents the right-hand side of a filter clause," +
		" either a string or a number.",
	Serialize:    serializeStringer,
	ParseValue:   deserializeFilterValue,
	ParseLiteral: parseFilterValueLiteral,
})

var document = newStringScalar(
	"LayoutDocument", "The `LayoutDocument` scalar type represents a page layout serialized as a JSON string.",
	serializeDocument, deserializeDocument)

// newStringScalar Creates an string-based scalar with custom serialization functions
func newStringScalar(
	name string, description string, serializeFn graphql.SerializeFn, deserializeFn graphql.ParseValueFn,
) *graphql.Scalar {
	return graphql.NewScalar(graphql.ScalarConfig{
		Name:         name,
		Description:  description,
		Serialize:    serializeFn,
		ParseValue:   deserializeFn,
		ParseLiteral: parseLiteralFromStringHandler(deserializeFn),
	})
}

func parseLiteralFromStringHandler(parser graphql.ParseValueFn) graphql.ParseLiteralFn {
	return func(valueAST ast.Value) interface{} {
		switch valueAST := valueAST.(type) {
		case *ast.StringValue:
			return parser(valueAST.Value)
		}
		return nil
	}
}

func parseFilterValueLiteral(valueAST ast.Value) interface{} {
	switch valueAST := valueAST.(type) {
	case *ast.StringValue:
		return types.StringValue(valueAST.Value)
	case *ast.IntValue, *ast.FloatValue:
		f, err := strconv.ParseFloat(valueAST.GetValue().(string), 64)
		if err != nil {
			return nil
		}
		return types.NumberValue(f)
	case *ast.BooleanValue:
		return types.StringValue(strconv.FormatBool(valueAST.Value))
	}
	return nil
}

func deserializeFilterValue(value interface{}) interface{} {
	switch value := value.(type) {
	case types.FilterValue:
		return value
	case string:
		return types.StringValue(value)
	case float64:
		return types.NumberValue(value)
	case int:
		return types.NumberValue(float64(value))
	case bool:
		return types.StringValue(strconv.FormatBool(value))
	}
	return nil
}

// deserializeDocument returns nil for documents that can not be decoded, which graphql-go
// reports as an invalid argument value.
func deserializeDocument(value interface{}) interface{} {
	var text string
	switch value := value.(type) {
	case layout.Document:
		return value
	case string:
		text = value
	case *string:
		if value == nil {
			return nil
		}
		text = *value
	case []byte:
		text = string(value)
	default:
		return nil
	}
	doc, err := layout.Decode(text)
	if err != nil {
		return nil
	}
	return doc
}

func serializeDocument(value interface{}) interface{} {
	switch value := value.(type) {
	case layout.Document:
		text, err := layout.Encode(value)
		if err != nil {
			return nil
		}
		return text
	case *layout.Document:
		if value == nil {
			return nil
		}
		return serializeDocument(*value)
	default:
		return value
	}
}

func serializeStringer(value interface{}) interface{} {
	switch value := value.(type) {
	case types.FilterValue:
		if f, ok := value.Number(); ok {
			return f
		}
		return value.String()
	default:
		return value
	}
}
