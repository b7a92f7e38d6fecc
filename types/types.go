// types package contains the public API types
// that are shared between the resolver, REST and GraphQL
package types

import (
	"net/http"
)

// DefaultViewName is the view a DataRef refers to when none is given. It is kept for
// compatibility with persisted layouts and is not used to resolve values.
const DefaultViewName = "Grid view"

type FilterOp string

const (
	OpEq       FilterOp = "eq"
	OpNeq      FilterOp = "neq"
	OpContains FilterOp = "contains"
	OpGt       FilterOp = "gt"
	OpGte      FilterOp = "gte"
	OpLt       FilterOp = "lt"
	OpLte      FilterOp = "lte"
)

type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

type PickType string

const (
	PickFirst PickType = "first"
	PickLast  PickType = "last"
	PickMaxBy PickType = "maxBy"
	PickMinBy PickType = "minBy"
)

// DataRef describes which value of the host data a block displays: a table, optional filters,
// sort keys and pick strategy, and the field whose value is projected.
type DataRef struct {
	TableName string         `json:"tableName" mapstructure:"tableName"`
	ViewName  string         `json:"viewName,omitempty" mapstructure:"viewName"`
	Filters   []FilterClause `json:"filters,omitempty" mapstructure:"filters" validate:"omitempty,dive"`
	Sort      []SortClause   `json:"sort,omitempty" mapstructure:"sort" validate:"omitempty,dive"`
	Pick      *PickStrategy  `json:"pick,omitempty" mapstructure:"pick" validate:"omitempty"`
	FieldName string         `json:"fieldName" mapstructure:"fieldName"`
}

// View returns the view name, falling back to DefaultViewName.
func (r DataRef) View() string {
	if r.ViewName == "" {
		return DefaultViewName
	}
	return r.ViewName
}

// PickType returns the pick strategy type, falling back to PickFirst.
func (r DataRef) PickType() PickType {
	if r.Pick == nil || r.Pick.Type == "" {
		return PickFirst
	}
	return r.Pick.Type
}

type FilterClause struct {
	Field string      `json:"field" mapstructure:"field" validate:"required"`
	Op    FilterOp    `json:"op" mapstructure:"op" validate:"required,oneof=eq neq contains gt gte lt lte"`
	Value FilterValue `json:"value" mapstructure:"value"`
}

type SortClause struct {
	Field     string        `json:"field" mapstructure:"field" validate:"required"`
	Direction SortDirection `json:"direction" mapstructure:"direction" validate:"required,oneof=asc desc"`
}

type PickStrategy struct {
	Type  PickType `json:"type" mapstructure:"type" validate:"required,oneof=first last maxBy minBy"`
	Field string   `json:"field,omitempty" mapstructure:"field"`
}

// RecordValues is the wire representation of a host record.
type RecordValues struct {
	ID    string            `json:"id"`
	Cells map[string]string `json:"cells"`
}

// ResolutionResult is the wire representation of a resolved DataRef. Value is null when the
// reference is not configured.
type ResolutionResult struct {
	Value      *string        `json:"value"`
	Configured bool           `json:"configured"`
	Records    []RecordValues `json:"records"`
	Loading    bool           `json:"loading"`
}

type FieldInfo struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type TableInfo struct {
	Name             string      `json:"name"`
	Fields           []FieldInfo `json:"fields"`
	CanUpdateRecords bool        `json:"canUpdateRecords"`
}

// Route represents a request route to be served
type Route struct {
	Method  string
	Pattern string
	Handler http.Handler
}
