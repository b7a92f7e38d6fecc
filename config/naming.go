package config

import "github.com/iancoleman/strcase"

// NamingConvention maps the different spellings of block type names used by clients
// (URL segments, persisted layout documents) onto a single canonical form.
type NamingConvention interface {
	ToBlockType(name string) string
	ToPathSegment(blockType string) string
}

type defaultNaming struct {
}

func NewDefaultNaming() NamingConvention {
	return &defaultNaming{}
}

func (n *defaultNaming) ToBlockType(name string) string {
	return strcase.ToCamel(name)
}

func (n *defaultNaming) ToPathSegment(blockType string) string {
	return strcase.ToKebab(blockType)
}
