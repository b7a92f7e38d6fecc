package models

import "github.com/datastax/page-data-blocks/layout"

// Layout is the stored layout document
type Layout struct {
	Document layout.Document `json:"document"`

	// Pending is set while a saved document has not been written to the layouts table yet
	Pending bool `json:"pending"`
}

type LayoutSaved struct {
	Pending bool `json:"pending"`
}
