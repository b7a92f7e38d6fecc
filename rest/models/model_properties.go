package models

import "github.com/datastax/page-data-blocks/properties"

// Properties lists the setup slots and the current selection
type Properties struct {
	Slots     []properties.Slot `json:"slots"`
	Selection *Selection        `json:"selection,omitempty"`

	// SetupRequired describes what is missing before layouts can be stored
	SetupRequired string `json:"setupRequired,omitempty"`
}

type Selection struct {
	Table       string `json:"table"`
	NameField   string `json:"nameField"`
	DocField    string `json:"docField"`
	AssetsField string `json:"assetsField"`
}
