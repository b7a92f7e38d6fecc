// Package layout reads and writes the page layout document kept in a long text cell.
package layout

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Document is the persisted page: top level blocks, page wide props and the blocks nested in
// named zones (for example the columns of a Columns block).
type Document struct {
	Content []Block            `json:"content"`
	Root    Root               `json:"root"`
	Zones   map[string][]Block `json:"zones,omitempty"`
}

type Root struct {
	Props map[string]interface{} `json:"props"`
}

type Block struct {
	Type  string                 `json:"type"`
	Props map[string]interface{} `json:"props"`
}

// ID returns the block id stored in its props, if any.
func (b Block) ID() string {
	if id, ok := b.Props["id"].(string); ok {
		return id
	}
	return ""
}

// Empty returns a document without blocks.
func Empty() Document {
	return Document{Content: []Block{}, Root: Root{Props: map[string]interface{}{}}}
}

// Decode parses a cell value. A blank cell decodes to the empty document.
func Decode(cell string) (Document, error) {
	if strings.TrimSpace(cell) == "" {
		return Empty(), nil
	}

	var doc Document
	if err := json.Unmarshal([]byte(cell), &doc); err != nil {
		return Empty(), fmt.Errorf("unable to decode layout document: %w", err)
	}
	if doc.Content == nil {
		doc.Content = []Block{}
	}
	if doc.Root.Props == nil {
		doc.Root.Props = map[string]interface{}{}
	}
	normalizeProps(doc.Content)
	for _, blocks := range doc.Zones {
		normalizeProps(blocks)
	}
	return doc, nil
}

func normalizeProps(blocks []Block) {
	for i := range blocks {
		if blocks[i].Props == nil {
			blocks[i].Props = map[string]interface{}{}
		}
	}
}

// DecodeOrEmpty is Decode with parse errors replaced by the empty document.
func DecodeOrEmpty(cell string) Document {
	doc, err := Decode(cell)
	if err != nil {
		return Empty()
	}
	return doc
}

// Encode serializes the document for storage.
func Encode(doc Document) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("unable to encode layout document: %w", err)
	}
	return string(data), nil
}

// Blocks returns the top level blocks followed by the blocks of every zone, zones in name order.
func (d Document) Blocks() []Block {
	blocks := make([]Block, 0, len(d.Content))
	blocks = append(blocks, d.Content...)
	for _, name := range d.ZoneNames() {
		blocks = append(blocks, d.Zones[name]...)
	}
	return blocks
}

// ZoneNames returns the zone names in sorted order.
func (d Document) ZoneNames() []string {
	names := make([]string, 0, len(d.Zones))
	for name := range d.Zones {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

const (
	DefaultBackground  = "white"
	FallbackBackground = "#f9fafb"
)

var defaultPalette = map[string]string{
	"white":  "#ffffff",
	"color1": "#1d4ed8",
	"color2": "#059669",
	"color3": "#dc2626",
	"color4": "#d97706",
	"color5": "#7c3aed",
	"color6": "#0891b2",
	"color7": "#db2777",
	"color8": "#65a30d",
}

// BackgroundColor maps root.props.backgroundColor onto a CSS colour. color1 to color8 may be
// redefined through root.props.colors; white can not.
func (d Document) BackgroundColor() string {
	name := DefaultBackground
	if value, ok := d.Root.Props["backgroundColor"].(string); ok && value != "" {
		name = value
	}

	color, ok := defaultPalette[name]
	if !ok {
		return FallbackBackground
	}
	if name == "white" {
		return color
	}
	if overrides, ok := d.Root.Props["colors"].(map[string]interface{}); ok {
		if override, ok := overrides[name].(string); ok && override != "" {
			return override
		}
	}
	return color
}
