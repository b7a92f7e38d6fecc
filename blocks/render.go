package blocks

import (
	"context"
	"github.com/datastax/page-data-blocks/config"
	"github.com/datastax/page-data-blocks/host"
	"github.com/datastax/page-data-blocks/layout"
	"github.com/datastax/page-data-blocks/log"
	"github.com/datastax/page-data-blocks/resolver"
)

// Page is a layout document with every block value computed.
type Page struct {
	Background string          `json:"background"`
	Blocks     []RenderedBlock `json:"blocks"`
}

type RenderedBlock struct {
	ID   string `json:"id,omitempty"`
	Type string `json:"type"`
	// Zone is empty for top level blocks.
	Zone string `json:"zone,omitempty"`
	Value
}

// Renderer computes block values against a base.
type Renderer struct {
	base   host.Base
	naming config.NamingConvention
	logger log.Logger
}

func NewRenderer(base host.Base, naming config.NamingConvention, logger log.Logger) *Renderer {
	return &Renderer{base: base, naming: naming, logger: logger}
}

// Render loads the records of every table the document refers to and computes the value of each
// block, top level blocks first and then zones by name. Blocks of unknown type or with props
// that can not be decoded render as an error instead of failing the page.
func (r *Renderer) Render(ctx context.Context, doc layout.Document) (Page, error) {
	type entry struct {
		zone  string
		block layout.Block
	}

	entries := make([]entry, 0, len(doc.Content))
	for _, block := range doc.Content {
		entries = append(entries, entry{block: block})
	}
	for _, zone := range doc.ZoneNames() {
		for _, block := range doc.Zones[zone] {
			entries = append(entries, entry{zone: zone, block: block})
		}
	}

	var tableNames []string
	for _, e := range entries {
		if definition, err := Lookup(r.naming, e.block.Type); err == nil {
			tableNames = append(tableNames, definition.tables(e.block.Props)...)
		}
	}

	snapshot, err := host.LoadRecords(ctx, r.base, r.logger, tableNames...)
	if err != nil {
		return Page{}, err
	}
	lookup := SnapshotLookup(r.base, snapshot)

	page := Page{Background: doc.BackgroundColor(), Blocks: make([]RenderedBlock, 0, len(entries))}
	for _, e := range entries {
		rendered := RenderedBlock{ID: e.block.ID(), Type: e.block.Type, Zone: e.zone}
		value, err := r.value(e.block, lookup)
		if err != nil {
			r.logger.Warn("unable to render block", "block", e.block.ID(), "type", e.block.Type, "error", err)
			value = Value{Value: resolver.Error}
		}
		rendered.Value = value
		page.Blocks = append(page.Blocks, rendered)
	}
	return page, nil
}

func (r *Renderer) value(block layout.Block, lookup TableLookup) (Value, error) {
	definition, err := Lookup(r.naming, block.Type)
	if err != nil {
		return Value{}, err
	}
	return definition.value(block.Props, lookup)
}
