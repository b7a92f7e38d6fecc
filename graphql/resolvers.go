package graphql

import (
	"encoding/json"
	"fmt"
	"github.com/datastax/page-data-blocks/blocks"
	"github.com/datastax/page-data-blocks/layout"
	"github.com/datastax/page-data-blocks/pages"
	"github.com/datastax/page-data-blocks/types"
	"github.com/graphql-go/graphql"
	"github.com/mitchellh/mapstructure"
	"sort"
)

type serviceResolvers struct {
	service *pages.Service
}

func (sr *serviceResolvers) tables(graphql.ResolveParams) (interface{}, error) {
	tables := sr.service.Tables()
	result := make([]map[string]interface{}, 0, len(tables))
	for _, table := range tables {
		result = append(result, adaptTable(table))
	}
	return result, nil
}

func (sr *serviceResolvers) table(params graphql.ResolveParams) (interface{}, error) {
	table, err := sr.service.Table(params.Args["name"].(string))
	if err != nil {
		return nil, err
	}
	return adaptTable(table), nil
}

func (sr *serviceResolvers) resolve(params graphql.ResolveParams) (interface{}, error) {
	var ref types.DataRef
	if err := decodeArgs(params.Args["ref"], &ref); err != nil {
		return nil, err
	}
	result, err := sr.service.Resolve(params.Context, &ref)
	if err != nil {
		return nil, err
	}
	records := make([]map[string]interface{}, 0, len(result.Records))
	for _, record := range result.Records {
		records = append(records, map[string]interface{}{
			"id":    record.ID,
			"cells": adaptCells(record.Cells),
		})
	}
	var value interface{}
	if result.Value != nil {
		value = *result.Value
	}
	return map[string]interface{}{
		"value":      value,
		"configured": result.Configured,
		"loading":    result.Loading,
		"records":    records,
	}, nil
}

func (sr *serviceResolvers) summarize(params graphql.ResolveParams) (interface{}, error) {
	var props blocks.NumberProps
	if err := blocks.DecodeProps(params.Args, &props); err != nil {
		return nil, err
	}
	value, err := sr.service.Summarize(params.Context, props)
	if err != nil {
		return nil, err
	}
	return adaptValue(value), nil
}

func (sr *serviceResolvers) statsCard(params graphql.ResolveParams) (interface{}, error) {
	var props blocks.StatsCardProps
	if err := blocks.DecodeProps(params.Args, &props); err != nil {
		return nil, err
	}
	value, err := sr.service.StatsCard(params.Context, props)
	if err != nil {
		return nil, err
	}
	return adaptValue(value), nil
}

func (sr *serviceResolvers) properties(graphql.ResolveParams) (interface{}, error) {
	slots := sr.service.Properties()
	result := make([]map[string]interface{}, 0, len(slots))
	for _, slot := range slots {
		result = append(result, map[string]interface{}{
			"key":     slot.Key,
			"label":   slot.Label,
			"type":    string(slot.Type),
			"table":   slot.Table,
			"options": slot.Options,
			"default": slot.Default,
		})
	}
	return result, nil
}

func (sr *serviceResolvers) blocks(graphql.ResolveParams) (interface{}, error) {
	infos := sr.service.Blocks()
	result := make([]map[string]interface{}, 0, len(infos))
	for _, info := range infos {
		defaults, err := json.Marshal(info.Defaults)
		if err != nil {
			return nil, err
		}
		result = append(result, map[string]interface{}{
			"type":     info.Type,
			"label":    info.Label,
			"defaults": string(defaults),
		})
	}
	return result, nil
}

func (sr *serviceResolvers) blockFields(params graphql.ResolveParams) (interface{}, error) {
	props := map[string]interface{}{}
	if raw, ok := params.Args["props"].(string); ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &props); err != nil {
			return nil, fmt.Errorf("props must be a JSON object: %w", err)
		}
	}
	fields, err := sr.service.Fields(params.Args["type"].(string), props)
	if err != nil {
		return nil, err
	}
	result := make([]map[string]interface{}, 0, len(fields))
	for _, field := range fields {
		options := make([]map[string]interface{}, 0, len(field.Options))
		for _, option := range field.Options {
			options = append(options, map[string]interface{}{
				"label": option.Label,
				"value": fmt.Sprint(option.Value),
			})
		}
		result = append(result, map[string]interface{}{
			"name":    field.Name,
			"type":    string(field.Kind),
			"label":   field.Label,
			"options": options,
		})
	}
	return result, nil
}

func (sr *serviceResolvers) layout(params graphql.ResolveParams) (interface{}, error) {
	doc, err := sr.service.Layout(params.Context)
	if err != nil {
		return nil, err
	}
	return adaptLayout(doc, sr.service.SavePending()), nil
}

func (sr *serviceResolvers) render(params graphql.ResolveParams) (interface{}, error) {
	var page blocks.Page
	var err error
	if doc, ok := params.Args["document"].(layout.Document); ok {
		page, err = sr.service.RenderDocument(params.Context, doc)
	} else {
		page, err = sr.service.Render(params.Context)
	}
	if err != nil {
		return nil, err
	}
	rendered := make([]map[string]interface{}, 0, len(page.Blocks))
	for _, block := range page.Blocks {
		rendered = append(rendered, map[string]interface{}{
			"id":       block.ID,
			"type":     block.Type,
			"zone":     block.Zone,
			"title":    block.Title,
			"value":    block.Value.Value,
			"subtitle": block.Subtitle,
		})
	}
	return map[string]interface{}{
		"background": page.Background,
		"blocks":     rendered,
	}, nil
}

func (sr *serviceResolvers) saveLayout(params graphql.ResolveParams) (interface{}, error) {
	doc := params.Args["document"].(layout.Document)
	if err := sr.service.SaveLayout(params.Context, doc); err != nil {
		return nil, err
	}
	return adaptLayout(doc, sr.service.SavePending()), nil
}

func (sr *serviceResolvers) publishLayout(params graphql.ResolveParams) (interface{}, error) {
	doc := params.Args["document"].(layout.Document)
	if err := sr.service.PublishLayout(params.Context, doc); err != nil {
		return nil, err
	}
	return adaptLayout(doc, false), nil
}

// decodeArgs decodes an input object argument into one of the request types
func decodeArgs(args interface{}, target interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: types.FilterValueHook(),
		Result:     target,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(args)
}

func adaptTable(table types.TableInfo) map[string]interface{} {
	fields := make([]map[string]interface{}, 0, len(table.Fields))
	for _, field := range table.Fields {
		fields = append(fields, map[string]interface{}{"name": field.Name, "type": field.Type})
	}
	return map[string]interface{}{
		"name":             table.Name,
		"fields":           fields,
		"canUpdateRecords": table.CanUpdateRecords,
	}
}

// adaptCells lists the cells in field name order
func adaptCells(cells map[string]string) []map[string]interface{} {
	names := make([]string, 0, len(cells))
	for name := range cells {
		names = append(names, name)
	}
	sort.Strings(names)
	result := make([]map[string]interface{}, 0, len(names))
	for _, name := range names {
		result = append(result, map[string]interface{}{"name": name, "value": cells[name]})
	}
	return result
}

func adaptValue(value blocks.Value) map[string]interface{} {
	return map[string]interface{}{
		"title":    value.Title,
		"value":    value.Value,
		"subtitle": value.Subtitle,
	}
}

func adaptLayout(doc layout.Document, pending bool) map[string]interface{} {
	return map[string]interface{}{
		"document": doc,
		"pending":  pending,
	}
}
