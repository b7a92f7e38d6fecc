// Package pages binds a host base to the operations the REST and GraphQL endpoints serve: table
// listing, data reference resolution, block values and the stored layout.
package pages

import (
	"context"
	"fmt"
	"github.com/datastax/page-data-blocks/blocks"
	"github.com/datastax/page-data-blocks/config"
	"github.com/datastax/page-data-blocks/host"
	"github.com/datastax/page-data-blocks/layout"
	"github.com/datastax/page-data-blocks/log"
	"github.com/datastax/page-data-blocks/properties"
	"github.com/datastax/page-data-blocks/resolver"
	"github.com/datastax/page-data-blocks/types"
)

type TableNotFoundError struct {
	Table string
}

func (e *TableNotFoundError) Error() string {
	return fmt.Sprintf("table '%s' not found", e.Table)
}

type Service struct {
	base     host.Base
	naming   config.NamingConvention
	logger   log.Logger
	renderer *blocks.Renderer
	store    *layout.Store
	setupErr error
}

// NewService builds the service for base. When no layouts table and fields can be selected the
// service still resolves values, and every layout operation fails with the setup error.
func NewService(base host.Base, cfg config.Config, overrides properties.Overrides) *Service {
	logger := cfg.Logger()
	service := &Service{
		base:     base,
		naming:   cfg.Naming(),
		logger:   logger,
		renderer: blocks.NewRenderer(base, cfg.Naming(), logger),
	}

	selection, err := properties.Select(base, overrides)
	if err != nil {
		logger.Warn("layout storage is not configured", "error", err)
		service.setupErr = err
		return service
	}
	logger.Info("layout storage configured",
		"table", selection.Table.Name(),
		"docField", selection.DocField.Name)
	service.store = layout.NewStore(selection, cfg.SaveDelay(), logger)
	return service
}

func (s *Service) Base() host.Base {
	return s.base
}

func (s *Service) Tables() []types.TableInfo {
	tables := s.base.Tables()
	infos := make([]types.TableInfo, 0, len(tables))
	for _, table := range tables {
		infos = append(infos, tableInfo(table))
	}
	return infos
}

func (s *Service) Table(name string) (types.TableInfo, error) {
	table := s.base.TableByName(name)
	if table == nil {
		return types.TableInfo{}, &TableNotFoundError{Table: name}
	}
	return tableInfo(table), nil
}

func tableInfo(table host.Table) types.TableInfo {
	fields := table.Fields()
	info := types.TableInfo{
		Name:             table.Name(),
		Fields:           make([]types.FieldInfo, 0, len(fields)),
		CanUpdateRecords: table.CanUpdateRecords(),
	}
	for _, field := range fields {
		info.Fields = append(info.Fields, types.FieldInfo{Name: field.Name, Type: string(field.Type)})
	}
	return info
}

// Resolve loads the records of the referenced table and resolves ref against them.
func (s *Service) Resolve(ctx context.Context, ref *types.DataRef) (types.ResolutionResult, error) {
	var tableName string
	if ref != nil {
		tableName = ref.TableName
	}
	table, records, err := s.load(ctx, tableName)
	if err != nil {
		return types.ResolutionResult{}, err
	}
	return resolver.ToResolutionResult(resolver.Resolve(ref, table, records), table), nil
}

// Summarize computes the value of a Number block.
func (s *Service) Summarize(ctx context.Context, props blocks.NumberProps) (blocks.Value, error) {
	table, records, err := s.load(ctx, props.TableName)
	if err != nil {
		return blocks.Value{}, err
	}
	return blocks.NumberValue(props, table, records), nil
}

// StatsCard computes the value of a StatsCard block.
func (s *Service) StatsCard(ctx context.Context, props blocks.StatsCardProps) (blocks.Value, error) {
	table, records, err := s.load(ctx, props.TableName)
	if err != nil {
		return blocks.Value{}, err
	}
	return blocks.StatsCardValue(props, table, records), nil
}

// load returns the named table and its records. A table that does not exist is not an error, the
// values computed from it carry the table not found placeholder instead.
func (s *Service) load(ctx context.Context, tableName string) (host.Table, []host.Record, error) {
	if tableName == "" {
		return nil, nil, nil
	}
	table := s.base.TableByName(tableName)
	if table == nil {
		return nil, nil, nil
	}
	records, err := table.Records(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to load records of table '%s': %w", tableName, err)
	}
	return table, records, nil
}

// Properties returns the setup slots with their default choices.
func (s *Service) Properties() []properties.Slot {
	return properties.Defaults(s.base)
}

// Fields returns the editor fields of a block type given its current props.
func (s *Service) Fields(blockType string, props map[string]interface{}) ([]blocks.FieldDescriptor, error) {
	return blocks.Fields(s.naming, s.base, blockType, props)
}

// Defaults returns the props a new block of the given type starts with.
func (s *Service) Defaults(blockType string) (map[string]interface{}, error) {
	definition, err := blocks.Lookup(s.naming, blockType)
	if err != nil {
		return nil, err
	}
	return definition.Defaults(s.base), nil
}

// Selection returns the layouts table and fields in use.
func (s *Service) Selection() (*properties.Selection, error) {
	if s.store == nil {
		return nil, s.setupErr
	}
	return s.store.Selection(), nil
}

func (s *Service) Layout(ctx context.Context) (layout.Document, error) {
	if s.store == nil {
		return layout.Empty(), s.setupErr
	}
	return s.store.Load(ctx)
}

// SaveLayout schedules doc to be written once saves stop arriving.
func (s *Service) SaveLayout(ctx context.Context, doc layout.Document) error {
	if s.store == nil {
		return s.setupErr
	}
	return s.store.Save(ctx, doc)
}

// PublishLayout writes doc right away.
func (s *Service) PublishLayout(ctx context.Context, doc layout.Document) error {
	if s.store == nil {
		return s.setupErr
	}
	return s.store.Publish(ctx, doc)
}

// SavePending reports whether a scheduled save has not been written yet.
func (s *Service) SavePending() bool {
	return s.store != nil && s.store.Saver().Pending()
}

// Render computes the values of every block of the stored layout.
func (s *Service) Render(ctx context.Context) (blocks.Page, error) {
	doc, err := s.Layout(ctx)
	if err != nil {
		return blocks.Page{}, err
	}
	return s.renderer.Render(ctx, doc)
}

// RenderDocument computes the values of every block of doc.
func (s *Service) RenderDocument(ctx context.Context, doc layout.Document) (blocks.Page, error) {
	return s.renderer.Render(ctx, doc)
}

// Close writes any pending layout save.
func (s *Service) Close(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	return s.store.Close(ctx)
}

// BlockInfo describes an entry of the block palette.
type BlockInfo struct {
	Type     string                 `json:"type"`
	Label    string                 `json:"label"`
	Defaults map[string]interface{} `json:"defaults"`
}

// Blocks lists the block types in palette order along with the props new blocks start with.
func (s *Service) Blocks() []BlockInfo {
	infos := make([]BlockInfo, 0, len(blocks.Types))
	for _, blockType := range blocks.Types {
		definition, err := blocks.Lookup(s.naming, blockType)
		if err != nil {
			continue
		}
		infos = append(infos, BlockInfo{
			Type:     definition.Type,
			Label:    definition.Label,
			Defaults: definition.Defaults(s.base),
		})
	}
	return infos
}
