// Package memory implements a host base held entirely in memory, loaded from a snapshot file.
package memory

import (
	"context"
	"fmt"
	"github.com/datastax/page-data-blocks/config"
	"github.com/datastax/page-data-blocks/host"
	"github.com/datastax/page-data-blocks/types"
	"github.com/google/uuid"
	"strconv"
	"strings"
	"sync"
)

type Base struct {
	tables []host.Table
}

// New builds a base from a snapshot. Records without an id are given a random one.
func New(cfg BaseConfig, perms config.Permissions) (*Base, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	tables := make([]host.Table, 0, len(cfg.Tables))
	for _, tableCfg := range cfg.Tables {
		fields := make([]host.Field, 0, len(tableCfg.Fields))
		for _, f := range tableCfg.Fields {
			fieldType := f.Type
			if fieldType == "" {
				fieldType = host.SingleLineText
			}
			fields = append(fields, host.Field{Name: f.Name, Type: fieldType})
		}

		records := make([]*record, 0, len(tableCfg.Records))
		for _, r := range tableCfg.Records {
			id := r.ID
			if id == "" {
				id = uuid.New().String()
			}
			cells := make(map[string]interface{}, len(r.Cells))
			for k, v := range r.Cells {
				cells[k] = v
			}
			records = append(records, &record{id: id, cells: cells})
		}

		tables = append(tables, &Table{
			name:      tableCfg.Name,
			fields:    fields,
			updatable: tableCfg.Updatable,
			perms:     perms,
			records:   records,
		})
	}
	return &Base{tables: tables}, nil
}

// Load reads a snapshot file and builds a base from it.
func Load(path string, perms config.Permissions) (*Base, error) {
	cfg, err := ReadConfig(path)
	if err != nil {
		return nil, err
	}
	return New(cfg, perms)
}

func (b *Base) Tables() []host.Table {
	return b.tables
}

func (b *Base) TableByName(name string) host.Table {
	return host.FindTable(b.tables, name)
}

type Table struct {
	mutex     sync.RWMutex
	name      string
	fields    []host.Field
	updatable bool
	perms     config.Permissions
	records   []*record
}

func (t *Table) Name() string {
	return t.name
}

func (t *Table) Fields() []host.Field {
	return t.fields
}

func (t *Table) FieldIfExists(name string) (host.Field, bool) {
	return host.FindField(t.fields, name)
}

func (t *Table) Records(ctx context.Context) ([]host.Record, error) {
	if !t.perms.IsAllowed(config.ReadRecords) {
		return nil, host.ErrPermissionDenied
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t.mutex.RLock()
	defer t.mutex.RUnlock()
	result := make([]host.Record, len(t.records))
	for i, r := range t.records {
		result[i] = r
	}
	return result, nil
}

func (t *Table) CanUpdateRecords() bool {
	return t.updatable && t.perms.IsAllowed(config.UpdateRecords)
}

// UpdateRecord replaces the given cells. Records handed out earlier keep their old values.
func (t *Table) UpdateRecord(ctx context.Context, recordID string, cells map[string]string) error {
	if !t.CanUpdateRecords() {
		return host.ErrPermissionDenied
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	for name := range cells {
		if _, ok := t.FieldIfExists(name); !ok {
			return &host.FieldNotFoundError{Table: t.name, Field: name}
		}
	}

	t.mutex.Lock()
	defer t.mutex.Unlock()
	for i, r := range t.records {
		if r.id != recordID {
			continue
		}
		updated := &record{id: r.id, cells: make(map[string]interface{}, len(r.cells)+len(cells))}
		for k, v := range r.cells {
			updated.cells[k] = v
		}
		for k, v := range cells {
			updated.cells[k] = v
		}
		t.records[i] = updated
		return nil
	}
	return &host.RecordNotFoundError{Table: t.name, RecordID: recordID}
}

// record values are never modified once created.
type record struct {
	id    string
	cells map[string]interface{}
}

func (r *record) ID() string {
	return r.id
}

func (r *record) CellValueAsString(field host.Field) (string, error) {
	value, ok := r.cells[field.Name]
	if !ok {
		return "", nil
	}
	return formatCell(field, value)
}

func formatCell(field host.Field, value interface{}) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case bool:
		if field.Type == host.Checkbox {
			if v {
				return "checked", nil
			}
			return "", nil
		}
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float64:
		return types.FormatNumber(v), nil
	case []interface{}:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			part, err := formatListItem(field, item)
			if err != nil {
				return "", err
			}
			parts = append(parts, part)
		}
		return strings.Join(parts, ", "), nil
	case map[string]interface{}:
		return formatListItem(field, v)
	}
	return "", &host.CellTypeError{Field: field.Name, Value: value}
}

func formatListItem(field host.Field, item interface{}) (string, error) {
	attachment, ok := item.(map[string]interface{})
	if !ok {
		if _, nested := item.([]interface{}); nested {
			return "", &host.CellTypeError{Field: field.Name, Value: item}
		}
		return formatCell(field, item)
	}

	filename, hasName := attachment["filename"].(string)
	url, hasURL := attachment["url"].(string)
	switch {
	case hasName && hasURL:
		return fmt.Sprintf("%s (%s)", filename, url), nil
	case hasName:
		return filename, nil
	case hasURL:
		return url, nil
	case len(attachment) == 1:
		// {name: value} pairs such as linked record names
		for _, v := range attachment {
			return formatCell(field, v)
		}
	}
	return "", &host.CellTypeError{Field: field.Name, Value: item}
}
