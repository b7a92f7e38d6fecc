package db

import (
	"context"
	"fmt"
	"github.com/datastax/page-data-blocks/auth"
	"github.com/datastax/page-data-blocks/config"
	"github.com/datastax/page-data-blocks/host"
	"github.com/gocql/gocql"
	"net/url"
	"sort"
	"strings"
)

// Base exposes the tables of a keyspace as a host base. Schema is read once, when the base is
// created.
type Base struct {
	db       *Db
	keyspace string
	tables   []host.Table
}

func NewBase(db *Db, keyspace string, perms config.Permissions) (*Base, error) {
	metadata, err := db.Keyspace(keyspace)
	if err != nil {
		return nil, fmt.Errorf("unable to read keyspace '%s' metadata: %w", keyspace, err)
	}

	names := make([]string, 0, len(metadata.Tables))
	for name := range metadata.Tables {
		names = append(names, name)
	}
	sort.Strings(names)

	base := &Base{db: db, keyspace: keyspace}
	for _, name := range names {
		base.tables = append(base.tables, newTable(base, metadata.Tables[name], perms))
	}
	return base, nil
}

func (b *Base) Tables() []host.Table {
	return b.tables
}

func (b *Base) TableByName(name string) host.Table {
	return host.FindTable(b.tables, name)
}

type Table struct {
	base     *Base
	metadata *gocql.TableMetadata
	keys     []*gocql.ColumnMetadata
	fields   []host.Field
	perms    config.Permissions
}

func newTable(base *Base, metadata *gocql.TableMetadata, perms config.Permissions) *Table {
	keys := make([]*gocql.ColumnMetadata, 0, len(metadata.PartitionKey)+len(metadata.ClusteringColumns))
	keys = append(keys, metadata.PartitionKey...)
	keys = append(keys, metadata.ClusteringColumns...)

	isKey := make(map[string]bool, len(keys))
	fields := make([]host.Field, 0, len(metadata.Columns))
	for _, column := range keys {
		isKey[column.Name] = true
		fields = append(fields, host.Field{Name: column.Name, Type: fieldType(column.Type)})
	}

	regular := make([]string, 0, len(metadata.Columns))
	for name := range metadata.Columns {
		if !isKey[name] {
			regular = append(regular, name)
		}
	}
	sort.Strings(regular)
	for _, name := range regular {
		fields = append(fields, host.Field{Name: name, Type: fieldType(metadata.Columns[name].Type)})
	}

	return &Table{
		base:     base,
		metadata: metadata,
		keys:     keys,
		fields:   fields,
		perms:    perms,
	}
}

func (t *Table) Name() string {
	return t.metadata.Name
}

func (t *Table) Fields() []host.Field {
	return t.fields
}

func (t *Table) FieldIfExists(name string) (host.Field, bool) {
	return host.FindField(t.fields, name)
}

func (t *Table) Records(ctx context.Context) ([]host.Record, error) {
	result, err := t.base.db.Select(&SelectInfo{
		Keyspace: t.base.keyspace,
		Table:    t.metadata.Name,
	}, queryOptions(ctx))
	if err != nil {
		return nil, err
	}

	rows := result.Values()
	records := make([]host.Record, 0, len(rows))
	for _, row := range rows {
		id, err := t.recordID(row)
		if err != nil {
			return nil, err
		}
		records = append(records, &record{id: id, table: t.metadata.Name, values: row})
	}
	return records, nil
}

func (t *Table) CanUpdateRecords() bool {
	return t.perms.IsAllowed(config.UpdateRecords)
}

func (t *Table) UpdateRecord(ctx context.Context, recordID string, cells map[string]string) error {
	if !t.CanUpdateRecords() {
		return host.ErrPermissionDenied
	}

	keyValues, err := t.parseRecordID(recordID)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(cells))
	for name := range cells {
		names = append(names, name)
	}
	sort.Strings(names)

	columns := make([]string, 0, len(cells)+len(t.keys))
	params := make([]interface{}, 0, len(cells)+len(t.keys))
	for _, name := range names {
		column, ok := t.metadata.Columns[name]
		if !ok {
			return &host.FieldNotFoundError{Table: t.metadata.Name, Field: name}
		}
		if column.Kind == gocql.ColumnPartitionKey || column.Kind == gocql.ColumnClusteringKey {
			return fmt.Errorf("key column '%s' can not be updated", name)
		}
		value, err := parseValue(cells[name], column.Type)
		if err != nil {
			return fmt.Errorf("invalid value for field '%s': %w", name, err)
		}
		columns = append(columns, name)
		params = append(params, value)
	}
	for i, key := range t.keys {
		columns = append(columns, key.Name)
		params = append(params, keyValues[i])
	}

	applied, err := t.base.db.Update(&UpdateInfo{
		Keyspace:    t.base.keyspace,
		Table:       t.metadata,
		Columns:     columns,
		QueryParams: params,
		IfExists:    true,
	}, queryOptions(ctx))
	if err != nil {
		return err
	}
	if !applied {
		return &host.RecordNotFoundError{Table: t.metadata.Name, RecordID: recordID}
	}
	return nil
}

// recordID joins the primary key values of a row, each one path escaped
func (t *Table) recordID(row map[string]interface{}) (string, error) {
	parts := make([]string, 0, len(t.keys))
	for _, key := range t.keys {
		value, err := formatValue(row[key.Name])
		if err != nil {
			return "", err
		}
		parts = append(parts, url.PathEscape(value))
	}
	return strings.Join(parts, "/"), nil
}

func (t *Table) parseRecordID(recordID string) ([]interface{}, error) {
	parts := strings.Split(recordID, "/")
	if len(parts) != len(t.keys) {
		return nil, &host.RecordNotFoundError{Table: t.metadata.Name, RecordID: recordID}
	}

	values := make([]interface{}, 0, len(parts))
	for i, part := range parts {
		text, err := url.PathUnescape(part)
		if err != nil {
			return nil, &host.RecordNotFoundError{Table: t.metadata.Name, RecordID: recordID}
		}
		value, err := parseValue(text, t.keys[i].Type)
		if err != nil {
			return nil, &host.RecordNotFoundError{Table: t.metadata.Name, RecordID: recordID}
		}
		values = append(values, value)
	}
	return values, nil
}

func queryOptions(ctx context.Context) *QueryOptions {
	return NewQueryOptions().
		WithUserOrRole(auth.UserOrRole(ctx)).
		WithContext(ctx)
}

type record struct {
	id     string
	table  string
	values map[string]interface{}
}

func (r *record) ID() string {
	return r.id
}

func (r *record) CellValueAsString(field host.Field) (string, error) {
	value, ok := r.values[field.Name]
	if !ok {
		return "", &host.FieldNotFoundError{Table: r.table, Field: field.Name}
	}
	return formatValue(value)
}
