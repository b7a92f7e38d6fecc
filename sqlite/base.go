// Package sqlite implements a host base over the tables of a SQLite database file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"github.com/datastax/page-data-blocks/config"
	"github.com/datastax/page-data-blocks/host"
	"sort"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"
)

const listTablesQuery = "SELECT name FROM sqlite_schema WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name"

// rowIDColumn aliases the rowid so it can not collide with an INTEGER PRIMARY KEY column name
const rowIDColumn = "__rowid"

// Base exposes the tables of a SQLite database. Schema is read once, when the base is opened.
type Base struct {
	db     *sql.DB
	tables []host.Table
}

// Open opens the database file at path. The path ":memory:" opens a private in-memory database.
func Open(path string, perms config.Permissions) (*Base, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if path == ":memory:" {
		// every connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	}

	base, err := New(context.Background(), db, perms)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return base, nil
}

// New reads the schema of an already opened database.
func New(ctx context.Context, db *sql.DB, perms config.Permissions) (*Base, error) {
	names, err := tableNames(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("unable to list tables: %w", err)
	}

	base := &Base{db: db}
	for _, name := range names {
		fields, err := tableFields(ctx, db, name)
		if err != nil {
			return nil, fmt.Errorf("unable to read columns of table '%s': %w", name, err)
		}
		base.tables = append(base.tables, &Table{
			db:     db,
			name:   name,
			fields: fields,
			perms:  perms,
		})
	}
	return base, nil
}

func (b *Base) Tables() []host.Table {
	return b.tables
}

func (b *Base) TableByName(name string) host.Table {
	return host.FindTable(b.tables, name)
}

func (b *Base) Close() error {
	return b.db.Close()
}

func tableNames(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, listTablesQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func tableFields(ctx context.Context, db *sql.DB, table string) ([]host.Field, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", quoteIdentifier(table)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fields []host.Field
	for rows.Next() {
		var (
			cid          int
			name         string
			declaredType string
			notNull      bool
			defaultValue sql.NullString
			pk           int
		)
		if err := rows.Scan(&cid, &name, &declaredType, &notNull, &defaultValue, &pk); err != nil {
			return nil, err
		}
		fields = append(fields, host.Field{Name: name, Type: fieldType(declaredType)})
	}
	return fields, rows.Err()
}

// fieldType maps a declared column type onto a field type. SQLite accepts any type name, so
// LONGTEXT/CLOB/JSON columns hold long text and ATTACHMENTS columns hold attachment lists.
func fieldType(declaredType string) host.FieldType {
	t := strings.ToUpper(declaredType)
	switch {
	case strings.Contains(t, "ATTACHMENT"):
		return host.MultipleAttachments
	case strings.Contains(t, "LONGTEXT"), strings.Contains(t, "CLOB"), strings.Contains(t, "JSON"):
		return host.MultilineText
	case strings.Contains(t, "BOOL"):
		return host.Checkbox
	case strings.Contains(t, "DATE"), strings.Contains(t, "TIME"):
		return host.Date
	case strings.Contains(t, "INT"), strings.Contains(t, "REAL"), strings.Contains(t, "FLOA"),
		strings.Contains(t, "DOUB"), strings.Contains(t, "NUMERIC"), strings.Contains(t, "DECIMAL"):
		return host.Number
	case strings.Contains(t, "BLOB"):
		return host.Other
	}
	return host.SingleLineText
}

type Table struct {
	db     *sql.DB
	name   string
	fields []host.Field
	perms  config.Permissions
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
	query := fmt.Sprintf("SELECT rowid AS %s, * FROM %s ORDER BY rowid",
		quoteIdentifier(rowIDColumn), quoteIdentifier(t.name))
	rows, err := t.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	records := make([]host.Record, 0)
	for rows.Next() {
		values := make([]interface{}, len(columns))
		pointers := make([]interface{}, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}

		id, err := formatValue(values[0])
		if err != nil {
			return nil, err
		}
		cells := make(map[string]interface{}, len(columns)-1)
		for i := 1; i < len(columns); i++ {
			cells[columns[i]] = values[i]
		}
		records = append(records, &record{id: id, table: t.name, cells: cells})
	}
	return records, rows.Err()
}

func (t *Table) CanUpdateRecords() bool {
	return t.perms.IsAllowed(config.UpdateRecords)
}

// UpdateRecord sets the given cells of the row with the given rowid. Empty text is stored as
// NULL in non text columns.
func (t *Table) UpdateRecord(ctx context.Context, recordID string, cells map[string]string) error {
	if !t.CanUpdateRecords() {
		return host.ErrPermissionDenied
	}

	rowID, err := strconv.ParseInt(recordID, 10, 64)
	if err != nil {
		return &host.RecordNotFoundError{Table: t.name, RecordID: recordID}
	}

	names := make([]string, 0, len(cells))
	for name := range cells {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) == 0 {
		return fmt.Errorf("no cells to update in table '%s'", t.name)
	}

	setClause := make([]string, 0, len(names))
	params := make([]interface{}, 0, len(names)+1)
	for _, name := range names {
		field, ok := t.FieldIfExists(name)
		if !ok {
			return &host.FieldNotFoundError{Table: t.name, Field: name}
		}
		setClause = append(setClause, quoteIdentifier(name)+" = ?")
		params = append(params, columnValue(field, cells[name]))
	}
	params = append(params, rowID)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE rowid = ?", quoteIdentifier(t.name), strings.Join(setClause, ", "))
	result, err := t.db.ExecContext(ctx, query, params...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &host.RecordNotFoundError{Table: t.name, RecordID: recordID}
	}
	return nil
}

func columnValue(field host.Field, text string) interface{} {
	switch field.Type {
	case host.Number, host.Checkbox, host.Date:
		if strings.TrimSpace(text) == "" {
			return nil
		}
	}
	return text
}

func quoteIdentifier(name string) string {
	return `"` + strings.Replace(name, `"`, `""`, -1) + `"`
}
