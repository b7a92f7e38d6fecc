package sqlite

import (
	"context"
	"errors"
	"github.com/datastax/page-data-blocks/config"
	"github.com/datastax/page-data-blocks/host"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

const schema = `
CREATE TABLE layouts (id INTEGER PRIMARY KEY, name TEXT, doc LONGTEXT, assets ATTACHMENTS);
CREATE TABLE deals (company VARCHAR(40), amount REAL, seats INT, won BOOLEAN, closed DATETIME, logo BLOB);
INSERT INTO layouts (id, name, doc) VALUES (7, 'Home', '{"content":[],"root":{"props":{}}}');
INSERT INTO deals VALUES ('Acme', 100.5, 3, 1, NULL, NULL);
INSERT INTO deals VALUES ('Globex', NULL, 12, 0, NULL, NULL);
`

func openBase(t *testing.T, perms config.Permissions) *Base {
	base, err := Open(":memory:", perms)
	require.NoError(t, err)
	t.Cleanup(func() { _ = base.Close() })

	_, err = base.db.Exec(schema)
	require.NoError(t, err)

	// reread the schema now that the tables exist
	reloaded, err := New(context.Background(), base.db, perms)
	require.NoError(t, err)
	return reloaded
}

func TestTablesAndFields(t *testing.T) {
	base := openBase(t, config.DefaultPermissions)

	names := make([]string, 0)
	for _, table := range base.Tables() {
		names = append(names, table.Name())
	}
	assert.Equal(t, []string{"deals", "layouts"}, names)
	assert.Nil(t, base.TableByName("missing"))

	assert.Equal(t, []host.Field{
		{Name: "id", Type: host.Number},
		{Name: "name", Type: host.SingleLineText},
		{Name: "doc", Type: host.MultilineText},
		{Name: "assets", Type: host.MultipleAttachments},
	}, base.TableByName("layouts").Fields())

	assert.Equal(t, []host.Field{
		{Name: "company", Type: host.SingleLineText},
		{Name: "amount", Type: host.Number},
		{Name: "seats", Type: host.Number},
		{Name: "won", Type: host.Checkbox},
		{Name: "closed", Type: host.Date},
		{Name: "logo", Type: host.Other},
	}, base.TableByName("deals").Fields())
}

func TestRecords(t *testing.T) {
	base := openBase(t, config.DefaultPermissions)
	deals := base.TableByName("deals")

	records, err := deals.Records(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "1", records[0].ID())
	assert.Equal(t, "2", records[1].ID())

	cells := host.CellValues(records[0], deals.Fields())
	assert.Contains(t, []string{"1", "true"}, cells["won"])
	delete(cells, "won")
	assert.Equal(t, map[string]string{
		"company": "Acme",
		"amount":  "100.5",
		"seats":   "3",
		"closed":  "",
		"logo":    "",
	}, cells)

	amount, err := records[1].CellValueAsString(host.Field{Name: "amount"})
	require.NoError(t, err)
	assert.Equal(t, "", amount)

	_, err = records[1].CellValueAsString(host.Field{Name: "missing"})
	var notFound *host.FieldNotFoundError
	assert.True(t, errors.As(err, &notFound))

	layouts, err := base.TableByName("layouts").Records(context.Background())
	require.NoError(t, err)
	require.Len(t, layouts, 1)
	assert.Equal(t, "7", layouts[0].ID())
	id, err := layouts[0].CellValueAsString(host.Field{Name: "id"})
	require.NoError(t, err)
	assert.Equal(t, "7", id)
}

func TestUpdateRecord(t *testing.T) {
	base := openBase(t, config.ReadRecords|config.UpdateRecords)
	layouts := base.TableByName("layouts")
	require.True(t, layouts.CanUpdateRecords())

	doc := `{"content":[{"type":"Text","props":{"id":"t1"}}],"root":{"props":{}}}`
	require.NoError(t, layouts.UpdateRecord(context.Background(), "7", map[string]string{"doc": doc}))

	records, err := layouts.Records(context.Background())
	require.NoError(t, err)
	value, err := records[0].CellValueAsString(host.Field{Name: "doc"})
	require.NoError(t, err)
	assert.Equal(t, doc, value)

	deals := base.TableByName("deals")
	require.NoError(t, deals.UpdateRecord(context.Background(), "1", map[string]string{"amount": ""}))
	records, err = deals.Records(context.Background())
	require.NoError(t, err)
	amount, err := records[0].CellValueAsString(host.Field{Name: "amount"})
	require.NoError(t, err)
	assert.Equal(t, "", amount)
}

func TestUpdateRecordErrors(t *testing.T) {
	readOnly := openBase(t, config.DefaultPermissions)
	assert.False(t, readOnly.TableByName("layouts").CanUpdateRecords())
	err := readOnly.TableByName("layouts").UpdateRecord(context.Background(), "7", map[string]string{"doc": "{}"})
	assert.Equal(t, host.ErrPermissionDenied, err)

	base := openBase(t, config.ReadRecords|config.UpdateRecords)
	layouts := base.TableByName("layouts")

	var recordNotFound *host.RecordNotFoundError
	err = layouts.UpdateRecord(context.Background(), "99", map[string]string{"doc": "{}"})
	assert.True(t, errors.As(err, &recordNotFound))
	err = layouts.UpdateRecord(context.Background(), "abc", map[string]string{"doc": "{}"})
	assert.True(t, errors.As(err, &recordNotFound))

	var fieldNotFound *host.FieldNotFoundError
	err = layouts.UpdateRecord(context.Background(), "7", map[string]string{"body": "{}"})
	assert.True(t, errors.As(err, &fieldNotFound))

	assert.Error(t, layouts.UpdateRecord(context.Background(), "7", map[string]string{}))
}

func TestFieldType(t *testing.T) {
	assert.Equal(t, host.Number, fieldType("unsigned big int"))
	assert.Equal(t, host.SingleLineText, fieldType(""))
	assert.Equal(t, host.SingleLineText, fieldType("NVARCHAR(100)"))
	assert.Equal(t, host.MultilineText, fieldType("json"))
}
