package resolver

import (
	"context"
	"errors"
	"github.com/datastax/page-data-blocks/host"
)

var errCell = errors.New("cell type mismatch")

type fakeTable struct {
	name   string
	fields []host.Field
}

func newTable(name string, fieldNames ...string) *fakeTable {
	fields := make([]host.Field, 0, len(fieldNames))
	for _, n := range fieldNames {
		fields = append(fields, host.Field{Name: n, Type: host.SingleLineText})
	}
	return &fakeTable{name: name, fields: fields}
}

func (t *fakeTable) Name() string         { return t.name }
func (t *fakeTable) Fields() []host.Field { return t.fields }
func (t *fakeTable) FieldIfExists(name string) (host.Field, bool) {
	return host.FindField(t.fields, name)
}
func (t *fakeTable) Records(context.Context) ([]host.Record, error) { return nil, nil }
func (t *fakeTable) CanUpdateRecords() bool                         { return false }
func (t *fakeTable) UpdateRecord(context.Context, string, map[string]string) error {
	return host.ErrPermissionDenied
}

type fakeRecord struct {
	id     string
	cells  map[string]string
	broken map[string]bool
}

func rec(id string, cells map[string]string, brokenFields ...string) *fakeRecord {
	broken := make(map[string]bool, len(brokenFields))
	for _, f := range brokenFields {
		broken[f] = true
	}
	return &fakeRecord{id: id, cells: cells, broken: broken}
}

func (r *fakeRecord) ID() string { return r.id }
func (r *fakeRecord) CellValueAsString(field host.Field) (string, error) {
	if r.broken[field.Name] {
		return "", errCell
	}
	return r.cells[field.Name], nil
}

func records(rs ...*fakeRecord) []host.Record {
	result := make([]host.Record, len(rs))
	for i, r := range rs {
		result[i] = r
	}
	return result
}

func ids(records []host.Record) []string {
	result := make([]string, len(records))
	for i, r := range records {
		result[i] = r.ID()
	}
	return result
}
