package memory

import (
	"context"
	"errors"
	"github.com/datastax/page-data-blocks/config"
	"github.com/datastax/page-data-blocks/host"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

const snapshotYAML = `
tables:
  - name: Tasks
    updatable: true
    fields:
      - {name: Name, type: singleLineText}
      - {name: Points, type: number}
      - {name: Done, type: checkbox}
      - {name: Files, type: multipleAttachments}
      - {name: Broken, type: other}
    records:
      - id: rec1
        cells:
          Name: Write docs
          Points: 3
          Done: true
          Files:
            - {filename: a.png, url: "https://x/a.png"}
            - {filename: b.png}
          Broken: [[1, 2]]
      - cells:
          Name: Ship
          Points: 2.5
`

func newTestBase(t *testing.T, perms config.Permissions) *Base {
	cfg, err := ParseConfig([]byte(snapshotYAML))
	require.NoError(t, err)
	base, err := New(cfg, perms)
	require.NoError(t, err)
	return base
}

func TestBaseTables(t *testing.T) {
	base := newTestBase(t, config.DefaultPermissions)

	require.Len(t, base.Tables(), 1)
	table := base.TableByName("Tasks")
	require.NotNil(t, table)
	assert.Nil(t, base.TableByName("tasks"))
	assert.Nil(t, base.TableByName("Ghost"))

	field, ok := table.FieldIfExists("Points")
	assert.True(t, ok)
	assert.Equal(t, host.Number, field.Type)
	_, ok = table.FieldIfExists("Missing")
	assert.False(t, ok)
}

func TestCellValueAsString(t *testing.T) {
	base := newTestBase(t, config.DefaultPermissions)
	table := base.TableByName("Tasks")
	records, err := table.Records(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	cell := func(r host.Record, name string) (string, error) {
		field, ok := table.FieldIfExists(name)
		require.True(t, ok)
		return r.CellValueAsString(field)
	}

	first := records[0]
	assert.Equal(t, "rec1", first.ID())
	value, err := cell(first, "Points")
	assert.NoError(t, err)
	assert.Equal(t, "3", value)
	value, _ = cell(first, "Done")
	assert.Equal(t, "checked", value)
	value, _ = cell(first, "Files")
	assert.Equal(t, "a.png (https://x/a.png), b.png", value)
	_, err = cell(first, "Broken")
	var typeErr *host.CellTypeError
	assert.True(t, errors.As(err, &typeErr))

	second := records[1]
	assert.NotEmpty(t, second.ID())
	value, _ = cell(second, "Points")
	assert.Equal(t, "2.5", value)
	value, err = cell(second, "Done")
	assert.NoError(t, err)
	assert.Equal(t, "", value)
}

func TestUpdateRecord(t *testing.T) {
	base := newTestBase(t, config.ReadRecords|config.UpdateRecords)
	table := base.TableByName("Tasks")
	ctx := context.Background()

	before, err := table.Records(ctx)
	require.NoError(t, err)

	assert.True(t, table.CanUpdateRecords())
	require.NoError(t, table.UpdateRecord(ctx, "rec1", map[string]string{"Name": "Rewrite docs"}))

	after, err := table.Records(ctx)
	require.NoError(t, err)
	name, _ := table.FieldIfExists("Name")
	value, _ := after[0].CellValueAsString(name)
	assert.Equal(t, "Rewrite docs", value)

	// Earlier snapshots are not affected
	value, _ = before[0].CellValueAsString(name)
	assert.Equal(t, "Write docs", value)

	var notFound *host.RecordNotFoundError
	err = table.UpdateRecord(ctx, "rec404", map[string]string{"Name": "x"})
	assert.True(t, errors.As(err, &notFound))

	var fieldErr *host.FieldNotFoundError
	err = table.UpdateRecord(ctx, "rec1", map[string]string{"Nope": "x"})
	assert.True(t, errors.As(err, &fieldErr))
}

func TestPermissions(t *testing.T) {
	base := newTestBase(t, config.DefaultPermissions)
	table := base.TableByName("Tasks")

	assert.False(t, table.CanUpdateRecords())
	err := table.UpdateRecord(context.Background(), "rec1", map[string]string{"Name": "x"})
	assert.Equal(t, host.ErrPermissionDenied, err)

	noRead := newTestBase(t, config.Permissions(0))
	_, err = noRead.TableByName("Tasks").Records(context.Background())
	assert.Equal(t, host.ErrPermissionDenied, err)
}

func TestLoadJSONSnapshot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "base.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"tables": [
  {"name": "Layouts", "fields": [{"name": "Doc", "type": "multilineText"}],
   "records": [{"id": "recA", "cells": {"Doc": "{}"}}]}
]}`), 0o600))

	base, err := Load(path, config.DefaultPermissions)
	require.NoError(t, err)
	table := base.TableByName("Layouts")
	require.NotNil(t, table)
	records, err := table.Records(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "recA", records[0].ID())

	_, err = Load(filepath.Join(dir, "missing.yaml"), config.DefaultPermissions)
	assert.Error(t, err)
}

func TestInvalidSnapshot(t *testing.T) {
	_, err := New(BaseConfig{Tables: []TableConfig{{Name: "A"}, {Name: "A"}}}, config.DefaultPermissions)
	assert.EqualError(t, err, "duplicate table 'A'")

	_, err = New(BaseConfig{Tables: []TableConfig{{
		Name:   "A",
		Fields: []FieldConfig{{Name: "x"}, {Name: "x"}},
	}}}, config.DefaultPermissions)
	assert.EqualError(t, err, "duplicate field 'x' in table 'A'")

	cfg, err := New(BaseConfig{Tables: []TableConfig{{Name: "A", Fields: []FieldConfig{{Name: "x"}}}}},
		config.DefaultPermissions)
	require.NoError(t, err)
	field, _ := cfg.TableByName("A").FieldIfExists("x")
	assert.Equal(t, host.SingleLineText, field.Type)
}
