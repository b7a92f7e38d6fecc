package properties

import (
	"github.com/datastax/page-data-blocks/config"
	"github.com/datastax/page-data-blocks/host"
	"github.com/datastax/page-data-blocks/host/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func newBase(t *testing.T, tables ...memory.TableConfig) host.Base {
	base, err := memory.New(memory.BaseConfig{Tables: tables}, config.ReadRecords)
	require.NoError(t, err)
	return base
}

var pagesTable = memory.TableConfig{
	Name: "Page layouts",
	Fields: []memory.FieldConfig{
		{Name: "Notes", Type: host.MultilineText},
		{Name: "Page name", Type: host.SingleLineText},
		{Name: "Document", Type: host.RichText},
		{Name: "Asset files", Type: host.MultipleAttachments},
		{Name: "Content", Type: host.MultilineText},
	},
}

var projectsTable = memory.TableConfig{
	Name:   "Projects",
	Fields: []memory.FieldConfig{{Name: "Name", Type: host.SingleLineText}},
}

func TestDefaults(t *testing.T) {
	slots := Defaults(newBase(t, projectsTable, pagesTable))
	require.Len(t, slots, 4)

	assert.Equal(t, Slot{
		Key:     KeyLayoutsTable,
		Label:   "Layouts Table",
		Type:    TableSlot,
		Options: []string{"Projects", "Page layouts"},
		Default: "Page layouts",
	}, slots[0])

	assert.Equal(t, KeyNameField, slots[1].Key)
	assert.Equal(t, "Page layouts", slots[1].Table)
	assert.Equal(t, []string{"Page name"}, slots[1].Options)
	assert.Equal(t, "Page name", slots[1].Default)

	assert.Equal(t, KeyDocField, slots[2].Key)
	assert.Equal(t, []string{"Notes", "Document", "Content"}, slots[2].Options)
	assert.Equal(t, "Document", slots[2].Default)

	assert.Equal(t, KeyAssetsField, slots[3].Key)
	assert.Equal(t, "Asset files", slots[3].Default)
}

func TestDefaultTableFallsBackToFirst(t *testing.T) {
	slots := Defaults(newBase(t, projectsTable))
	assert.Equal(t, "Projects", slots[0].Default)
	assert.Equal(t, "Name", slots[1].Default)
	assert.Empty(t, slots[2].Default)
	assert.Empty(t, slots[2].Options)
}

func TestDefaultsWithoutTables(t *testing.T) {
	slots := Defaults(newBase(t))
	require.Len(t, slots, 4)
	for _, slot := range slots {
		assert.Empty(t, slot.Default, slot.Key)
		assert.Empty(t, slot.Options, slot.Key)
	}
}

func TestSelectDefaults(t *testing.T) {
	selection, err := Select(newBase(t, projectsTable, pagesTable), Overrides{})
	require.NoError(t, err)
	assert.Equal(t, "Page layouts", selection.Table.Name())
	assert.Equal(t, "Page name", selection.NameField.Name)
	assert.Equal(t, "Document", selection.DocField.Name)
	assert.Equal(t, "Asset files", selection.AssetsField.Name)
}

func TestSelectOverrides(t *testing.T) {
	selection, err := Select(newBase(t, projectsTable, pagesTable), Overrides{DocField: "Content"})
	require.NoError(t, err)
	assert.Equal(t, "Content", selection.DocField.Name)

	_, err = Select(newBase(t, projectsTable, pagesTable), Overrides{DocField: "Page name", AssetsField: "Nope"})
	require.Error(t, err)
	var setupErr *SetupError
	require.ErrorAs(t, err, &setupErr)
	assert.Equal(t, []string{"Document Field (Long Text)", "Assets Field (Attachments)"}, setupErr.Missing)
}

func TestSelectMissingTable(t *testing.T) {
	_, err := Select(newBase(t, projectsTable), Overrides{LayoutsTable: "Layouts"})
	var setupErr *SetupError
	require.ErrorAs(t, err, &setupErr)
	assert.Equal(t, []string{"Layouts Table", "Name Field", "Document Field (Long Text)", "Assets Field (Attachments)"},
		setupErr.Missing)
	assert.Equal(t, "setup required: select Layouts Table, Name Field, Document Field (Long Text), "+
		"Assets Field (Attachments)", err.Error())
}
