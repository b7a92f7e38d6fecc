// Package properties picks the table and fields the layout document is stored in.
package properties

import (
	"fmt"
	"github.com/datastax/page-data-blocks/host"
	"strings"
)

type SlotType string

const (
	TableSlot SlotType = "table"
	FieldSlot SlotType = "field"
)

const (
	KeyLayoutsTable = "layoutsTable"
	KeyNameField    = "nameField"
	KeyDocField     = "docField"
	KeyAssetsField  = "assetsField"
)

// Slot is a single configuration choice offered on the setup screen.
type Slot struct {
	Key   string   `json:"key"`
	Label string   `json:"label"`
	Type  SlotType `json:"type"`
	// Table is the table field slots choose from.
	Table string `json:"table,omitempty"`
	// Options lists the allowed table or field names.
	Options []string `json:"options"`
	Default string   `json:"default,omitempty"`
}

type fieldSlot struct {
	key      string
	label    string
	allowed  []host.FieldType
	keywords []string
}

// Field slots in setup screen order.
var fieldSlots = []fieldSlot{
	{KeyNameField, "Name Field", []host.FieldType{host.SingleLineText}, []string{"name"}},
	{KeyDocField, "Document Field (Long Text)", []host.FieldType{host.MultilineText, host.RichText}, []string{"doc", "content"}},
	{KeyAssetsField, "Assets Field (Attachments)", []host.FieldType{host.MultipleAttachments}, []string{"asset", "attachment"}},
}

const layoutsTableLabel = "Layouts Table"

// Defaults returns the configuration slots along with the guessed default of each.
func Defaults(base host.Base) []Slot {
	tables := base.Tables()
	tableNames := make([]string, 0, len(tables))
	for _, table := range tables {
		tableNames = append(tableNames, table.Name())
	}

	layouts := defaultTable(tables)
	slots := []Slot{{
		Key:     KeyLayoutsTable,
		Label:   layoutsTableLabel,
		Type:    TableSlot,
		Options: tableNames,
	}}
	if layouts != nil {
		slots[0].Default = layouts.Name()
	}

	for _, fs := range fieldSlots {
		slot := Slot{Key: fs.key, Label: fs.label, Type: FieldSlot, Options: []string{}}
		if layouts != nil {
			slot.Table = layouts.Name()
			for _, field := range layouts.Fields() {
				if fs.allows(field) {
					slot.Options = append(slot.Options, field.Name)
				}
			}
			if field, ok := fs.guess(layouts.Fields()); ok {
				slot.Default = field.Name
			}
		}
		slots = append(slots, slot)
	}
	return slots
}

// defaultTable returns the first table whose name mentions a layout ("Layouts", "Page layouts"),
// else the first table.
func defaultTable(tables []host.Table) host.Table {
	if len(tables) == 0 {
		return nil
	}
	for _, table := range tables {
		if strings.Contains(strings.ToLower(table.Name()), "layout") {
			return table
		}
	}
	return tables[0]
}

func (fs fieldSlot) allows(field host.Field) bool {
	for _, t := range fs.allowed {
		if field.Type == t {
			return true
		}
	}
	return false
}

func (fs fieldSlot) guess(fields []host.Field) (host.Field, bool) {
	for _, field := range fields {
		if !fs.allows(field) {
			continue
		}
		name := strings.ToLower(field.Name)
		for _, keyword := range fs.keywords {
			if strings.Contains(name, keyword) {
				return field, true
			}
		}
	}
	return host.Field{}, false
}

// Overrides holds explicitly configured table and field names. Empty values fall back to the
// defaults.
type Overrides struct {
	LayoutsTable string
	NameField    string
	DocField     string
	AssetsField  string
}

func (o Overrides) field(key string) string {
	switch key {
	case KeyNameField:
		return o.NameField
	case KeyDocField:
		return o.DocField
	case KeyAssetsField:
		return o.AssetsField
	}
	return ""
}

// Selection is a complete, validated configuration.
type Selection struct {
	Table       host.Table
	NameField   host.Field
	DocField    host.Field
	AssetsField host.Field
}

// SetupError lists the slots that could not be filled, in setup screen order.
type SetupError struct {
	Missing []string
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("setup required: select %s", strings.Join(e.Missing, ", "))
}

// Select resolves overrides against base, filling the gaps with defaults. Overrides naming a
// table or field that does not exist, or a field of a disallowed type, leave their slot empty.
func Select(base host.Base, overrides Overrides) (*Selection, error) {
	var table host.Table
	if overrides.LayoutsTable != "" {
		table = base.TableByName(overrides.LayoutsTable)
	} else {
		table = defaultTable(base.Tables())
	}

	if table == nil {
		missing := []string{layoutsTableLabel}
		for _, fs := range fieldSlots {
			missing = append(missing, fs.label)
		}
		return nil, &SetupError{Missing: missing}
	}

	selection := &Selection{Table: table}
	var missing []string
	for _, fs := range fieldSlots {
		field, ok := fs.choose(table, overrides.field(fs.key))
		if !ok {
			missing = append(missing, fs.label)
			continue
		}
		switch fs.key {
		case KeyNameField:
			selection.NameField = field
		case KeyDocField:
			selection.DocField = field
		case KeyAssetsField:
			selection.AssetsField = field
		}
	}

	if len(missing) > 0 {
		return nil, &SetupError{Missing: missing}
	}
	return selection, nil
}

func (fs fieldSlot) choose(table host.Table, name string) (host.Field, bool) {
	if name == "" {
		return fs.guess(table.Fields())
	}
	field, ok := table.FieldIfExists(name)
	if !ok || !fs.allows(field) {
		return host.Field{}, false
	}
	return field, true
}
