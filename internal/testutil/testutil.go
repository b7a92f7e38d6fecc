package testutil

import (
	"github.com/datastax/page-data-blocks/config"
	"github.com/datastax/page-data-blocks/host"
	"github.com/datastax/page-data-blocks/host/memory"
	"github.com/datastax/page-data-blocks/log"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"os"
	"path/filepath"
	"strings"
)

// StoredLayout is the document kept in the sample layouts table
const StoredLayout = `{
  "content": [
    {"type": "Hero", "props": {"id": "hero-1", "headline": "Quarterly deals", "subhead": "Pipeline overview"}},
    {"type": "Number", "props": {"id": "number-1", "title": "Deals", "tableName": "Deals", "displayType": "count"}},
    {"type": "Number", "props": {"id": "number-2", "title": "Won", "tableName": "Deals", "displayType": "summary",
      "fieldName": "Amount", "summaryType": "sum"}},
    {"type": "Columns", "props": {"id": "columns-1", "columns": 2}}
  ],
  "root": {"props": {"title": "Deals", "backgroundColor": "color1"}},
  "zones": {
    "columns-1:column-0": [
      {"type": "StatsCard", "props": {"id": "card-1", "title": "Biggest", "tableName": "Deals",
        "recordId": "d1", "fieldName": "Amount"}}
    ],
    "columns-1:column-1": [
      {"type": "Text", "props": {"id": "text-1", "content": "Top deal",
        "dataRef": {"tableName": "Deals", "fieldName": "Company",
          "pick": {"type": "maxBy", "field": "Amount"}}}}
    ]
  }
}`

// SampleBaseConfig holds a layouts table with one stored layout and a table of deals.
func SampleBaseConfig() memory.BaseConfig {
	return memory.BaseConfig{Tables: []memory.TableConfig{
		{
			Name:      "Layouts",
			Updatable: true,
			Fields: []memory.FieldConfig{
				{Name: "Name", Type: host.SingleLineText},
				{Name: "Doc", Type: host.MultilineText},
				{Name: "Assets", Type: host.MultipleAttachments},
			},
			Records: []memory.RecordConfig{
				{ID: "layout1", Cells: map[string]interface{}{"Name": "Home", "Doc": StoredLayout}},
			},
		},
		{
			Name: "Deals",
			Fields: []memory.FieldConfig{
				{Name: "Company", Type: host.SingleLineText},
				{Name: "Amount", Type: host.Number},
				{Name: "Stage", Type: host.SingleLineText},
			},
			Records: []memory.RecordConfig{
				{ID: "d1", Cells: map[string]interface{}{"Company": "Acme", "Amount": 100, "Stage": "won"}},
				{ID: "d2", Cells: map[string]interface{}{"Company": "Globex", "Amount": "n/a", "Stage": "lost"}},
				{ID: "d3", Cells: map[string]interface{}{"Company": "Initech", "Amount": 50.5, "Stage": "won"}},
			},
		},
	}}
}

// SampleBase builds the sample base with the given permissions.
func SampleBase(perms config.Permissions) *memory.Base {
	base, err := memory.New(SampleBaseConfig(), perms)
	PanicIfError(err)
	return base
}

// WriteSampleDataFile stores the sample base as a snapshot file in dir and returns its path.
func WriteSampleDataFile(dir string) string {
	data, err := yaml.Marshal(SampleBaseConfig())
	PanicIfError(err)
	path := filepath.Join(dir, "base.yaml")
	PanicIfError(os.WriteFile(path, data, 0o644))
	return path
}

func PanicIfError(err error) {
	if err != nil {
		panic(err)
	}
}

func TestLogger() log.Logger {
	if strings.ToUpper(os.Getenv("TEST_TRACE")) == "ON" {
		logger, err := zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
		return log.NewZapLogger(logger)
	}

	return log.NewZapLogger(zap.NewNop())
}
