package memory

import (
	"fmt"
	"github.com/datastax/page-data-blocks/host"
	"gopkg.in/yaml.v3"
	"os"
)

// BaseConfig is the snapshot file layout. JSON documents are accepted as well since they are
// valid YAML.
type BaseConfig struct {
	Tables []TableConfig `yaml:"tables" json:"tables"`
}

type TableConfig struct {
	Name      string         `yaml:"name" json:"name"`
	Fields    []FieldConfig  `yaml:"fields" json:"fields"`
	Updatable bool           `yaml:"updatable" json:"updatable"`
	Records   []RecordConfig `yaml:"records" json:"records"`
}

type FieldConfig struct {
	Name string         `yaml:"name" json:"name"`
	Type host.FieldType `yaml:"type" json:"type"`
}

type RecordConfig struct {
	ID    string                 `yaml:"id" json:"id"`
	Cells map[string]interface{} `yaml:"cells" json:"cells"`
}

// ParseConfig decodes a snapshot document.
func ParseConfig(data []byte) (BaseConfig, error) {
	var cfg BaseConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BaseConfig{}, fmt.Errorf("unable to parse base snapshot: %w", err)
	}
	return cfg, nil
}

// ReadConfig reads and decodes a snapshot file.
func ReadConfig(path string) (BaseConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return BaseConfig{}, fmt.Errorf("unable to read base snapshot: %w", err)
	}
	return ParseConfig(data)
}

func (c BaseConfig) validate() error {
	names := make(map[string]bool, len(c.Tables))
	for _, table := range c.Tables {
		if table.Name == "" {
			return fmt.Errorf("table name is required")
		}
		if names[table.Name] {
			return fmt.Errorf("duplicate table '%s'", table.Name)
		}
		names[table.Name] = true

		fields := make(map[string]bool, len(table.Fields))
		for _, field := range table.Fields {
			if field.Name == "" {
				return fmt.Errorf("field name is required in table '%s'", table.Name)
			}
			if fields[field.Name] {
				return fmt.Errorf("duplicate field '%s' in table '%s'", field.Name, table.Name)
			}
			fields[field.Name] = true
		}
	}
	return nil
}
