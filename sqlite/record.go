package sqlite

import (
	"fmt"
	"github.com/datastax/page-data-blocks/host"
	"github.com/datastax/page-data-blocks/types"
	"strconv"
	"time"
)

type record struct {
	id    string
	table string
	cells map[string]interface{}
}

func (r *record) ID() string {
	return r.id
}

func (r *record) CellValueAsString(field host.Field) (string, error) {
	value, ok := r.cells[field.Name]
	if !ok {
		return "", &host.FieldNotFoundError{Table: r.table, Field: field.Name}
	}
	text, err := formatValue(value)
	if err != nil {
		return "", &host.CellTypeError{Field: field.Name, Value: value}
	}
	return text, nil
}

func formatValue(value interface{}) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return types.FormatNumber(v), nil
	case bool:
		return strconv.FormatBool(v), nil
	case time.Time:
		return v.UTC().Format(time.RFC3339), nil
	}
	return "", fmt.Errorf("unsupported value of type %T", value)
}
