package types

import (
	"encoding/json"
	"fmt"
	"github.com/mitchellh/mapstructure"
	"reflect"
)

// FilterValue is the right-hand side of a filter clause: either a string or a number.
type FilterValue struct {
	str   string
	num   float64
	isNum bool
}

func StringValue(value string) FilterValue {
	return FilterValue{str: value}
}

func NumberValue(value float64) FilterValue {
	return FilterValue{num: value, isNum: true}
}

func (v FilterValue) IsNumber() bool {
	return v.isNum
}

// String renders the value as text; numbers use FormatNumber.
func (v FilterValue) String() string {
	if v.isNum {
		return FormatNumber(v.num)
	}
	return v.str
}

// Number returns the numeric value; ok is false for string values, numeric looking ones included.
func (v FilterValue) Number() (float64, bool) {
	return v.num, v.isNum
}

func (v FilterValue) MarshalJSON() ([]byte, error) {
	if v.isNum {
		return json.Marshal(v.num)
	}
	return json.Marshal(v.str)
}

func (v *FilterValue) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	value, err := toFilterValue(raw)
	if err != nil {
		return err
	}
	*v = value
	return nil
}

func toFilterValue(raw interface{}) (FilterValue, error) {
	switch value := raw.(type) {
	case nil:
		return StringValue(""), nil
	case string:
		return StringValue(value), nil
	case float64:
		return NumberValue(value), nil
	case float32:
		return NumberValue(float64(value)), nil
	case int:
		return NumberValue(float64(value)), nil
	case int32:
		return NumberValue(float64(value)), nil
	case int64:
		return NumberValue(float64(value)), nil
	case json.Number:
		f, err := value.Float64()
		if err != nil {
			return FilterValue{}, err
		}
		return NumberValue(f), nil
	case bool:
		return StringValue(fmt.Sprintf("%t", value)), nil
	}
	return FilterValue{}, fmt.Errorf("unsupported filter value of type %T", raw)
}

var filterValueType = reflect.TypeOf(FilterValue{})

// FilterValueHook lets mapstructure decode plain strings and numbers found in layout block
// props into a FilterValue.
func FilterValueHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != filterValueType || from == filterValueType {
			return data, nil
		}
		return toFilterValue(data)
	}
}
