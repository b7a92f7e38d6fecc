package db

import (
	"fmt"
	"github.com/datastax/page-data-blocks/host"
	"github.com/datastax/page-data-blocks/types"
	"github.com/gocql/gocql"
	"gopkg.in/inf.v0"
	"math/big"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"
)

var typeForCqlType = map[gocql.Type]reflect.Type{
	gocql.TypeFloat:     reflect.TypeOf(float32(0)),
	gocql.TypeDouble:    reflect.TypeOf(float64(0)),
	gocql.TypeInt:       reflect.TypeOf(0),
	gocql.TypeSmallInt:  reflect.TypeOf(int16(0)),
	gocql.TypeTinyInt:   reflect.TypeOf(int8(0)),
	gocql.TypeBigInt:    reflect.TypeOf(int64(0)),
	gocql.TypeCounter:   reflect.TypeOf(int64(0)),
	gocql.TypeDecimal:   reflect.TypeOf(new(inf.Dec)),
	gocql.TypeVarint:    reflect.TypeOf(new(big.Int)),
	gocql.TypeText:      reflect.TypeOf(""),
	gocql.TypeVarchar:   reflect.TypeOf(""),
	gocql.TypeAscii:     reflect.TypeOf(""),
	gocql.TypeBoolean:   reflect.TypeOf(false),
	gocql.TypeInet:      reflect.TypeOf(""),
	gocql.TypeUUID:      reflect.TypeOf(""),
	gocql.TypeTimeUUID:  reflect.TypeOf(""),
	gocql.TypeTimestamp: reflect.TypeOf(time.Time{}),
}

var fieldTypeForCqlType = map[gocql.Type]host.FieldType{
	gocql.TypeText:      host.SingleLineText,
	gocql.TypeVarchar:   host.SingleLineText,
	gocql.TypeAscii:     host.SingleLineText,
	gocql.TypeInet:      host.SingleLineText,
	gocql.TypeUUID:      host.SingleLineText,
	gocql.TypeTimeUUID:  host.SingleLineText,
	gocql.TypeFloat:     host.Number,
	gocql.TypeDouble:    host.Number,
	gocql.TypeInt:       host.Number,
	gocql.TypeSmallInt:  host.Number,
	gocql.TypeTinyInt:   host.Number,
	gocql.TypeBigInt:    host.Number,
	gocql.TypeCounter:   host.Number,
	gocql.TypeDecimal:   host.Number,
	gocql.TypeVarint:    host.Number,
	gocql.TypeBoolean:   host.Checkbox,
	gocql.TypeTimestamp: host.Date,
}

func fieldType(info gocql.TypeInfo) host.FieldType {
	if t, ok := fieldTypeForCqlType[info.Type()]; ok {
		return t
	}
	return host.Other
}

func mapScan(scanner gocql.Scanner, columns []gocql.ColumnInfo) (map[string]interface{}, error) {
	values := make([]interface{}, len(columns))

	for i := range values {
		typeInfo := columns[i].TypeInfo
		allocated := allocateForType(typeInfo)
		if allocated == nil {
			return nil, fmt.Errorf("support for CQL type not found: %s", typeInfo.Type().String())
		}
		values[i] = allocated
	}

	if err := scanner.Scan(values...); err != nil {
		return nil, err
	}

	mapped := make(map[string]interface{}, len(values))
	for i, column := range columns {
		// scalars are allocated as pointers to pointers so that null stays distinguishable
		value := values[i]
		if _, scalar := typeForCqlType[column.TypeInfo.Type()]; scalar {
			value = reflect.Indirect(reflect.ValueOf(value)).Interface()
		}
		mapped[column.Name] = value
	}

	return mapped, nil
}

func allocateForType(info gocql.TypeInfo) interface{} {
	switch info.Type() {
	case gocql.TypeVarchar, gocql.TypeAscii, gocql.TypeInet, gocql.TypeText,
		gocql.TypeTimeUUID, gocql.TypeUUID:
		return new(*string)
	case gocql.TypeBigInt, gocql.TypeCounter:
		return new(*int64)
	case gocql.TypeBoolean:
		return new(*bool)
	case gocql.TypeFloat:
		return new(*float32)
	case gocql.TypeDouble:
		return new(*float64)
	case gocql.TypeInt:
		return new(*int)
	case gocql.TypeSmallInt:
		return new(*int16)
	case gocql.TypeTinyInt:
		return new(*int8)
	case gocql.TypeDecimal:
		return new(*inf.Dec)
	case gocql.TypeVarint:
		return new(*big.Int)
	case gocql.TypeTimestamp:
		return new(*time.Time)
	case gocql.TypeList, gocql.TypeSet:
		subTypeInfo, ok := info.(gocql.CollectionType)
		if !ok {
			return nil
		}

		var subType reflect.Type
		if subType = getSubType(subTypeInfo.Elem); subType == nil {
			return nil
		}

		return reflect.New(reflect.SliceOf(subType)).Interface()
	case gocql.TypeMap:
		subTypeInfo, ok := info.(gocql.CollectionType)
		if !ok {
			return nil
		}

		var keyType reflect.Type
		var valueType reflect.Type
		if keyType = getSubType(subTypeInfo.Key); keyType == nil {
			return nil
		}
		if valueType = getSubType(subTypeInfo.Elem); valueType == nil {
			return nil
		}

		return reflect.New(reflect.MapOf(keyType, valueType)).Interface()
	default:
		return nil
	}
}

func getSubType(info gocql.TypeInfo) reflect.Type {
	t, typeFound := typeForCqlType[info.Type()]

	if !typeFound {
		// Create the subtype by allocating it
		allocated := allocateForType(info)

		if allocated == nil {
			return nil
		}

		t = reflect.ValueOf(allocated).Elem().Type()
	}

	return t
}

// formatValue renders a scanned cell as text. Null renders as the empty string, collections as
// comma separated items.
func formatValue(value interface{}) (string, error) {
	v := reflect.ValueOf(value)
	for v.IsValid() && v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return "", nil
		}
		switch typed := v.Interface().(type) {
		case *inf.Dec:
			return typed.String(), nil
		case *big.Int:
			return typed.String(), nil
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return "", nil
	}

	switch typed := v.Interface().(type) {
	case string:
		return typed, nil
	case bool:
		return strconv.FormatBool(typed), nil
	case float32:
		return strconv.FormatFloat(float64(typed), 'g', -1, 32), nil
	case float64:
		return types.FormatNumber(typed), nil
	case time.Time:
		return typed.UTC().Format(time.RFC3339), nil
	case gocql.UUID:
		return typed.String(), nil
	}

	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), nil
	case reflect.Slice, reflect.Array:
		parts := make([]string, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			part, err := formatValue(v.Index(i).Interface())
			if err != nil {
				return "", err
			}
			parts = append(parts, part)
		}
		return strings.Join(parts, ", "), nil
	case reflect.Map:
		parts := make([]string, 0, v.Len())
		for _, key := range v.MapKeys() {
			k, err := formatValue(key.Interface())
			if err != nil {
				return "", err
			}
			item, err := formatValue(v.MapIndex(key).Interface())
			if err != nil {
				return "", err
			}
			parts = append(parts, k+": "+item)
		}
		sort.Strings(parts)
		return strings.Join(parts, ", "), nil
	}
	return "", fmt.Errorf("unsupported value of type %T", value)
}

// parseValue converts text entered for a column back into a value of the column type. Empty text
// is null for every non text type.
func parseValue(text string, info gocql.TypeInfo) (interface{}, error) {
	switch info.Type() {
	case gocql.TypeVarchar, gocql.TypeAscii, gocql.TypeText, gocql.TypeInet:
		return text, nil
	}

	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	text = strings.TrimSpace(text)

	switch info.Type() {
	case gocql.TypeBigInt, gocql.TypeCounter:
		return strconv.ParseInt(text, 10, 64)
	case gocql.TypeInt:
		n, err := strconv.ParseInt(text, 10, 32)
		return int(n), err
	case gocql.TypeSmallInt:
		n, err := strconv.ParseInt(text, 10, 16)
		return int16(n), err
	case gocql.TypeTinyInt:
		n, err := strconv.ParseInt(text, 10, 8)
		return int8(n), err
	case gocql.TypeFloat:
		f, err := strconv.ParseFloat(text, 32)
		return float32(f), err
	case gocql.TypeDouble:
		return strconv.ParseFloat(text, 64)
	case gocql.TypeDecimal:
		dec, ok := new(inf.Dec).SetString(text)
		if !ok {
			return nil, fmt.Errorf("invalid decimal '%s'", text)
		}
		return dec, nil
	case gocql.TypeVarint:
		n, ok := new(big.Int).SetString(text, 10)
		if !ok {
			return nil, fmt.Errorf("invalid varint '%s'", text)
		}
		return n, nil
	case gocql.TypeBoolean:
		if text == "checked" {
			return true, nil
		}
		return strconv.ParseBool(text)
	case gocql.TypeUUID, gocql.TypeTimeUUID:
		return gocql.ParseUUID(text)
	case gocql.TypeTimestamp:
		return time.Parse(time.RFC3339, text)
	}
	return nil, fmt.Errorf("updating columns of type %s is not supported", info.Type().String())
}
