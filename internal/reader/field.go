package reader

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	TypeString   = "string"
	TypeInt      = "int"
	TypeFloat    = "float"
	TypeBool     = "bool"
	TypeDate     = "date"
	TypeDatetime = "datetime"
	TypeUUID     = "uuid"
	// TypeList splits a comma separated value into a []string.
	TypeList = "list"
)

var (
	timeType = reflect.TypeOf(time.Time{})
	uuidType = reflect.TypeOf(uuid.UUID{})
)

// SetField resolves a dotted path such as "Location.Lat" on obj and assigns the
// parsed value. obj must be addressable.
func SetField(obj reflect.Value, path []string, value string, sourceType string, dateFormat string) error {
	for i := 0; i < len(path)-1; i++ {
		obj = obj.FieldByName(path[i])
		if !obj.IsValid() {
			return fmt.Errorf("invalid field path: %s", strings.Join(path[:i+1], "."))
		}
		if obj.Kind() == reflect.Pointer {
			if obj.IsNil() {
				obj.Set(reflect.New(obj.Type().Elem()))
			}
			obj = obj.Elem()
		}
	}

	name := strings.Join(path, ".")
	field := obj.FieldByName(path[len(path)-1])
	if !field.IsValid() {
		return fmt.Errorf("invalid field path: %s", name)
	}
	if field.Kind() == reflect.Pointer {
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}
		field = field.Elem()
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field %s", name)
	}

	if sourceType == "" {
		sourceType = TypeString
	}

	switch sourceType {
	case TypeString:
		if field.Kind() != reflect.String {
			return fmt.Errorf("field %s is not a string", name)
		}
		field.SetString(strings.TrimSpace(value))

	case TypeInt:
		switch field.Kind() {
		case reflect.Int, reflect.Int32, reflect.Int64:
		default:
			return fmt.Errorf("field %s is not an integer type", name)
		}
		intVal, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return fmt.Errorf("failed to parse int value '%s': %w", value, err)
		}
		field.SetInt(intVal)

	case TypeFloat:
		if field.Kind() != reflect.Float64 && field.Kind() != reflect.Float32 {
			return fmt.Errorf("field %s is not a float type", name)
		}
		floatVal, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return fmt.Errorf("failed to parse float value '%s': %w", value, err)
		}
		field.SetFloat(floatVal)

	case TypeBool:
		if field.Kind() != reflect.Bool {
			return fmt.Errorf("field %s is not a bool", name)
		}
		boolVal, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("failed to parse bool value '%s': %w", value, err)
		}
		field.SetBool(boolVal)

	case TypeDate, TypeDatetime:
		if field.Type() != timeType {
			return fmt.Errorf("field %s is not time.Time", name)
		}
		layout := time.DateOnly
		if sourceType == TypeDatetime {
			layout = dateFormat
		}
		t, err := time.Parse(layout, strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("failed to parse %s value '%s': %w", sourceType, value, err)
		}
		field.Set(reflect.ValueOf(t.UTC()))

	case TypeUUID:
		if field.Type() != uuidType {
			return fmt.Errorf("field %s is not uuid.UUID", name)
		}
		id, err := uuid.Parse(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("failed to parse uuid value '%s': %w", value, err)
		}
		field.Set(reflect.ValueOf(id))

	case TypeList:
		if field.Kind() != reflect.Slice || field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("field %s is not a string list", name)
		}
		var items []string
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		field.Set(reflect.ValueOf(items))

	default:
		return fmt.Errorf("unsupported field type: %s", sourceType)
	}

	return nil
}
