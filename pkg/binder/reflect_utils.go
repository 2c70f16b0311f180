package binder

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

type taggedField struct {
	index int
	key   string
}

// taggedFields lists the settable fields of *v carrying tag. Fields without
// the tag or tagged "-" are left alone.
func taggedFields(v any, tag string) ([]taggedField, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return nil, ErrInvalidTarget
	}

	rt := rv.Elem().Type()
	fields := make([]taggedField, 0, rt.NumField())
	for i := range rt.NumField() {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		key, _, _ := strings.Cut(sf.Tag.Get(tag), ",")
		if key == "" || key == "-" {
			continue
		}
		fields = append(fields, taggedField{index: i, key: key})
	}
	return fields, nil
}

func bindToStruct(v any, tag string, values map[string][]string, bindErr error) error {
	fields, err := taggedFields(v, tag)
	if err != nil {
		return fmt.Errorf("%w: %w", bindErr, err)
	}

	rv := reflect.ValueOf(v).Elem()
	for _, f := range fields {
		vals, ok := values[f.key]
		if !ok || len(vals) == 0 {
			continue
		}
		field := rv.Field(f.index)
		if err := setFieldValue(field, field.Type(), vals); err != nil {
			return fmt.Errorf("%w: field %s: %w", bindErr, rv.Type().Field(f.index).Name, err)
		}
	}
	return nil
}

func setFieldValue(field reflect.Value, typ reflect.Type, values []string) error {
	switch typ.Kind() {
	case reflect.Pointer:
		if field.IsNil() {
			field.Set(reflect.New(typ.Elem()))
		}
		return setFieldValue(field.Elem(), typ.Elem(), values)
	case reflect.Slice:
		slice := reflect.MakeSlice(typ, len(values), len(values))
		for i, s := range values {
			if err := setFieldValue(slice.Index(i), typ.Elem(), []string{s}); err != nil {
				return err
			}
		}
		field.Set(slice)
		return nil
	}

	value := values[0]
	switch typ.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, typ.Bits())
		if err != nil {
			return fmt.Errorf("invalid int value %q", value)
		}
		field.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, typ.Bits())
		if err != nil {
			return fmt.Errorf("invalid uint value %q", value)
		}
		field.SetUint(n)

	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(value, typ.Bits())
		if err != nil {
			return fmt.Errorf("invalid float value %q", value)
		}
		field.SetFloat(n)

	case reflect.Bool:
		// checkboxes post "on"
		switch strings.ToLower(value) {
		case "on", "yes":
			field.SetBool(true)
			return nil
		case "off", "no", "":
			field.SetBool(false)
			return nil
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid bool value %q", value)
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported type %s", typ)
	}
	return nil
}
