package util

import (
	"reflect"

	"github.com/pkg/errors"
)

// IsStructInitialized checks that no exported pointer, interface, map or slice
// field of the struct pointed to by s is nil. Fields tagged `wire:"-"` are skipped.
func IsStructInitialized(s interface{}) error {
	v := reflect.ValueOf(s)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return errors.New("struct pointer is nil")
		}
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return errors.Errorf("expected struct, got %s", v.Kind())
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() || field.Tag.Get("wire") == "-" {
			continue
		}

		//nolint:exhaustive // only nillable kinds are checked
		switch v.Field(i).Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			if v.Field(i).IsNil() {
				return errors.Errorf("field %s is not initialized", field.Name)
			}
		}
	}

	return nil
}
