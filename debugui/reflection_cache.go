package debugui

import (
	"reflect"
)

type FieldInfo struct {
	Name      string
	Type      reflect.Type
	Index     int
	IsPointer bool
}

// fieldCache is only touched from the frame goroutine.
var fieldCache = map[reflect.Type][]FieldInfo{}

// fieldsOf lists the exported fields of a struct type, including exported
// embedded structs.
func fieldsOf(t reflect.Type) []FieldInfo {
	if cached, ok := fieldCache[t]; ok {
		return cached
	}

	var fields []FieldInfo
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}

			fieldType := field.Type
			isPointer := fieldType.Kind() == reflect.Ptr
			if isPointer {
				fieldType = fieldType.Elem()
			}

			fields = append(fields, FieldInfo{
				Name:      field.Name,
				Type:      fieldType,
				Index:     i,
				IsPointer: isPointer,
			})
		}
	}

	fieldCache[t] = fields
	return fields
}
