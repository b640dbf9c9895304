package debugui

import (
	"fmt"
	"reflect"
	"sync"
)

type FieldInfo struct {
	Name  string
	Index int
}

type ReflectionCache struct {
	mu         sync.RWMutex
	fieldCache map[reflect.Type][]FieldInfo
}

func NewReflectionCache() *ReflectionCache {
	return &ReflectionCache{
		fieldCache: make(map[reflect.Type][]FieldInfo),
	}
}

// GetFields returns the exported fields of struct type t.
func (rc *ReflectionCache) GetFields(t reflect.Type) []FieldInfo {
	rc.mu.RLock()
	cached, ok := rc.fieldCache[t]
	rc.mu.RUnlock()
	if ok {
		return cached
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()

	if cached, ok := rc.fieldCache[t]; ok {
		return cached
	}

	var fields []FieldInfo
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			if field := t.Field(i); field.IsExported() {
				fields = append(fields, FieldInfo{Name: field.Name, Index: i})
			}
		}
	}

	rc.fieldCache[t] = fields
	return fields
}

// Format renders a component (or a pointer to one) as label/value rows. A
// non-struct value becomes a single row labelled "value".
func (rc *ReflectionCache) Format(component any) []Field {
	v := reflect.ValueOf(component)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return []Field{{Label: "value", Value: formatValue(v)}}
	}

	fields := rc.GetFields(v.Type())
	rows := make([]Field, 0, len(fields))
	for _, f := range fields {
		rows = append(rows, Field{Label: f.Name, Value: formatValue(v.Field(f.Index))})
	}
	return rows
}

func formatValue(v reflect.Value) string {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return fmt.Sprintf("%.3f", v.Float())
	case reflect.Func:
		if v.IsNil() {
			return "<nil func>"
		}
		return "<func>"
	}
	return fmt.Sprintf("%v", v.Interface())
}

var globalReflectionCache = NewReflectionCache()
