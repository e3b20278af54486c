package debugui

import (
	"reflect"
	"sync"
)

// FieldInfo describes one exported field of a component struct.
type FieldInfo struct {
	Name  string
	Index int
	Kind  reflect.Kind
	Type  reflect.Type
}

type fieldCache struct {
	mu     sync.RWMutex
	fields map[reflect.Type][]FieldInfo
}

var fields = &fieldCache{fields: make(map[reflect.Type][]FieldInfo)}

// Fields returns the exported fields of t, or nil if t is not a struct.
func (c *fieldCache) Fields(t reflect.Type) []FieldInfo {
	c.mu.RLock()
	cached, ok := c.fields[t]
	c.mu.RUnlock()
	if ok {
		return cached
	}

	var out []FieldInfo
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			out = append(out, FieldInfo{
				Name:  f.Name,
				Index: i,
				Kind:  f.Type.Kind(),
				Type:  f.Type,
			})
		}
	}

	c.mu.Lock()
	c.fields[t] = out
	c.mu.Unlock()
	return out
}

// setNumber writes v into a numeric field, converting to the field's kind.
// It reports whether the field was writable and numeric.
func setNumber(field reflect.Value, v float64) bool {
	if !field.CanSet() {
		return false
	}
	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		field.SetFloat(v)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		field.SetInt(int64(v))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if v < 0 {
			return false
		}
		field.SetUint(uint64(v))
	default:
		return false
	}
	return true
}
