package mapper

import (
	"fmt"
	"reflect"
	"unsafe"

	"object-mapper/node"
)

// Dependency is a named (source value, target type) pair a Mapping needs
// resolved before it can create its instance.
type Dependency struct {
	Name  string
	Value any
	Type  reflect.Type
}

func (d Dependency) String() string {
	return fmt.Sprintf("%s: %T -> %s", d.Name, d.Value, node.TypeName(d.Type))
}

// MappingKey identifies one resolution: a source identity and a target type.
// Reference values (pointers, maps, chans, funcs) are identified by address,
// slices by their backing array and length. Values of any other kind cannot
// close a cycle and get a fresh identity per request.
type MappingKey struct {
	source identity
	Target reflect.Type
}

type identity struct {
	typ    reflect.Type
	ptr    unsafe.Pointer
	length int
	serial uint64
}

func (k MappingKey) String() string {
	return fmt.Sprintf("%s -> %s", node.TypeName(k.source.typ), node.TypeName(k.Target))
}

// keyOf computes the key of value mapped to target. next supplies fresh serials.
func keyOf(value any, target reflect.Type, next func() uint64) MappingKey {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() {
		return MappingKey{Target: target}
	}

	id := identity{typ: rv.Type()}

	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		id.ptr = rv.UnsafePointer()
	case reflect.Slice:
		id.ptr, id.length = rv.UnsafePointer(), rv.Len()
	default:
		id.serial = next()
	}

	return MappingKey{source: id, Target: target}
}

// isNil reports whether value is nil or a nil reference.
func isNil(value any) bool {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() {
		return true
	}

	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface, reflect.Slice:
		return rv.IsNil()
	default:
		return false
	}
}
