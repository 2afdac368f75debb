package node

import (
	"reflect"

	"object-mapper/primitive"
)

// Dispatch classifies a target type:
//   - scalar kinds known to primitive are DispatcherPrimitive
//   - pointers to structs are DispatcherStruct (the shared, referenceable object)
//   - any other pointer is DispatcherNullable
//   - slices and arrays are DispatcherSequence
func Dispatch(dst reflect.Type) DispatcherEnum {
	if dst == nil {
		return DispatcherUnknown
	}

	if primitive.IsScalar(dst) {
		return DispatcherPrimitive
	}

	switch dst.Kind() {
	case reflect.Interface:
		return DispatcherInterface
	case reflect.Slice, reflect.Array:
		return DispatcherSequence
	case reflect.Map:
		return DispatcherMap
	case reflect.Struct:
		return DispatcherStruct
	case reflect.Ptr:
		if depth, b := ptrDepthAndBase(dst); depth == 1 && b.Kind() == reflect.Struct && !primitive.IsScalar(b) {
			return DispatcherStruct
		}

		return DispatcherNullable
	default:
		return DispatcherUnknown
	}
}

// IsNillable reports whether the zero value of t is nil.
func IsNillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Interface, reflect.Func, reflect.Chan:
		return true
	default:
		return false
	}
}

// Base strips every pointer level from t.
func Base(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// ptrDepthAndBase returns the pointer depth and the final base type.
func ptrDepthAndBase(t reflect.Type) (depth int, base reflect.Type) {
	depth, base = 0, t
	for t != nil && base.Kind() == reflect.Ptr {
		depth++
		base = base.Elem()
	}

	return
}
