package node

import "reflect"

// Elements lists the elements of a sequence source: a slice, an array or a
// func usable as iter.Seq. It reports false for any other value.
func Elements(v reflect.Value) ([]reflect.Value, bool) {
	for v.IsValid() && v.Kind() == reflect.Interface {
		v = v.Elem()
	}

	if !v.IsValid() {
		return nil, false
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		res := make([]reflect.Value, v.Len())
		for i := range v.Len() {
			res[i] = v.Index(i)
		}

		return res, true
	case reflect.Func:
		if v.IsNil() || !v.Type().CanSeq() {
			return nil, false
		}

		var res []reflect.Value
		for elem := range v.Seq() {
			res = append(res, elem)
		}

		return res, true
	default:
		return nil, false
	}
}
