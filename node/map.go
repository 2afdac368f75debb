package node

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
)

// Member is a named value read from a source.
type Member struct {
	Name  string
	Value reflect.Value
}

// Members lists the named values of a field producer: a string-keyed map
// (keys sorted), a struct or a pointer to a struct (fields in declaration order).
// It reports false for any other value.
func Members(v reflect.Value) ([]Member, bool) {
	for v.IsValid() && (v.Kind() == reflect.Interface || v.Kind() == reflect.Ptr && v.Elem().Kind() == reflect.Struct) {
		v = v.Elem()
	}

	if !v.IsValid() {
		return nil, false
	}

	switch {
	case v.Kind() == reflect.Map && v.Type().Key().Kind() == reflect.String:
		res := make([]Member, 0, v.Len())
		for iter := v.MapRange(); iter.Next(); {
			res = append(res, Member{Name: iter.Key().String(), Value: iter.Value()})
		}

		slices.SortFunc(res, func(a, b Member) int { return cmp.Compare(a.Name, b.Name) })

		return res, true
	case v.Kind() == reflect.Struct && Dispatch(v.Type()) == DispatcherStruct:
		fields := Fields(v.Type(), "")

		res := make([]Member, 0, len(fields))
		for _, f := range fields {
			if fv, ok := f.Get(v); ok {
				res = append(res, Member{Name: f.Name, Value: fv})
			}
		}

		return res, true
	default:
		return nil, false
	}
}

// Entry is a key and value read from a map source.
type Entry struct {
	Key, Value reflect.Value
}

// Entries lists the entries of a map value ordered by the textual key.
func Entries(v reflect.Value) ([]Entry, bool) {
	for v.IsValid() && v.Kind() == reflect.Interface {
		v = v.Elem()
	}

	if !v.IsValid() || v.Kind() != reflect.Map {
		return nil, false
	}

	res := make([]Entry, 0, v.Len())
	for iter := v.MapRange(); iter.Next(); {
		res = append(res, Entry{Key: iter.Key(), Value: iter.Value()})
	}

	slices.SortFunc(res, func(a, b Entry) int {
		return cmp.Compare(fmt.Sprint(a.Key.Interface()), fmt.Sprint(b.Key.Interface()))
	})

	return res, true
}
