package mapper

import (
	"reflect"

	"object-mapper/node"
	"object-mapper/option"
)

const nullableDependency = "value"

// nullableMapping builds a pointer to a non-struct value.
type nullableMapping struct {
	target reflect.Type
	dep    Dependency
}

func (m *Mapper) nullable(value any, target reflect.Type) option.Option[Mapping] {
	if node.Dispatch(target) != node.DispatcherNullable {
		return option.None[Mapping]()
	}

	if res := passthrough(value, target); res.IsSome() {
		return res
	}

	// a pointer source feeds its pointee, unless pointers are what is wanted
	if rv := reflect.ValueOf(value); rv.Kind() == reflect.Ptr && target.Elem().Kind() != reflect.Ptr {
		value = rv.Elem().Interface()
	}

	return option.Some[Mapping](&nullableMapping{
		target: target,
		dep:    Dependency{Name: nullableDependency, Value: value, Type: target.Elem()},
	})
}

func (n *nullableMapping) Dependencies() []Dependency { return []Dependency{n.dep} }

func (n *nullableMapping) Create(values Values) option.Option[any] {
	ptr := reflect.New(n.target.Elem())

	if values.IsDeferred(n.dep.Name) {
		return option.Some(ptr.Interface())
	}

	v, ok := values.Get(n.dep.Name).Get()
	switch {
	case !ok:
		return option.None[any]()
	case v == nil:
		return option.Some(reflect.Zero(n.target).Interface())
	}

	rv := reflect.ValueOf(v)
	if !rv.Type().AssignableTo(n.target.Elem()) {
		return option.None[any]()
	}

	ptr.Elem().Set(rv)

	return option.Some(ptr.Interface())
}

func (n *nullableMapping) Patch(instance any, name string, value any) bool {
	ptr := reflect.ValueOf(instance)
	if name != n.dep.Name || ptr.Kind() != reflect.Ptr || ptr.IsNil() {
		return false
	}

	if value == nil {
		ptr.Elem().SetZero()
		return true
	}

	rv := reflect.ValueOf(value)
	if !rv.Type().AssignableTo(n.target.Elem()) {
		return false
	}

	ptr.Elem().Set(rv)

	return true
}
