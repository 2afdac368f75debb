package mapper

import (
	"reflect"

	"object-mapper/node"
	"object-mapper/option"
	"object-mapper/primitive"
)

const elementStem = "item"

// sequenceMapping builds a slice or an array, one dependency per element.
type sequenceMapping struct {
	target reflect.Type
	deps   []Dependency
}

func (m *Mapper) sequence(value any, target reflect.Type) option.Option[Mapping] {
	if node.Dispatch(target) != node.DispatcherSequence {
		return option.None[Mapping]()
	}

	if res := passthrough(value, target); res.IsSome() {
		return res
	}

	rv := reflect.ValueOf(value)

	elems, ok := node.Elements(rv)
	if !ok {
		elems = []reflect.Value{rv}
	}

	if target.Kind() == reflect.Array {
		if len(elems) > target.Len() {
			if !m.coercer.Allowed.Has(primitive.CategoryUnsafeArray) {
				m.logger.Debug("sequence does not fit into array",
					"length", len(elems), "target", node.TypeName(target))

				return option.None[Mapping]()
			}

			elems = elems[:target.Len()]
		} else if !m.coercer.Allowed.Has(primitive.CategorySafeArray) {
			return option.None[Mapping]()
		}
	}

	stem := node.NewStem(elementStem)

	deps := make([]Dependency, len(elems))
	for i, elem := range elems {
		deps[i] = Dependency{Name: stem.Next(), Value: elem.Interface(), Type: target.Elem()}
	}

	return option.Some[Mapping](&sequenceMapping{target: target, deps: deps})
}

func (s *sequenceMapping) Dependencies() []Dependency { return s.deps }

func (s *sequenceMapping) Create(values Values) option.Option[any] {
	var out reflect.Value
	if s.target.Kind() == reflect.Array {
		out = reflect.New(s.target).Elem()
	} else {
		out = reflect.MakeSlice(s.target, len(s.deps), len(s.deps))
	}

	for i, dep := range s.deps {
		if values.IsDeferred(dep.Name) {
			continue
		}

		v, ok := values.Get(dep.Name).Get()
		if !ok {
			return option.None[any]()
		}

		if !assign(out.Index(i), v) {
			return option.None[any]()
		}
	}

	return option.Some(out.Interface())
}

// Patch fills a slice element left empty by a back-reference. Arrays are
// copied by value and cannot be patched.
func (s *sequenceMapping) Patch(instance any, name string, value any) bool {
	out := reflect.ValueOf(instance)
	if out.Kind() != reflect.Slice {
		return false
	}

	i, ok := node.NewStem(elementStem).Index(name)
	if !ok || i >= out.Len() {
		return false
	}

	return assign(out.Index(i), value)
}

// assign sets dst to v, or to its zero value when v is nil.
func assign(dst reflect.Value, v any) bool {
	if v == nil {
		dst.SetZero()
		return true
	}

	rv := reflect.ValueOf(v)
	if !rv.Type().AssignableTo(dst.Type()) {
		return false
	}

	dst.Set(rv)

	return true
}
