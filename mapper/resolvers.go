package mapper

import (
	"reflect"

	"object-mapper/node"
	"object-mapper/option"
	"object-mapper/primitive"
)

// MappableFunc adapts a function to Mappable.
type MappableFunc func(target reflect.Type) option.Option[Mapping]

func (f MappableFunc) To(target reflect.Type) option.Option[Mapping] { return f(target) }

// builtinResolver offers every source value to one of the mapper's built-in strategies.
type builtinResolver struct {
	name   string
	accept func(value any) bool
	to     func(value any, target reflect.Type) option.Option[Mapping]
}

func (r *builtinResolver) Resolve(value any) option.Option[Mappable] {
	if r.accept != nil && !r.accept(value) {
		return option.None[Mappable]()
	}

	return option.Some[Mappable](MappableFunc(func(target reflect.Type) option.Option[Mapping] {
		return r.to(value, target)
	}))
}

func (r *builtinResolver) String() string { return r.name }

// builtins returns the fixed tail of the resolver chain, in priority order.
func (m *Mapper) builtins() []Resolver {
	return []Resolver{
		&builtinResolver{
			name:   "primitive",
			accept: func(value any) bool { return primitive.IsScalar(reflect.TypeOf(deref(value))) },
			to:     m.coerce,
		},
		&builtinResolver{name: "nullable", to: m.nullable},
		&builtinResolver{name: "sequence", to: m.sequence},
		&builtinResolver{name: "dictionary", to: m.dictionary},
		&builtinResolver{name: "object", to: m.object},
	}
}

// coerce maps scalars through the primitive coercer.
func (m *Mapper) coerce(value any, target reflect.Type) option.Option[Mapping] {
	if node.Dispatch(target) != node.DispatcherPrimitive {
		return option.None[Mapping]()
	}

	res, err := m.coercer.Coerce(reflect.ValueOf(deref(value)), target)
	if err != nil {
		m.logger.Debug("coercion declined",
			"from", node.TypeName(reflect.TypeOf(value)),
			"to", node.TypeName(target),
			"error", err)

		return option.None[Mapping]()
	}

	return option.Some[Mapping](&terminalMapping{value: res.Interface()})
}

// deref follows non-nil pointers down to the value they point at.
func deref(value any) any {
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}

	if !rv.IsValid() || rv.Kind() == reflect.Pointer {
		return value
	}

	return rv.Interface()
}

// casterResolver maps values through user supplied conversion functions.
type casterResolver struct {
	m       *Mapper
	casters []node.Caster
}

func (r *casterResolver) Resolve(value any) option.Option[Mappable] {
	src := reflect.TypeOf(value)

	var accepting []node.Caster
	for _, c := range r.casters {
		if c.Accepts(src) {
			accepting = append(accepting, c)
		}
	}

	if len(accepting) == 0 {
		return option.None[Mappable]()
	}

	return option.Some[Mappable](MappableFunc(func(target reflect.Type) option.Option[Mapping] {
		for _, c := range accepting {
			if c.Dst != target && (target.Kind() != reflect.Interface || !c.Dst.Implements(target)) {
				continue
			}

			res, err := c.Call(reflect.ValueOf(value))
			if err != nil {
				r.m.logger.Debug("caster declined", "caster", c.Name, "error", err)
				continue
			}

			return option.Some[Mapping](&terminalMapping{value: res.Interface()})
		}

		return option.None[Mapping]()
	}))
}

func (r *casterResolver) String() string { return "caster" }
