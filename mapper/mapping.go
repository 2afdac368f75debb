package mapper

import (
	"reflect"

	"object-mapper/option"
	"object-mapper/utils"
)

// Mapping knows how to build one target instance once its dependencies are resolved.
type Mapping interface {
	Dependencies() []Dependency
	Create(values Values) option.Option[any]
}

// Patcher is implemented by mappings able to assign a dependency after Create,
// once a value that was still being resolved (a back-reference) is available.
type Patcher interface {
	Patch(instance any, name string, value any) bool
}

// Mappable is a source value able to produce a Mapping for some target types.
type Mappable interface {
	To(target reflect.Type) option.Option[Mapping]
}

// Resolver recognizes source values it knows how to map.
type Resolver interface {
	Resolve(value any) option.Option[Mappable]
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(value any) option.Option[Mappable]

func (f ResolverFunc) Resolve(value any) option.Option[Mappable] { return f(value) }

// FieldSource is a custom data carrier exposing named fields.
// The object and dictionary resolvers read it like a string-keyed map.
type FieldSource interface {
	Fields() []utils.Pair[string, any]
}

// bindable mappables are completed with the mapper settings before To is called.
type bindable interface {
	bind(m *Mapper) Mappable
}

// MappingKind enumerates the Mapping variants.
type MappingKind int

const (
	KindCustom MappingKind = iota
	KindTerminal
	KindObject
	KindSequence
	KindNullable
	KindDictionary
)

func (k MappingKind) String() string {
	switch k {
	case KindTerminal:
		return "terminal"
	case KindObject:
		return "object"
	case KindSequence:
		return "sequence"
	case KindNullable:
		return "nullable"
	case KindDictionary:
		return "dictionary"
	default:
		return "custom"
	}
}

// KindOf names the variant of m. Mappings not built by this package are KindCustom.
func KindOf(m Mapping) MappingKind {
	switch m.(type) {
	case *terminalMapping:
		return KindTerminal
	case *objectMapping:
		return KindObject
	case *sequenceMapping:
		return KindSequence
	case *nullableMapping:
		return KindNullable
	case *dictionaryMapping:
		return KindDictionary
	default:
		return KindCustom
	}
}

// terminalMapping is an already resolved value.
type terminalMapping struct {
	value any
}

func (t *terminalMapping) Dependencies() []Dependency { return nil }

func (t *terminalMapping) Create(Values) option.Option[any] { return option.Some(t.value) }

// Constant returns a Mapping without dependencies creating value.
func Constant(value any) Mapping {
	return &terminalMapping{value: value}
}

// Terminal returns a Mappable of a constant value. It maps onto the value's own
// type, interfaces it implements, and any scalar type the value coerces to.
func Terminal(value any) Mappable {
	return &terminalMappable{value: value}
}

type terminalMappable struct {
	value any
	m     *Mapper
}

func (t *terminalMappable) bind(m *Mapper) Mappable {
	return &terminalMappable{value: t.value, m: m}
}

func (t *terminalMappable) To(target reflect.Type) option.Option[Mapping] {
	if res := passthrough(t.value, target); res.IsSome() {
		return res
	}

	if t.m == nil {
		return option.None[Mapping]()
	}

	return t.m.coerce(t.value, target)
}

// Pairs returns a Mappable of named values. Struct targets are built like from
// a string-keyed map, map targets receive the pairs as entries.
func Pairs(pairs ...utils.Pair[string, any]) Mappable {
	return &pairsMappable{source: pairSource(pairs)}
}

type pairSource []utils.Pair[string, any]

func (p pairSource) Fields() []utils.Pair[string, any] { return p }

type pairsMappable struct {
	source pairSource
	m      *Mapper
}

func (p *pairsMappable) bind(m *Mapper) Mappable {
	return &pairsMappable{source: p.source, m: m}
}

func (p *pairsMappable) To(target reflect.Type) option.Option[Mapping] {
	if p.m == nil {
		return option.None[Mapping]()
	}

	if res := p.m.dictionary(p.source, target); res.IsSome() {
		return res
	}

	return p.m.object(p.source, target)
}

// passthrough maps a value already of the target type, or assignable to an
// interface target, onto itself.
func passthrough(value any, target reflect.Type) option.Option[Mapping] {
	t := reflect.TypeOf(value)
	if t == nil || target == nil {
		return option.None[Mapping]()
	}

	if t == target || target.Kind() == reflect.Interface && t.Implements(target) {
		return option.Some[Mapping](&terminalMapping{value: value})
	}

	return option.None[Mapping]()
}
