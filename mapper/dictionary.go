package mapper

import (
	"reflect"

	"object-mapper/node"
	"object-mapper/option"
)

// dictionaryMapping builds a map, one dependency per entry value.
type dictionaryMapping struct {
	target reflect.Type
	keys   []reflect.Value
	deps   []Dependency
}

func (m *Mapper) dictionary(value any, target reflect.Type) option.Option[Mapping] {
	if node.Dispatch(target) != node.DispatcherMap {
		return option.None[Mapping]()
	}

	if res := passthrough(value, target); res.IsSome() {
		return res
	}

	entries, ok := m.entries(value)
	if !ok {
		return option.None[Mapping]()
	}

	stem := node.NewStem(elementStem)
	mapping := &dictionaryMapping{
		target: target,
		keys:   make([]reflect.Value, 0, len(entries)),
		deps:   make([]Dependency, 0, len(entries)),
	}

	for _, e := range entries {
		key, ok := m.mapKey(e.Key, target.Key())
		if !ok {
			return option.None[Mapping]()
		}

		mapping.keys = append(mapping.keys, key)
		mapping.deps = append(mapping.deps, Dependency{
			Name:  stem.Next(),
			Value: e.Value.Interface(),
			Type:  target.Elem(),
		})
	}

	return option.Some[Mapping](mapping)
}

// entries reads a dictionary source: a FieldSource, a map or a struct.
func (m *Mapper) entries(value any) ([]node.Entry, bool) {
	if fs, ok := value.(FieldSource); ok {
		fields := fs.Fields()

		res := make([]node.Entry, 0, len(fields))
		for _, f := range fields {
			res = append(res, node.Entry{Key: reflect.ValueOf(f.Key), Value: reflect.ValueOf(&f.Value).Elem()})
		}

		return res, true
	}

	rv := reflect.ValueOf(value)
	if entries, ok := node.Entries(rv); ok {
		return entries, true
	}

	members, ok := node.Members(rv)
	if !ok {
		return nil, false
	}

	res := make([]node.Entry, 0, len(members))
	for _, mb := range members {
		res = append(res, node.Entry{Key: reflect.ValueOf(mb.Name), Value: mb.Value})
	}

	return res, true
}

// mapKey converts a source key to the target key type. Keys are scalars in
// practice, other key types must match exactly.
func (m *Mapper) mapKey(key reflect.Value, target reflect.Type) (reflect.Value, bool) {
	for key.Kind() == reflect.Interface && !key.IsNil() {
		key = key.Elem()
	}

	if key.Type().AssignableTo(target) {
		return key, true
	}

	res, err := m.coercer.Coerce(key, target)
	if err != nil {
		m.logger.Debug("dictionary key declined", "key", key.Interface(), "to", node.TypeName(target), "error", err)
		return reflect.Value{}, false
	}

	return res, true
}

func (d *dictionaryMapping) Dependencies() []Dependency { return d.deps }

func (d *dictionaryMapping) Create(values Values) option.Option[any] {
	out := reflect.MakeMapWithSize(d.target, len(d.deps))

	for i, dep := range d.deps {
		if values.IsDeferred(dep.Name) {
			continue
		}

		v, ok := values.Get(dep.Name).Get()
		if !ok {
			return option.None[any]()
		}

		elem := reflect.New(d.target.Elem()).Elem()
		if !assign(elem, v) {
			return option.None[any]()
		}

		out.SetMapIndex(d.keys[i], elem)
	}

	return option.Some(out.Interface())
}

func (d *dictionaryMapping) Patch(instance any, name string, value any) bool {
	out := reflect.ValueOf(instance)
	if out.Kind() != reflect.Map || out.IsNil() {
		return false
	}

	i, ok := node.NewStem(elementStem).Index(name)
	if !ok || i >= len(d.keys) {
		return false
	}

	elem := reflect.New(d.target.Elem()).Elem()
	if !assign(elem, value) {
		return false
	}

	out.SetMapIndex(d.keys[i], elem)

	return true
}
