package mapper

import (
	"reflect"
	"strings"

	"object-mapper/internal/match"
	"object-mapper/node"
	"object-mapper/option"
	"object-mapper/utils"
)

// objectMapping builds a struct through a registered constructor or its zero
// value, then assigns matched fields and fills read-only collections.
type objectMapping struct {
	m      *Mapper
	target reflect.Type // *T or T
	shape  *node.Shape
	ctor   *node.Constructor

	params  []paramBinding
	fields  []fieldBinding
	getters []getterBinding

	deps      []Dependency
	unmatched []string
}

type paramBinding struct {
	param   node.Param
	matched bool
}

type fieldBinding struct {
	name  string
	field node.Field
}

type getterBinding struct {
	name   string
	getter node.Getter
}

func (m *Mapper) object(value any, target reflect.Type) option.Option[Mapping] {
	if res := passthrough(value, target); res.IsSome() {
		return res
	}

	if node.Dispatch(target) != node.DispatcherStruct {
		return option.None[Mapping]()
	}

	members, ok := m.members(value)
	if !ok {
		return option.None[Mapping]()
	}

	shape, ok := m.catalog.Describe(target)
	if !ok {
		return option.None[Mapping]()
	}

	om := &objectMapping{m: m, target: target, shape: shape}
	if len(shape.Constructors) > 0 {
		om.ctor = &shape.Constructors[0]
	}

	om.bind(members)

	return option.Some[Mapping](om)
}

// members reads a named-field producer: a FieldSource, a string-keyed map or a struct.
func (m *Mapper) members(value any) ([]utils.Pair[string, any], bool) {
	if fs, ok := value.(FieldSource); ok {
		return fs.Fields(), true
	}

	members, ok := node.Members(reflect.ValueOf(value))
	if !ok {
		return nil, false
	}

	res := make([]utils.Pair[string, any], 0, len(members))
	for _, mb := range members {
		res = append(res, utils.PairOf(mb.Name, mb.Value.Interface()))
	}

	return res, true
}

// bind assigns every source member to a constructor parameter, a field or a
// getter, in that priority. The first member bound to a target member wins.
func (om *objectMapping) bind(members []utils.Pair[string, any]) {
	claimed := make([]bool, len(members))

	if om.ctor != nil {
		for _, p := range om.ctor.Params {
			binding := paramBinding{param: p}

			if i := findMember(members, claimed, p.Name); i >= 0 {
				claimed[i] = true
				binding.matched = true
				om.deps = append(om.deps, Dependency{Name: p.Name, Value: members[i].Value, Type: p.Type})
			}

			om.params = append(om.params, binding)
		}
	}

	taken := make(map[string]struct{})
	for i, member := range members {
		if claimed[i] {
			continue
		}

		if f, ok := node.MatchField(om.shape.Fields, member.Key); ok && !om.isParam(f.Name) {
			if _, dup := taken[f.Name]; !dup {
				taken[f.Name] = struct{}{}
				om.fields = append(om.fields, fieldBinding{name: f.Name, field: f})
				om.deps = append(om.deps, Dependency{Name: f.Name, Value: member.Value, Type: f.Type})
			}

			continue
		}

		if g, ok := matchGetter(om.shape.Getters, member.Key); ok {
			if _, dup := taken[g.Name]; !dup {
				taken[g.Name] = struct{}{}
				om.getters = append(om.getters, getterBinding{name: g.Name, getter: g})
				om.deps = append(om.deps, Dependency{Name: g.Name, Value: member.Value, Type: reflect.SliceOf(g.Elem)})
			}

			continue
		}

		om.unmatched = append(om.unmatched, member.Key)
	}
}

func (om *objectMapping) isParam(name string) bool {
	for _, p := range om.params {
		if strings.EqualFold(p.param.Name, name) {
			return true
		}
	}

	return false
}

func findMember(members []utils.Pair[string, any], claimed []bool, name string) int {
	for i, member := range members {
		if !claimed[i] && strings.EqualFold(member.Key, name) {
			return i
		}
	}

	normalized := match.NormalizeIdent(name)
	for i, member := range members {
		if !claimed[i] && match.NormalizeIdent(member.Key) == normalized {
			return i
		}
	}

	return -1
}

func matchGetter(getters []node.Getter, name string) (node.Getter, bool) {
	for _, g := range getters {
		if strings.EqualFold(g.Name, name) || match.NormalizeIdent(g.Name) == match.NormalizeIdent(name) {
			return g, true
		}
	}

	return node.Getter{}, false
}

func (om *objectMapping) Dependencies() []Dependency { return om.deps }

func (om *objectMapping) Create(values Values) option.Option[any] {
	args := make([]option.Option[reflect.Value], len(om.params))
	for i, binding := range om.params {
		args[i] = om.argument(binding, values)
	}

	resolved, ok := option.AllSome(args).Get()
	if !ok {
		return option.None[any]()
	}

	var instance reflect.Value
	if om.ctor != nil {
		var err error
		if instance, err = om.ctor.Call(resolved); err != nil {
			om.m.logger.Debug("constructor failed", "constructor", om.ctor.Name, "error", err)
			return option.None[any]()
		}
	} else {
		instance = reflect.New(om.shape.Type)
	}

	for _, binding := range om.fields {
		if v, ok := values.Get(binding.name).Get(); ok {
			om.setField(instance, binding, v)
		}
	}

	for _, binding := range om.getters {
		if v, ok := values.Get(binding.name).Get(); ok {
			om.addAll(instance, binding, v)
		}
	}

	if om.target.Kind() == reflect.Ptr {
		return option.Some(instance.Interface())
	}

	return option.Some(instance.Elem().Interface())
}

// argument resolves one constructor parameter. Unmatched parameters and
// unresolved value parameters take their zero value; an unresolved nillable
// parameter makes construction impossible.
func (om *objectMapping) argument(binding paramBinding, values Values) option.Option[reflect.Value] {
	zero := reflect.Zero(binding.param.Type)
	if !binding.matched {
		return option.Some(zero)
	}

	v, ok := values.Get(binding.param.Name).Get()
	switch {
	case !ok && node.IsNillable(binding.param.Type):
		return option.None[reflect.Value]()
	case !ok, v == nil:
		return option.Some(zero)
	default:
		return option.Some(reflect.ValueOf(v))
	}
}

func (om *objectMapping) setField(instance reflect.Value, binding fieldBinding, v any) bool {
	var rv reflect.Value
	if v != nil {
		rv = reflect.ValueOf(v)
	}

	if err := binding.field.Set(instance.Elem(), rv); err != nil {
		om.m.logger.Debug("field not assigned", "field", binding.name, "error", err)
		return false
	}

	return true
}

func (om *objectMapping) addAll(instance reflect.Value, binding getterBinding, v any) bool {
	collection, ok := binding.getter.Collection(instance)
	if !ok || v == nil {
		return false
	}

	elems := reflect.ValueOf(v)
	for i := range elems.Len() {
		if err := binding.getter.Add(collection, elems.Index(i)); err != nil {
			om.m.logger.Debug("element not added", "member", binding.name, "error", err)
			return false
		}
	}

	return true
}

// Patch assigns a back-reference to a field or read-only collection of an
// instance created earlier. Value targets are copies and cannot be patched.
func (om *objectMapping) Patch(instance any, name string, value any) bool {
	rv := reflect.ValueOf(instance)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return false
	}

	for _, binding := range om.fields {
		if binding.name == name {
			return om.setField(rv, binding, value)
		}
	}

	for _, binding := range om.getters {
		if binding.name == name {
			return om.addAll(rv, binding, value)
		}
	}

	return false
}

// Unmatched lists the source keys no constructor parameter, field or getter consumed.
func (om *objectMapping) Unmatched() []string { return om.unmatched }
