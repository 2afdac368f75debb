package node

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"object-mapper/internal/match"
)

var ErrNotAssignable = errors.New("value is not assignable to member")

// Field is an exported, settable member of a struct type, promoted fields included.
type Field struct {
	Name  string
	Index []int
	Type  reflect.Type
	Tag   string // value of the catalog tag key, options trimmed
	JSON  string // json name, options trimmed
}

// Fields lists the members of struct type t the mapper may assign.
// Embedded structs contribute their promoted fields instead of themselves,
// and a tag value of "-" hides a field.
func Fields(t reflect.Type, tagKey string) []Field {
	t = Base(t)
	if t.Kind() != reflect.Struct {
		return nil
	}

	var res []Field
	for _, sf := range reflect.VisibleFields(t) {
		if !sf.IsExported() {
			continue
		}

		if sf.Anonymous && Base(sf.Type).Kind() == reflect.Struct {
			continue
		}

		tag, json := tagName(sf, tagKey), tagName(sf, "json")
		if tag == "-" || json == "-" {
			continue
		}

		res = append(res, Field{
			Name:  sf.Name,
			Index: sf.Index,
			Type:  sf.Type,
			Tag:   tag,
			JSON:  json,
		})
	}

	return res
}

// MatchField tries the tag, the json tag and the name exactly, then the tag and
// the name case-insensitively, then as normalized identifiers.
func MatchField(fields []Field, name string) (Field, bool) {
	matchers := []func(Field) bool{
		func(f Field) bool { return f.Tag != "" && f.Tag == name },
		func(f Field) bool { return f.JSON != "" && f.JSON == name },
		func(f Field) bool { return f.Name == name },
		func(f Field) bool { return f.Tag != "" && strings.EqualFold(f.Tag, name) },
		func(f Field) bool { return strings.EqualFold(f.Name, name) },
		func(f Field) bool { return match.NormalizeIdent(f.Name) == match.NormalizeIdent(name) },
	}

	for _, matches := range matchers {
		for _, f := range fields {
			if matches(f) {
				return f, true
			}
		}
	}

	return Field{}, false
}

// Set assigns v to the field of obj, an addressable struct value.
// Nil embedded struct pointers on the way are allocated.
func (f Field) Set(obj reflect.Value, v reflect.Value) error {
	for i, x := range f.Index {
		if i > 0 && obj.Kind() == reflect.Ptr {
			if obj.IsNil() {
				if !obj.CanSet() {
					return fmt.Errorf("%w: %s is behind a nil embedded pointer", ErrNotAssignable, f.Name)
				}
				obj.Set(reflect.New(obj.Type().Elem()))
			}
			obj = obj.Elem()
		}
		obj = obj.Field(x)
	}

	if !obj.CanSet() {
		return fmt.Errorf("%w: %s is not settable", ErrNotAssignable, f.Name)
	}

	if !v.IsValid() {
		obj.SetZero()
		return nil
	}

	if !v.Type().AssignableTo(f.Type) {
		return fmt.Errorf("%w: %s of type %v cannot hold %v", ErrNotAssignable, f.Name, f.Type, v.Type())
	}

	obj.Set(v)

	return nil
}

// Get reads the field of obj, a struct value. It reports false when an
// embedded pointer on the way is nil.
func (f Field) Get(obj reflect.Value) (reflect.Value, bool) {
	v, err := obj.FieldByIndexErr(f.Index)
	if err != nil {
		return reflect.Value{}, false
	}

	return v, true
}

// Getter is an exported zero-argument method returning a collection that can
// only be filled through its Add method.
type Getter struct {
	Name string
	Elem reflect.Type // type accepted by Add
}

// Getters lists the read-only collection members of struct type t. Methods
// shadowed by a field name are skipped.
func Getters(t reflect.Type, fields []Field) []Getter {
	ptr := reflect.PointerTo(Base(t))

	taken := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		taken[f.Name] = struct{}{}
	}

	var res []Getter
	for i := range ptr.NumMethod() {
		m := ptr.Method(i)
		if _, ok := taken[m.Name]; ok || !m.IsExported() {
			continue
		}

		if m.Type.NumIn() != 1 || m.Type.NumOut() != 1 {
			continue
		}

		elem, ok := addElem(m.Type.Out(0))
		if !ok {
			continue
		}

		res = append(res, Getter{Name: m.Name, Elem: elem})
	}

	return res
}

// addElem is the type accepted by the Add method of t. Interface method
// types carry no receiver.
func addElem(t reflect.Type) (reflect.Type, bool) {
	add, ok := t.MethodByName("Add")
	if !ok {
		return nil, false
	}

	in := 1
	if t.Kind() == reflect.Interface {
		in = 0
	}

	if add.Type.NumIn() != in+1 || add.Type.NumOut() > 1 ||
		add.Type.NumOut() == 1 && !isError(add.Type.Out(0)) {
		return nil, false
	}

	return add.Type.In(in), true
}

// Collection calls the getter on obj, a pointer to the struct. It reports false
// when the getter returns nil.
func (g Getter) Collection(obj reflect.Value) (reflect.Value, bool) {
	out := obj.MethodByName(g.Name).Call(nil)[0]
	if IsNillable(out.Type()) && out.IsNil() {
		return reflect.Value{}, false
	}

	return out, true
}

// Add appends elem to a collection returned by Collection.
func (g Getter) Add(collection, elem reflect.Value) error {
	if !elem.IsValid() {
		elem = reflect.Zero(g.Elem)
	}

	if !elem.Type().AssignableTo(g.Elem) {
		return fmt.Errorf("%w: %s.Add accepts %v, got %v", ErrNotAssignable, g.Name, g.Elem, elem.Type())
	}

	out := collection.MethodByName("Add").Call([]reflect.Value{elem})
	if len(out) == 1 && !out[0].IsNil() {
		return fmt.Errorf("%s.Add: %w", g.Name, out[0].Interface().(error))
	}

	return nil
}

func tagName(f reflect.StructField, key string) string {
	tag := f.Tag.Get(key)
	if tag == "" || tag == "-" {
		return tag
	}
	// trim options
	if idx := strings.IndexByte(tag, ','); idx >= 0 {
		tag = tag[:idx]
	}
	return tag
}
