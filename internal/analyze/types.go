package analyze

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"object-mapper/internal/common"
	"object-mapper/node"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "object-mapper/internal/fixture"
	Name    string // e.g., "Order"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// Alias is the package alias the type is referred to with.
func (t TypeID) Alias() string {
	return common.PkgAlias(t.PkgPath)
}

// Description is a struct type as the object resolver sees it.
type Description struct {
	ID           TypeID
	Fields       []FieldInfo
	Getters      []GetterInfo
	Constructors []Constructor
}

// FieldInfo describes an assignable struct field.
type FieldInfo struct {
	Name     string              // Go field name
	Type     string              // type, qualified relative to the described package
	Kind     node.DispatcherEnum // how the mapper builds the field value
	Tag      reflect.StructTag   // Raw struct tag
	Promoted bool                // reached through an embedded struct
}

// JSONName returns the JSON tag name if present, otherwise the field name.
func (f *FieldInfo) JSONName() string {
	if name := f.TagName("json"); name != "" && name != "-" {
		return name
	}

	return f.Name
}

// TagName returns the value of the tag key without its options.
func (f *FieldInfo) TagName(key string) string {
	name, _, _ := strings.Cut(f.Tag.Get(key), ",")
	return name
}

// GetterInfo describes a read-only collection filled through Add.
type GetterInfo struct {
	Name string
	Elem string // type accepted by Add
}

// Param is a named constructor parameter.
type Param struct {
	Name string
	Type string
}

// Constructor is a package function building the described struct.
type Constructor struct {
	Name    string
	Params  []Param
	Result  string
	Pointer bool
	HasErr  bool
}

// Signature renders the constructor as declared.
func (c Constructor) Signature() string {
	params := make([]string, len(c.Params))
	for i, p := range c.Params {
		params[i] = p.Name + " " + p.Type
	}

	res := c.Result
	if c.HasErr {
		res = "(" + res + ", error)"
	}

	return fmt.Sprintf("%s(%s) %s", c.Name, strings.Join(params, ", "), res)
}

// Option renders the mapper option registering the constructor, or nothing
// when a parameter has no name to bind.
func (c Constructor) Option(alias string) string {
	if unnamedParams(c) {
		return ""
	}

	args := []string{c.Name}
	if alias != "" {
		args[0] = alias + "." + c.Name
	}

	for _, p := range c.Params {
		args = append(args, strconv.Quote(p.Name))
	}

	return "mapper.WithConstructor(" + strings.Join(args, ", ") + ")"
}
