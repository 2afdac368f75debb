package node

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"object-mapper/utils"
)

var (
	ErrConstructorIsNotAFunction = errors.New("provided constructor is not a function")
	ErrIsNotAConstructor         = errors.New("provided function is not a recognizable constructor")
	ErrParamNames                = errors.New("constructor parameter names do not match its parameters")
	ErrConstructorFailed         = errors.New("constructor failed")
)

// Param is a named constructor parameter.
type Param struct {
	Name string
	Type reflect.Type
}

// Constructor is a registered function building a struct.
type Constructor struct {
	Target       reflect.Type // struct type being built
	Params       []Param
	PackageAlias string
	Name         string
	HasErr       bool

	fn      reflect.Value
	pointer bool
}

// ParseConstructor inspects fn and binds names to its parameters, in order.
// Go keeps no parameter names at runtime, so every parameter needs one.
//
// Supports interfaces:
//   - func(args...) T
//   - func(args...) *T
//   - func(args...) (T, error)
//   - func(args...) (*T, error)
//
// where T is a struct type.
func ParseConstructor(fn any, names ...string) (Constructor, error) {
	fnVal := reflect.ValueOf(fn)
	if !fnVal.IsValid() || fnVal.Kind() != reflect.Func || fnVal.IsNil() {
		return Constructor{}, ErrConstructorIsNotAFunction
	}

	fnType := fnVal.Type()
	if fnType.IsVariadic() || fnType.NumOut() == 0 || fnType.NumOut() > 2 {
		return Constructor{}, ErrIsNotAConstructor
	}

	if fnType.NumOut() == 2 && !isError(fnType.Out(1)) {
		return Constructor{}, ErrIsNotAConstructor
	}

	out := fnType.Out(0)
	if Dispatch(out) != DispatcherStruct {
		return Constructor{}, fmt.Errorf("%w: %v is not a struct", ErrIsNotAConstructor, out)
	}

	if len(names) != fnType.NumIn() {
		return Constructor{}, fmt.Errorf("%w: %d names for %d parameters", ErrParamNames, len(names), fnType.NumIn())
	}

	seen := make(map[string]struct{}, len(names))
	params := make([]Param, fnType.NumIn())
	for i, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			return Constructor{}, fmt.Errorf("%w: parameter %d has no name", ErrParamNames, i+1)
		}

		if _, dup := seen[strings.ToLower(name)]; dup {
			return Constructor{}, fmt.Errorf("%w: duplicate name %q", ErrParamNames, name)
		}
		seen[strings.ToLower(name)] = struct{}{}

		params[i] = Param{Name: name, Type: fnType.In(i)}
	}

	alias, fnName := utils.FuncName(fnVal)

	return Constructor{
		Target:       Base(out),
		Params:       params,
		PackageAlias: alias,
		Name:         fnName,
		HasErr:       fnType.NumOut() == 2,
		fn:           fnVal,
		pointer:      out.Kind() == reflect.Ptr,
	}, nil
}

// Call runs the constructor and returns a non-nil pointer to the built struct.
func (c Constructor) Call(args []reflect.Value) (res reflect.Value, err error) {
	if !c.fn.IsValid() {
		return reflect.Value{}, ErrConstructorIsNotAFunction
	}

	if len(args) != len(c.Params) {
		return reflect.Value{}, fmt.Errorf("%w: %s expects %d arguments, got %d",
			ErrConstructorFailed, c.Name, len(c.Params), len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		switch {
		case !arg.IsValid():
			in[i] = reflect.Zero(c.Params[i].Type)
		case arg.Type().AssignableTo(c.Params[i].Type):
			in[i] = arg
		default:
			return reflect.Value{}, fmt.Errorf("%w: %s parameter %s expects %v, got %v",
				ErrConstructorFailed, c.Name, c.Params[i].Name, c.Params[i].Type, arg.Type())
		}
	}

	defer func() {
		if r := recover(); r != nil {
			res, err = reflect.Value{}, fmt.Errorf("%w: %s panicked: %v", ErrConstructorFailed, c.Name, r)
		}
	}()

	out := c.fn.Call(in)

	if c.HasErr && !out[1].IsNil() {
		return reflect.Value{}, fmt.Errorf("%w: %s: %w", ErrConstructorFailed, c.Name, out[1].Interface().(error))
	}

	if !c.pointer {
		ptr := reflect.New(c.Target)
		ptr.Elem().Set(out[0])

		return ptr, nil
	}

	if out[0].IsNil() {
		return reflect.Value{}, fmt.Errorf("%w: %s returned nil", ErrConstructorFailed, c.Name)
	}

	return out[0], nil
}

// String renders the constructor as a call signature with parameter names.
func (c Constructor) String() string {
	params := make([]string, len(c.Params))
	for i, p := range c.Params {
		params[i] = p.Name + " " + TypeName(p.Type)
	}

	return fmt.Sprintf("%s.%s(%s) %s", c.PackageAlias, c.Name, strings.Join(params, ", "), TypeName(c.Target))
}
