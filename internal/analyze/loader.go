package analyze

import (
	"cmp"
	"errors"
	"fmt"
	"go/types"
	"reflect"
	"slices"
	"strings"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedTypes |
	packages.NeedImports

var (
	ErrPackageNotLoaded = errors.New("package not loaded")
	ErrTypeNotFound     = errors.New("type not found")
	ErrNotAStruct       = errors.New("type is not a struct")
)

// Analyzer loads Go packages and describes their struct types.
type Analyzer struct {
	tagKey string
	dir    string
	pkgs   map[string]*packages.Package
}

// NewAnalyzer creates an Analyzer reading field tags under tagKey.
// Patterns are resolved relative to dir, the current directory when empty.
func NewAnalyzer(tagKey, dir string) *Analyzer {
	return &Analyzer{
		tagKey: tagKey,
		dir:    dir,
		pkgs:   make(map[string]*packages.Package),
	}
}

// Load loads the packages matching patterns and returns their import paths.
// Patterns are standard Go package patterns (e.g., "./internal/fixture").
func (a *Analyzer) Load(patterns ...string) ([]string, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  a.dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	paths := make([]string, 0, len(pkgs))
	for _, pkg := range pkgs {
		a.pkgs[pkg.PkgPath] = pkg
		paths = append(paths, pkg.PkgPath)
	}

	return paths, nil
}

// Structs lists the exported struct types of a loaded package, sorted.
func (a *Analyzer) Structs(pkgPath string) ([]string, error) {
	pkg, ok := a.pkgs[pkgPath]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPackageNotLoaded, pkgPath)
	}

	var names []string

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		obj, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !obj.Exported() {
			continue
		}

		if _, ok := obj.Type().Underlying().(*types.Struct); ok {
			names = append(names, name)
		}
	}

	return names, nil
}

// Describe returns the members of struct typeName from package pkgPath.
func (a *Analyzer) Describe(pkgPath, typeName string) (*Description, error) {
	id := TypeID{PkgPath: pkgPath, Name: typeName}

	pkg, ok := a.pkgs[pkgPath]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPackageNotLoaded, pkgPath)
	}

	obj, ok := pkg.Types.Scope().Lookup(typeName).(*types.TypeName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTypeNotFound, id)
	}

	st, ok := obj.Type().Underlying().(*types.Struct)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotAStruct, id)
	}

	q := qualifier(pkg.Types)

	desc := &Description{ID: id}
	desc.Fields = a.fields(st, q)
	desc.Getters = getters(obj.Type(), desc.Fields, q)
	desc.Constructors = constructors(pkg.Types.Scope(), obj.Type(), q)

	return desc, nil
}

// fields lists the assignable fields of st. Promoted fields follow the direct
// ones and never shadow them.
func (a *Analyzer) fields(st *types.Struct, q types.Qualifier) []FieldInfo {
	var (
		res      []FieldInfo
		embedded []*types.Struct
		taken    = make(map[string]struct{})
	)

	level := []*types.Struct{st}
	for promoted := false; len(level) > 0; promoted = true {
		for _, s := range level {
			for i := range s.NumFields() {
				f := s.Field(i)
				tag := reflect.StructTag(s.Tag(i))

				if f.Embedded() {
					if inner, ok := types.Unalias(deref(f.Type())).Underlying().(*types.Struct); ok {
						embedded = append(embedded, inner)
						continue
					}
				}

				if _, dup := taken[f.Name()]; dup || !f.Exported() {
					continue
				}

				info := FieldInfo{
					Name:     f.Name(),
					Type:     types.TypeString(f.Type(), q),
					Kind:     Classify(f.Type()),
					Tag:      tag,
					Promoted: promoted,
				}

				if info.TagName(a.tagKey) == "-" || info.TagName("json") == "-" {
					continue
				}

				taken[f.Name()] = struct{}{}
				res = append(res, info)
			}
		}

		level, embedded = embedded, nil
	}

	return res
}

// getters lists the zero-argument methods of *t returning a collection with
// an Add method.
func getters(t types.Type, fields []FieldInfo, q types.Qualifier) []GetterInfo {
	var res []GetterInfo

	ms := types.NewMethodSet(types.NewPointer(t))
	for i := range ms.Len() {
		sel := ms.At(i)

		fn, ok := sel.Obj().(*types.Func)
		if !ok || !fn.Exported() {
			continue
		}

		if slices.ContainsFunc(fields, func(f FieldInfo) bool { return f.Name == fn.Name() }) {
			continue
		}

		sig := sel.Type().(*types.Signature)
		if sig.Params().Len() != 0 || sig.Results().Len() != 1 {
			continue
		}

		add := types.NewMethodSet(sig.Results().At(0).Type()).Lookup(nil, "Add")
		if add == nil {
			continue
		}

		addSig := add.Type().(*types.Signature)
		if addSig.Params().Len() != 1 || addSig.Results().Len() > 1 ||
			addSig.Results().Len() == 1 && !isError(addSig.Results().At(0).Type()) {
			continue
		}

		res = append(res, GetterInfo{Name: fn.Name(), Elem: types.TypeString(addSig.Params().At(0).Type(), q)})
	}

	return res
}

// constructors lists the package functions returning t or *t, optionally with
// an error, fewest parameters first.
func constructors(scope *types.Scope, t types.Type, q types.Qualifier) []Constructor {
	var res []Constructor

	for _, name := range scope.Names() {
		fn, ok := scope.Lookup(name).(*types.Func)
		if !ok || !fn.Exported() {
			continue
		}

		sig := fn.Type().(*types.Signature)
		if sig.Variadic() || sig.TypeParams().Len() > 0 || sig.Results().Len() == 0 || sig.Results().Len() > 2 {
			continue
		}

		out := sig.Results().At(0).Type()
		pointer := false

		if p, ok := out.(*types.Pointer); ok {
			out, pointer = p.Elem(), true
		}

		if !types.Identical(out, t) {
			continue
		}

		hasErr := sig.Results().Len() == 2
		if hasErr && !isError(sig.Results().At(1).Type()) {
			continue
		}

		c := Constructor{
			Name:    name,
			Result:  types.TypeString(sig.Results().At(0).Type(), q),
			Pointer: pointer,
			HasErr:  hasErr,
		}

		for i := range sig.Params().Len() {
			p := sig.Params().At(i)
			c.Params = append(c.Params, Param{Name: p.Name(), Type: types.TypeString(p.Type(), q)})
		}

		res = append(res, c)
	}

	slices.SortStableFunc(res, func(a, b Constructor) int {
		if c := cmp.Compare(len(a.Params), len(b.Params)); c != 0 {
			return c
		}

		// NewT before NewTFrom...
		return cmp.Compare(len(a.Name), len(b.Name))
	})

	return res
}

// qualifier leaves types of pkg unqualified and names others by package name.
func qualifier(pkg *types.Package) types.Qualifier {
	return func(other *types.Package) string {
		if other == pkg {
			return ""
		}

		return other.Name()
	}
}

func deref(t types.Type) types.Type {
	if p, ok := t.(*types.Pointer); ok {
		return p.Elem()
	}

	return t
}

func isError(t types.Type) bool {
	return types.Identical(t, types.Universe.Lookup("error").Type())
}

// unnamedParams reports whether some parameter of c has no usable name.
func unnamedParams(c Constructor) bool {
	return slices.ContainsFunc(c.Params, func(p Param) bool {
		return p.Name == "" || p.Name == "_" || strings.HasPrefix(p.Name, "_")
	})
}
