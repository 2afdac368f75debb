package analyze

import (
	"go/types"

	"object-mapper/node"
)

// scalarTypes are the named struct and integer types the coercer treats as scalars.
var scalarTypes = map[string]struct{}{
	"time.Time":                             {},
	"time.Duration":                         {},
	"github.com/shopspring/decimal.Decimal": {},
}

// Classify tells how the built-in resolvers build a value of type t, the
// static counterpart of node.Dispatch.
func Classify(t types.Type) node.DispatcherEnum {
	t = types.Unalias(t)
	if IsScalar(t) {
		return node.DispatcherPrimitive
	}

	switch u := t.Underlying().(type) {
	case *types.Pointer:
		elem := types.Unalias(u.Elem())
		if _, ok := elem.Underlying().(*types.Struct); ok && !IsScalar(elem) {
			return node.DispatcherStruct
		}

		return node.DispatcherNullable
	case *types.Slice, *types.Array:
		return node.DispatcherSequence
	case *types.Map:
		return node.DispatcherMap
	case *types.Struct:
		return node.DispatcherStruct
	case *types.Interface:
		return node.DispatcherInterface
	default:
		return node.DispatcherUnknown
	}
}

// IsScalar reports whether values of t are coerced rather than built.
func IsScalar(t types.Type) bool {
	t = types.Unalias(t)

	if named, ok := t.(*types.Named); ok && named.Obj().Pkg() != nil {
		if _, ok := scalarTypes[named.Obj().Pkg().Path()+"."+named.Obj().Name()]; ok {
			return true
		}
	}

	b, ok := t.Underlying().(*types.Basic)
	if !ok {
		return false
	}

	info := b.Info()

	return info&(types.IsBoolean|types.IsNumeric|types.IsString) != 0 && info&types.IsComplex == 0
}
