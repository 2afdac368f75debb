package primitive

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"object-mapper/internal/common"
)

// typeNames are the scalar type names understood by TypeByName. Aliases
// resolve to the same type.
var typeNames = map[string]reflect.Type{
	"int":      reflect.TypeFor[int](),
	"int8":     reflect.TypeFor[int8](),
	"int16":    reflect.TypeFor[int16](),
	"int32":    reflect.TypeFor[int32](),
	"rune":     reflect.TypeFor[rune](),
	"char":     reflect.TypeFor[rune](),
	"int64":    reflect.TypeFor[int64](),
	"uint":     reflect.TypeFor[uint](),
	"uint8":    reflect.TypeFor[uint8](),
	"byte":     reflect.TypeFor[byte](),
	"uint16":   reflect.TypeFor[uint16](),
	"uint32":   reflect.TypeFor[uint32](),
	"uint64":   reflect.TypeFor[uint64](),
	"float32":  reflect.TypeFor[float32](),
	"float64":  reflect.TypeFor[float64](),
	"bool":     reflect.TypeFor[bool](),
	"string":   reflect.TypeFor[string](),
	"time":     timeType,
	"duration": durationType,
	"decimal":  decimalType,
}

// TypeByName resolves a scalar type name such as "int64", "time" or "decimal".
func TypeByName(name string) (reflect.Type, error) {
	t, ok := typeNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: unknown scalar type %q", ErrNotPrimitive, name)
	}

	return t, nil
}

// TypeNames lists the names accepted by TypeByName in kind order, aliases
// after their canonical name.
func TypeNames() []string {
	names := make([]string, 0, len(typeNames))
	for name := range typeNames {
		names = append(names, name)
	}

	slices.SortFunc(names, func(a, b string) int {
		ka, kb := FromReflectType(typeNames[a]), FromReflectType(typeNames[b])
		switch {
		case ka != kb:
			return cmp.Compare(ka, kb)
		case a == ka.Name():
			return -1
		case b == kb.Name():
			return 1
		default:
			return strings.Compare(a, b)
		}
	})

	return names
}

// Name is the lowercase kind name, e.g. "int8" for KindInt8.
func (k KindEnum) Name() string {
	if k < KindInt || int(k) >= KindTotal {
		return common.UnknownStr
	}

	if k == KindPrimitiveEnum {
		return "enum"
	}

	return strings.ToLower(strings.TrimPrefix(k.String(), "Kind"))
}
