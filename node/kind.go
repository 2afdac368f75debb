package node

import "object-mapper/internal/common"

// DispatcherEnum is the shape of a target type as seen by the built-in resolvers.
type DispatcherEnum int

const (
	DispatcherUnknown DispatcherEnum = iota
	DispatcherPrimitive
	DispatcherNullable
	DispatcherSequence
	DispatcherMap
	DispatcherStruct
	DispatcherInterface

	// DispatcherTotal is a constant that represents the total number of kinds defined
	DispatcherTotal = int(iota)
)

func (d DispatcherEnum) String() string {
	switch d {
	case DispatcherPrimitive:
		return "primitive"
	case DispatcherNullable:
		return "nullable"
	case DispatcherSequence:
		return "sequence"
	case DispatcherMap:
		return "map"
	case DispatcherStruct:
		return "struct"
	case DispatcherInterface:
		return "interface"
	default:
		return common.UnknownStr
	}
}

func (d DispatcherEnum) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
