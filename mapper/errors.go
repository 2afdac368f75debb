package mapper

import "errors"

var (
	ErrNoResolver        = errors.New("no resolver can map value")
	ErrMissingDependency = errors.New("missing dependency")
	ErrCyclicDependency  = errors.New("cyclic dependency")
	ErrUnmapped          = errors.New("value is not mapped")
	ErrInvalidOption     = errors.New("invalid mapper option")
)
