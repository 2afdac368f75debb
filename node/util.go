package node

import (
	"reflect"
	"strings"
)

var errorType = reflect.TypeFor[error]()

func isError(t reflect.Type) bool {
	if t == nil {
		return false
	}

	return t.Implements(errorType)
}

// TypeName renders t for logs and diagnostics, qualified by package name.
func TypeName(t reflect.Type) string {
	if t == nil {
		return "nil"
	}

	return strings.ReplaceAll(t.String(), "interface {}", "any")
}
