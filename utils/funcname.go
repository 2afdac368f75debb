package utils

import (
	"path"
	"reflect"
	"runtime"
	"strings"
)

// FuncName splits the runtime name of fn into the alias of its package and its
// own name: "object-mapper/internal/fixture.NewCustomer" gives "fixture" and
// "NewCustomer". Closures keep their generated suffix, e.g. "func1".
func FuncName(fn reflect.Value) (alias, name string) {
	f := runtime.FuncForPC(fn.Pointer())
	if f == nil {
		return "", ""
	}

	return Unpack2(strings.SplitN(Second(path.Split(f.Name())), ".", 2))
}
