// Package analyze describes struct types from source, the way the mapper sees
// them at runtime.
//
// It uses golang.org/x/tools/go/packages with go/types, which keeps what
// reflection loses: constructor parameter names.
//
// Key types:
//   - TypeID: package import path + type name
//   - Description: assignable fields, read-only collection getters and
//     constructor candidates of a struct
//   - Constructor: a NewTYPE function with its named parameters
package analyze
