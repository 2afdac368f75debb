// Package mapper converts values of one shape into instances of an arbitrary
// target type.
//
// A chain of resolvers turns the source into a Mappable; asking it for a target
// type yields a Mapping with named dependencies. The engine resolves those
// dependencies depth-first with an explicit stack, memoizing each
// (source, target) pair, so circular sources map onto shared target instances:
//
//	m, err := mapper.New()
//	if err != nil {
//		return err
//	}
//
//	person, err := mapper.MapTo[*Person](m, map[string]any{"FirstName": "Ibrahim"})
//
// Failures are absence: Map returns option.None. Explain and MapTo report why.
package mapper
