package mapper

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"object-mapper/internal/match"
	"object-mapper/option"
	"object-mapper/utils"
)

type entry struct {
	value    option.Option[any]
	deferred bool
}

// Values is the environment handed to Mapping.Create: resolved dependency
// values by name, in dependency order. A name is looked up exactly, then
// case-insensitively, then as a normalized identifier ("first_name" finds
// "FirstName").
type Values struct {
	entries *orderedmap.OrderedMap[string, entry]
}

// NewValues builds an environment where every pair is present.
func NewValues(pairs ...utils.Pair[string, any]) Values {
	v := Values{entries: orderedmap.New[string, entry]()}
	for _, p := range pairs {
		v.Set(p.Key, option.Some(p.Value))
	}

	return v
}

// Set binds name to a resolved (or absent) value.
func (v Values) Set(name string, value option.Option[any]) {
	v.entries.Set(name, entry{value: value})
}

// Defer binds name to a value that is still being resolved further up the
// graph. It reads as absent.
func (v Values) Defer(name string) {
	v.entries.Set(name, entry{deferred: true})
}

// Get returns the value bound to name, None when absent or deferred.
func (v Values) Get(name string) option.Option[any] {
	e, ok := v.lookup(name)
	if !ok {
		return option.None[any]()
	}

	return e.value
}

// IsDeferred reports whether name is bound to a value still being resolved.
func (v Values) IsDeferred(name string) bool {
	e, ok := v.lookup(name)
	return ok && e.deferred
}

// Len is the number of bound names.
func (v Values) Len() int {
	if v.entries == nil {
		return 0
	}

	return v.entries.Len()
}

// Names lists bound names in binding order.
func (v Values) Names() []string {
	if v.entries == nil {
		return nil
	}

	names := make([]string, 0, v.entries.Len())
	for pair := v.entries.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}

	return names
}

func (v Values) lookup(name string) (entry, bool) {
	if v.entries == nil {
		return entry{}, false
	}

	if e, ok := v.entries.Get(name); ok {
		return e, true
	}

	for pair := v.entries.Oldest(); pair != nil; pair = pair.Next() {
		if strings.EqualFold(pair.Key, name) {
			return pair.Value, true
		}
	}

	normalized := match.NormalizeIdent(name)
	for pair := v.entries.Oldest(); pair != nil; pair = pair.Next() {
		if match.NormalizeIdent(pair.Key) == normalized {
			return pair.Value, true
		}
	}

	return entry{}, false
}
