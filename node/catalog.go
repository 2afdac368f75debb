package node

import (
	"cmp"
	"reflect"
	"slices"
	"strings"
	"sync"
)

// DefaultTagKey is the struct tag consulted first when matching member names.
const DefaultTagKey = "map"

// Shape is what the mapper can see of a struct type.
type Shape struct {
	Type         reflect.Type // the struct type, never a pointer
	Constructors []Constructor
	Fields       []Field
	Getters      []Getter
}

// Catalog describes struct types and remembers registered constructors.
// It is safe for concurrent use once built.
type Catalog struct {
	TagKey string

	constructors map[reflect.Type][]Constructor
	shapes       sync.Map // reflect.Type -> *Shape
}

// NewCatalog builds a catalog. An empty tag key means DefaultTagKey.
func NewCatalog(tagKey string, constructors ...Constructor) *Catalog {
	if tagKey == "" {
		tagKey = DefaultTagKey
	}

	c := &Catalog{
		TagKey:       tagKey,
		constructors: make(map[reflect.Type][]Constructor),
	}

	for _, ctor := range constructors {
		c.constructors[ctor.Target] = append(c.constructors[ctor.Target], ctor)
	}

	for t := range c.constructors {
		// fewest parameters first, registration order breaks ties
		slices.SortStableFunc(c.constructors[t], func(a, b Constructor) int {
			return cmp.Compare(len(a.Params), len(b.Params))
		})
	}

	return c
}

// Describe returns the shape of a struct type or a pointer to one.
func (c *Catalog) Describe(t reflect.Type) (*Shape, bool) {
	if t == nil {
		return nil, false
	}

	t = Base(t)
	if t.Kind() != reflect.Struct {
		return nil, false
	}

	if shape, ok := c.shapes.Load(t); ok {
		return shape.(*Shape), true
	}

	fields := Fields(t, c.TagKey)
	shape := &Shape{
		Type:         t,
		Constructors: c.constructors[t],
		Fields:       fields,
		Getters:      Getters(t, fields),
	}

	actual, _ := c.shapes.LoadOrStore(t, shape)

	return actual.(*Shape), true
}

// MemberNames lists every name a source key may bind to: fields, getters and
// parameters of the registered constructors.
func (s *Shape) MemberNames() []string {
	var names []string
	for _, f := range s.Fields {
		names = append(names, f.Name)
	}

	for _, g := range s.Getters {
		names = append(names, g.Name)
	}

	for _, ctor := range s.Constructors {
		for _, p := range ctor.Params {
			if !slices.ContainsFunc(names, func(n string) bool { return strings.EqualFold(n, p.Name) }) {
				names = append(names, p.Name)
			}
		}
	}

	return names
}
