package fixture

// Person is a family tree node. Parent and Child close cycles.
type Person struct {
	FirstName string
	LastName  string
	Parent    *Person
	Child     *Person
}

// Contact carries enumerable members.
type Contact struct {
	Numbers []int
	Names   []int
}

// Bag is a collection that can only grow.
type Bag[T any] struct {
	items []T
}

func (b *Bag[T]) Add(v T) {
	b.items = append(b.items, v)
}

// Values returns a copy of the bag content.
func (b *Bag[T]) Values() []T {
	return append([]T(nil), b.items...)
}

// Container exposes its items only through a getter.
type Container struct {
	items Bag[int]
}

func (c *Container) Items() *Bag[int] { return &c.items }

// Adder accepts items one at a time.
type Adder[T any] interface {
	Add(v T)
}

// Playlist hands out its tracks behind an interface.
type Playlist struct {
	Name   string
	tracks Bag[string]
}

func (p *Playlist) Tracks() Adder[string] { return &p.tracks }

func (p *Playlist) Titles() []string { return p.tracks.Values() }

// Reading holds optional measurements.
type Reading struct {
	Sensor string
	Value  *int
}

// Sample is a Reading with plain members.
type Sample struct {
	Sensor string
	Value  int
}

// GraphSON is a graph vertex as serialized by graph databases: plain
// properties and the edges to other vertices.
type GraphSON struct {
	Properties map[string]any
	Edges      map[string]any
}

func NewGraphSON() *GraphSON {
	return &GraphSON{
		Properties: make(map[string]any),
		Edges:      make(map[string]any),
	}
}
