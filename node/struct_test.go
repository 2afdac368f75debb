package node_test

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"object-mapper/node"
)

type Audit struct {
	CreatedBy string
	Revision  int
}

type TagSet struct {
	items []string
}

func (s *TagSet) Add(tag string) { s.items = append(s.items, tag) }

type Order struct {
	*Audit
	ID       int    `map:"order_id"`
	Customer string `json:"customer_name,omitempty"`
	Ignored  string `map:"-"`
	internal string

	tags *TagSet
}

func (o *Order) Tags() *TagSet { return o.tags }
func (o *Order) Total() int    { return 0 }

func NewOrder(id int, customer string) *Order {
	return &Order{ID: id, Customer: customer, tags: &TagSet{}}
}

func NewOrderChecked(id int) (Order, error) {
	if id <= 0 {
		return Order{}, errors.New("order id must be positive")
	}

	return Order{ID: id, tags: &TagSet{}}, nil
}

func ExampleDispatch() {
	for _, v := range []any{
		0, "", time.Time{}, new(int), new(time.Time),
		Order{}, &Order{}, []int{}, [2]int{}, map[string]int{}, (*any)(nil), make(chan int),
	} {
		fmt.Println(reflect.TypeOf(v), node.Dispatch(reflect.TypeOf(v)))
	}

	fmt.Println("any", node.Dispatch(reflect.TypeFor[any]()))

	// Output:
	// int primitive
	// string primitive
	// time.Time primitive
	// *int nullable
	// *time.Time nullable
	// node_test.Order struct
	// *node_test.Order struct
	// []int sequence
	// [2]int sequence
	// map[string]int map
	// *interface {} nullable
	// chan int unknown
	// any interface
}

func TestFields(t *testing.T) {
	t.Parallel()

	fields := node.Fields(reflect.TypeFor[*Order](), node.DefaultTagKey)

	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}

	assert.Equal(t, []string{"CreatedBy", "Revision", "ID", "Customer"}, names)

	tests := []struct {
		key   string
		field string
	}{
		{"order_id", "ID"},
		{"customer_name", "Customer"},
		{"ID", "ID"},
		{"createdby", "CreatedBy"},
		{"created_by", "CreatedBy"},
		{"REVISION", "Revision"},
	}

	for _, tt := range tests {
		f, ok := node.MatchField(fields, tt.key)
		require.True(t, ok, tt.key)
		assert.Equal(t, tt.field, f.Name, tt.key)
	}

	_, ok := node.MatchField(fields, "Ignored")
	assert.False(t, ok)
}

func TestField_SetGet(t *testing.T) {
	t.Parallel()

	fields := node.Fields(reflect.TypeFor[Order](), node.DefaultTagKey)
	byName := map[string]node.Field{}
	for _, f := range fields {
		byName[f.Name] = f
	}

	var o Order
	obj := reflect.ValueOf(&o).Elem()

	_, ok := byName["CreatedBy"].Get(obj)
	assert.False(t, ok, "nil embedded pointer")

	require.NoError(t, byName["CreatedBy"].Set(obj, reflect.ValueOf("ibrahim")))
	require.NotNil(t, o.Audit)
	assert.Equal(t, "ibrahim", o.CreatedBy)

	require.NoError(t, byName["ID"].Set(obj, reflect.ValueOf(7)))
	assert.Equal(t, 7, o.ID)

	err := byName["ID"].Set(obj, reflect.ValueOf("seven"))
	require.ErrorIs(t, err, node.ErrNotAssignable)

	require.NoError(t, byName["ID"].Set(obj, reflect.Value{}))
	assert.Equal(t, 0, o.ID)

	v, ok := byName["CreatedBy"].Get(obj)
	require.True(t, ok)
	assert.Equal(t, "ibrahim", v.Interface())
}

func TestGetters(t *testing.T) {
	t.Parallel()

	getters := node.Getters(reflect.TypeFor[Order](), node.Fields(reflect.TypeFor[Order](), ""))
	require.Len(t, getters, 1)
	assert.Equal(t, "Tags", getters[0].Name)
	assert.Equal(t, reflect.TypeFor[string](), getters[0].Elem)

	o := NewOrder(1, "x")
	coll, ok := getters[0].Collection(reflect.ValueOf(o))
	require.True(t, ok)
	require.NoError(t, getters[0].Add(coll, reflect.ValueOf("fragile")))
	require.ErrorIs(t, getters[0].Add(coll, reflect.ValueOf(1)), node.ErrNotAssignable)
	assert.Equal(t, []string{"fragile"}, o.tags.items)

	_, ok = getters[0].Collection(reflect.ValueOf(&Order{}))
	assert.False(t, ok)
}

type labeler interface{ Add(label string) }

type Parcel struct {
	labels TagSet
}

func (p *Parcel) Labels() labeler { return &p.labels }

func TestGettersInterface(t *testing.T) {
	t.Parallel()

	getters := node.Getters(reflect.TypeFor[Parcel](), node.Fields(reflect.TypeFor[Parcel](), ""))
	require.Len(t, getters, 1)
	assert.Equal(t, "Labels", getters[0].Name)
	assert.Equal(t, reflect.TypeFor[string](), getters[0].Elem)

	p := &Parcel{}
	coll, ok := getters[0].Collection(reflect.ValueOf(p))
	require.True(t, ok)
	require.NoError(t, getters[0].Add(coll, reflect.ValueOf("fragile")))
	assert.Equal(t, []string{"fragile"}, p.labels.items)
}

func TestMembers(t *testing.T) {
	t.Parallel()

	members, ok := node.Members(reflect.ValueOf(map[string]any{"b": 2, "a": 1}))
	require.True(t, ok)
	require.Len(t, members, 2)
	assert.Equal(t, "a", members[0].Name)
	assert.Equal(t, 1, members[0].Value.Interface())

	members, ok = node.Members(reflect.ValueOf(&Order{ID: 3, Audit: &Audit{CreatedBy: "me"}}))
	require.True(t, ok)
	names := make([]string, 0, len(members))
	for _, m := range members {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"CreatedBy", "Revision", "ID", "Customer", "Ignored"}, names)

	members, ok = node.Members(reflect.ValueOf(Order{}))
	require.True(t, ok)
	assert.Len(t, members, 3, "promoted fields behind a nil pointer are skipped")

	_, ok = node.Members(reflect.ValueOf(map[int]string{}))
	assert.False(t, ok)

	_, ok = node.Members(reflect.ValueOf(time.Now()))
	assert.False(t, ok)
}

func TestEntriesAndElements(t *testing.T) {
	t.Parallel()

	entries, ok := node.Entries(reflect.ValueOf(map[int]string{2: "b", 1: "a"}))
	require.True(t, ok)
	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].Key.Interface())

	elems, ok := node.Elements(reflect.ValueOf([2]string{"x", "y"}))
	require.True(t, ok)
	require.Len(t, elems, 2)
	assert.Equal(t, "y", elems[1].Interface())

	seq := func(yield func(int) bool) {
		for i := range 3 {
			if !yield(i * 10) {
				return
			}
		}
	}

	elems, ok = node.Elements(reflect.ValueOf(seq))
	require.True(t, ok)
	require.Len(t, elems, 3)
	assert.Equal(t, 20, elems[2].Interface())

	_, ok = node.Elements(reflect.ValueOf("abc"))
	assert.False(t, ok)
}

func TestConstructor(t *testing.T) {
	t.Parallel()

	ctor, err := node.ParseConstructor(NewOrder, "id", "customer")
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeFor[Order](), ctor.Target)
	assert.Equal(t, "node_test.NewOrder(id int, customer string) node_test.Order", ctor.String())

	res, err := ctor.Call([]reflect.Value{reflect.ValueOf(5), {}})
	require.NoError(t, err)
	o := res.Interface().(*Order)
	assert.Equal(t, 5, o.ID)
	assert.Empty(t, o.Customer)

	checked, err := node.ParseConstructor(NewOrderChecked, "id")
	require.NoError(t, err)
	assert.True(t, checked.HasErr)

	res, err = checked.Call([]reflect.Value{reflect.ValueOf(9)})
	require.NoError(t, err)
	assert.Equal(t, 9, res.Interface().(*Order).ID)

	_, err = checked.Call([]reflect.Value{reflect.ValueOf(0)})
	require.ErrorIs(t, err, node.ErrConstructorFailed)
	assert.True(t, strings.Contains(err.Error(), "must be positive"))

	_, err = checked.Call([]reflect.Value{reflect.ValueOf("9")})
	require.ErrorIs(t, err, node.ErrConstructorFailed)

	tests := []struct {
		name  string
		fn    any
		names []string
		err   error
	}{
		{"not a func", 42, nil, node.ErrConstructorIsNotAFunction},
		{"scalar result", func() int { return 0 }, nil, node.ErrIsNotAConstructor},
		{"second result", func() (*Order, bool) { return nil, false }, nil, node.ErrIsNotAConstructor},
		{"missing names", NewOrder, []string{"id"}, node.ErrParamNames},
		{"duplicate names", NewOrder, []string{"id", "ID"}, node.ErrParamNames},
		{"variadic", func(...int) *Order { return nil }, nil, node.ErrIsNotAConstructor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := node.ParseConstructor(tt.fn, tt.names...)
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestCatalog_Describe(t *testing.T) {
	t.Parallel()

	long, err := node.ParseConstructor(NewOrder, "id", "customer")
	require.NoError(t, err)
	short, err := node.ParseConstructor(NewOrderChecked, "id")
	require.NoError(t, err)

	catalog := node.NewCatalog("", long, short)
	assert.Equal(t, node.DefaultTagKey, catalog.TagKey)

	shape, ok := catalog.Describe(reflect.TypeFor[*Order]())
	require.True(t, ok)
	require.Len(t, shape.Constructors, 2)
	assert.Equal(t, "NewOrderChecked", shape.Constructors[0].Name)
	assert.Equal(t, []string{"CreatedBy", "Revision", "ID", "Customer", "Tags"}, shape.MemberNames())

	again, ok := catalog.Describe(reflect.TypeFor[Order]())
	require.True(t, ok)
	assert.Same(t, shape, again)

	_, ok = catalog.Describe(reflect.TypeFor[[]Order]())
	assert.False(t, ok)
}
