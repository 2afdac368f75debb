package mapper

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"object-mapper/option"
	"object-mapper/utils"
)

func ExampleValues_Get() {
	values := NewValues(
		utils.PairOf[string, any]("FirstName", "Ibrahim"),
		utils.PairOf[string, any]("last_name", "ben Salah"),
	)

	fmt.Println(values.Get("FirstName").OrElse(nil))
	fmt.Println(values.Get("firstname").OrElse(nil))
	fmt.Println(values.Get("LastName").OrElse(nil))
	fmt.Println(values.Get("Parent").IsNone())
	// Output:
	// Ibrahim
	// Ibrahim
	// ben Salah
	// true
}

func TestValues(t *testing.T) {
	t.Parallel()

	values := NewValues()
	values.Set("b", option.Some[any](2))
	values.Set("a", option.None[any]())
	values.Defer("parent")
	values.Set("nothing", option.Some[any](nil))

	assert.Equal(t, 4, values.Len())
	assert.Equal(t, []string{"b", "a", "parent", "nothing"}, values.Names())

	assert.Equal(t, option.Some[any](2), values.Get("b"))
	assert.True(t, values.Get("a").IsNone())
	assert.False(t, values.IsDeferred("a"))

	assert.True(t, values.Get("parent").IsNone())
	assert.True(t, values.IsDeferred("Parent"))

	v, ok := values.Get("nothing").Get()
	require.True(t, ok)
	assert.Nil(t, v)

	var zero Values
	assert.Equal(t, 0, zero.Len())
	assert.Nil(t, zero.Names())
	assert.True(t, zero.Get("a").IsNone())
	assert.False(t, zero.IsDeferred("a"))
}

func TestKeyOf(t *testing.T) {
	t.Parallel()

	var serial uint64
	next := func() uint64 {
		serial++
		return serial
	}

	target := reflect.TypeFor[string]()

	p := new(int)
	assert.Equal(t, keyOf(p, target, next), keyOf(p, target, next))
	assert.NotEqual(t, keyOf(p, target, next), keyOf(p, reflect.TypeFor[int](), next))
	assert.NotEqual(t, keyOf(p, target, next), keyOf(new(int), target, next))

	s := []int{1, 2, 3}
	assert.Equal(t, keyOf(s, target, next), keyOf(s, target, next))
	assert.NotEqual(t, keyOf(s, target, next), keyOf(s[:2], target, next))

	m := map[string]int{}
	assert.Equal(t, keyOf(m, target, next), keyOf(m, target, next))

	// values never share a key, equal or not
	assert.NotEqual(t, keyOf(1, target, next), keyOf(1, target, next))

	assert.Equal(t, MappingKey{Target: target}, keyOf(nil, target, next))
	assert.Equal(t, "*int -> string", keyOf(p, target, next).String())
}

func TestIsNil(t *testing.T) {
	t.Parallel()

	assert.True(t, isNil(nil))
	assert.True(t, isNil((*int)(nil)))
	assert.True(t, isNil([]int(nil)))
	assert.True(t, isNil(map[string]int(nil)))
	assert.True(t, isNil((func())(nil)))
	assert.False(t, isNil(0))
	assert.False(t, isNil([]int{}))
	assert.False(t, isNil(""))
}

type echo struct{}

func (echo) Dependencies() []Dependency { return nil }

func (echo) Create(Values) option.Option[any] { return option.Some[any]("echo") }

func TestKindOf(t *testing.T) {
	t.Parallel()

	m, err := New()
	require.NoError(t, err)

	kindOf := func(value any, target reflect.Type) MappingKind {
		t.Helper()

		mapping, _, ok := newResolution(m).resolve(value, target)
		require.True(t, ok)

		return KindOf(mapping)
	}

	assert.Equal(t, KindTerminal, kindOf("1", reflect.TypeFor[int]()))
	assert.Equal(t, KindNullable, kindOf("1", reflect.TypeFor[*int]()))
	assert.Equal(t, KindSequence, kindOf([]string{"1"}, reflect.TypeFor[[]int]()))
	assert.Equal(t, KindDictionary, kindOf(map[string]string{}, reflect.TypeFor[map[string]int]()))
	assert.Equal(t, KindObject, kindOf(map[string]any{}, reflect.TypeFor[struct{ A int }]()))
	assert.Equal(t, KindTerminal, KindOf(Constant(1)))
	assert.Equal(t, KindCustom, KindOf(echo{}))

	assert.Equal(t, "dictionary", KindDictionary.String())
	assert.Equal(t, "custom", KindCustom.String())
}

func TestCustomMapping(t *testing.T) {
	t.Parallel()

	resolver := ResolverFunc(func(value any) option.Option[Mappable] {
		if value != "ping" {
			return option.None[Mappable]()
		}

		return option.Some[Mappable](MappableFunc(func(target reflect.Type) option.Option[Mapping] {
			if target.Kind() != reflect.String {
				return option.None[Mapping]()
			}

			return option.Some[Mapping](echo{})
		}))
	})

	m, err := New(WithResolvers(resolver))
	require.NoError(t, err)

	assert.Equal(t, option.Some[any]("echo"), m.Map("ping", reflect.TypeFor[string]()))
	assert.Equal(t, option.Some[any](1), m.Map(1, reflect.TypeFor[int]()))

	// the resolver declines the target, so the chain continues
	assert.True(t, m.Map("ping", reflect.TypeFor[int]()).IsNone())

	d := Dependency{Name: "item1", Value: "1", Type: reflect.TypeFor[int]()}
	assert.Equal(t, "item1: string -> int", d.String())
}
