package option_test

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"object-mapper/option"
)

func TestOption(t *testing.T) {
	t.Parallel()

	t.Run("zero value is none", func(t *testing.T) {
		t.Parallel()

		var o option.Option[int]
		assert.True(t, o.IsNone())
		assert.False(t, o.IsSome())
		assert.Equal(t, 7, o.OrElse(7))
	})

	t.Run("some nil is present", func(t *testing.T) {
		t.Parallel()

		o := option.Some[any](nil)
		v, ok := o.Get()
		assert.True(t, ok)
		assert.Nil(t, v)
	})

	t.Run("map propagates absence", func(t *testing.T) {
		t.Parallel()

		called := false
		res := option.Map(option.None[int](), func(i int) string {
			called = true
			return strconv.Itoa(i)
		})
		assert.True(t, res.IsNone())
		assert.False(t, called)

		res = option.Map(option.Some(42), strconv.Itoa)
		assert.Equal(t, "42", res.OrElse(""))
	})

	t.Run("flat map", func(t *testing.T) {
		t.Parallel()

		parse := func(s string) option.Option[int] {
			i, err := strconv.Atoi(s)
			if err != nil {
				return option.None[int]()
			}
			return option.Some(i)
		}

		assert.True(t, option.FlatMap(option.Some("x"), parse).IsNone())
		assert.Equal(t, 5, option.FlatMap(option.Some("5"), parse).OrElse(0))
	})
}

func TestAllSome(t *testing.T) {
	t.Parallel()

	all := option.AllSome([]option.Option[int]{option.Some(1), option.Some(2), option.Some(3)})
	vals, ok := all.Get()
	require.True(t, ok)
	assert.Equal(t, []int{1, 2, 3}, vals)

	missing := option.AllSome([]option.Option[int]{option.Some(1), option.None[int](), option.Some(3)})
	assert.True(t, missing.IsNone())

	empty := option.AllSome[int](nil)
	vals, ok = empty.Get()
	require.True(t, ok)
	assert.Empty(t, vals)
}

func ExampleAllSome() {
	args := []option.Option[string]{option.Some("Ibrahim"), option.Some("ben Salah")}
	fmt.Println(option.AllSome(args).OrElse(nil))

	args = append(args, option.None[string]())
	fmt.Println(option.AllSome(args).IsNone())

	// Output:
	// [Ibrahim ben Salah]
	// true
}
