package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggest(t *testing.T) {
	t.Parallel()

	candidates := []string{"FirstName", "LastName", "Email", "ShippingAddress"}

	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"typo", "frist_name", []string{"FirstName"}},
		{"snake case", "last_name", []string{"LastName"}},
		{"leading token", "shipping_addr", []string{"ShippingAddress"}},
		{"nothing close", "zzz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, SuggestNames(tt.input, candidates, 1))
		})
	}
}

func TestSuggest_Ordering(t *testing.T) {
	t.Parallel()

	res := Suggest("name", []string{"Names", "Name", "Nome"}, 0)
	require.NotEmpty(t, res)
	assert.Equal(t, "Name", res[0].Name)
	assert.InDelta(t, 1.0, res[0].Score, 1e-9)

	for i := 1; i < len(res); i++ {
		assert.GreaterOrEqual(t, res[i-1].Score, res[i].Score)
	}
}
