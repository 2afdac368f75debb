package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b     string
		expected int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"name", "name", 0},
		{"kitten", "sitting", 3},
		{"frstname", "firstname", 1},
		{"email", "emial", 2},
		{"größe", "grosse", 3},
		{"flaw", "lawn", 2},
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, Distance(tt.a, tt.b))
			assert.Equal(t, tt.expected, Distance(tt.b, tt.a))
		})
	}
}

func TestSimilarity(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 1.0, Similarity("", ""), 1e-9)
	assert.InDelta(t, 1.0, Similarity("total", "total"), 1e-9)
	assert.InDelta(t, 0.0, Similarity("abc", "xyz"), 1e-9)
	assert.InDelta(t, 0.8, Similarity("email", "emall"), 1e-9)
}

func TestScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		min  float64
		max  float64
	}{
		{"first_name", "FirstName", 1, 1},
		{"customer_id", "Customer", 1, 1},
		{"ordered_at", "OrderedAt", 1, 1},
		{"frstName", "FirstName", 0.85, 0.95},
		{"zzz", "Email", 0, 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			t.Parallel()

			score := Score(tt.a, tt.b)
			assert.GreaterOrEqual(t, score, tt.min)
			assert.LessOrEqual(t, score, tt.max)
		})
	}
}

func BenchmarkScore(b *testing.B) {
	for b.Loop() {
		Score("shipping_address_line", "ShippingAddressLine2")
	}
}
