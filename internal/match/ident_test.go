package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokens(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected []string
	}{
		{"", nil},
		{"name", []string{"name"}},
		{"FirstName", []string{"First", "Name"}},
		{"firstName", []string{"first", "Name"}},
		{"first_name", []string{"first", "name"}},
		{"first-name", []string{"first", "name"}},
		{"shipping.addr", []string{"shipping", "addr"}},
		{"OrderID", []string{"Order", "ID"}},
		{"XMLParser", []string{"XML", "Parser"}},
		{"orderHTTPId", []string{"order", "HTTP", "Id"}},
		{"__items__", []string{"items"}},
		{"Größe_Kunde", []string{"Größe", "Kunde"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, Tokens(tt.input))
		})
	}
}

func TestNormalizeIdent(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"FirstName", "firstName", "first_name", "first-name", "FIRST_NAME", "first name"} {
		assert.Equal(t, "firstname", NormalizeIdent(key), key)
	}

	assert.Empty(t, NormalizeIdent(""))
	assert.Equal(t, "orderid", NormalizeIdent("Order_ID"))
}

func TestLowerTokens(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"shipping", "address"}, LowerTokens("ShippingAddress"))
	assert.Equal(t, []string{"get", "http", "response"}, LowerTokens("getHTTPResponse"))
}

func TestTrimWeakSuffix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"customer_id", "customer"},
		{"CustomerID", "customer"},
		{"productIDs", "product"},
		{"ordered_at", "ordered"},
		{"CreatedUTC", "created"},
		{"event_timestamp", "event"},
		{"id", "id"},
		{"at", "at"},
		{"Email", "email"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, trimWeakSuffix(tt.input))
		})
	}
}
