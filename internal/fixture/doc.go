// Package fixture holds the domain types mapped in tests and examples: a
// family tree with back-references and a small shop with storefront documents
// on one side and warehouse records on the other.
package fixture
