package models

import (
	"errors"
	"strings"
)

// Reserved collections. Everything else in the database is a menu collection.
const (
	CartItemsCollection = "cartitems"
	UsersCollection     = "users"
	CustomersCollection = "customers"
)

// catalog is the expected shape of the menu, in display order. Each label
// nominally names one persisted collection.
var catalog = []string{
	"nibbles", "soups", "titbits", "salads", "mangalorean-style", "wok", "charcoal",
	"continental", "pasta", "artisan-pizzas", "mini-burger-sliders", "entree-(main-course)",
	"bao-&-dim-sum", "indian-mains---curries", "biryanis-&-rice", "dals", "breads",
	"asian-mains", "rice-with-curry---thai-&-asian-bowls", "rice-&-noodles", "desserts",
	"blended-whisky", "blended-scotch-whisky", "american-irish-whiskey", "single-malt-whisky",
	"vodka", "gin", "rum", "tequila", "cognac-brandy", "liqueurs", "sparkling-wine",
	"white-wines", "rose-wines", "red-wines", "dessert-wines", "port-wine",
	"signature-mocktails", "soft-beverages", "craft-beers-on-tap", "draught-beer",
	"pint-beers", "classic-cocktails", "signature-cocktails", "wine-cocktails",
	"sangria", "signature-shots",
}

// Categories returns a copy of the catalog.
func Categories() []string {
	out := make([]string, len(catalog))
	copy(out, catalog)
	return out
}

// IsReservedCollection reports whether name holds non-menu records.
func IsReservedCollection(name string) bool {
	switch name {
	case CartItemsCollection, UsersCollection, CustomersCollection:
		return true
	}
	return strings.HasPrefix(name, "system.")
}

var ErrInvalidCollection = errors.New("invalid collection name")

// ValidateCollectionName checks that name can address a menu collection.
// Catalog membership is not required.
func ValidateCollectionName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return ErrInvalidCollection
	case len(name) > 120:
		return ErrInvalidCollection
	case strings.ContainsAny(name, "$\x00"):
		return ErrInvalidCollection
	case IsReservedCollection(name):
		return ErrInvalidCollection
	}
	return nil
}
