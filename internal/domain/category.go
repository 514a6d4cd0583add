package domain

import "fmt"

// Category is a kind of point of interest. Each category is stored in its own
// table and slugs are unique only within a category.
// The string value is the URL form used in routes and blob paths.
type Category string

const (
	CategoryStatues    Category = "estatuas"
	CategoryHotels     Category = "hoteles"
	CategoryRestaurant Category = "restaurantes"
	CategoryArtists    Category = "artistas"
	CategoryRecreation Category = "establecimientos-recreacion"
	CategoryTransport  Category = "empresas-transporte"
	CategoryAttraction Category = "lugares-turisticos"
)

// tables maps every known category to its table name.
// It doubles as the whitelist that keeps table names out of user input.
var tables = map[Category]string{
	CategoryStatues:    "estatuas",
	CategoryHotels:     "hoteles",
	CategoryRestaurant: "restaurantes",
	CategoryArtists:    "artistas",
	CategoryRecreation: "establecimientos_recreacion",
	CategoryTransport:  "empresas_transporte",
	CategoryAttraction: "lugares_turisticos",
}

// Categories returns every known category in a stable order.
func Categories() []Category {
	return []Category{
		CategoryStatues,
		CategoryHotels,
		CategoryRestaurant,
		CategoryArtists,
		CategoryRecreation,
		CategoryTransport,
		CategoryAttraction,
	}
}

// ParseCategory converts a URL segment into a Category.
// Returns ErrUnknownCategory for anything outside the fixed set.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if _, ok := tables[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

// Table returns the database table backing the category.
// It returns "" for an unknown category; callers should parse first.
func (c Category) Table() string {
	return tables[c]
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := tables[c]
	return ok
}

func (c Category) String() string {
	return string(c)
}
