// Package catalog maps raw product classification strings to the closed
// category set used throughout the pipeline.
package catalog

import "strings"

// Category is the product category enum.
type Category string

const (
	// None marks a row whose category cannot be determined (empty raw input).
	None Category = ""

	Clogs    Category = "Clogs"
	Sneakers Category = "Sneakers"
	Insoles  Category = "Insoles"

	// Other is the catch-all for recognized-but-unmapped products. It counts
	// toward revenue but is excluded from category-set combinatorics.
	Other Category = "Other"
)

// aliases maps lowercase raw product strings (handles, product types, display
// names) to categories. Anything non-empty and absent here maps to Other.
var aliases = map[string]Category{
	// Clogs
	"clog":                Clogs,
	"clogs":               Clogs,
	"classic-clog":        Clogs,
	"classic clog":        Clogs,
	"pro-clog":            Clogs,
	"pro clog":            Clogs,
	"slip-resistant-clog": Clogs,
	"work clog":           Clogs,
	"work-clog":           Clogs,

	// Sneakers
	"sneaker":          Sneakers,
	"sneakers":         Sneakers,
	"everyday-sneaker": Sneakers,
	"everyday sneaker": Sneakers,
	"lace-up-sneaker":  Sneakers,
	"lace up sneaker":  Sneakers,
	"slip-on-sneaker":  Sneakers,
	"slip on sneaker":  Sneakers,
	"trainer":          Sneakers,
	"trainers":         Sneakers,

	// Insoles
	"insole":             Insoles,
	"insoles":            Insoles,
	"arch-insole":        Insoles,
	"comfort-insole":     Insoles,
	"support-insole":     Insoles,
	"replacement-insole": Insoles,
}

// Map resolves a raw product classification string to a category. Mapping is
// total over non-empty input: unrecognized strings map to Other, never an error.
// Empty input returns None.
func Map(raw string) Category {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" {
		return None
	}
	if cat, ok := aliases[key]; ok {
		return cat
	}
	return Other
}

// Purchasable lists the categories that participate in category-set
// combinatorics, in display order.
var Purchasable = []Category{Clogs, Sneakers, Insoles}

// Combinable reports whether a category participates in category-set
// combinatorics (everything except Other and None).
func Combinable(c Category) bool {
	return c != Other && c != None
}
