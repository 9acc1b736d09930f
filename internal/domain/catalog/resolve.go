package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

// UnknownProductID identifies items billed without a catalog match.
const UnknownProductID = "unknown"

// Descriptor is the product-shaped value the billing pipeline works with:
// either a real catalog product or the degraded "unknown" stand-in.
type Descriptor struct {
	ProductID string
	Name      string
	Category  Category
	Known     bool
}

// GSTRate returns the GST percentage for the descriptor's category.
func (d Descriptor) GSTRate() decimal.Decimal {
	return d.Category.GSTRate()
}

// Resolve matches a raw extracted name fragment against the catalog.
// Matching is case-insensitive with substring containment accepted in either
// direction, checked in fixed order: primary name first, then the Hindi name,
// then exact identifier equality. The first product to match wins.
//
// When nothing matches, the item is still billable: Resolve returns a
// descriptor carrying the raw fragment verbatim, the "unknown" identifier,
// and the general-goods category (18% GST). It never fails.
func (c *Catalog) Resolve(rawName string) Descriptor {
	search := strings.ToLower(strings.TrimSpace(rawName))
	if search != "" {
		for i := range c.products {
			if containsEither(strings.ToLower(c.products[i].Name), search) {
				return known(&c.products[i])
			}
		}
		for i := range c.products {
			if containsEither(c.products[i].NameHi, search) {
				return known(&c.products[i])
			}
		}
		for i := range c.products {
			if c.products[i].ID == search {
				return known(&c.products[i])
			}
		}
	}

	return Descriptor{
		ProductID: UnknownProductID,
		Name:      rawName,
		Category:  CategoryGeneral,
	}
}

func known(p *Product) Descriptor {
	return Descriptor{
		ProductID: p.ID,
		Name:      p.Name,
		Category:  p.Category,
		Known:     true,
	}
}

// containsEither reports whether either string contains the other.
func containsEither(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
