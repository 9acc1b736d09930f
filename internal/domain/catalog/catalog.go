package catalog

import (
	"context"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// Category groups products for tax purposes. The GST rate is an attribute of
// the category, never set per product, so tax computation stays auditable.
type Category string

const (
	// CategoryFood covers everyday food items taxed at 5% GST.
	CategoryFood Category = "food_items"
	// CategoryGeneral covers general household goods taxed at 18% GST.
	CategoryGeneral Category = "general_goods"
	// CategoryLuxury covers luxury items taxed at 28% GST.
	CategoryLuxury Category = "luxury_items"
)

var gstRates = map[Category]decimal.Decimal{
	CategoryFood:    decimal.NewFromInt(5),
	CategoryGeneral: decimal.NewFromInt(18),
	CategoryLuxury:  decimal.NewFromInt(28),
}

// GSTRate returns the GST percentage for the category. Unknown categories are
// taxed at the general-goods rate.
func (c Category) GSTRate() decimal.Decimal {
	if rate, ok := gstRates[c]; ok {
		return rate
	}
	return gstRates[CategoryGeneral]
}

// Product is a catalog item with a bilingual name and a reference unit price.
type Product struct {
	ID       string
	Name     string
	NameHi   string
	Category Category
	Unit     string
	Price    decimal.Decimal
}

// GSTRate returns the GST percentage derived from the product's category.
func (p Product) GSTRate() decimal.Decimal {
	return p.Category.GSTRate()
}

// Repository defines read operations for the persisted product catalog.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
}

// Catalog is the read-only product set the core works against. It is built
// once at startup and never mutated afterwards.
type Catalog struct {
	products []Product
	byID     map[string]int
}

// New builds a Catalog from the given products, preserving their order.
func New(products []Product) *Catalog {
	byID := make(map[string]int, len(products))
	for i, p := range products {
		if _, exists := byID[p.ID]; !exists {
			byID[p.ID] = i
		}
	}
	return &Catalog{products: products, byID: byID}
}

// Load fetches all products from the repository and builds a Catalog.
func Load(ctx context.Context, repo Repository) (*Catalog, error) {
	products, err := repo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	return New(products), nil
}

// Len returns the number of products in the catalog.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Products returns the catalog contents in their original order. The returned
// slice must not be modified.
func (c *Catalog) Products() []Product {
	return c.products
}

// Lookup returns the product with the given identifier.
func (c *Catalog) Lookup(id string) (*Product, error) {
	i, ok := c.byID[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return nil, ErrNotFound
	}
	return &c.products[i], nil
}
