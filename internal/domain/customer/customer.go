// Package customer tracks repeat buyers keyed by mobile number.
package customer

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when no customer exists for a mobile number.
var ErrNotFound = errors.New("customer not found")

// Loyalty points accrue at 1 point per 10 rupees of purchases.
var loyaltyDivisor = decimal.NewFromInt(10)

// Customer is a repeat buyer identified by mobile number.
type Customer struct {
	Mobile         string
	Name           string
	TotalPurchases decimal.Decimal
	VisitCount     int
	LastVisit      time.Time
	LoyaltyPoints  int
}

// Repository defines persistence operations for customers.
type Repository interface {
	Upsert(ctx context.Context, c *Customer) error
	GetByMobile(ctx context.Context, mobile string) (*Customer, error)
	List(ctx context.Context) ([]Customer, error)
	Count(ctx context.Context) (int, error)
}

// RecordPurchase folds a confirmed invoice total into the customer's running
// figures: one more visit, purchases bumped, loyalty points recomputed.
func (c *Customer) RecordPurchase(amount decimal.Decimal, at time.Time) {
	c.TotalPurchases = c.TotalPurchases.Add(amount)
	c.VisitCount++
	c.LastVisit = at
	c.LoyaltyPoints = int(c.TotalPurchases.Div(loyaltyDivisor).IntPart())
}
