package customer

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRecordPurchase(t *testing.T) {
	first := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	second := first.Add(2 * time.Hour)

	c := &Customer{Mobile: "9876543210", Name: "Ramesh"}

	c.RecordPurchase(decimal.RequireFromString("283.50"), first)
	assert.True(t, decimal.RequireFromString("283.50").Equal(c.TotalPurchases))
	assert.Equal(t, 1, c.VisitCount)
	assert.Equal(t, first, c.LastVisit)
	assert.Equal(t, 28, c.LoyaltyPoints)

	c.RecordPurchase(decimal.RequireFromString("116.50"), second)
	assert.True(t, decimal.RequireFromString("400.00").Equal(c.TotalPurchases))
	assert.Equal(t, 2, c.VisitCount)
	assert.Equal(t, second, c.LastVisit)
	assert.Equal(t, 40, c.LoyaltyPoints)
}

// Loyalty points are recomputed from the running total, not accumulated per
// purchase, so fractional rupees are never lost between visits.
func TestRecordPurchase_PointsFromRunningTotal(t *testing.T) {
	at := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	c := &Customer{Mobile: "9876543210"}
	c.RecordPurchase(decimal.RequireFromString("9.00"), at)
	assert.Equal(t, 0, c.LoyaltyPoints)

	c.RecordPurchase(decimal.RequireFromString("9.00"), at)
	assert.Equal(t, 1, c.LoyaltyPoints)
}
